package queries

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/guard"
)

var (
	ErrGetMenuQueryIsNotConstructed = errors.New(
		"GetMenuQuery must be created via NewGetMenuQuery constructor",
	)
)

// GetMenuQuery returns the public menu: every category with its items, both
// sorted by name. It needs no session.
type GetMenuQuery struct {
	guard guard.ConstructorGuard
}

func NewGetMenuQuery() GetMenuQuery {
	return GetMenuQuery{guard: guard.NewConstructorGuard()}
}

func (q GetMenuQuery) Validate() error {
	return q.guard.Validate(ErrGetMenuQueryIsNotConstructed)
}

type CategoryView struct {
	ID    kernel.UUID
	Name  string
	Items []MenuItemView
}

type MenuItemView struct {
	ID          kernel.UUID
	Name        string
	Description string
	BasePrice   decimal.Decimal
	Sizes       []SizeView
	ImageURL    string
}

type SizeView struct {
	Name       string          `json:"name"`
	ExtraPrice decimal.Decimal `json:"extraPrice"`
}

type GetMenuQueryHandler struct {
	db *gorm.DB
}

func NewGetMenuQueryHandler(db *gorm.DB) GetMenuQueryHandler {
	return GetMenuQueryHandler{db: db}
}

type categoryRow struct {
	ID   uuid.UUID
	Name string
}

type menuItemRow struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Name        string
	Description string
	BasePrice   decimal.Decimal
	Sizes       []SizeView `gorm:"serializer:json"`
	ImageURL    string
	CreatedAt   time.Time
}

func (h GetMenuQueryHandler) Handle(ctx context.Context, query GetMenuQuery) ([]CategoryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var categories []categoryRow
	if err := db.Table("categories").Order("name_key ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	var items []menuItemRow
	if err := db.Table("menu_items").Order("lower(name) ASC, created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	byCategory := make(map[uuid.UUID][]MenuItemView, len(categories))
	for _, row := range items {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}
		sizes := row.Sizes
		if sizes == nil {
			sizes = []SizeView{}
		}
		byCategory[row.CategoryID] = append(byCategory[row.CategoryID], MenuItemView{
			ID:          id,
			Name:        row.Name,
			Description: row.Description,
			BasePrice:   row.BasePrice,
			Sizes:       sizes,
			ImageURL:    row.ImageURL,
		})
	}

	menu := make([]CategoryView, 0, len(categories))
	for _, row := range categories {
		id, err := kernel.UUIDFromBytes(row.ID[:])
		if err != nil {
			return nil, err
		}
		categoryItems := byCategory[row.ID]
		if categoryItems == nil {
			categoryItems = []MenuItemView{}
		}
		menu = append(menu, CategoryView{ID: id, Name: row.Name, Items: categoryItems})
	}

	return menu, nil
}
