// Package menurepo persists categories and menu items with gorm.
package menurepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/menu"
)

// CategoryNameConstraint is the unique index on lowercased category names.
const CategoryNameConstraint = "idx_categories_name_key"

type CategoryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	NameKey   string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_categories_name_key"`
	CreatedAt time.Time `gorm:"not null"`
}

func (CategoryDTO) TableName() string {
	return "categories"
}

// MenuItemDTO is the menu_items table. Sizes are stored inline as JSON.
type MenuItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	BasePrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Sizes       []SizeDTO       `gorm:"type:jsonb;serializer:json;not null"`
	ImageURL    string          `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"not null"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

type SizeDTO struct {
	Name       string          `json:"name"`
	ExtraPrice decimal.Decimal `json:"extraPrice"`
}

func categoryFromDomain(c *menu.Category) CategoryDTO {
	return CategoryDTO{
		ID:        c.ID().Bytes(),
		Name:      c.Name(),
		NameKey:   c.NameKey(),
		CreatedAt: c.CreatedAt(),
	}
}

func categoryToDomain(dto CategoryDTO) (*menu.Category, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return menu.RestoreCategory(id, dto.Name, dto.CreatedAt)
}

func itemFromDomain(i *menu.Item) MenuItemDTO {
	sizes := make([]SizeDTO, 0, len(i.Sizes()))
	for _, s := range i.Sizes() {
		sizes = append(sizes, SizeDTO{Name: s.Name, ExtraPrice: s.ExtraPrice})
	}

	return MenuItemDTO{
		ID:          i.ID().Bytes(),
		CategoryID:  i.CategoryID().Bytes(),
		Name:        i.Name(),
		Description: i.Description(),
		BasePrice:   i.BasePrice(),
		Sizes:       sizes,
		ImageURL:    i.ImageURL(),
		CreatedAt:   i.CreatedAt(),
	}
}

func itemToDomain(dto MenuItemDTO) (*menu.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	categoryID, err := kernel.UUIDFromBytes(dto.CategoryID[:])
	if err != nil {
		return nil, err
	}

	sizes := make([]menu.Size, 0, len(dto.Sizes))
	for _, s := range dto.Sizes {
		sizes = append(sizes, menu.Size{Name: s.Name, ExtraPrice: s.ExtraPrice})
	}

	return menu.NewItem(menu.ItemParams{
		ID:          id,
		CategoryID:  categoryID,
		Name:        dto.Name,
		Description: dto.Description,
		BasePrice:   dto.BasePrice,
		Sizes:       sizes,
		ImageURL:    dto.ImageURL,
		CreatedAt:   dto.CreatedAt,
	})
}
