package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodorder/internal/core/application/usecases/commands"
	"foodorder/internal/core/application/usecases/queries"
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/domain/model/menu"
	"foodorder/internal/pkg/errs"
)

// maxImageBytes caps menu image uploads.
const maxImageBytes = 5 << 20

// GetMenu handles GET /menu - every category with its items.
func (s *Server) GetMenu(ctx echo.Context) error {
	categories, err := s.handlers.GetMenu.Handle(ctx.Request().Context(), queries.NewGetMenuQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toCategoryResponses(categories))
}

// CreateCategory handles POST /categories.
func (s *Server) CreateCategory(ctx echo.Context) error {
	actor, err := identityFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req CategoryRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, badRequest("invalid request body"))
	}

	cmd, err := commands.NewCreateCategoryCommand(actor, req.Name)
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := s.handlers.CreateCategory.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: id.String()})
}

// DeleteCategory handles DELETE /categories/:id - removes the category, its
// items and their hosted images.
func (s *Server) DeleteCategory(ctx echo.Context) error {
	actor, err := identityFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	categoryID, err := kernel.ParseUUID("id", ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewDeleteCategoryCommand(actor, categoryID)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.handlers.DeleteCategory.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateMenuItem handles POST /menu-items.
func (s *Server) CreateMenuItem(ctx echo.Context) error {
	actor, err := identityFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var req MenuItemRequest
	if err := ctx.Bind(&req); err != nil {
		return s.fail(ctx, badRequest("invalid request body"))
	}

	categoryID, err := kernel.ParseUUID("categoryId", req.CategoryID)
	if err != nil {
		return s.fail(ctx, err)
	}

	sizes := make([]menu.Size, len(req.Sizes))
	for i, size := range req.Sizes {
		sizes[i] = menu.Size{Name: size.Name, ExtraPrice: size.ExtraPrice}
	}

	cmd, err := commands.NewCreateMenuItemCommand(actor, menu.ItemParams{
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Sizes:       sizes,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	id, err := s.handlers.CreateMenuItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: id.String()})
}

// UploadMenuImage handles POST /menu-images - a multipart form with an
// "image" file. The returned URL is used when creating the menu item.
func (s *Server) UploadMenuImage(ctx echo.Context) error {
	actor, err := identityFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	header, err := ctx.FormFile("image")
	if err != nil {
		return s.fail(ctx, errs.NewValueIsRequiredErrorWithCause("image", err))
	}
	if header.Size > maxImageBytes {
		return s.fail(ctx, errs.NewValueIsOutOfRangeError("image size", header.Size, 1, maxImageBytes))
	}

	file, err := header.Open()
	if err != nil {
		return s.fail(ctx, err)
	}
	defer file.Close()

	cmd, err := commands.NewUploadMenuImageCommand(actor, header.Filename, file)
	if err != nil {
		return s.fail(ctx, err)
	}

	url, err := s.handlers.UploadMenuImage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, ImageResponse{URL: url})
}
