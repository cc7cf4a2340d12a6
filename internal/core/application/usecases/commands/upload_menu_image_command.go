package commands

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/core/ports"
	"foodorder/internal/pkg/errs"
	"foodorder/internal/pkg/guard"
)

var (
	ErrUploadMenuImageCommandIsNotConstructed = errors.New(
		"UploadMenuImageCommand must be created via NewUploadMenuImageCommand constructor",
	)
	ErrUnsupportedImageType = errs.NewValueIsInvalidErrorWithCause(
		"image", errors.New("only jpg, jpeg, png and webp images are accepted"))
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// UploadMenuImageCommand hosts an image for a menu item. The returned URL is
// then sent with CreateMenuItemCommand.
type UploadMenuImageCommand struct { //nolint:recvcheck //using for validation
	actor    kernel.Identity
	filename string
	content  io.Reader

	guard guard.ConstructorGuard
}

func NewUploadMenuImageCommand(actor kernel.Identity, filename string, content io.Reader) (UploadMenuImageCommand, error) {
	var errList []error
	errList = append(errList, validateIdentity(actor))
	if content == nil {
		errList = append(errList, errs.NewValueIsRequiredError("image"))
	}
	if _, ok := imageExtensions[strings.ToLower(path.Ext(filename))]; !ok {
		errList = append(errList, ErrUnsupportedImageType)
	}
	if err := errors.Join(errList...); err != nil {
		return UploadMenuImageCommand{}, err
	}

	return UploadMenuImageCommand{
		actor:    actor,
		filename: filename,
		content:  content,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c UploadMenuImageCommand) Validate() error {
	return c.guard.Validate(ErrUploadMenuImageCommandIsNotConstructed)
}

type UploadMenuImageCommandHandler struct {
	images ports.ImageStore
}

func NewUploadMenuImageCommandHandler(images ports.ImageStore) UploadMenuImageCommandHandler {
	return UploadMenuImageCommandHandler{
		images: images,
	}
}

func (h *UploadMenuImageCommandHandler) Handle(ctx context.Context, cmd UploadMenuImageCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}
	if err := requireStaff(cmd.actor); err != nil {
		return "", err
	}

	url, err := h.images.Upload(ctx, cmd.filename, cmd.content)
	if err != nil {
		if errors.Is(err, errs.ErrUpstreamFailure) {
			return "", err
		}
		return "", errs.NewUpstreamFailureError("image host", err)
	}
	return url, nil
}
