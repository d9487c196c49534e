package usecasecontract

import (
	"context"
	"io"

	"github.com/mikiasgoitom/Convene/internal/domain/entity"
)

// PictureUpload is a new profile picture read from a multipart form.
type PictureUpload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}

type IProfilePictureUseCase interface {
	ReplacePicture(ctx context.Context, userID string, upload PictureUpload) (*entity.ProfilePicture, error)
}
