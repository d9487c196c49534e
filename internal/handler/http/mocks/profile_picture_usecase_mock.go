package mocks

import (
	"context"
	"io"

	"github.com/mikiasgoitom/Convene/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Convene/internal/usecase/contract"
)

type MockProfilePictureUsecase struct {
	ReplaceErr error

	// Uploaded holds the bytes read from the last upload.
	Uploaded    []byte
	LastUpload  usecasecontract.PictureUpload
	LastUserID  string
	MockPicture entity.ProfilePicture
}

var _ usecasecontract.IProfilePictureUseCase = (*MockProfilePictureUsecase)(nil)

func NewMockProfilePictureUsecase() *MockProfilePictureUsecase {
	return &MockProfilePictureUsecase{
		MockPicture: entity.ProfilePicture{PublicID: "avatars/mock.png", URL: "http://localhost:9000/convene-avatars/avatars/mock.png"},
	}
}

func (m *MockProfilePictureUsecase) ReplacePicture(ctx context.Context, userID string, upload usecasecontract.PictureUpload) (*entity.ProfilePicture, error) {
	m.LastUserID, m.LastUpload = userID, upload
	if m.ReplaceErr != nil {
		return nil, m.ReplaceErr
	}
	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, err
	}
	m.Uploaded = data
	pic := m.MockPicture
	return &pic, nil
}
