package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikiasgoitom/Convene/internal/domain/contract"
	"github.com/mikiasgoitom/Convene/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Convene/internal/usecase/contract"
)

// ProfilePictureUsecase swaps a user's profile picture in the external asset store.
type ProfilePictureUsecase struct {
	userRepo   contract.IUserRepository
	userCache  contract.IUserCache
	assetStore contract.IAssetStore
	logger     usecasecontract.IAppLogger
	metrics    usecasecontract.IMetrics
}

var _ usecasecontract.IProfilePictureUseCase = (*ProfilePictureUsecase)(nil)

func NewProfilePictureUsecase(
	userRepo contract.IUserRepository,
	assetStore contract.IAssetStore,
	logger usecasecontract.IAppLogger,
	metrics usecasecontract.IMetrics,
) *ProfilePictureUsecase {
	return &ProfilePictureUsecase{
		userRepo:   userRepo,
		assetStore: assetStore,
		logger:     logger,
		metrics:    metrics,
	}
}

// SetUserCache lets the usecase invalidate cached profiles after a swap.
func (uc *ProfilePictureUsecase) SetUserCache(cache contract.IUserCache) {
	uc.userCache = cache
}

// ReplacePicture deletes the current external asset (best-effort), uploads the
// new one and points the user record at it. The record never references more
// than one asset; a failed delete leaves an orphaned object behind.
func (uc *ProfilePictureUsecase) ReplacePicture(ctx context.Context, userID string, upload usecasecontract.PictureUpload) (*entity.ProfilePicture, error) {
	if upload.Reader == nil {
		return nil, fmt.Errorf("%w: picture file is required", entity.ErrValidation)
	}

	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", entity.ErrNotFound)
		}
		uc.logger.Errorf("failed to load user %s for picture update: %v", userID, err)
		return nil, fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}

	if oldID := user.ProfilePicture.PublicID; oldID != "" {
		if err := uc.assetStore.Delete(ctx, oldID); err != nil {
			uc.logger.Warnf("failed to delete previous picture %s of user %s: %v", oldID, userID, err)
			uc.metrics.RecordAssetDeleteFailure()
		}
	}

	asset, err := uc.assetStore.Upload(ctx, upload.Reader, upload.Size, upload.ContentType)
	if err != nil {
		uc.logger.Errorf("failed to upload picture for user %s: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to upload picture", entity.ErrExternalService)
	}

	picture := entity.ProfilePicture{PublicID: asset.ExternalID, URL: asset.URL}
	if err := uc.userRepo.UpdateProfilePicture(ctx, userID, picture); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", entity.ErrNotFound)
		}
		uc.logger.Errorf("failed to save picture %s for user %s: %v", asset.ExternalID, userID, err)
		return nil, fmt.Errorf("%w: failed to save picture", entity.ErrStorageFailure)
	}

	if uc.userCache != nil {
		if err := uc.userCache.InvalidateUser(ctx, userID); err != nil {
			uc.logger.Warnf("failed to invalidate cached user %s: %v", userID, err)
		}
	}

	return &picture, nil
}
