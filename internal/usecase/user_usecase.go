package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/Convene/internal/domain/contract"
	"github.com/mikiasgoitom/Convene/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Convene/internal/usecase/contract"
)

// Outcome labels reported to metrics.
const (
	outcomeSuccess     = "success"
	outcomeDuplicate   = "duplicate"
	outcomeInvalid     = "invalid"
	outcomeNotFound    = "not_found"
	outcomeBadPassword = "bad_password"
	outcomeNotApproved = "not_approved"
	outcomeError       = "error"
)

// UserUsecase implements the UserUseCase interface.
type UserUsecase struct {
	userRepo      contract.IUserRepository
	userCache     contract.IUserCache
	hasher        contract.IHasher
	jwtService    JWTService
	mailService   contract.IEmailService
	logger        usecasecontract.IAppLogger
	config        usecasecontract.IConfigProvider
	validator     usecasecontract.IValidator
	uuidGenerator contract.IUUIDGenerator
	metrics       usecasecontract.IMetrics
}

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(
	userRepo contract.IUserRepository,
	hasher contract.IHasher,
	jwtService JWTService,
	mailService contract.IEmailService,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
	validator usecasecontract.IValidator,
	uuidGenerator contract.IUUIDGenerator,
	metrics usecasecontract.IMetrics,
) *UserUsecase {
	return &UserUsecase{
		userRepo:      userRepo,
		hasher:        hasher,
		jwtService:    jwtService,
		mailService:   mailService,
		logger:        logger,
		config:        cfg,
		validator:     validator,
		uuidGenerator: uuidGenerator,
		metrics:       metrics,
	}
}

// SetUserCache enables cache-aside reads of user profiles.
func (uc *UserUsecase) SetUserCache(cache contract.IUserCache) {
	uc.userCache = cache
}

// check if UserUseCase implements the IUserUseCase
var _ usecasecontract.IUserUseCase = (*UserUsecase)(nil)

// Register creates a pending account. The returned user still carries the
// password hash; callers redact it before exposing the record.
func (uc *UserUsecase) Register(ctx context.Context, in usecasecontract.RegisterInput) (*entity.User, error) {
	if in.Email == "" || in.Password == "" {
		uc.metrics.RecordRegistration(outcomeInvalid)
		return nil, fmt.Errorf("%w: email and password are required", entity.ErrValidation)
	}

	// Advisory only: the unique index on email decides under concurrency.
	existing, err := uc.userRepo.GetUserByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		uc.metrics.RecordRegistration(outcomeError)
		return nil, fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}
	if existing != nil {
		uc.metrics.RecordRegistration(outcomeDuplicate)
		return nil, entity.ErrDuplicateEmail
	}

	hashedPassword, err := uc.hasher.HashPassword(in.Password)
	if err != nil {
		uc.logger.Errorf("failed to hash password: %v", err)
		uc.metrics.RecordRegistration(outcomeError)
		return nil, fmt.Errorf("%w: failed to process password", entity.ErrExternalService)
	}

	now := time.Now()
	user := &entity.User{
		ID:             uc.uuidGenerator.NewUUID(),
		Name:           in.Name,
		Email:          in.Email,
		PasswordHash:   hashedPassword,
		Phone:          in.Phone,
		Address:        in.Address,
		Gender:         in.Gender,
		Skills:         in.Skills,
		Biography:      in.Biography,
		Socials:        in.Socials,
		Locations:      in.Locations,
		Role:           entity.DefaultRole(),
		Status:         entity.UserStatusPending,
		ProfilePicture: entity.DefaultProfilePicture(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, entity.ErrDuplicateEmail) {
			uc.metrics.RecordRegistration(outcomeDuplicate)
			return nil, entity.ErrDuplicateEmail
		}
		uc.logger.Errorf("failed to create user: %v", err)
		uc.metrics.RecordRegistration(outcomeError)
		return nil, fmt.Errorf("%w: failed to register user", entity.ErrStorageFailure)
	}

	uc.metrics.RecordRegistration(outcomeSuccess)
	return user, nil
}

// Login verifies credentials and the approval gate, in that order, and issues an access token.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if email == "" || password == "" {
		uc.metrics.RecordLogin(outcomeInvalid)
		return nil, "", fmt.Errorf("%w: invalid mail or password", entity.ErrValidation)
	}

	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			uc.metrics.RecordLogin(outcomeNotFound)
			return nil, "", fmt.Errorf("%w: email not registered", entity.ErrNotFound)
		}
		uc.logger.Errorf("failed to retrieve user for login: %v", err)
		uc.metrics.RecordLogin(outcomeError)
		return nil, "", fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}

	if user.PasswordHash == "" {
		uc.metrics.RecordLogin(outcomeBadPassword)
		return nil, "", entity.ErrInvalidCredentials
	}
	if err := uc.hasher.ComparePasswordHash(password, user.PasswordHash); err != nil {
		uc.metrics.RecordLogin(outcomeBadPassword)
		return nil, "", entity.ErrInvalidCredentials
	}

	// Approval is only checked once the password matched.
	if !user.IsApproved() {
		uc.metrics.RecordLogin(outcomeNotApproved)
		return nil, "", entity.ErrNotApproved
	}

	token, err := uc.issueToken(user)
	if err != nil {
		uc.metrics.RecordLogin(outcomeError)
		return nil, "", err
	}
	uc.metrics.RecordLogin(outcomeSuccess)
	return user, token, nil
}

// LoginWithOAuth signs in a user whose email was confirmed by an identity provider.
// Unknown emails are registered as pending accounts without a usable password.
func (uc *UserUsecase) LoginWithOAuth(ctx context.Context, name, email string) (*entity.User, string, error) {
	if err := uc.validator.ValidateEmail(email); err != nil {
		return nil, "", fmt.Errorf("%w: invalid email from identity provider", entity.ErrValidation)
	}

	user, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		return nil, "", fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}

	if user == nil {
		now := time.Now()
		newUser := &entity.User{
			ID:             uc.uuidGenerator.NewUUID(),
			Name:           name,
			Email:          email,
			Role:           entity.DefaultRole(),
			Status:         entity.UserStatusPending,
			ProfilePicture: entity.DefaultProfilePicture(),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		err := uc.userRepo.CreateUser(ctx, newUser)
		switch {
		case err == nil:
			uc.metrics.RecordRegistration(outcomeSuccess)
			uc.metrics.RecordLogin(outcomeNotApproved)
			return nil, "", entity.ErrNotApproved
		case errors.Is(err, entity.ErrDuplicateEmail):
			// A concurrent registration won the insert; judge its account instead.
			uc.metrics.RecordRegistration(outcomeDuplicate)
			user, err = uc.userRepo.GetUserByEmail(ctx, email)
			if err != nil {
				uc.logger.Errorf("failed to reload user after duplicate OAuth registration: %v", err)
				uc.metrics.RecordLogin(outcomeError)
				return nil, "", fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
			}
		default:
			uc.logger.Errorf("failed to create user from OAuth: %v", err)
			return nil, "", fmt.Errorf("%w: failed to register user", entity.ErrStorageFailure)
		}
	}

	if !user.IsApproved() {
		uc.metrics.RecordLogin(outcomeNotApproved)
		return nil, "", entity.ErrNotApproved
	}

	token, err := uc.issueToken(user)
	if err != nil {
		uc.metrics.RecordLogin(outcomeError)
		return nil, "", err
	}
	uc.metrics.RecordLogin(outcomeSuccess)
	return user, token, nil
}

func (uc *UserUsecase) issueToken(user *entity.User) (string, error) {
	token, err := uc.jwtService.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		uc.logger.Errorf("failed to generate access token: %v", err)
		return "", fmt.Errorf("%w: failed to generate token", entity.ErrExternalService)
	}
	return token, nil
}

// Approve admits a user with the given role. Re-approving overwrites the role.
// Tokens issued earlier keep their old role claim until they expire.
func (uc *UserUsecase) Approve(ctx context.Context, userID string, role entity.UserRole) (*entity.User, error) {
	if strings.TrimSpace(string(role)) == "" {
		return nil, fmt.Errorf("%w: role is required", entity.ErrValidation)
	}

	user, err := uc.userRepo.ApproveUser(ctx, userID, role)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", entity.ErrNotFound)
		}
		uc.logger.Errorf("failed to approve user %s: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to approve user", entity.ErrStorageFailure)
	}

	uc.invalidateCachedUser(ctx, userID)
	uc.metrics.RecordApproval()
	uc.notifyApproval(ctx, user)

	return user, nil
}

func (uc *UserUsecase) notifyApproval(ctx context.Context, user *entity.User) {
	if !uc.config.GetSendApprovalEmail() || uc.mailService == nil {
		return
	}
	subject := "Your account has been approved"
	body := fmt.Sprintf("Hi %s,\n\nAn administrator approved your account with the role %q. You can now sign in at %s.\n\nThanks,\nThe Team",
		user.Name, user.Role, uc.config.GetAppBaseURL())
	if err := uc.mailService.SendEmail(ctx, user.Email, subject, body); err != nil {
		uc.logger.Warnf("failed to send approval email to %s: %v", user.Email, err)
	}
}

// ListPending returns accounts waiting for approval in storage order.
func (uc *UserUsecase) ListPending(ctx context.Context) ([]*entity.User, error) {
	users, err := uc.userRepo.GetUsersByStatus(ctx, entity.UserStatusPending)
	if err != nil {
		uc.logger.Errorf("failed to list pending users: %v", err)
		return nil, fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}
	return users, nil
}

func (uc *UserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	if uc.userCache != nil {
		if cached, ok, err := uc.userCache.GetUser(ctx, userID); err != nil {
			uc.logger.Warnf("user cache read failed for %s: %v", userID, err)
		} else if ok {
			return cached, nil
		}
	}

	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", entity.ErrNotFound)
		}
		uc.logger.Errorf("failed to retrieve user by ID: %v", err)
		return nil, fmt.Errorf("%w: %v", entity.ErrStorageFailure, err)
	}

	if uc.userCache != nil {
		if err := uc.userCache.SetUser(ctx, user); err != nil {
			uc.logger.Warnf("user cache write failed for %s: %v", userID, err)
		}
	}
	return user, nil
}

// UpdateProfile applies allow-listed profile fields. Status, role, email,
// password and picture cannot be changed here.
func (uc *UserUsecase) UpdateProfile(ctx context.Context, userID string, update usecasecontract.ProfileUpdate) (*entity.User, error) {
	fields := profileUpdateToFields(update)
	if len(fields) == 0 {
		return uc.GetUserByID(ctx, userID)
	}
	fields["updated_at"] = time.Now()

	user, err := uc.userRepo.UpdateProfileFields(ctx, userID, fields)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", entity.ErrNotFound)
		}
		uc.logger.Errorf("failed to update profile for user %s: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to update profile", entity.ErrStorageFailure)
	}

	uc.invalidateCachedUser(ctx, userID)
	return user, nil
}

func (uc *UserUsecase) invalidateCachedUser(ctx context.Context, userID string) {
	if uc.userCache == nil {
		return
	}
	if err := uc.userCache.InvalidateUser(ctx, userID); err != nil {
		uc.logger.Warnf("failed to invalidate cached user %s: %v", userID, err)
	}
}

func profileUpdateToFields(u usecasecontract.ProfileUpdate) map[string]interface{} {
	fields := make(map[string]interface{})
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Phone != nil {
		fields["phone"] = *u.Phone
	}
	if u.Address != nil {
		fields["address"] = *u.Address
	}
	if u.Gender != nil {
		fields["gender"] = *u.Gender
	}
	if u.Skills != nil {
		fields["skills"] = u.Skills
	}
	if u.Biography != nil {
		fields["biography"] = *u.Biography
	}
	if u.Socials != nil {
		fields["socials"] = u.Socials
	}
	if u.Locations != nil {
		fields["locations"] = u.Locations
	}
	return fields
}
