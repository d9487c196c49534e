package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Convene/internal/domain/entity"
	"github.com/mikiasgoitom/Convene/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/Convene/internal/usecase/contract"
)

// MaxPictureSize bounds profile picture uploads.
const MaxPictureSize = 5 << 20

// UserHandlerInterface defines the methods for user handler to allow interface-based dependency injection (for testing/mocking)
type UserHandlerInterface interface {
	CreateUser(*gin.Context)
	Login(*gin.Context)
	GetUser(*gin.Context)
	UpdateUser(*gin.Context)
	UpdateProfilePicture(*gin.Context)
	ListPendingUsers(*gin.Context)
	ApproveUser(*gin.Context)
	AdminCheck(*gin.Context)
}

// Ensure UserHandler implements UserHandlerInterface
var _ UserHandlerInterface = (*UserHandler)(nil)

type UserHandler struct {
	userUsecase            usecasecontract.IUserUseCase
	pictureUsecase         usecasecontract.IProfilePictureUseCase
	duplicateEmailConflict bool
}

// NewUserHandler builds the handler. With duplicateEmailConflict set, a
// registration for a taken email answers 409 instead of 200 with a message.
func NewUserHandler(userUsecase usecasecontract.IUserUseCase, pictureUsecase usecasecontract.IProfilePictureUseCase, duplicateEmailConflict bool) *UserHandler {
	return &UserHandler{
		userUsecase:            userUsecase,
		pictureUsecase:         pictureUsecase,
		duplicateEmailConflict: duplicateEmailConflict,
	}
}

// CreateUser handles user registration (signup)
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.RegisterRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, err := h.userUsecase.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		if errors.Is(err, entity.ErrDuplicateEmail) && !h.duplicateEmailConflict {
			MessageHandler(c, http.StatusOK, "User already exists with that email")
			return
		}
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusCreated, dto.UserEnvelope{
		Message: "User details submitted successfully. An administrator will review your account.",
		User:    dto.ToUserResponse(*user),
	})
}

// Login handles user authentication
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, token, err := h.userUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.Summary(),
	})
}

// GetUser handles retrieving user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUsecase.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.UserEnvelope{Message: "User profile", User: dto.ToUserResponse(*user)})
}

// UpdateUser applies a partial profile update.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, err := h.userUsecase.UpdateProfile(c.Request.Context(), c.Param("id"), req.ToUpdate())
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.UserEnvelope{Message: "Profile updated", User: dto.ToUserResponse(*user)})
}

// UpdateProfilePicture replaces the picture from the multipart field "file".
func (h *UserHandler) UpdateProfilePicture(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, "file is required")
		return
	}
	if fileHeader.Size > MaxPictureSize {
		ErrorHandler(c, http.StatusBadRequest, "file is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, "unable to read uploaded file")
		return
	}
	defer file.Close()

	picture, err := h.pictureUsecase.ReplacePicture(c.Request.Context(), c.Param("id"), usecasecontract.PictureUpload{
		Reader:      file,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Filename:    fileHeader.Filename,
	})
	if err != nil {
		RespondError(c, err)
		return
	}

	SuccessHandler(c, http.StatusOK, dto.ProfilePictureResponse{Message: "Profile picture updated", ProfilePicture: *picture})
}

// ListPendingUsers returns every account awaiting approval.
func (h *UserHandler) ListPendingUsers(c *gin.Context) {
	users, err := h.userUsecase.ListPending(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.UsersEnvelope{Message: "All pending users", Users: dto.ToUserResponses(users)})
}

// ApproveUser admits a pending user with the role from the body.
func (h *UserHandler) ApproveUser(c *gin.Context) {
	var req dto.ApproveRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}

	user, err := h.userUsecase.Approve(c.Request.Context(), c.Param("id"), entity.UserRole(req.Role))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, dto.UserEnvelope{Message: "User approved successfully", User: dto.ToUserResponse(*user)})
}

// AdminCheck answers only when the caller's token carries the admin role.
func (h *UserHandler) AdminCheck(c *gin.Context) {
	MessageHandler(c, http.StatusOK, "This is a protected admin route")
}
