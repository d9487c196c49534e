package http

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Convene/internal/domain/contract"
	"github.com/mikiasgoitom/Convene/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/Convene/internal/usecase/contract"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	oauthStateCookie  = "oauthState"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type AuthHandler struct {
	UserUseCase usecasecontract.IUserUseCase
	randomGen   contract.IRandomGenerator
	oauthConfig *oauth2.Config
	userInfoURL string
}

func NewAuthHandler(uc usecasecontract.IUserUseCase, config usecasecontract.IConfigProvider, randomGen contract.IRandomGenerator) *AuthHandler {
	return &AuthHandler{
		UserUseCase: uc,
		randomGen:   randomGen,
		oauthConfig: &oauth2.Config{
			ClientID:     config.GetGoogleClientID(),
			ClientSecret: config.GetGoogleClientSecret(),
			RedirectURL:  config.GetGoogleRedirectURL(),
			Scopes:       []string{"email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

type UserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *AuthHandler) HandleGoogleLogin(ctx *gin.Context) {
	state, err := h.randomGen.GenerateRandomToken(16)
	if err != nil {
		ErrorHandler(ctx, http.StatusInternalServerError, "failed to start sign-in")
		return
	}
	ctx.SetCookie(oauthStateCookie, state, 300, "/", "", false, true)

	ctx.Redirect(http.StatusTemporaryRedirect, h.oauthConfig.AuthCodeURL(state))
}

// HandleGoogleCallback signs the user in with the Google account email. The
// account is subject to the same approval gate as password logins.
func (h *AuthHandler) HandleGoogleCallback(ctx *gin.Context) {
	state := ctx.Query("state")
	cookieState, err := ctx.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != cookieState {
		ErrorHandler(ctx, http.StatusUnauthorized, "invalid CSRF state token")
		return
	}
	ctx.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := ctx.Query("code")
	if code == "" {
		ErrorHandler(ctx, http.StatusBadRequest, "authorization code not provided")
		return
	}

	requestCtx := ctx.Request.Context()
	token, err := h.oauthConfig.Exchange(requestCtx, code)
	if err != nil {
		ErrorHandler(ctx, http.StatusBadGateway, "failed to exchange authorization code")
		return
	}

	resp, err := h.oauthConfig.Client(requestCtx, token).Get(h.userInfoURL)
	if err != nil {
		ErrorHandler(ctx, http.StatusBadGateway, "failed to get user info")
		return
	}
	defer resp.Body.Close()

	var userInfo UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		ErrorHandler(ctx, http.StatusBadGateway, "failed to decode user info")
		return
	}

	user, accessToken, err := h.UserUseCase.LoginWithOAuth(requestCtx, userInfo.Name, userInfo.Email)
	if err != nil {
		RespondError(ctx, err)
		return
	}

	SuccessHandler(ctx, http.StatusOK, dto.LoginResponse{
		Message: "Login successful",
		Token:   accessToken,
		User:    user.Summary(),
	})
}
