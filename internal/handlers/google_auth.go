package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleOAuth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"TRIPMOA_BACK-END/internal/config"
	"TRIPMOA_BACK-END/internal/dto"
	"TRIPMOA_BACK-END/internal/middleware"
	"TRIPMOA_BACK-END/internal/models"
	"TRIPMOA_BACK-END/internal/store"
	"TRIPMOA_BACK-END/internal/utils"
)

// oauthStateCookie carries the CSRF state between the login and callback
// requests. Short-lived; cleared once the callback consumes it.
const oauthStateCookie = "oauth_state"

// GoogleAuthHandler handles Google OAuth authentication
type GoogleAuthHandler struct {
	users        store.UserStore
	oauth2Config *oauth2.Config
	config       *config.Config
}

// NewGoogleAuthHandler creates a new GoogleAuthHandler instance
func NewGoogleAuthHandler(users store.UserStore, cfg *config.Config) *GoogleAuthHandler {
	oauth2Config := &oauth2.Config{
		ClientID:     cfg.GoogleOAuth.ClientID,
		ClientSecret: cfg.GoogleOAuth.ClientSecret,
		RedirectURL:  cfg.GoogleOAuth.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &GoogleAuthHandler{
		users:        users,
		oauth2Config: oauth2Config,
		config:       cfg,
	}
}

// GoogleLogin initiates Google OAuth login
// @Summary Google OAuth login
// @Description Initiate Google OAuth login flow
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.GoogleLoginResponse "Google OAuth URL"
// @Router /api/auth/google/login [get]
func (h *GoogleAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Generate state parameter for CSRF protection. The callback only
	// accepts a state that round-trips through this cookie.
	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/auth/google",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	authURL := h.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)

	utils.WriteJSONResponse(w, http.StatusOK, dto.GoogleLoginResponse{
		AuthURL: authURL,
		State:   state,
	})
}

// GoogleCallback handles Google OAuth callback
// @Summary Google OAuth callback
// @Description Handle Google OAuth callback with authorization code
// @Tags authentication
// @Produce json
// @Param code query string true "Authorization code from Google"
// @Param state query string true "State parameter for CSRF protection"
// @Success 302 "Redirect to frontend with token"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid authorization code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/auth/google/callback [get]
func (h *GoogleAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Verify the state parameter against the cookie set by GoogleLogin
	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || state == "" || cookie.Value != state {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid state parameter", "OAuth state mismatch")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     "/api/auth/google",
		MaxAge:   -1,
		HttpOnly: true,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing authorization code", "Authorization code is required")
		return
	}

	// Exchange authorization code for token
	token, err := h.oauth2Config.Exchange(r.Context(), code)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid authorization code", err.Error())
		return
	}

	// Get user info from Google
	userInfo, err := h.getGoogleUserInfo(r.Context(), token.AccessToken)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to get user info", err.Error())
		return
	}

	// Look up or auto-provision the account for this Google identity
	user, err := h.users.GetByEmail(r.Context(), userInfo.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to load user", err.Error())
			return
		}
		user, err = h.createGoogleUser(r.Context(), userInfo)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create user", err.Error())
			return
		}
	}

	// Generate JWT token
	jwtToken, err := middleware.GenerateToken(user.ID, user.Username, user.Email, &h.config.JWT)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate token", err.Error())
		return
	}

	// Redirect to frontend with token
	redirectURL := fmt.Sprintf("%s/callback?token=%s&user_id=%s&email=%s&display_name=%s&provider=google&is_verified=%t",
		h.config.Server.FrontendURL,
		url.QueryEscape(jwtToken),
		user.ID.String(),
		url.QueryEscape(userInfo.Email),
		url.QueryEscape(userInfo.Name),
		userInfo.Verified)

	http.Redirect(w, r, redirectURL, http.StatusFound)
}

// getGoogleUserInfo fetches user information from Google
func (h *GoogleAuthHandler) getGoogleUserInfo(ctx context.Context, accessToken string) (*dto.GoogleUserInfo, error) {
	service, err := googleOAuth2.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
	})))
	if err != nil {
		return nil, err
	}

	userInfo, err := service.Userinfo.Get().Do()
	if err != nil {
		return nil, err
	}

	verified := false
	if userInfo.VerifiedEmail != nil {
		verified = *userInfo.VerifiedEmail
	}

	return &dto.GoogleUserInfo{
		ID:       userInfo.Id,
		Email:    userInfo.Email,
		Name:     userInfo.Name,
		Picture:  userInfo.Picture,
		Verified: verified,
	}, nil
}

// createGoogleUser creates a new user from Google OAuth data
func (h *GoogleAuthHandler) createGoogleUser(ctx context.Context, googleUser *dto.GoogleUserInfo) (models.User, error) {
	now := time.Now()

	username := googleUser.Email
	if len(username) > 50 {
		username = username[:50]
	}

	user := models.User{
		ID:          uuid.New(),
		Email:       googleUser.Email,
		Username:    username,
		DisplayName: &googleUser.Name,
		AvatarURL:   &googleUser.Picture,
		Role:        "user",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
