package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"gameday-api/core/cache"
	"gameday-api/core/config"
	"gameday-api/core/errors"
	"gameday-api/core/logger"
	"gameday-api/core/utils"
	"gameday-api/modules/auth/dto"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// AuthService delegates identity to Google OAuth and mints app JWTs. The
// service keeps no user records; the provider's stable subject id is the
// creator identity everywhere else.
type AuthService struct {
	cache *cache.Cache
}

type AuthServiceInterface interface {
	GetGoogleAuthURL(ctx context.Context) (*dto.GoogleAuthURLResponse, *errors.AppError)
	HandleGoogleCallback(ctx context.Context, code, state string) (*dto.LoginResponse, *errors.AppError)
}

func NewAuthService(c *cache.Cache) AuthServiceInterface {
	return &AuthService{cache: c}
}

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func oauthConfig(cfg *config.Config) (*oauth2.Config, *errors.AppError) {
	if cfg.GoogleAPI.ClientID == "" || cfg.GoogleAPI.ClientSecret == "" || cfg.GoogleAPI.RedirectURI == "" {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Google OAuth configuration is missing", nil)
	}
	return &oauth2.Config{
		ClientID:     cfg.GoogleAPI.ClientID,
		ClientSecret: cfg.GoogleAPI.ClientSecret,
		RedirectURL:  cfg.GoogleAPI.RedirectURI,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}, nil
}

// GetGoogleAuthURL generates the Google OAuth authorization URL with a
// one-time state token held in redis.
func (s *AuthService) GetGoogleAuthURL(ctx context.Context) (*dto.GoogleAuthURLResponse, *errors.AppError) {
	// The server keeps running without redis, but sign-in needs the state
	// store: degrade to 503 instead of dereferencing a nil cache.
	if s.cache == nil {
		return nil, errors.NewAppError(errors.ErrExternalService, "sign-in is temporarily unavailable", nil)
	}

	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrInternalServer, "config not initialized", nil)
	}

	oc, appErr := oauthConfig(cfg)
	if appErr != nil {
		return nil, appErr
	}

	state := utils.GenerateRandomString(32)
	if err := s.cache.SetOAuthState(ctx, state); err != nil {
		logger.Error("AuthService:GetGoogleAuthURL:SetOAuthState", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to store state token", err)
	}

	return &dto.GoogleAuthURLResponse{
		AuthURL: oc.AuthCodeURL(state, oauth2.AccessTypeOnline),
	}, nil
}

// HandleGoogleCallback exchanges the authorization code and mints the app
// JWT. The state token is single-use.
func (s *AuthService) HandleGoogleCallback(ctx context.Context, code, state string) (*dto.LoginResponse, *errors.AppError) {
	if s.cache == nil {
		return nil, errors.NewAppError(errors.ErrExternalService, "sign-in is temporarily unavailable", nil)
	}

	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrInternalServer, "config not initialized", nil)
	}

	valid, err := s.cache.ConsumeOAuthState(ctx, state)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback:ConsumeOAuthState", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to validate state token", err)
	}
	if !valid {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid or expired state token", nil)
	}

	oc, appErr := oauthConfig(cfg)
	if appErr != nil {
		return nil, appErr
	}

	token, err := oc.Exchange(ctx, code)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback:Exchange", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "failed to exchange authorization code", err)
	}

	userInfo, err := s.getGoogleUserInfo(ctx, token.AccessToken)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback:GetGoogleUserInfo", err)
		return nil, errors.NewAppError(errors.ErrExternalService, "failed to get user info", err)
	}

	accessToken, err := utils.GenerateToken(userInfo.ID, userInfo.Name, userInfo.Email)
	if err != nil {
		logger.Error("AuthService:HandleGoogleCallback:GenerateToken", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue token", err)
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		UserID:      userInfo.ID,
		Name:        userInfo.Name,
		Email:       userInfo.Email,
	}, nil
}

func (s *AuthService) getGoogleUserInfo(ctx context.Context, accessToken string) (*googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return nil, err
	}

	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}
	if info.ID == "" {
		return nil, fmt.Errorf("userinfo response missing id")
	}
	return &info, nil
}
