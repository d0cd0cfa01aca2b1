package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bilboko-doinuak/models"
	"bilboko-doinuak/utils"
)

// Auth providers stored on the user row.
const (
	ProviderEmail     = "email"
	ProviderGoogle    = "google"
	ProviderMagicLink = "magic_link"
)

const (
	sessionTTL   = 24 * time.Hour
	magicLinkTTL = 15 * time.Minute

	googleAuthEndpoint     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenEndpoint    = "https://oauth2.googleapis.com/token"
	googleUserinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// ErrInvalidCredentials covers unknown emails and wrong passwords alike.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthConfig carries the environment-provided auth settings.
type AuthConfig struct {
	Secret             []byte
	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectURL   string
}

// AuthService is the authentication collaborator: email/password sign-up
// and sign-in, magic links, Google OAuth and sign-out. The persistence
// layer only ever consumes "current user id or empty" from it.
type AuthService struct {
	DB  *gorm.DB
	Log *zap.Logger
	cfg AuthConfig

	mu      sync.Mutex
	revoked map[string]time.Time // jti -> token expiry
}

// NewAuthService builds the auth service. A nil db or empty secret leaves
// the service unconfigured and every operation failing fast.
func NewAuthService(db *gorm.DB, cfg AuthConfig, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		DB:      db,
		Log:     log,
		cfg:     cfg,
		revoked: make(map[string]time.Time),
	}
}

// Configured reports whether authenticated (cloud) mode is available.
func (s *AuthService) Configured() bool {
	return s.DB != nil && len(s.cfg.Secret) > 0
}

// SignUp registers an email/password account and returns a session token.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*models.User, string, error) {
	if !s.Configured() {
		return nil, "", errors.New("authentication is not configured")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 {
		return nil, "", errors.New("email and a password of at least 8 characters are required")
	}

	var existing models.User
	err := s.DB.WithContext(ctx).First(&existing, "email = ?", email).Error
	if err == nil {
		return nil, "", fmt.Errorf("email %s is already registered", email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: &hashStr,
		Provider:     ProviderEmail,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create account: %w", err)
	}

	token, err := s.issueSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	s.Log.Info("user signed up", zap.String("user_id", user.ID))
	return &user, token, nil
}

// SignIn verifies an email/password pair and returns a session token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.User, string, error) {
	if !s.Configured() {
		return nil, "", errors.New("authentication is not configured")
	}
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load account: %w", err)
	}
	if user.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	s.touchSignIn(ctx, &user)
	token, err := s.issueSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// IssueMagicLink creates (or finds) the account for an email and returns a
// short-lived single-purpose token. Delivering the link is the mailer's
// job; this service only mints the token.
func (s *AuthService) IssueMagicLink(ctx context.Context, email string) (string, error) {
	if !s.Configured() {
		return "", errors.New("authentication is not configured")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errors.New("email is required")
	}

	user, err := s.findOrCreateByEmail(ctx, email, ProviderMagicLink)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     user.ID,
		"purpose": "magic_link",
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(magicLinkTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign magic link token: %w", err)
	}
	s.Log.Info("magic link issued", zap.String("user_id", user.ID))
	return token, nil
}

// VerifyMagicLink exchanges a magic-link token for a session token.
func (s *AuthService) VerifyMagicLink(ctx context.Context, token string) (*models.User, string, error) {
	claims, err := s.parseClaims(token)
	if err != nil {
		return nil, "", err
	}
	if purpose, _ := claims["purpose"].(string); purpose != "magic_link" {
		return nil, "", errors.New("not a magic link token")
	}
	userID, _ := claims["sub"].(string)

	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, "", fmt.Errorf("failed to load account: %w", err)
	}

	s.touchSignIn(ctx, &user)
	session, err := s.issueSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, session, nil
}

// GoogleAuthURL builds the OAuth consent redirect.
func (s *AuthService) GoogleAuthURL(state string) string {
	q := url.Values{}
	q.Set("client_id", s.cfg.GoogleClientID)
	q.Set("redirect_uri", s.cfg.OAuthRedirectURL)
	q.Set("response_type", "code")
	q.Set("scope", "openid email profile")
	q.Set("state", state)
	return googleAuthEndpoint + "?" + q.Encode()
}

// HandleGoogleCallback exchanges the authorization code, resolves the
// Google account's email and returns a session for the matching (or newly
// created) user.
func (s *AuthService) HandleGoogleCallback(ctx context.Context, code string) (*models.User, string, error) {
	if !s.Configured() {
		return nil, "", errors.New("authentication is not configured")
	}

	form := url.Values{}
	form.Set("code", code)
	form.Set("client_id", s.cfg.GoogleClientID)
	form.Set("client_secret", s.cfg.GoogleClientSecret)
	form.Set("redirect_uri", s.cfg.OAuthRedirectURL)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleTokenEndpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := utils.HTTPClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to exchange OAuth code: %w", err)
	}
	defer resp.Body.Close()

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil || tokenResp.AccessToken == "" {
		return nil, "", errors.New("OAuth code exchange returned no access token")
	}

	infoReq, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserinfoEndpoint, nil)
	if err != nil {
		return nil, "", err
	}
	infoReq.Header.Set("Authorization", "Bearer "+tokenResp.AccessToken)

	infoResp, err := utils.HTTPClient.Do(infoReq)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch Google userinfo: %w", err)
	}
	defer infoResp.Body.Close()

	var info struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(infoResp.Body).Decode(&info); err != nil || info.Email == "" {
		return nil, "", errors.New("Google userinfo returned no email")
	}

	user, err := s.findOrCreateByEmail(ctx, strings.ToLower(info.Email), ProviderGoogle)
	if err != nil {
		return nil, "", err
	}
	s.touchSignIn(ctx, user)

	session, err := s.issueSession(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, session, nil
}

// SignOut revokes a session token for the rest of its lifetime.
func (s *AuthService) SignOut(token string) {
	claims, err := s.parseClaims(token)
	if err != nil {
		return
	}
	jti, _ := claims["jti"].(string)
	exp, _ := claims["exp"].(float64)
	if jti == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, expiry := range s.revoked {
		if expiry.Before(now) {
			delete(s.revoked, id)
		}
	}
	s.revoked[jti] = time.Unix(int64(exp), 0)
}

// ParseSession validates a session token and returns the user id.
func (s *AuthService) ParseSession(token string) (string, error) {
	claims, err := s.parseClaims(token)
	if err != nil {
		return "", err
	}
	if purpose, _ := claims["purpose"].(string); purpose != "" {
		return "", errors.New("not a session token")
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return "", errors.New("token has no subject")
	}
	return userID, nil
}

// GetUser loads an account by id.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if s.DB == nil {
		return nil, errors.New("authentication is not configured")
	}
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return &user, nil
}

func (s *AuthService) issueSession(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(sessionTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

func (s *AuthService) parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.cfg.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if jti, _ := claims["jti"].(string); jti != "" {
		s.mu.Lock()
		_, isRevoked := s.revoked[jti]
		s.mu.Unlock()
		if isRevoked {
			return nil, errors.New("token revoked")
		}
	}
	return claims, nil
}

func (s *AuthService) findOrCreateByEmail(ctx context.Context, email, provider string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "email = ?", email).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	user = models.User{
		ID:       uuid.NewString(),
		Email:    email,
		Provider: provider,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &user, nil
}

func (s *AuthService) touchSignIn(ctx context.Context, user *models.User) {
	now := time.Now()
	user.LastSignInAt = &now
	if err := s.DB.WithContext(ctx).Model(user).Update("last_sign_in_at", now).Error; err != nil {
		s.Log.Warn("failed to record sign-in time", zap.Error(err))
	}
}
