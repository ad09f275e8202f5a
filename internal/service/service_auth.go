package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ayakimov/fielddoc/internal/config"
	"github.com/ayakimov/fielddoc/internal/logger"
	"github.com/ayakimov/fielddoc/internal/store"
	"github.com/ayakimov/fielddoc/internal/utils"
	"github.com/ayakimov/fielddoc/models"
)

// minPasswordLength is the minimum accepted password length at registration.
const minPasswordLength = 6

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and the JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
//
// Access and refresh tokens are signed with distinct keys so that neither
// kind can be replayed in place of the other.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// accessTokenSignKey is the HMAC secret used to sign and verify access tokens.
	accessTokenSignKey string

	// refreshTokenSignKey is the HMAC secret used to sign and verify refresh tokens.
	refreshTokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// accessTokenDuration controls how long a newly issued access token remains valid.
	accessTokenDuration time.Duration

	// refreshTokenDuration controls how long a newly issued refresh token remains valid.
	refreshTokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:       userRepository,
		accessTokenSignKey:   cfg.AccessTokenSignKey,
		refreshTokenSignKey:  cfg.RefreshTokenSignKey,
		tokenIssuer:          cfg.TokenIssuer,
		accessTokenDuration:  cfg.AccessTokenDuration,
		refreshTokenDuration: cfg.RefreshTokenDuration,
		logger:               logger,
	}
}

// RegisterUser creates a new user account.
//
// The email is normalised to lower case before storage so the same mailbox
// cannot register twice with different casing. The password must be at least
// minPasswordLength characters long and is hashed with bcrypt before it ever
// reaches the repository.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if email is empty or the password is too short.
//   - A wrapped storage error if the repository call fails (e.g. email
//     already taken — see store.ErrEmailAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, email, password string, name *string) (models.User, error) {
	log := logger.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < minPasswordLength {
		log.Error().Str("email", email).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		log.Err(err).Str("email", email).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
	})
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It looks up the account by email and compares the supplied password against
// the stored bcrypt hash. An unknown email and a wrong password both produce
// ErrInvalidCredentials so that callers cannot probe which emails exist.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - ErrInvalidCredentials if the account is missing or the password does
//     not match.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, ErrInvalidCredentials
	}

	if !utils.CheckPassword(password, foundUser.PasswordHash) {
		log.Error().
			Str("id", foundUser.UserID).
			Str("email", foundUser.Email).
			Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// CreateTokens issues a signed access/refresh token pair for the given user.
//
// Both tokens carry the configured tokenIssuer as the "iss" claim and the
// user's ID as the subject; they differ in signing key and lifetime.
//
// Returns the pair on success or a wrapped error if JWT generation fails.
func (a *authService) CreateTokens(ctx context.Context, user models.User) (models.TokenPair, error) {
	accessToken, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.accessTokenDuration, a.accessTokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refreshToken, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.refreshTokenDuration, a.refreshTokenSignKey)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{
		AccessToken:  accessToken.String(),
		RefreshToken: refreshToken.String(),
	}, nil
}

// RefreshAccessToken validates a refresh token and issues a fresh access
// token for its subject. The refresh token itself is not rotated.
//
// Returns the new access token or:
//   - ErrInvalidRefreshToken if the refresh token fails validation or its
//     subject no longer exists.
//   - A wrapped error if issuing the new access token fails.
func (a *authService) RefreshAccessToken(ctx context.Context, refreshToken string) (models.Token, error) {
	log := logger.FromContext(ctx)

	parsed, err := utils.ValidateAndParseJWTToken(refreshToken, a.refreshTokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Err(err).Msg("refresh token validation failed")
		return models.Token{}, ErrInvalidRefreshToken
	}

	// the subject must still be a live account
	user, err := a.userRepository.FindUserByID(ctx, parsed.UserID)
	if err != nil {
		log.Err(err).Str("user_id", parsed.UserID).Msg("refresh token subject lookup failed")
		return models.Token{}, ErrInvalidRefreshToken
	}

	accessToken, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.accessTokenDuration, a.accessTokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return accessToken, nil
}

// ParseAccessToken validates and parses a raw access token string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseAccessToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.accessTokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
