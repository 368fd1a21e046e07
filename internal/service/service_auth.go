// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-crud-keeper/internal/config"
	"github.com/MKhiriev/go-crud-keeper/internal/logger"
	"github.com/MKhiriev/go-crud-keeper/internal/store"
	"github.com/MKhiriev/go-crud-keeper/internal/utils"
	"github.com/MKhiriev/go-crud-keeper/internal/validators"
	"github.com/MKhiriev/go-crud-keeper/models"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// authService owns passwords and access tokens. Its fields are fixed at
// construction, so one value serves all requests.
type authService struct {
	users  store.UserRepository
	hasher passwordHasher

	signKey string
	issuer  string // tokens with another iss are rejected
	ttl     time.Duration

	logger *logger.Logger
}

func NewAuthService(users store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		users:   users,
		hasher:  newPasswordHasher(cfg.PasswordHashCost),
		signKey: cfg.TokenSignKey,
		issuer:  cfg.TokenIssuer,
		ttl:     cfg.TokenDuration,
		logger:  logger,
	}
}

// RegisterUser creates a new user account.
//
// Username, email and password must be present; req is expected to have
// passed validation already. The role defaults to "user" and is taken from
// req only when allowRole is set.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if a required field is missing.
//   - a *validators.ValidationError if the password is too long for bcrypt.
//   - a wrapped storage error if the repository call fails (e.g. duplicate
//     username, see store.ErrUniqueViolation).
func (a *authService) RegisterUser(ctx context.Context, req models.UserRegisterRequest, allowRole bool) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Username == nil || req.Email == nil || req.Password == nil {
		log.Error().Str("func", "*authService.RegisterUser").Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	if !allowRole {
		req.Role = nil
	}
	user := req.ToUser()

	hash, err := a.hasher.hash(*req.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Str("username", user.Username).Msg("password hashing failed")
		return models.User{}, err
	}
	user.PasswordHash = hash

	created, err := a.users.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}

// Login authenticates an existing user.
//
// An unknown username and a wrong password both yield ErrInvalidCredentials,
// so callers cannot tell which one failed.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Username == nil || req.Password == nil {
		log.Error().Str("func", "*authService.Login").Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.users.FindUserByUsername(ctx, *req.Username)
	if errors.Is(err, store.ErrUserNotFound) {
		// spend a bcrypt round so an unknown name is as slow as a wrong password
		a.hasher.check(*req.Password, a.hasher.decoy)
		log.Info().Str("func", "*authService.Login").Str("username", *req.Username).Msg("login attempt for unknown user")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Str("username", *req.Username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !a.hasher.check(*req.Password, foundUser.PasswordHash) {
		log.Info().
			Str("func", "*authService.Login").
			Int64("id", foundUser.UserID).
			Str("username", foundUser.Username).
			Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token carries the user's id and role, is signed with the configured
// signKey, names issuer as "iss" and expires after ttl.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.issuer, user.UserID, user.Role, a.ttl, a.signKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.CreateToken").Int64("id", user.UserID).Msg("token creation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string without touching the
// database.
//
// Any validation failure is reported as ErrTokenIsExpiredOrInvalid. An
// expired token additionally matches ErrTokenIsExpired.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.signKey, a.issuer)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsExpired, ErrTokenIsExpiredOrInvalid)
	}
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// ResolveActor re-reads the user named by token. A user deleted after the
// token was issued yields ErrStaleToken.
func (a *authService) ResolveActor(ctx context.Context, token models.Token) (models.User, error) {
	user, err := a.users.FindUserByID(ctx, token.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		logger.FromContext(ctx).Info().
			Str("func", "*authService.ResolveActor").
			Int64("id", token.UserID).
			Msg("token owner no longer exists")
		return models.User{}, ErrStaleToken
	}
	if err != nil {
		return models.User{}, fmt.Errorf("acting user lookup failed: %w", err)
	}

	return user, nil
}

// passwordHasher turns plaintext passwords into bcrypt hashes and checks
// them. decoy is a hash of the same cost compared against when no user
// matched.
type passwordHasher struct {
	cost  int
	decoy string
	check func(password, hash string) bool
}

func newPasswordHasher(cost int) passwordHasher {
	h := passwordHasher{cost: cost, check: utils.CheckPassword}
	// a failure leaves decoy empty; the comparison then fails fast
	h.decoy, _ = utils.HashPassword("decoy-password", cost)
	return h
}

func (h passwordHasher) hash(password string) (string, error) {
	hash, err := utils.HashPassword(password, h.cost)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return "", validators.NewValidationError("password",
			fmt.Sprintf(validators.MsgMaxLengthFmt, strconv.Itoa(maxPasswordBytes)))
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPasswordHashingFailed, err)
	}

	return hash, nil
}
