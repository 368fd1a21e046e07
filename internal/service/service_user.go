package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-crud-keeper/internal/config"
	"github.com/MKhiriev/go-crud-keeper/internal/logger"
	"github.com/MKhiriev/go-crud-keeper/internal/store"
	"github.com/MKhiriev/go-crud-keeper/models"
)

// userService manages existing accounts. Passwords written through it are
// hashed the same way the auth service hashes them on registration.
type userService struct {
	userRepository store.UserRepository
	hasher         passwordHasher

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		hasher:         newPasswordHasher(cfg.PasswordHashCost),
		logger:         logger,
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.ListUsers").Msg("listing users failed")
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	return users, nil
}

func (s *userService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user, nil
}

// UpdateUser applies the fields present in req. A new password is hashed
// before it reaches the store; an empty request returns the user unchanged.
func (s *userService) UpdateUser(ctx context.Context, userID int64, req models.UserUpdateRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	update := models.UserUpdate{
		UserID:   userID,
		Username: req.Username,
		Email:    req.Email,
	}

	if req.Password != nil {
		hash, err := s.hasher.hash(*req.Password)
		if err != nil {
			log.Err(err).Str("func", "*userService.UpdateUser").Int64("id", userID).Msg("password hashing failed")
			return models.User{}, err
		}
		update.PasswordHash = &hash
	}

	user, err := s.userRepository.UpdateUser(ctx, update)
	if err != nil {
		log.Err(err).Str("func", "*userService.UpdateUser").Int64("id", userID).Msg("user update failed")
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}

	return user, nil
}

// DeleteUser removes the user together with every item it owns.
func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.DeleteUser").Int64("id", userID).Msg("user deletion failed")
		return fmt.Errorf("user deletion failed: %w", err)
	}

	return nil
}
