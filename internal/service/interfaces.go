package service

import (
	"context"

	"github.com/MKhiriev/go-crud-keeper/models"
)

// AuthService registers users, checks credentials and manages identity tokens.
type AuthService interface {
	// RegisterUser hashes the password and persists a new user. The role of
	// req is honoured only when allowRole is true; otherwise it is "user".
	RegisterUser(ctx context.Context, req models.UserRegisterRequest, allowRole bool) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	// ResolveActor loads the user a token was issued to.
	ResolveActor(ctx context.Context, token models.Token) (models.User, error)
}

// UserService manages existing users.
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	UpdateUser(ctx context.Context, userID int64, req models.UserUpdateRequest) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

// ItemService manages items.
type ItemService interface {
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	GetItem(ctx context.Context, itemID int64) (models.Item, error)
	UpdateItem(ctx context.Context, update models.ItemUpdate) (models.Item, error)
	DeleteItem(ctx context.Context, itemID int64) error
}

// AppInfoService reports build and version information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
