// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Roles recognised by the authorization guard. The role column is an open
// set, but only these two values carry meaning.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the storage record of an account as it lives in the "user" table.
// It is never written to the wire directly; use [NewUserView].
type User struct {
	// UserID is the server-assigned primary key.
	UserID int64

	// Username is the unique login name (at most 30 characters).
	Username string

	// Email is the unique e-mail address (at most 50 characters).
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	// The plaintext password is never stored.
	PasswordHash string

	// Role is the authorization role, "user" unless set otherwise.
	Role string
}

// UserView is the outbound representation of a [User]. It carries every
// persisted field except the password hash.
type UserView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// NewUserView maps a storage record to its wire form.
func NewUserView(u User) UserView {
	return UserView{
		ID:       u.UserID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// NewUserViews maps a slice of storage records. The result is never nil so
// that an empty table serializes as [] rather than null.
func NewUserViews(users []User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, NewUserView(u))
	}
	return views
}

// UserCreateRequest is the payload of POST /api/user. A "role" key is
// tolerated for older clients but must be [RoleUser].
type UserCreateRequest struct {
	Username *string `json:"username,omitempty" validate:"required,min=1,max=30"`
	Email    *string `json:"email,omitempty" validate:"required,email,max=50"`
	Password *string `json:"password,omitempty" validate:"required,min=1,max=72"`
	Role     *string `json:"role,omitempty" validate:"omitempty,eq=user"`
}

// UserRegisterRequest is the payload of POST /api/auth/register. It extends
// [UserCreateRequest] with an optional role that defaults to [RoleUser].
type UserRegisterRequest struct {
	Username *string `json:"username,omitempty" validate:"required,min=1,max=30"`
	Email    *string `json:"email,omitempty" validate:"required,email,max=50"`
	Password *string `json:"password,omitempty" validate:"required,min=1,max=72"`
	Role     *string `json:"role,omitempty" validate:"omitempty,min=1,max=10"`
}

// ToUser builds a storage record from a validated registration payload.
// PasswordHash is left empty; hashing is the auth service's job.
func (r UserRegisterRequest) ToUser() User {
	user := User{
		Username: deref(r.Username),
		Email:    deref(r.Email),
		Role:     RoleUser,
	}
	if r.Role != nil {
		user.Role = *r.Role
	}
	return user
}

// AsRegisterRequest widens a create payload to a registration payload with
// no role, so both routes share one service path.
func (r UserCreateRequest) AsRegisterRequest() UserRegisterRequest {
	return UserRegisterRequest{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
	}
}

// UserUpdateRequest is the payload of PUT /api/users/{id}. Every field is
// optional; absent fields are left unchanged.
type UserUpdateRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=1,max=30"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=50"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=1,max=72"`
}

// IsEmpty reports whether the update carries no field at all.
func (r UserUpdateRequest) IsEmpty() bool {
	return r.Username == nil && r.Email == nil && r.Password == nil
}

// UserUpdate is the storage-level partial update of a user row. Nil fields
// are not touched.
type UserUpdate struct {
	UserID       int64
	Username     *string
	Email        *string
	PasswordHash *string
}

// IsEmpty reports whether no column would change.
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.Email == nil && u.PasswordHash == nil
}

// LoginRequest is the payload of POST /api/auth/login.
type LoginRequest struct {
	Username *string `json:"username,omitempty" validate:"required"`
	Password *string `json:"password,omitempty" validate:"required"`
}

// LoginResponse is the data part of a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
