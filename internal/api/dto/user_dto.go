package dto

import "time"

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SetAdminRequest payload for flipping the admin flag.
type SetAdminRequest struct {
	IsAdmin bool `json:"is_admin"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	UserID    int64     `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserView is the serialized user shape.
type UserView struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}
