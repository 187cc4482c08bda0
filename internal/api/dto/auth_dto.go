package dto

import "github.com/spec-kit/college-records/internal/domain"

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSummary is the public-safe projection of an account. It never carries
// the password hash.
type UserSummary struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	FullName  string      `json:"fullName"`
}

// LoginResponse is returned from a successful login.
type LoginResponse struct {
	Success bool        `json:"success"`
	User    UserSummary `json:"user"`
	Token   string      `json:"token"`
}

// LogoutResponse is returned from logout, whether or not a token was present.
type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewUserSummary projects a domain user.
func NewUserSummary(user *domain.User) UserSummary {
	return UserSummary{
		ID:        user.UserID,
		Email:     user.Email,
		Role:      user.Role,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		FullName:  user.FullName(),
	}
}
