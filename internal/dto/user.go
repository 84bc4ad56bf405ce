package dto

import (
	"time"

	"github.com/finzen-app/finzen_backend/internal/core/domain"
)

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	Name      string `json:"name" form:"name"`
	LoginName string `json:"loginName" form:"loginName"`
	Password  string `json:"password" form:"password"`
}

// UserResponse is the externally visible shape of a user. The password hash
// never leaves the service layer.
type UserResponse struct {
	UserID     string    `json:"userID"`
	Name       string    `json:"name"`
	LoginName  string    `json:"loginName"`
	Role       string    `json:"role"`
	AuthSource string    `json:"authSource"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain user to its view object.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:     u.UserID,
		Name:       u.Name,
		LoginName:  u.LoginName,
		Role:       string(u.Role),
		AuthSource: string(u.AuthSource),
		CreatedAt:  u.CreatedAt,
	}
}

// ToUserResponses converts a slice preserving order.
func ToUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}
