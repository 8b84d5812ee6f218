package models

import (
	"time"

	usermodels "loyalty-platform-backend/internal/features/user/models"
)

// Session is the record stored in Redis behind a bearer token.
type Session struct {
	Token     string    `json:"token"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string                   `json:"token"`
	User  *usermodels.UserResponse `json:"user"`
}
