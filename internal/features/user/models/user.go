package models

import "time"

const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperadmin = "SUPERADMIN"
)

// InitialPoints is the balance every freshly registered user starts with.
const InitialPoints = "0.00"

// User представляет полную модель пользователя в системе.
// Password держит bcrypt-хэш и никогда не сериализуется в ответы API.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Password     string    `json:"-"`
	TelegramID   *string   `json:"telegram_id"`
	Points       string    `json:"points"`
	ReferralCode string    `json:"referral_code"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserResponse представляет публичную информацию о пользователе
type UserResponse struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	TelegramID   *string   `json:"telegram_id"`
	Points       string    `json:"points"`
	ReferralCode string    `json:"referral_code"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateUserInput is the insert payload accepted by POST /api/users.
type CreateUserInput struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

type UpdatePointsInput struct {
	Points string `json:"points" binding:"required"`
}

func ToUserResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		TelegramID:   u.TelegramID,
		Points:       u.Points,
		ReferralCode: u.ReferralCode,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
}

func ToUserResponses(users []*User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
