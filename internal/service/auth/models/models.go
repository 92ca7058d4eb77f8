package models

import "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/domain"

// Request модели

// RegisterRequest запрос на регистрацию пользователя
type RegisterRequest struct {
	Username    string
	Password    string
	DisplayName *string
	DiscordID   *string
}

// LoginRequest запрос на вход
type LoginRequest struct {
	Username string
	Password string
}

// Response модели

// UserResponse публичные данные пользователя (без хеша пароля)
type UserResponse struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	DisplayName *string `json:"displayName,omitempty"`
	DiscordID   *string `json:"discordId,omitempty"`
	IsAdmin     bool    `json:"isAdmin"`
}

// FromDomainUser конвертирует domain модель в response
func FromDomainUser(usr *domain.User) *UserResponse {
	return &UserResponse{
		ID:          usr.ID,
		Username:    usr.Username,
		DisplayName: usr.DisplayName,
		DiscordID:   usr.DiscordID,
		IsAdmin:     usr.IsAdmin,
	}
}
