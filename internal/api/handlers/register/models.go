package register

import "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/service/auth/models"

// RegisterRequest HTTP request model
type RegisterRequest struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	DisplayName *string `json:"displayName,omitempty"`
	DiscordID   *string `json:"discordId,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RegisterRequest) ToServiceRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Username:    r.Username,
		Password:    r.Password,
		DisplayName: r.DisplayName,
		DiscordID:   r.DiscordID,
	}
}
