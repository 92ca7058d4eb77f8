package create_reservation

import (
	"time"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/domain"
	createReservation "github.com/ianyokoso/ASC-Lounge-Booking-System/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Date        string  `json:"date"`      // "2026-06-13"
	SlotLabel   string  `json:"slotLabel"` // "19:00-22:00"
	DisplayName *string `json:"displayName,omitempty"`
	DiscordID   *string `json:"discordId,omitempty"`
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Date      string    `json:"date"`
	SlotLabel string    `json:"slotLabel"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:      userID,
		Date:        date,
		Slot:        domain.SlotLabel(r.SlotLabel),
		DisplayName: r.DisplayName,
		DiscordID:   r.DiscordID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(res *createReservation.Response) *CreateReservationResponse {
	return &CreateReservationResponse{
		ID:        res.ID,
		UserID:    res.UserID,
		Date:      res.Date.Format(domain.DateFormat),
		SlotLabel: res.Slot.String(),
		CreatedAt: res.CreatedAt,
	}
}
