package models

import (
	"time"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/domain"
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования
type CancelReservationRequest struct {
	ReservationID int64
	UserID        int64 // инициатор отмены (владелец или администратор)
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Date      string    `json:"date"`
	SlotLabel string    `json:"slotLabel"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReservationWithUserResponse бронирование с данными пользователя
// для административного списка
type ReservationWithUserResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Username    string    `json:"username"`
	DisplayName *string   `json:"displayName,omitempty"`
	Date        string    `json:"date"`
	SlotLabel   string    `json:"slotLabel"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []ReservationWithUserResponse `json:"reservations"`
	Total        int                           `json:"total"`
}

// FromDomainReservation конвертирует domain модель в response
func FromDomainReservation(res *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:        res.ID,
		UserID:    res.UserID,
		Date:      res.Date.Format(domain.DateFormat),
		SlotLabel: res.Slot.String(),
		CreatedAt: res.CreatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в response
func FromDomainReservationList(list []*domain.ReservationWithUser) *ReservationListResponse {
	out := make([]ReservationWithUserResponse, 0, len(list))
	for _, res := range list {
		out = append(out, ReservationWithUserResponse{
			ID:          res.ID,
			UserID:      res.UserID,
			Username:    res.Username,
			DisplayName: res.DisplayName,
			Date:        res.Date.Format(domain.DateFormat),
			SlotLabel:   res.Slot.String(),
			CreatedAt:   res.CreatedAt,
		})
	}
	return &ReservationListResponse{
		Reservations: out,
		Total:        len(out),
	}
}
