package handlers

import (
	"net/http"
	"strconv"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/config"
)

// SetSessionCookie устанавливает сессионную cookie с ID пользователя
func SetSessionCookie(w http.ResponseWriter, cfg config.SessionConfig, userID int64) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    strconv.FormatInt(userID, 10),
		Path:     "/",
		MaxAge:   cfg.MaxAgeDays * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie сбрасывает сессионную cookie
func ClearSessionCookie(w http.ResponseWriter, cfg config.SessionConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
