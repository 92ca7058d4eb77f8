package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	t.Parallel()

	const cookieName = "session_user_id"

	var gotUserID int64
	var handlerCalled bool

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		userID, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		gotUserID = userID
		w.WriteHeader(http.StatusOK)
	})

	testCases := []struct {
		name           string
		cookie         *http.Cookie
		expectedStatus int
		expectedUserID int64
	}{
		{
			name:           "Valid cookie",
			cookie:         &http.Cookie{Name: cookieName, Value: "42"},
			expectedStatus: http.StatusOK,
			expectedUserID: 42,
		},
		{
			name:           "No cookie",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Non-numeric cookie",
			cookie:         &http.Cookie{Name: cookieName, Value: "admin"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Zero user id",
			cookie:         &http.Cookie{Name: cookieName, Value: "0"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Negative user id",
			cookie:         &http.Cookie{Name: cookieName, Value: "-5"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong cookie name",
			cookie:         &http.Cookie{Name: "session", Value: "42"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handlerCalled = false
			gotUserID = 0

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}

			rec := httptest.NewRecorder()
			Auth(cookieName)(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedStatus == http.StatusOK {
				assert.True(t, handlerCalled)
				assert.Equal(t, tc.expectedUserID, gotUserID)
			} else {
				assert.False(t, handlerCalled)
				assert.Contains(t, rec.Body.String(), `"error"`)
			}
		})
	}
}

func TestUserIDFromContext_Empty(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)
}
