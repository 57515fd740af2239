package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// DeviceCookie is the cookie holding a browser's cart identity.
const DeviceCookie = "device_id"

type contextKey int

const deviceIDKey contextKey = iota

// cookieMaxAge keeps the cart identity for a year of inactivity.
const cookieMaxAge = 365 * 24 * 60 * 60

// DeviceID assigns each client a stable identifier used to scope its cart
// slot. Browsers without the cookie (or with a malformed one) get a fresh
// UUID, which also means a fresh empty cart.
func DeviceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if cookie, err := r.Cookie(DeviceCookie); err == nil {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				id = cookie.Value
			}
		}

		if id == "" {
			id = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     DeviceCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   cookieMaxAge,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), deviceIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// DeviceIDFrom returns the device identifier set by DeviceID, or "" when
// the middleware did not run.
func DeviceIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(deviceIDKey).(string)
	return id
}
