package utils

import (
	"net/http"

	"verda/globals"
)

// IsAdminRequest reports whether the authenticated caller carries the
// admin role.
func IsAdminRequest(r *http.Request) bool {
	roles, ok := r.Context().Value(globals.RoleKey).([]string)
	if !ok {
		return false
	}
	for _, role := range roles {
		if role == "admin" {
			return true
		}
	}
	return false
}

func GetUserIDFromRequest(r *http.Request) string {
	ctx := r.Context()
	requestingUserID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}
