package http

import (
	"context"
	"net/http"
	"strconv"
)

type contextKey string

const (
	tenantIDKey contextKey = "tenant_id"
	userIDKey   contextKey = "user_id"
)

// TenantMiddleware extracts the tenant identity set by the upstream
// gateway. Authentication itself happens there; this layer only requires
// the tenant header to be present.
func TenantMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := strconv.ParseInt(r.Header.Get("X-Tenant-ID"), 10, 32)
		if err != nil || tenantID <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing or invalid X-Tenant-ID header"})
			return
		}

		ctx := context.WithValue(r.Context(), tenantIDKey, int32(tenantID))
		if userID, err := strconv.ParseInt(r.Header.Get("X-User-ID"), 10, 32); err == nil && userID > 0 {
			ctx = context.WithValue(ctx, userIDKey, int32(userID))
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func tenantID(r *http.Request) int32 {
	id, _ := r.Context().Value(tenantIDKey).(int32)
	return id
}

func userID(r *http.Request) int32 {
	id, _ := r.Context().Value(userIDKey).(int32)
	return id
}
