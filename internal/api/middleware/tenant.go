package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

type contextKey string

const (
	// TenantHeader carries the caller's tenant identifier. The `tenant`
	// query parameter is accepted as a fallback; the header wins when both
	// are present.
	TenantHeader = "X-Tenant-ID"
	tenantQuery  = "tenant"

	tenantContextKey contextKey = "tenant_id"
)

// TenantFromContext returns the resolved tenant identifier, or "" if the
// request never passed through ResolveTenant.
func TenantFromContext(ctx context.Context) string {
	id, _ := ctx.Value(tenantContextKey).(string)
	return id
}

// ResolveTenant derives the tenant identifier for every tenant-scoped route.
// Requests without one are rejected before any store access.
func ResolveTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.Header.Get(TenantHeader)
		if tenantID == "" {
			tenantID = r.URL.Query().Get(tenantQuery)
		}
		if tenantID == "" {
			writeError(w, http.StatusBadRequest, "tenant_id required via X-Tenant-ID header or ?tenant=")
			return
		}

		ctx := context.WithValue(r.Context(), tenantContextKey, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
