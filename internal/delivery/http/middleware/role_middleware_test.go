package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-appointment-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func requestWithRole(role string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if role == "" {
		return req
	}
	ctx := context.WithValue(req.Context(), UserRoleKey, role)
	return req.WithContext(ctx)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		middleware func(http.Handler) http.Handler
		wantStatus int
	}{
		{"doctor allowed on doctor route", "doctor", RequireDoctor, http.StatusOK},
		{"patient rejected on doctor route", "patient", RequireDoctor, http.StatusForbidden},
		{"patient allowed on patient route", "patient", RequirePatient, http.StatusOK},
		{"doctor rejected on patient route", "doctor", RequirePatient, http.StatusForbidden},
		{"missing role rejected", "", RequireDoctor, http.StatusUnauthorized},
		{"either role accepted", "patient", RequireRole(entity.RoleDoctor, entity.RolePatient), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			tt.middleware(next).ServeHTTP(rec, requestWithRole(tt.role))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
		})
	}
}
