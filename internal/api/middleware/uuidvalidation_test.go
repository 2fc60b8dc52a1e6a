package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/Budget-Projection-Backend/internal/api/middleware"
	"github.com/ndewijer/Budget-Projection-Backend/internal/testutil"
)

func TestValidateUUIDMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantCalled bool
		wantStatus int
	}{
		{"passes through valid UUID", testutil.MakeID(), true, http.StatusOK},
		{"returns 400 for invalid UUID", "invalid-id", false, http.StatusBadRequest},
		{"returns 400 for empty UUID", "", false, http.StatusBadRequest},
		{"returns 400 for UUID with trailing text", testutil.MakeID() + "x", false, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			mw := middleware.ValidateUUIDMiddleware(next)

			req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/account/"+tt.id, map[string]string{"uuid": tt.id})
			w := httptest.NewRecorder()
			mw.ServeHTTP(w, req)

			if handlerCalled != tt.wantCalled {
				t.Errorf("Expected next handler called=%v, got %v", tt.wantCalled, handlerCalled)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}
