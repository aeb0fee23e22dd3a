package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name            string
		allowed         []string
		method          string
		origin          string
		wantStatus      int
		wantOrigin      string
		wantCredentials string
		wantMethods     string
	}{
		{name: "listed origin", allowed: []string{"http://localhost:3000/"}, method: http.MethodGet, origin: "http://localhost:3000", wantStatus: http.StatusOK, wantOrigin: "http://localhost:3000", wantCredentials: "true"},
		{name: "other origin", allowed: []string{"http://localhost:3000"}, method: http.MethodGet, origin: "http://evil.test", wantStatus: http.StatusOK},
		{name: "no origin header", allowed: []string{"*"}, method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "preflight", allowed: []string{"http://localhost:3000"}, method: http.MethodOptions, origin: "http://localhost:3000", wantStatus: http.StatusNoContent, wantOrigin: "http://localhost:3000", wantCredentials: "true", wantMethods: corsAllowMethods},
		{name: "preflight from unknown origin", allowed: []string{"http://localhost:3000"}, method: http.MethodOptions, origin: "http://evil.test", wantStatus: http.StatusNoContent},
		{name: "wildcard", allowed: []string{"*"}, method: http.MethodGet, origin: "http://any.test", wantStatus: http.StatusOK, wantOrigin: "http://any.test"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/events", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()
			CORS(tt.allowed, next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCredentials, rr.Header().Get("Access-Control-Allow-Credentials"))
			assert.Equal(t, tt.wantMethods, rr.Header().Get("Access-Control-Allow-Methods"))
			if tt.wantOrigin != "" {
				assert.Equal(t, "Origin", rr.Header().Get("Vary"))
			}
		})
	}
}
