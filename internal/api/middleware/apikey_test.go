package middleware_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/middleware"
)

//nolint:gocyclo // Comprehensive integration test with multiple subtests
func TestAPIKeyMiddleware(t *testing.T) {
	testAPIKey := "test-api-key-12345"
	os.Setenv("INTERNAL_API_KEY", testAPIKey)
	defer os.Unsetenv("INTERNAL_API_KEY")

	newGuardedRequest := func() (*httptest.ResponseRecorder, *http.Request, http.Handler, *bool) {
		handlerCalled := false
		testHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			handlerCalled = true
			w.WriteHeader(http.StatusOK)
		})

		mw := middleware.APIKeyMiddleware(testHandler)

		req := httptest.NewRequest(http.MethodPost, "/test", nil)
		rctx := chi.NewRouteContext()
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		return httptest.NewRecorder(), req, mw, &handlerCalled
	}

	decodeDetails := func(t *testing.T, w *httptest.ResponseRecorder) string {
		t.Helper()
		var response map[string]string
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)
		return response["details"]
	}

	t.Run("rejects request without API key", func(t *testing.T) {
		w, req, mw, handlerCalled := newGuardedRequest()

		mw.ServeHTTP(w, req)

		if *handlerCalled {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
		if details := decodeDetails(t, w); details != "Missing API key" {
			t.Errorf("Expected 'Missing API key' error, got '%s'", details)
		}
	})

	t.Run("rejects request with invalid API key", func(t *testing.T) {
		w, req, mw, handlerCalled := newGuardedRequest()
		req.Header.Set("X-API-Key", "invalid")

		mw.ServeHTTP(w, req)

		if *handlerCalled {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
		if details := decodeDetails(t, w); details != "Invalid API key" {
			t.Errorf("Expected 'Invalid API key' error, got '%s'", details)
		}
	})

	t.Run("rejects request without time token", func(t *testing.T) {
		w, req, mw, handlerCalled := newGuardedRequest()
		req.Header.Set("X-API-Key", testAPIKey)

		mw.ServeHTTP(w, req)

		if *handlerCalled {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
		if details := decodeDetails(t, w); details != "Missing Time token" {
			t.Errorf("Expected 'Missing Time token' error, got '%s'", details)
		}
	})

	t.Run("rejects request with invalid time token", func(t *testing.T) {
		w, req, mw, handlerCalled := newGuardedRequest()
		req.Header.Set("X-API-Key", testAPIKey)
		req.Header.Set("X-Time-Token", "invalid")

		mw.ServeHTTP(w, req)

		if *handlerCalled {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
		if details := decodeDetails(t, w); details != "Time token is invalid or expired" {
			t.Errorf("Expected 'Time token is invalid or expired' error, got '%s'", details)
		}
	})

	t.Run("rejects request with forged time token", func(t *testing.T) {
		w, req, mw, handlerCalled := newGuardedRequest()
		req.Header.Set("X-API-Key", testAPIKey)

		// Correctly shaped token signed with the wrong key.
		timestamp := fmt.Sprintf("%d", time.Now().Unix())
		forged := base64.URLEncoding.EncodeToString([]byte(timestamp + ":deadbeef"))
		req.Header.Set("X-Time-Token", forged)

		mw.ServeHTTP(w, req)

		if *handlerCalled {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("allows request with valid API key and time token", func(t *testing.T) {
		w, req, mw, handlerCalled := newGuardedRequest()
		req.Header.Set("X-API-Key", testAPIKey)
		req.Header.Set("X-Time-Token", middleware.GenerateTimeToken(testAPIKey))

		mw.ServeHTTP(w, req)

		if !*handlerCalled {
			t.Error("Expected handler to complete.")
		}
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("fail on not loaded internal_api_key", func(t *testing.T) {
		os.Unsetenv("INTERNAL_API_KEY")
		defer os.Setenv("INTERNAL_API_KEY", testAPIKey)

		w, req, mw, handlerCalled := newGuardedRequest()

		mw.ServeHTTP(w, req)

		if *handlerCalled {
			t.Error("Expected request not to complete.")
		}
		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", w.Code)
		}
		if details := decodeDetails(t, w); details != "Authentication not loaded" {
			t.Errorf("Expected 'Authentication not loaded' error, got '%s'", details)
		}
	})
}
