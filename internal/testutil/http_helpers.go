package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

// NewRequestWithURLParams creates an HTTP request with chi URL parameters.
// This helper simplifies testing chi handlers that use chi.URLParam() to extract path parameters.
//
// Example:
//
//	req := testutil.NewRequestWithURLParams(
//	    http.MethodGet,
//	    "/api/vehicles/123-456",
//	    map[string]string{"uuid": "123-456"},
//	)
func NewRequestWithURLParams(method, path string, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for key, value := range params {
			rctx.URLParams.Add(key, value)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req
}

// NewRequestWithQueryParams creates an HTTP request with query parameters.
// This helper simplifies testing handlers that use r.URL.Query() to extract query string parameters.
//
// Example:
//
//	req := testutil.NewRequestWithQueryParams(
//	    http.MethodGet,
//	    "/api/sales-transactions",
//	    map[string]string{"status": "pending"},
//	)
func NewRequestWithQueryParams(method, path string, queryParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)

	if len(queryParams) > 0 {
		q := req.URL.Query()
		for key, value := range queryParams {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	return req
}

// NewRequestWithBody creates an HTTP request carrying a JSON body.
// The body may be a raw string, raw bytes, or any value that marshals to JSON.
//
// Example:
//
//	req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/vehicles", createReq)
func NewRequestWithBody(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, path, encodeBody(t, body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewRequestWithURLParamsAndBody creates an HTTP request with both chi URL
// parameters and a JSON body.
//
// Example:
//
//	req := testutil.NewRequestWithURLParamsAndBody(
//	    t,
//	    http.MethodPatch,
//	    "/api/sales-transactions/123-456",
//	    map[string]string{"uuid": "123-456"},
//	    updateReq,
//	)
func NewRequestWithURLParamsAndBody(t *testing.T, method, path string, params map[string]string, body any) *http.Request {
	t.Helper()

	req := NewRequestWithBody(t, method, path, body)

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for key, value := range params {
			rctx.URLParams.Add(key, value)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req
}

func encodeBody(t *testing.T, body any) io.Reader {
	t.Helper()

	switch v := body.(type) {
	case nil:
		return nil
	case string:
		return bytes.NewBufferString(v)
	case []byte:
		return bytes.NewBuffer(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		return bytes.NewBuffer(data)
	}
}
