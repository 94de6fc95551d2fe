package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/api/response"
)

// timeTokenWindow bounds how far a time token's timestamp may drift from server time.
const timeTokenWindow = 5 * time.Minute

// APIKeyMiddleware guards mutating administrative endpoints. Callers must present the
// shared key in X-API-Key plus a short-lived HMAC time token in X-Time-Token, so a
// leaked request capture cannot be replayed indefinitely.
//
// The key is read from INTERNAL_API_KEY per request, which lets tests swap keys
// without rebuilding the middleware chain.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := os.Getenv("INTERNAL_API_KEY")
		if apiKey == "" {
			response.RespondError(w, http.StatusInternalServerError, "server configuration error", "Authentication not loaded")
			return
		}

		providedKey := r.Header.Get("X-API-Key")
		if providedKey == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		timeToken := r.Header.Get("X-Time-Token")
		if timeToken == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing Time token")
			return
		}
		if !validateTimeToken(timeToken, apiKey) {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GenerateTimeToken creates a time token for the given API key: the current Unix
// timestamp signed with an HMAC-SHA256 keyed by the API key.
func GenerateTimeToken(apiKey string) string {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	return base64.URLEncoding.EncodeToString(
		[]byte(fmt.Sprintf("%s:%s", timestamp, signTimestamp(timestamp, apiKey))))
}

func validateTimeToken(token, apiKey string) bool {
	decoded, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return false
	}

	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return false
	}

	timestamp, signature := parts[0], parts[1]
	expected := signTimestamp(timestamp, apiKey)
	if subtle.ConstantTimeCompare([]byte(signature), []byte(expected)) != 1 {
		return false
	}

	issued, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}

	drift := time.Since(time.Unix(issued, 0))
	if drift < 0 {
		drift = -drift
	}
	return drift <= timeTokenWindow
}

func signTimestamp(timestamp, apiKey string) string {
	mac := hmac.New(sha256.New, []byte(apiKey))
	mac.Write([]byte(timestamp))
	return hex.EncodeToString(mac.Sum(nil))
}
