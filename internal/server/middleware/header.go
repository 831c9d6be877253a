package middleware

import (
	"errors"
	"net/http"
	"strings"
)

// TokenConfig configures where a bearer token is looked up.
type TokenConfig struct {
	// Headers are checked in order.
	Headers []string
	// RequireBearer requires the "Bearer " prefix on the Authorization header.
	RequireBearer bool
	// AllowedPrefixes are stripped from other headers, e.g. "Token ".
	AllowedPrefixes []string
}

var DefaultTokenConfig = &TokenConfig{
	Headers:         []string{"Authorization"},
	RequireBearer:   true,
	AllowedPrefixes: []string{"Bearer "},
}

// ExtractBearerToken extracts the token of an "Authorization: Bearer <token>" header value.
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("Authorization header is required")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errors.New("Authorization header must start with 'Bearer '")
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", errors.New("token is required")
	}

	return token, nil
}

// ExtractTokenFromRequest extracts a token from the first configured header that carries one.
func ExtractTokenFromRequest(r *http.Request, config *TokenConfig) (string, error) {
	if config == nil {
		config = DefaultTokenConfig
	}

	var lastError error

	for _, headerName := range config.Headers {
		headerValue := r.Header.Get(headerName)
		if headerValue == "" {
			continue
		}

		if strings.EqualFold(headerName, "authorization") && config.RequireBearer {
			token, err := ExtractBearerToken(headerValue)
			if err != nil {
				lastError = err
				continue
			}

			return token, nil
		}

		token := headerValue

		for _, prefix := range config.AllowedPrefixes {
			if strings.HasPrefix(headerValue, prefix) {
				token = strings.TrimPrefix(headerValue, prefix)
				break
			}
		}

		if strings.TrimSpace(token) == "" {
			lastError = errors.New("token is required")
			continue
		}

		return strings.TrimSpace(token), nil
	}

	if lastError != nil {
		return "", lastError
	}

	return "", errors.New("Authorization header is required")
}
