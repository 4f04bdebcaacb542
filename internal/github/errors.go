package github

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cli/go-gh/v2/pkg/api"
)

// StatusCode extracts the HTTP status code of a failed API call when available
func StatusCode(err error) (int, bool) {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}

// IsAuthError reports whether an error is an authentication or authorization failure
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	if status, ok := StatusCode(err); ok {
		return status == http.StatusUnauthorized || status == http.StatusForbidden
	}

	var gqlErr *api.GraphQLError
	if errors.As(err, &gqlErr) {
		for _, item := range gqlErr.Errors {
			if item.Type == "FORBIDDEN" {
				return true
			}
		}
		return false
	}

	text := strings.ToLower(err.Error())
	return strings.Contains(text, "401 unauthorized") ||
		strings.Contains(text, "403 forbidden") ||
		strings.Contains(text, "bad credentials") ||
		strings.Contains(text, "requires authentication")
}
