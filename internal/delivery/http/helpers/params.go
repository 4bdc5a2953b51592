package helpers

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"explorewithme/internal/domain"

	"github.com/google/uuid"
)

// PathUUID returns the named path value, or a validation error when it is not a UUID.
func PathUUID(r *http.Request, name string) (string, error) {
	id := r.PathValue(name)
	if err := uuid.Validate(id); err != nil {
		return "", domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

// QueryUUIDs reads a list parameter given either repeated or comma separated.
func QueryUUIDs(r *http.Request, name string) ([]string, error) {
	values := QueryList(r, name)
	for _, id := range values {
		if err := uuid.Validate(id); err != nil {
			return nil, domain.NewValidationError(name, "must contain only UUIDs")
		}
	}
	return values, nil
}

// QueryList reads a list parameter given either repeated or comma separated.
func QueryList(r *http.Request, name string) []string {
	var out []string
	for _, raw := range r.URL.Query()[name] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// QueryBool reads an optional boolean query parameter.
func QueryBool(r *http.Request, name string) (*bool, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be true or false")
	}
	return &b, nil
}

// ClientIP returns the address recorded for view counting. RemoteAddr is expected to
// be rewritten from proxy headers by the RealIP middleware.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
