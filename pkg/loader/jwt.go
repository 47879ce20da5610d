package loader

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/ohler55/ojg/oj"
)

// IsJWT reports whether input looks like a JWT: exactly three dot-separated
// parts where the first two decode as base64url JSON objects. A "Bearer "
// prefix is tolerated.
func IsJWT(input string) bool {
	input = strings.TrimSpace(strings.TrimPrefix(input, "Bearer "))

	parts := strings.Split(input, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
	}

	for _, part := range parts[:2] {
		decoded, err := base64.RawURLEncoding.DecodeString(part)
		if err != nil {
			return false
		}
		if _, err := parseJSONObject(decoded); err != nil {
			return false
		}
	}

	// The signature is opaque bytes; it only needs to be valid base64url.
	_, err := base64.RawURLEncoding.DecodeString(parts[2])
	return err == nil
}

// DecodeJWT expands a token into a map with header, payload, and signature
// keys. The signature stays as its base64url string since the raw bytes are
// not representable as JSON.
func DecodeJWT(input string) (map[string]any, error) {
	input = strings.TrimSpace(strings.TrimPrefix(input, "Bearer "))

	parts := strings.Split(input, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid JWT: expected 3 parts, got %d", len(parts))
	}

	header, err := decodeJWTPart(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid JWT header: %w", err)
	}
	payload, err := decodeJWTPart(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid JWT payload: %w", err)
	}

	return map[string]any{
		"header":    header,
		"payload":   payload,
		"signature": parts[2],
	}, nil
}

func decodeJWTPart(part string) (map[string]any, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(part)
	if err != nil {
		return nil, err
	}
	return parseJSONObject(decoded)
}

func parseJSONObject(data []byte) (map[string]any, error) {
	parsed, err := oj.Parse(data)
	if err != nil {
		return nil, err
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", parsed)
	}
	return obj, nil
}

func loadJWT(input string) ([]any, error) {
	decoded, err := DecodeJWT(input)
	if err != nil {
		return nil, err
	}
	return []any{decoded}, nil
}
