package grpcserver

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	maxPageSize     = 100 // Maximum allowed page size for list operations.
	defaultPageSize = 20  // Default page size for list operations.
	cursorSeparator = "|" // Separator for cursor components.
)

// encodeCursor builds an opaque next_page_token from the creation time and id of the
// last order of a page.
func encodeCursor(created time.Time, id string) string {
	raw := strconv.FormatInt(created.UnixMicro(), 10) + cursorSeparator + id
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// decodeCursor parses an opaque page_token.
func decodeCursor(token string) (time.Time, string, error) {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("base64: %w", err)
	}
	parts := strings.SplitN(string(b), cursorSeparator, 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid cursor format")
	}
	micros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("parse timestamp: %w", err)
	}
	return time.UnixMicro(micros).UTC(), parts[1], nil
}

func clampPageSize(n int32) int {
	size := int(n)
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return size
}
