// Package idgen builds the human-readable codes shown in the portals. The codes are not
// checked against the store; callers rely on UNIQUE constraints and retry on collision.
package idgen

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode"
)

const (
	orderPrefix  = "ORD"
	editorPrefix = "EDT"
)

// OrderID returns "ORD" followed by the last eight digits of now in unix milliseconds.
func OrderID(now time.Time) string {
	return fmt.Sprintf("%s%08d", orderPrefix, now.UnixMilli()%100_000_000)
}

// CityPrefix returns the first three letters of city, uppercased. Short or non-latin
// names are padded with 'X'.
func CityPrefix(city string) string {
	var b strings.Builder
	for _, r := range city {
		if b.Len() == 3 {
			break
		}
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	for b.Len() < 3 {
		b.WriteByte('X')
	}
	return b.String()
}

// PilotCode returns the city prefix followed by a three digit number, e.g. MUM042.
func PilotCode(city string, rnd *rand.Rand) string {
	return fmt.Sprintf("%s%03d", CityPrefix(city), intn(rnd, 1000))
}

// EditorCode returns "EDT" followed by a three digit number.
func EditorCode(rnd *rand.Rand) string {
	return fmt.Sprintf("%s%03d", editorPrefix, intn(rnd, 1000))
}

func intn(rnd *rand.Rand, n int) int {
	if rnd == nil {
		return rand.IntN(n)
	}
	return rnd.IntN(n)
}
