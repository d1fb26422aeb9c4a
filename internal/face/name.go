package face

import (
	"strings"
	"unicode/utf8"

	"github.com/kozaktomas/name-that-face/internal/constants"
	"golang.org/x/text/unicode/norm"
)

// TrimName strips leading and trailing whitespace (including newlines) and
// composes the result to NFC so that "Jiří" typed two ways is stored identically.
func TrimName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// IsValidName reports whether the trimmed name is long enough to be saved.
// Length is counted in characters, not bytes.
func IsValidName(name string) bool {
	return utf8.RuneCountInString(TrimName(name)) >= constants.MinNameLength
}
