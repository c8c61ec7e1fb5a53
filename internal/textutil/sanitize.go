package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// maxSegmentLength caps sanitized names so deeply nested playlist folders
// stay within filesystem limits on FAT-formatted drives.
const maxSegmentLength = 100

// fileNameReplacer swaps filesystem-unsafe characters for safe alternatives.
// The mapping mirrors what playlist names commonly contain: separators become
// dashes or underscores, quoting and glob characters are dropped.
var fileNameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "-",
	"|", "-",
	"<", "(",
	">", ")",
	"?", "",
	"*", "",
	"\"", "'",
)

// SanitizeFileName converts a collection or track name into a safe path
// segment. The result is NFC-normalized so names captured on macOS (which
// stores NFD) compare and sort consistently on the destination volume.
func SanitizeFileName(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	name = strings.TrimSpace(fileNameReplacer.Replace(name))
	if len(name) > maxSegmentLength {
		// Cut on a rune boundary so a multi-byte character is never split
		// into invalid UTF-8.
		cut := maxSegmentLength
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = strings.TrimSpace(name[:cut])
	}
	return name
}
