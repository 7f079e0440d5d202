package mediakeep

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// SanitizeName maps a user-supplied filename to its storage-safe form: every
// character outside [A-Za-z0-9._-] becomes '_'. The mapping is deterministic
// and idempotent. It does not collapse repeated underscores, trim leading or
// trailing ones, or deduplicate extensions, so two distinct raw names can
// sanitize to the same result (accepted as last-writer-wins).
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// DeriveKey computes the unique storage key for a file:
// "<category>/<sanitizedName>". Key comparison is case-sensitive; two uploads
// deriving the same key are a collision by definition.
func DeriveKey(cat Category, rawName string) string {
	return cat.Prefix() + SanitizeName(rawName)
}

// RenameSuggestion proposes an alternative filename for a colliding upload:
// the base name gains a suffix of the last four digits of now's epoch
// milliseconds, and the original extension is preserved. Uniqueness is best
// effort only; two suggestions within the same truncated window can collide.
func RenameSuggestion(name string, now time.Time) string {
	suffix := fmt.Sprintf("%04d", now.UnixMilli()%10000)
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if base == "" {
		// Dotfiles and extension-less names keep the whole name as the base.
		base = name
		ext = ""
	}
	return base + "_" + suffix + ext
}
