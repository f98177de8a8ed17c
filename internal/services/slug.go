package services

import "strings"

// Slugify derives a URL slug from a title: lowercase, drop everything that
// is not alphanumeric, underscore, space or hyphen, then turn each run of
// spaces, underscores and hyphens into a single hyphen. Idempotent, so a
// slug passed back in stays unchanged.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '_' || r == '-':
			if b.Len() > 0 {
				pendingHyphen = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen {
				b.WriteByte('-')
				pendingHyphen = false
			}
			b.WriteRune(r)
		}
	}

	return b.String()
}
