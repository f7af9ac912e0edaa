package conversation

import (
	"strings"

	"crystal-petrol-bot/internal/domain"
)

// NormalizePhone reduces free-form input to a +998XXXXXXXXX number.
//
// Everything except digits is dropped (a single leading + survives), then the
// first matching rule wins:
//
//	998xxxxxxxxx (12 digits)  -> +998xxxxxxxxx
//	9xxxxxxxx    (9 digits)   -> +9989xxxxxxxx
//	8xxxxxxxx    (9 digits)   -> +9988xxxxxxxx
//	+998xxxxxxxxx (13 chars)  -> unchanged
//
// This is a best-effort heuristic for Uzbek mobile numbers, not full E.164
// validation. Normalizing an already-normalized number yields itself.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	n := b.String()

	switch {
	case strings.HasPrefix(n, "998") && len(n) == 12:
		return "+" + n, nil
	case strings.HasPrefix(n, "9") && len(n) == 9:
		return "+998" + n, nil
	case strings.HasPrefix(n, "8") && len(n) == 9:
		return "+998" + n, nil
	case strings.HasPrefix(n, "+998") && len(n) == 13:
		return n, nil
	}
	return "", domain.ErrInvalidPhone
}
