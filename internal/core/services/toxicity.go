package services

import (
	"strings"

	"github.com/moodtune-labs/moodtune/backend/internal/core/domain"
)

// IsToxic reports whether the text contains any blocked term. The check is a
// plain case-insensitive substring test with no word boundaries, so terms
// hiding inside longer words still match.
func IsToxic(text string) bool {
	lowered := strings.ToLower(text)
	for _, term := range domain.ToxicTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}
