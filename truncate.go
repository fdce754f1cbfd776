package treedoc

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/words"
)

// truncationNotice terminates every truncated document.
const truncationNotice = "\n\n---\n*Content truncated due to size limits*\n"

// truncateAtBoundary appends the truncation notice, cutting the text first
// when it would not otherwise fit within max. The cut lands on the last
// word-segment boundary that leaves room for the notice, so the result never
// ends mid-word and never exceeds max. A single segment longer than the
// whole allowance is cut hard.
func truncateAtBoundary(text string, max int) string {
	limit := max - len(truncationNotice)
	if limit <= 0 {
		return truncationNotice[:max]
	}
	if len(text) <= limit {
		return text + truncationNotice
	}

	cut := 0
	tokens := words.FromString(text)
	for tokens.Next() {
		end := cut + len(tokens.Value())
		if end > limit {
			break
		}
		cut = end
	}
	if cut == 0 {
		cut = limit
	}

	return strings.TrimRight(text[:cut], " \t\n") + truncationNotice
}
