package session

// MaxHistory bounds the number of remembered searches.
const MaxHistory = 10

// History is a most-recent-first list of distinct past keywords.
type History struct {
	entries []string
	max     int
}

// NewHistory returns an empty history holding up to max entries. Sizes
// outside 1..MaxHistory fall back to MaxHistory.
func NewHistory(max int) *History {
	if max <= 0 || max > MaxHistory {
		max = MaxHistory
	}
	return &History{max: max}
}

// Push moves keyword to the front, dropping the oldest entry when full.
func (h *History) Push(keyword string) {
	if keyword == "" {
		return
	}

	entries := make([]string, 0, h.max)
	entries = append(entries, keyword)
	for _, e := range h.entries {
		if e == keyword {
			continue
		}
		if len(entries) == h.max {
			break
		}
		entries = append(entries, e)
	}
	h.entries = entries
}

// Entries returns a copy of the history, most recent first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int {
	return len(h.entries)
}
