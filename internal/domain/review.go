package domain

import (
	"fmt"
	"sort"
	"time"
)

// feedTimeLayout is the timestamp format used by the feed's "updated" label,
// e.g. "2024-05-01T07:30:00-07:00". Records marshal back to the same format.
const feedTimeLayout = "2006-01-02T15:04:05-07:00"

// Timestamp wraps time.Time so that JSON output preserves the feed's
// offset notation and sorting works on the parsed value.
type Timestamp struct{ time.Time }

func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.Parse(feedTimeLayout, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("bad timestamp %q: %w", s, err)
	}
	return Timestamp{t}, nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(feedTimeLayout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("bad timestamp %s", b)
	}
	parsed, err := ParseTimestamp(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Review is the normalized representation of one customer review.
// The JSON field names are the output contract; downstream consumers
// depend on them exactly as written here.
type Review struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Version   string    `json:"version"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	VoteCount int       `json:"voteCount"`
	VoteSum   int       `json:"voteSum"`
	Date      Timestamp `json:"date"`
	Country   string    `json:"country"`
}

// SortNewestFirst orders reviews by date descending. The sort is stable:
// reviews with equal timestamps keep their insertion order, so output stays
// deterministic across runs with identical input.
func SortNewestFirst(rs []Review) {
	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].Date.After(rs[j].Date.Time)
	})
}
