package itunes

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"appstore_reviews/internal/domain"
)

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func intLabel(m map[string]any, path string) (int, error) {
	s := strings.TrimSpace(lookupStr(m, path))
	if s == "" {
		return 0, fmt.Errorf("missing %s", path)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad %s: %w", path, err)
	}
	return n, nil
}

// normalizeEntry converts one raw feed entry into a Review. A failure here
// covers exactly one entry: the caller skips it and keeps processing the
// rest of the page. The storefront code is attached as the country field
// regardless of anything the feed itself reports.
func normalizeEntry(raw json.RawMessage, country string) (domain.Review, error) {
	var e map[string]any
	if err := json.Unmarshal(raw, &e); err != nil {
		return domain.Review{}, fmt.Errorf("entry is not an object: %w", err)
	}

	id := lookupStr(e, "id.label")
	if id == "" {
		return domain.Review{}, errors.New("missing id.label")
	}
	rating, err := intLabel(e, "im:rating.label")
	if err != nil {
		return domain.Review{}, err
	}
	voteCount, err := intLabel(e, "im:voteCount.label")
	if err != nil {
		return domain.Review{}, err
	}
	voteSum, err := intLabel(e, "im:voteSum.label")
	if err != nil {
		return domain.Review{}, err
	}
	date, err := domain.ParseTimestamp(lookupStr(e, "updated.label"))
	if err != nil {
		return domain.Review{}, err
	}

	return domain.Review{
		ID:        id,
		Author:    lookupStr(e, "author.name.label"),
		Version:   lookupStr(e, "im:version.label"),
		Rating:    rating,
		Title:     lookupStr(e, "title.label"),
		Content:   lookupStr(e, "content.label"), // may legitimately be empty
		VoteCount: voteCount,
		VoteSum:   voteSum,
		Date:      date,
		Country:   strings.ToUpper(country),
	}, nil
}
