package itunes

import (
	"bytes"
	"encoding/json"
)

type feedPage struct {
	Feed struct {
		Entry json.RawMessage `json:"entry"`
		Link  []feedLink      `json:"link"`
	} `json:"feed"`
}

type feedLink struct {
	Attributes struct {
		Rel  string `json:"rel"`
		Href string `json:"href"`
	} `json:"attributes"`
}

// entries coerces the feed's entry container to a slice. The upstream API
// collapses a single-entry page to a bare object instead of a one-element
// list; that shape is part of its contract, so it is widened here before
// any further processing.
func (p feedPage) entries() ([]json.RawMessage, error) {
	raw := bytes.TrimSpace(p.Feed.Entry)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	return []json.RawMessage{raw}, nil
}

// hasNext reports whether the feed advertises another page. Absence of a
// rel="next" navigation link means this is the last page.
func (p feedPage) hasNext() bool {
	for _, l := range p.Feed.Link {
		if l.Attributes.Rel == "next" {
			return true
		}
	}
	return false
}
