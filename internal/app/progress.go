package app

import (
	"sort"
	"sync"
)

// ReportView is the JSON shape served by the status endpoint.
type ReportView struct {
	Storefront string `json:"storefront"`
	Pages      int    `json:"pages"`
	Collected  int    `json:"collected"`
	Malformed  int    `json:"malformed"`
	Duplicates int    `json:"duplicates"`
	Error      string `json:"error,omitempty"`
}

// Snapshot is a point-in-time view of a run.
type Snapshot struct {
	Total    int          `json:"total"`
	Done     int          `json:"done"`
	InFlight []string     `json:"inFlight,omitempty"`
	Reports  []ReportView `json:"reports"`
}

// Progress tracks a run for the status server. The aggregator writes,
// HTTP handlers only ever read copies.
type Progress struct {
	mu       sync.Mutex
	total    int
	inFlight map[string]struct{}
	reports  []ReportView
}

func NewProgress() *Progress {
	return &Progress{inFlight: make(map[string]struct{})}
}

func (p *Progress) Begin(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = total
	p.reports = p.reports[:0]
}

func (p *Progress) Start(storefront string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight[storefront] = struct{}{}
}

func (p *Progress) Done(rep Report) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.inFlight, rep.Storefront)
	view := ReportView{
		Storefront: rep.Storefront,
		Pages:      rep.Pages,
		Collected:  len(rep.Reviews),
		Malformed:  rep.Malformed,
		Duplicates: rep.Duplicates,
	}
	if rep.Err != nil {
		view.Error = rep.Err.Error()
	}
	p.reports = append(p.reports, view)
}

func (p *Progress) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := Snapshot{
		Total:   p.total,
		Done:    len(p.reports),
		Reports: append([]ReportView(nil), p.reports...),
	}
	for cc := range p.inFlight {
		s.InFlight = append(s.InFlight, cc)
	}
	sort.Strings(s.InFlight)
	return s
}
