package app

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
)

// Profiler averages named CPU scopes over a stats interval and keeps the
// latest value of named counters. The renderer reports pick, upload and
// encode; the app wraps the whole frame.
type Profiler struct {
	order   []string
	started map[string]time.Time
	totals  map[string]time.Duration
	samples map[string]int
	counts  map[string]int

	now func() time.Time
}

func NewProfiler() *Profiler {
	return &Profiler{
		started: make(map[string]time.Time),
		totals:  make(map[string]time.Duration),
		samples: make(map[string]int),
		counts:  make(map[string]int),
		now:     time.Now,
	}
}

func (p *Profiler) BeginScope(name string) {
	p.started[name] = p.now()
	if !slices.Contains(p.order, name) {
		p.order = append(p.order, name)
	}
}

func (p *Profiler) EndScope(name string) {
	start, ok := p.started[name]
	if !ok {
		return
	}
	delete(p.started, name)
	p.totals[name] += p.now().Sub(start)
	p.samples[name]++
}

func (p *Profiler) SetCount(name string, count int) {
	p.counts[name] = count
}

// Average is the mean duration of a scope since the last Reset.
func (p *Profiler) Average(name string) time.Duration {
	n := p.samples[name]
	if n == 0 {
		return 0
	}
	return p.totals[name] / time.Duration(n)
}

// Frames is the number of completed frame scopes since the last Reset.
func (p *Profiler) Frames() int { return p.samples[scopeFrame] }

// Reset starts a new interval. Scope order and counters are kept.
func (p *Profiler) Reset() {
	clear(p.totals)
	clear(p.samples)
}

// GetStatsString formats the interval averages on one line, with the pick
// cost also given per object since picking tests every object each frame.
func (p *Profiler) GetStatsString() string {
	var sb strings.Builder
	for i, name := range p.order {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%s", name, millis(p.Average(name)))
		if name == scopePick {
			if objs := p.counts["objects"]; objs > 0 {
				fmt.Fprintf(&sb, " (%s/object)", millis(p.Average(name)/time.Duration(objs)))
			}
		}
	}

	keys := make([]string, 0, len(p.counts))
	for k := range p.counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%d", k, p.counts[k])
	}
	return strings.TrimSpace(sb.String())
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
}
