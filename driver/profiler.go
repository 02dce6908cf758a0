package driver

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// queryPoolSize bounds concurrently outstanding timer queries. When
// the pool is exhausted a span is silently skipped rather than
// stalling the pipeline.
const queryPoolSize = 64

// Sample is one resolved GPU timing span.
type Sample struct {
	Name     string
	Duration time.Duration
}

// Profiler collects GPU elapsed-time spans through TIME_ELAPSED
// queries. Spans resolve lazily: pending queries are polled on the
// next Begin or on Samples.
type Profiler struct {
	mu      sync.Mutex
	enabled bool
	free    []uint32
	pending []pendingQuery
	samples []Sample
}

type pendingQuery struct {
	id   uint32
	name string
}

var profiler Profiler

// GlobalProfiler returns the process-wide profiler.
func GlobalProfiler() *Profiler { return &profiler }

// SetEnabled turns span collection on or off. Disabled is the
// default; Begin is then a no-op.
func (p *Profiler) SetEnabled(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = on
}

// Enabled reports whether spans are being collected.
func (p *Profiler) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Begin opens a named GPU span and returns the closer. The zero-cost
// path when disabled or exhausted returns a no-op closer.
func (p *Profiler) Begin(name string) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return func() {}
	}
	p.resolveLocked()
	if len(p.pending) >= queryPoolSize {
		logger().Warn("profiler: query pool exhausted, span skipped", "name", name)
		return func() {}
	}
	var id uint32
	if n := len(p.free); n > 0 {
		id = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		gl.GenQueries(1, &id)
	}
	gl.BeginQuery(gl.TIME_ELAPSED, id)
	return func() {
		gl.EndQuery(gl.TIME_ELAPSED)
		p.mu.Lock()
		p.pending = append(p.pending, pendingQuery{id: id, name: name})
		p.mu.Unlock()
	}
}

// resolveLocked drains completed queries into samples. Callers hold
// p.mu.
func (p *Profiler) resolveLocked() {
	kept := p.pending[:0]
	for _, q := range p.pending {
		var ready int32
		gl.GetQueryObjectiv(q.id, gl.QUERY_RESULT_AVAILABLE, &ready)
		if ready == gl.FALSE {
			kept = append(kept, q)
			continue
		}
		var ns uint64
		gl.GetQueryObjectui64v(q.id, gl.QUERY_RESULT, &ns)
		p.samples = append(p.samples, Sample{Name: q.name, Duration: time.Duration(ns)})
		p.free = append(p.free, q.id)
	}
	p.pending = kept
}

// Samples blocks on any outstanding queries and returns all collected
// spans in completion order.
func (p *Profiler) Samples() []Sample {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, q := range p.pending {
		var ns uint64
		gl.GetQueryObjectui64v(q.id, gl.QUERY_RESULT, &ns)
		p.samples = append(p.samples, Sample{Name: q.name, Duration: time.Duration(ns)})
		p.free = append(p.free, q.id)
	}
	p.pending = p.pending[:0]
	out := make([]Sample, len(p.samples))
	copy(out, p.samples)
	return out
}

// Reset discards collected samples. Outstanding queries still resolve
// into the next collection window.
func (p *Profiler) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.samples = p.samples[:0]
}

// Report writes an aggregated per-span table: count, min, avg, max,
// total and share of measured GPU time.
func (p *Profiler) Report(w io.Writer) error {
	samples := p.Samples()
	type agg struct {
		name            string
		count           int
		min, max, total time.Duration
	}
	byName := map[string]*agg{}
	var order []string
	var grand time.Duration
	for _, s := range samples {
		a, ok := byName[s.Name]
		if !ok {
			a = &agg{name: s.Name, min: s.Duration}
			byName[s.Name] = a
			order = append(order, s.Name)
		}
		a.count++
		a.total += s.Duration
		if s.Duration < a.min {
			a.min = s.Duration
		}
		if s.Duration > a.max {
			a.max = s.Duration
		}
		grand += s.Duration
	}
	sort.Slice(order, func(i, j int) bool {
		return byName[order[i]].total > byName[order[j]].total
	})

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "kernel\tcount\tmin\tavg\tmax\ttotal\tshare")
	for _, name := range order {
		a := byName[name]
		avg := a.total / time.Duration(a.count)
		share := 0.0
		if grand > 0 {
			share = 100 * float64(a.total) / float64(grand)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%.1f%%\n",
			a.name, a.count, a.min, avg, a.max, a.total, share)
	}
	return tw.Flush()
}
