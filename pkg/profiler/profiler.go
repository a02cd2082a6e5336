package profiler

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Phases recorded during a run
const (
	PhaseTrain    = "train"
	PhaseFit      = "fit"
	PhaseRead     = "read"
	PhaseClassify = "classify"
)

// Profiler tracks execution times per phase. A nil *Profiler is valid and
// records nothing.
type Profiler struct {
	mu    sync.RWMutex
	times map[string][]time.Duration
}

// NewProfiler creates a new profiler
func NewProfiler() *Profiler {
	return &Profiler{
		times: make(map[string][]time.Duration),
	}
}

// Timer represents a timing operation
type Timer struct {
	profiler *Profiler
	name     string
	start    time.Time
}

// Start begins timing a phase
func (p *Profiler) Start(name string) *Timer {
	return &Timer{
		profiler: p,
		name:     name,
		start:    time.Now(),
	}
}

// Stop completes the timing and records the duration
func (t *Timer) Stop() time.Duration {
	duration := time.Since(t.start)
	t.profiler.Record(t.name, duration)
	return duration
}

// Record manually records a timing
func (p *Profiler) Record(name string, duration time.Duration) {
	if p == nil {
		return
	}

	p.mu.Lock()
	p.times[name] = append(p.times[name], duration)
	p.mu.Unlock()
}

// Stats contains timing statistics
type Stats struct {
	Name    string
	Count   int
	Total   time.Duration
	Average time.Duration
	Min     time.Duration
	Max     time.Duration
	Median  time.Duration
	P95     time.Duration
}

// GetStats returns timing statistics for a phase
func (p *Profiler) GetStats(name string) *Stats {
	if p == nil {
		return &Stats{Name: name}
	}

	p.mu.RLock()
	sorted := make([]time.Duration, len(p.times[name]))
	copy(sorted, p.times[name])
	p.mu.RUnlock()

	if len(sorted) == 0 {
		return &Stats{Name: name}
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	var total time.Duration
	for _, d := range sorted {
		total += d
	}

	return &Stats{
		Name:    name,
		Count:   len(sorted),
		Total:   total,
		Average: total / time.Duration(len(sorted)),
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
		Median:  sorted[len(sorted)/2],
		P95:     sorted[int(float64(len(sorted)-1)*0.95)],
	}
}

// GetAllStats returns statistics for all recorded phases, sorted by name
func (p *Profiler) GetAllStats() []*Stats {
	if p == nil {
		return nil
	}

	p.mu.RLock()
	names := make([]string, 0, len(p.times))
	for name := range p.times {
		names = append(names, name)
	}
	p.mu.RUnlock()

	sort.Strings(names)

	stats := make([]*Stats, 0, len(names))
	for _, name := range names {
		stats = append(stats, p.GetStats(name))
	}

	return stats
}

// PrintReport writes a formatted timing table
func (p *Profiler) PrintReport(w io.Writer) {
	stats := p.GetAllStats()

	if len(stats) == 0 {
		fmt.Fprintln(w, "No timing data available")
		return
	}

	fmt.Fprintf(w, "⏱️  Performance Profile Report\n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "%-12s %8s %10s %10s %10s %10s %10s\n",
		"Phase", "Count", "Total", "Avg", "Min", "Max", "P95")
	fmt.Fprintf(w, "───────────────────────────────────────────────────────────────\n")

	for _, stat := range stats {
		fmt.Fprintf(w, "%-12s %8d %10s %10s %10s %10s %10s\n",
			stat.Name,
			stat.Count,
			formatDuration(stat.Total),
			formatDuration(stat.Average),
			formatDuration(stat.Min),
			formatDuration(stat.Max),
			formatDuration(stat.P95),
		)
	}

	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════════\n")
}

// formatDuration formats a duration for display
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1e3)
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	default:
		return fmt.Sprintf("%.3fs", d.Seconds())
	}
}
