package profiler

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfilerStats(t *testing.T) {
	p := NewProfiler()
	for _, ms := range []int{4, 1, 3, 2} {
		p.Record(PhaseClassify, time.Duration(ms)*time.Millisecond)
	}

	stats := p.GetStats(PhaseClassify)
	assert.Equal(t, 4, stats.Count)
	assert.Equal(t, 10*time.Millisecond, stats.Total)
	assert.Equal(t, time.Millisecond, stats.Min)
	assert.Equal(t, 4*time.Millisecond, stats.Max)
	assert.Equal(t, 3*time.Millisecond, stats.Median)

	assert.Equal(t, 0, p.GetStats("missing").Count)
}

func TestNilProfilerRecordsNothing(t *testing.T) {
	var p *Profiler

	timer := p.Start(PhaseFit)
	assert.GreaterOrEqual(t, timer.Stop(), time.Duration(0))
	assert.Nil(t, p.GetAllStats())

	var buf bytes.Buffer
	p.PrintReport(&buf)
	assert.Contains(t, buf.String(), "No timing data")
}

func TestPrintReport(t *testing.T) {
	p := NewProfiler()
	p.Start(PhaseTrain).Stop()
	p.Record(PhaseFit, 2*time.Second)

	var buf bytes.Buffer
	p.PrintReport(&buf)

	out := buf.String()
	assert.Contains(t, out, "train")
	assert.Contains(t, out, "2.000s")
}
