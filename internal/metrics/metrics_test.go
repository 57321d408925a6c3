package metrics

import (
	"errors"
	"testing"
	"time"
)

type captureBackend struct {
	counters   map[string]float64
	histograms int
	flushed    bool
}

func (c *captureBackend) IncCounter(name string, delta float64, labels Labels) {
	if c.counters == nil {
		c.counters = map[string]float64{}
	}
	c.counters[name+"/"+labels["table"]+"/"+labels["kind"]+"/"+labels["stage"]+"/"+labels["status"]] += delta
}

func (c *captureBackend) ObserveHistogram(name string, value float64, labels Labels) {
	c.histograms++
}

func (c *captureBackend) Flush() error {
	c.flushed = true
	return nil
}

func TestRecordRows(t *testing.T) {
	be := &captureBackend{}
	SetBackend(be)
	defer SetBackend(nopBackend{})

	RecordRows("purchases", "loaded", 9)
	RecordRows("purchases", "loaded", 1)
	RecordRows("purchases", "clean_dropped", 0) // no-op

	if got := be.counters["spendstats_rows_total/purchases/loaded//"]; got != 10 {
		t.Fatalf("loaded counter=%v want 10", got)
	}
	if len(be.counters) != 1 {
		t.Fatalf("zero-delta record must not emit: %v", be.counters)
	}
}

func TestRecordStage(t *testing.T) {
	be := &captureBackend{}
	SetBackend(be)
	defer SetBackend(nopBackend{})

	RecordStage("join", nil, time.Millisecond)
	RecordStage("join", errors.New("boom"), time.Millisecond)

	if got := be.counters["spendstats_stage_total///join/success"]; got != 1 {
		t.Fatalf("success counter=%v want 1", got)
	}
	if got := be.counters["spendstats_stage_total///join/failure"]; got != 1 {
		t.Fatalf("failure counter=%v want 1", got)
	}
	if be.histograms != 2 {
		t.Fatalf("histograms=%d want 2", be.histograms)
	}
}

func TestNopDefaultAndFlush(t *testing.T) {
	SetBackend(nil) // nil keeps the current backend
	if err := Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
}
