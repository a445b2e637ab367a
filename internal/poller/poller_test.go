// CubeSat Console - Satellite Imagery Capture and Orbit Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cubesat-console

package poller

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/cubesat-console/internal/config"
	"github.com/tomtom215/cubesat-console/internal/controller"
	"github.com/tomtom215/cubesat-console/internal/logging"
	"github.com/tomtom215/cubesat-console/internal/metrics"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{Level: "error", Format: "console", Output: io.Discard})
}

type fakeRefresher struct {
	calls atomic.Int32
	count int
	err   error
}

func (f *fakeRefresher) RefreshScene(ctx context.Context) (*controller.Scene, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &controller.Scene{Count: f.count}, nil
}

func TestNew_DefaultInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		want     time.Duration
	}{
		{"configured", 5 * time.Second, 5 * time.Second},
		{"zero", 0, DefaultInterval},
		{"negative", -time.Second, DefaultInterval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(&fakeRefresher{}, config.PollerConfig{Enabled: true, Interval: tt.interval})
			if p.Interval() != tt.want {
				t.Errorf("Interval() = %v, want %v", p.Interval(), tt.want)
			}
		})
	}
}

func TestPoller_Serve(t *testing.T) {
	src := &fakeRefresher{count: 3}
	p := New(src, config.PollerConfig{Enabled: true, Interval: 10 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 55*time.Millisecond)
	defer cancel()

	err := p.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() error = %v, want context.DeadlineExceeded", err)
	}
	if got := src.calls.Load(); got < 2 {
		t.Errorf("RefreshScene called %d times, want at least 2", got)
	}
	if got := testutil.ToFloat64(metrics.PollerSatellites); got != 3 {
		t.Errorf("PollerSatellites = %v, want 3", got)
	}
}

func TestPoller_FailedRunKeepsPolling(t *testing.T) {
	src := &fakeRefresher{err: errors.New("publish failed")}
	p := New(src, config.PollerConfig{Enabled: true, Interval: 10 * time.Millisecond})
	before := testutil.ToFloat64(metrics.PollerRuns.WithLabelValues("failure"))

	ctx, cancel := context.WithTimeout(context.Background(), 35*time.Millisecond)
	defer cancel()
	_ = p.Serve(ctx)

	calls := src.calls.Load()
	if calls < 2 {
		t.Errorf("RefreshScene called %d times, want at least 2", calls)
	}
	if got := testutil.ToFloat64(metrics.PollerRuns.WithLabelValues("failure")) - before; got != float64(calls) {
		t.Errorf("failure runs = %v, want %d", got, calls)
	}
}

func TestPoller_String(t *testing.T) {
	if got := New(&fakeRefresher{}, config.PollerConfig{}).String(); got != "position-poller" {
		t.Errorf("String() = %q", got)
	}
}
