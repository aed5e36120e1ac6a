package service

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestAutoBackupJob_BurstRunsOnce(t *testing.T) {
	var runs atomic.Int32
	job := NewAutoBackupJob(50*time.Millisecond, func() { runs.Add(1) })
	defer job.Stop()

	job.Trigger()
	job.Trigger()
	job.Trigger()

	time.Sleep(200 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Fatalf("expected exactly 1 run after a burst, got %d", got)
	}
}

func TestAutoBackupJob_EachQuietPeriodRuns(t *testing.T) {
	var runs atomic.Int32
	job := NewAutoBackupJob(30*time.Millisecond, func() { runs.Add(1) })
	defer job.Stop()

	job.Trigger()
	time.Sleep(100 * time.Millisecond)
	job.Trigger()
	time.Sleep(100 * time.Millisecond)

	if got := runs.Load(); got != 2 {
		t.Fatalf("expected 2 runs across separate quiet periods, got %d", got)
	}
}

func TestAutoBackupJob_RunsNeverOverlap(t *testing.T) {
	var active, maxActive, runs atomic.Int32
	job := NewAutoBackupJob(20*time.Millisecond, func() {
		if now := active.Add(1); now > maxActive.Load() {
			maxActive.Store(now)
		}
		time.Sleep(200 * time.Millisecond)
		active.Add(-1)
		runs.Add(1)
	})
	defer job.Stop()

	job.Trigger()
	time.Sleep(50 * time.Millisecond) // first run is now in flight
	job.Trigger()
	time.Sleep(500 * time.Millisecond)

	if got := maxActive.Load(); got != 1 {
		t.Fatalf("expected at most 1 backup run in flight, observed %d", got)
	}
	if got := runs.Load(); got != 2 {
		t.Fatalf("expected a follow-up run after the in-flight one, got %d runs", got)
	}
}

func TestAutoBackupJob_StopWaitsForActiveRun(t *testing.T) {
	var finished atomic.Bool
	started := make(chan struct{})
	job := NewAutoBackupJob(10*time.Millisecond, func() {
		close(started)
		time.Sleep(100 * time.Millisecond)
		finished.Store(true)
	})

	job.Trigger()
	<-started
	job.Stop()

	if !finished.Load() {
		t.Fatal("expected Stop to wait for the active run to finish")
	}
}

func TestAutoBackupJob_StopCancelsPending(t *testing.T) {
	var runs atomic.Int32
	job := NewAutoBackupJob(50*time.Millisecond, func() { runs.Add(1) })

	job.Trigger()
	job.Stop()
	job.Trigger()

	time.Sleep(150 * time.Millisecond)
	if got := runs.Load(); got != 0 {
		t.Fatalf("expected no runs after Stop, got %d", got)
	}
}
