package service

import (
	"sync"
	"time"
)

// AutoBackupJob is a single-timer debounce around one backup function.
// Every Trigger cancels the pending timer and starts a fresh quiet period,
// so a burst of writes collapses into one backup once the burst ends. There
// is no queue: at most one pending timer exists at any moment, and runs
// never overlap. A timer firing while a run is still in flight marks the
// job for one follow-up run instead of starting a second one.
type AutoBackupJob struct {
	mu       sync.Mutex
	debounce time.Duration
	run      func()
	timer    *time.Timer
	running  bool
	rerun    bool
	stopped  bool
	inFlight sync.WaitGroup
}

// NewAutoBackupJob builds a job that calls run after debounce of quiet time
// following the last Trigger.
func NewAutoBackupJob(debounce time.Duration, run func()) *AutoBackupJob {
	return &AutoBackupJob{
		debounce: debounce,
		run:      run,
	}
}

// Trigger (re)arms the quiet-period timer. Safe to call from any
// goroutine; calls after Stop are ignored.
func (j *AutoBackupJob) Trigger() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.stopped {
		return
	}
	if j.timer != nil {
		j.timer.Stop()
	}
	j.timer = time.AfterFunc(j.debounce, j.execute)
}

// execute runs the backup function, holding the single in-flight slot.
// If a run is already active the call only records that one more run is
// owed; the active run picks it up before releasing the slot.
func (j *AutoBackupJob) execute() {
	j.mu.Lock()
	if j.stopped {
		j.mu.Unlock()
		return
	}
	if j.running {
		j.rerun = true
		j.mu.Unlock()
		return
	}
	j.running = true
	j.inFlight.Add(1)
	j.mu.Unlock()

	for {
		j.run()

		j.mu.Lock()
		if j.stopped || !j.rerun {
			j.running = false
			j.rerun = false
			j.inFlight.Done()
			j.mu.Unlock()
			return
		}
		j.rerun = false
		j.mu.Unlock()
	}
}

// Stop cancels any pending timer, disables further triggers and waits for
// an active run to finish.
func (j *AutoBackupJob) Stop() {
	j.mu.Lock()
	j.stopped = true
	if j.timer != nil {
		j.timer.Stop()
		j.timer = nil
	}
	j.mu.Unlock()

	j.inFlight.Wait()
}
