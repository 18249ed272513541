// Package sideeffect runs non-critical work (emails, notifications, room
// broadcasts) next to a primary workflow. A failed effect never fails the
// workflow; its outcome is returned as a Result and logged in one place.
package sideeffect

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cerberus-dev/cerberus/internal/shared/goroutine"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
)

// Result is the outcome of one side effect.
type Result struct {
	Name     string
	OK       bool
	Reason   string
	Duration time.Duration
}

func Success(name string) Result {
	return Result{Name: name, OK: true}
}

func Failure(name string, err error) Result {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	return Result{Name: name, OK: false, Reason: reason}
}

// Err converts a failed result back into an error.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return fmt.Errorf("%s: %s", r.Name, r.Reason)
}

// Func is a unit of best-effort work.
type Func func(ctx context.Context) error

// Run executes fn, converting errors and panics into a Result.
func Run(ctx context.Context, name string, fn Func) (res Result) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			res = Result{Name: name, OK: false, Reason: fmt.Sprintf("panic: %v", p)}
		}
		res.Duration = time.Since(start)
	}()
	if err := fn(ctx); err != nil {
		return Failure(name, err)
	}
	return Success(name)
}

// Report logs a result. Failures are warnings, never errors: the primary
// workflow already succeeded.
func Report(log logger.Interface, res Result) {
	if res.OK {
		log.Debugw("side effect completed", "effect", res.Name, "duration", res.Duration)
		return
	}
	log.Warnw("side effect failed", "effect", res.Name, "reason", res.Reason, "duration", res.Duration)
}

// Runner dispatches side effects.
type Runner interface {
	Go(ctx context.Context, name string, fn Func)
}

// AsyncRunner runs each effect on its own goroutine with a context detached
// from the request, so a disconnecting client does not cancel it.
type AsyncRunner struct {
	log     logger.Interface
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAsyncRunner(log logger.Interface, timeout time.Duration) *AsyncRunner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AsyncRunner{log: log.Named("sideeffect"), timeout: timeout}
}

func (r *AsyncRunner) Go(ctx context.Context, name string, fn Func) {
	detached := context.WithoutCancel(ctx)
	r.wg.Add(1)
	goroutine.SafeGo(r.log, name, func() {
		defer r.wg.Done()
		runCtx, cancel := context.WithTimeout(detached, r.timeout)
		defer cancel()
		Report(r.log, Run(runCtx, name, fn))
	})
}

// Wait blocks until in-flight effects finish or ctx is done.
func (r *AsyncRunner) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SyncRunner runs effects inline and records their results.
type SyncRunner struct {
	log     logger.Interface
	mu      sync.Mutex
	results []Result
}

func NewSyncRunner(log logger.Interface) *SyncRunner {
	return &SyncRunner{log: log}
}

func (r *SyncRunner) Go(ctx context.Context, name string, fn Func) {
	res := Run(ctx, name, fn)
	Report(r.log, res)
	r.mu.Lock()
	r.results = append(r.results, res)
	r.mu.Unlock()
}

// Results returns a copy of everything run so far.
func (r *SyncRunner) Results() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Result, len(r.results))
	copy(out, r.results)
	return out
}

// Names lists the effects run so far, in order.
func (r *SyncRunner) Names() []string {
	res := r.Results()
	names := make([]string, len(res))
	for i, x := range res {
		names[i] = x.Name
	}
	return names
}
