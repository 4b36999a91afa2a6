package services

import (
	"context"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// JobRunner runs fire-and-forget background work (AI calls, simulated model
// runs) bounded by a concurrency limit. Jobs get the runner's base context,
// not the request's, so they outlive the HTTP request that started them and
// stop when the process shuts down.
type JobRunner struct {
	ctx context.Context
	g   errgroup.Group
}

// NewJobRunner creates a new JobRunner. limit <= 0 means unbounded.
func NewJobRunner(ctx context.Context, limit int) *JobRunner {
	r := &JobRunner{ctx: ctx}
	if limit > 0 {
		r.g.SetLimit(limit)
	}
	return r
}

// TryGo starts fn unless the runner is at its limit. It reports whether fn was started.
func (r *JobRunner) TryGo(name string, fn func(ctx context.Context)) bool {
	started := r.g.TryGo(func() error {
		defer func() {
			if p := recover(); p != nil {
				log.Errorf("job %s panicked: %v", name, p)
			}
		}()
		fn(r.ctx)
		return nil
	})
	if !started {
		log.Warnf("job %s rejected: runner at capacity", name)
	}
	return started
}

// Wait blocks until every started job has returned.
func (r *JobRunner) Wait() {
	_ = r.g.Wait()
}
