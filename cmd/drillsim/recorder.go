package main

import (
	"context"
	"time"

	"github.com/deepdrill/drillsim/internal/core/event"
	"github.com/deepdrill/drillsim/internal/persist"
	"go.uber.org/zap"
)

const (
	recordBatch = 10
	maxPending  = 10 * recordBatch // oldest runs are dropped past this while writes fail
)

// runStore is the part of persist.RunRepo the recorder writes through.
type runStore interface {
	Record(ctx context.Context, rows []persist.RunRow) error
}

// recorder buffers finished runs and writes them in batches. A nil repo
// keeps nothing.
type recorder struct {
	repo    runStore
	seed    int64
	pending []persist.RunRow
	dropped int
	log     *zap.Logger
}

func newRecorder(repo runStore, seed int64, log *zap.Logger) *recorder {
	return &recorder{repo: repo, seed: seed, log: log}
}

func (r *recorder) add(s event.RunSummary) {
	if r.repo == nil {
		return
	}
	r.pending = append(r.pending, persist.RunRowFromSummary(r.seed, s))
	if over := len(r.pending) - maxPending; over > 0 {
		r.pending = append(r.pending[:0], r.pending[over:]...)
		r.dropped += over
		r.log.Warn("run history backlog full, dropping oldest", zap.Int("dropped", r.dropped))
	}
}

func (r *recorder) flushIfFull() {
	if len(r.pending) >= recordBatch {
		r.flush()
	}
}

func (r *recorder) flush() {
	if r.repo == nil || len(r.pending) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.repo.Record(ctx, r.pending); err != nil {
		// Keep the batch; the next flush retries it.
		r.log.Error("record runs", zap.Int("runs", len(r.pending)), zap.Error(err))
		return
	}
	r.log.Debug("recorded runs", zap.Int("runs", len(r.pending)))
	r.pending = r.pending[:0]
}
