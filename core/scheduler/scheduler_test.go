package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingRunner struct {
	runs int
}

func (r *countingRunner) Run(_ context.Context) error {
	r.runs++
	return nil
}

func TestStart_Disabled(t *testing.T) {
	runner := &countingRunner{}
	s := New(Config{Enabled: false, IntervalHours: 6}, runner, zap.NewNop())

	done := make(chan struct{})
	go func() {
		s.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled scheduler did not return immediately")
	}
	assert.Zero(t, runner.runs)
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	runner := &countingRunner{}
	s := New(Config{Enabled: true, IntervalHours: 6}, runner, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on context cancellation")
	}
	assert.Zero(t, runner.runs)
}
