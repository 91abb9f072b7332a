// Package scheduler provides the periodic trigger for device sync runs.
//
// It drives a Runner on a fixed interval and serializes executions: a tick is
// only consumed after the previous run has finished, so at most one sync run
// is ever in flight. The sync engine itself does not guard against
// overlapping runs; this trigger is where that responsibility lives.
package scheduler
