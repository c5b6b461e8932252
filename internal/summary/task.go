package summary

import "context"

// Task is a single in-flight breakdown computation. Callers cancel it
// through the context they passed in; the snapshot it produces replaces
// any previous one wholesale. Concurrent tasks for the same user are not
// deduplicated and race to deliver.
type Task struct {
	done  chan struct{}
	items []BreakdownItem
	err   error
}

func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the computation finishes or ctx is cancelled.
func (t *Task) Wait(ctx context.Context) ([]BreakdownItem, error) {
	select {
	case <-t.done:
		return t.items, t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result reports the outcome once Done is closed.
func (t *Task) Result() ([]BreakdownItem, error) {
	select {
	case <-t.done:
		return t.items, t.err
	default:
		return nil, context.Canceled
	}
}

// BreakdownAsync starts a breakdown computation in the background and
// returns a handle to it. Cancelling ctx aborts the store reads; the task
// still completes with the cancellation error rather than leaking.
func (s *Service) BreakdownAsync(ctx context.Context, userID string, month Month) *Task {
	task := &Task{done: make(chan struct{})}
	go func() {
		defer close(task.done)
		task.items, task.err = s.Breakdown(ctx, userID, month)
	}()
	return task
}
