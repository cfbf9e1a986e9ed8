package reaction

import "context"

// Task is the handle for one dispatched reaction request. Tests and callers
// can await Done and then inspect Err.
type Task struct {
	done chan struct{}
	err  error
}

func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err reports the request outcome. Only meaningful after Done is closed.
func (t *Task) Err() error {
	return t.err
}

// Dispatcher runs a reaction request in the background and hands back a task
// handle, so the side effect stays awaitable without the toggle waiting on it.
type Dispatcher interface {
	Dispatch(op func(context.Context) error) *Task
}

// GoDispatcher runs each request on its own goroutine with a background
// context: dismissing the overlay does not cancel an in-flight request.
type GoDispatcher struct{}

func (GoDispatcher) Dispatch(op func(context.Context) error) *Task {
	task := &Task{done: make(chan struct{})}
	go func() {
		defer close(task.done)
		task.err = op(context.Background())
	}()
	return task
}

// SyncDispatcher runs the request inline. Used by tests to make reaction side
// effects deterministic.
type SyncDispatcher struct{}

func (SyncDispatcher) Dispatch(op func(context.Context) error) *Task {
	task := &Task{done: make(chan struct{})}
	task.err = op(context.Background())
	close(task.done)
	return task
}
