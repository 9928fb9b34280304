// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launch

import "context"

// Worker runs a function in the background.
type Worker struct {
	done chan struct{}
	err  error
}

// Start runs fn on a new [Worker]. The function must return once the context
// is done.
func Start(ctx context.Context, fn func(context.Context) error) *Worker {
	w := &Worker{done: make(chan struct{})}

	go func() {
		defer close(w.done)

		w.err = fn(ctx)
	}()

	return w
}

// Done returns a channel that is closed once the worker function returned.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Wait blocks until the worker function returned and returns its error.
func (w *Worker) Wait() error {
	<-w.done
	return w.err
}
