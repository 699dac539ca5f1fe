package async

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// Task is one unit of work run by Join
type Task func(ctx context.Context) error

// Join runs all tasks concurrently and waits for every one of them to
// finish. The first error is returned and cancels the context passed to
// the remaining tasks. A panicking task is reported as an error.
func Join(ctx context.Context, tasks ...Task) error {
	eg, ctx := errgroup.WithContext(ctx)

	for i, task := range tasks {
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = goerr.New("panic in joined task",
						goerr.V("task", i),
						goerr.V("recover", fmt.Sprint(r)),
						goerr.V("stack", string(debug.Stack())),
					)
				}
			}()
			return task(ctx)
		})
	}

	return eg.Wait()
}
