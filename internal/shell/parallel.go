package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// Parallel runs every command concurrently, one goroutine per command, and
// waits for all of them before returning. The result for commands[i] is
// always written to slot i regardless of completion order, and a failing
// command never discards sibling results: every slot is populated, and the
// returned error aggregates the individual failures.
//
// There is no concurrency cap. Pod sizes are small (tens of workers), so
// one local subprocess per host is fine; callers with pathological inputs
// must bound the call themselves.
func Parallel(ctx context.Context, runner Runner, commands [][]string, opts Options) ([]Result, error) {
	results := make([]Result, len(commands))

	var g errgroup.Group
	for i, argv := range commands {
		i, argv := i, argv
		g.Go(func() error {
			results[i] = runner.Run(ctx, argv, opts)
			return results[i].Err
		})
	}
	// Wait reports only the first failure; the full picture is assembled
	// from the result slots below.
	_ = g.Wait()

	var merr *multierror.Error
	for _, res := range results {
		if res.Err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", strings.Join(res.Command, " "), res.Err))
		}
	}
	return results, merr.ErrorOrNil()
}
