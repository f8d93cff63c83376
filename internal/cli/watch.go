package cli

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
)

// settleDelay is how long the watch command waits for more changes before
// repacking.
const settleDelay = 300 * time.Millisecond

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var opts packOpts
	var f packFlags

	cmd := &cobra.Command{
		Use:   "watch [inputs...]",
		Short: "Repack sprite sheets whenever an input changes",
		Long: `Pack once, then watch the inputs and the project file and repack on every
change. Accepts the same flags as pack.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.resolve(cmd, args, f); err != nil {
				return err
			}
			return runWatch(cmd.Context(), cmd, args, f, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "project file (.toml, .yaml)")
	addPackFlags(cmd, &f)
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, args []string, f packFlags, opts packOpts) error {
	logger := loggerFromContext(ctx)

	dirs, err := watchDirs(opts.inputs)
	if err != nil {
		return err
	}
	if opts.config != "" {
		dirs = append(dirs, filepath.Dir(opts.config))
	}
	filter, err := newOutputFilter(opts)
	if err != nil {
		return err
	}
	// The watcher goroutine reads the filter while a config reload replaces it.
	var outputs atomic.Pointer[outputFilter]
	outputs.Store(filter)
	w, err := newWatcher(watchMatcher(opts.config, func(p string) bool {
		return outputs.Load().Match(p)
	}), dirs...)
	if err != nil {
		return err
	}
	defer w.Close()

	repack := func() {
		res, err := runPack(ctx, opts)
		if err != nil {
			printError("%v", err)
			return
		}
		printPackResult(res)
	}

	repack()
	printInfo("Watching %d directories, press Ctrl+C to stop", len(dirs))

	var timer <-chan time.Time
	configChanged := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			logger.Debug("change detected", "path", path)
			if opts.config != "" && filepath.Base(path) == filepath.Base(opts.config) {
				configChanged = true
			}
			timer = time.After(settleDelay)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-timer:
			timer = nil
			if configChanged {
				configChanged = false
				next := packOpts{config: opts.config}
				if err := next.resolve(cmd, args, f); err != nil {
					printError("%v", err)
					continue
				}
				if filter, err := newOutputFilter(next); err == nil {
					outputs.Store(filter)
				}
				opts = next
			}
			repack()
		}
	}
}
