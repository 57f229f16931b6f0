package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tododiff/internal/config"
	"github.com/calvinalkan/tododiff/internal/merge"
	"github.com/calvinalkan/tododiff/internal/todotxt"
)

func newMergeCommand(cfg config.Config) *Command {
	flags := flag.NewFlagSet("merge", flag.ContinueOnError)
	similarity := flags.Int("similarity", cfg.Similarity, "subject similarity threshold in percent (0-100); higher is more restrictive")
	output := flags.StringP("output", "o", "", "write the merged list to this file instead of stdout")
	interactive := flags.Bool("interactive", false, "resolve conflicts at an interactive prompt")

	return &Command{
		Flags: flags,
		Usage: "merge <base> <left> <right>",
		Short: "Three-way merge of task lists",
		Long: `Merge two divergent versions of a todo.txt file against their common
ancestor. Tasks changed on only one side merge cleanly; tasks changed
on both sides produce conflict blocks. A merge with remaining
conflicts exits with status 1.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) != 3 {
				return fmt.Errorf("%w: merge takes a base, a left and a right file", ErrWrongArgCount)
			}

			run := cfg
			run.Similarity = *similarity

			if err := config.Validate(run); err != nil {
				return err
			}

			snapshots := make([][]todotxt.Task, len(args))

			for i, arg := range args {
				tasks, err := todotxt.ReadFile(resolvePath(run.EffectiveCwd, arg))
				if err != nil {
					return err
				}

				snapshots[i] = tasks
			}

			results := merge.ThreeWay(snapshots[0], snapshots[1], snapshots[2], 100-run.Similarity)

			if *interactive && !merge.Successful(results) {
				var err error

				results, err = resolveInteractively(o, results)
				if err != nil {
					return err
				}
			}

			text := merge.Encode(results) + "\n"

			if *output != "" {
				path := resolvePath(run.EffectiveCwd, *output)
				if err := atomic.WriteFile(path, strings.NewReader(text)); err != nil {
					return fmt.Errorf("cannot write %s: %w", *output, err)
				}
			} else {
				o.Printf("%s", text)
			}

			if !merge.Successful(results) {
				return ErrUnresolvedConflicts
			}

			return nil
		},
	}
}

// resolveInteractively walks the conflict blocks and asks, per
// conflict, which side to keep. Unrecognized answers keep the conflict.
func resolveInteractively(o *IO, results []merge.Result) ([]merge.Result, error) {
	prompt := liner.NewLiner()
	defer func() { _ = prompt.Close() }()

	prompt.SetCtrlCAborts(true)

	var resolved []merge.Result

	for _, result := range results {
		if result.Kind != merge.Conflict {
			resolved = append(resolved, result)
			continue
		}

		o.Println(merge.Encode([]merge.Result{result}))

		answer, err := prompt.Prompt("keep [l]eft, [r]ight, [b]oth, [a]ncestor or [s]kip? ")
		if err != nil {
			return nil, fmt.Errorf("interactive resolution aborted: %w", err)
		}

		var keep []todotxt.Task

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "l", "left":
			keep = result.Left
		case "r", "right":
			keep = result.Right
		case "b", "both":
			keep = append(append([]todotxt.Task{}, result.Left...), result.Right...)
		case "a", "ancestor":
			keep = []todotxt.Task{result.Ancestor}
		default:
			resolved = append(resolved, result)
			continue
		}

		for _, task := range keep {
			resolved = append(resolved, merge.Result{Kind: merge.Merged, Task: task})
		}
	}

	return resolved, nil
}
