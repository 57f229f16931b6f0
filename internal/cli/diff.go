package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tododiff/internal/changes"
	"github.com/calvinalkan/tododiff/internal/config"
	"github.com/calvinalkan/tododiff/internal/render"
	"github.com/calvinalkan/tododiff/internal/todotxt"
)

func newDiffCommand(cfg config.Config, env map[string]string) *Command {
	flags := flag.NewFlagSet("diff", flag.ContinueOnError)
	similarity := flags.Int("similarity", cfg.Similarity, "subject similarity threshold in percent (0-100); higher is more restrictive")
	colorMode := flags.String("color", cfg.Color, "colorize output: auto, always or never")

	return &Command{
		Flags: flags,
		Usage: "diff <old-file> <new-file>",
		Short: "Show semantic changes between two task lists",
		Long: `Compare two snapshots of a todo.txt file and report what changed,
grouped into new, deleted, completed and changed tasks. Tasks are
paired by subject similarity; recurring tasks completed several times
between the snapshots are folded into one chain.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("%w: diff takes an old and a new file", ErrWrongArgCount)
			}

			run := cfg
			run.Similarity = *similarity
			run.Color = *colorMode

			if err := config.Validate(run); err != nil {
				return err
			}

			from, err := todotxt.ReadFile(resolvePath(run.EffectiveCwd, args[0]))
			if err != nil {
				return err
			}

			to, err := todotxt.ReadFile(resolvePath(run.EffectiveCwd, args[1]))
			if err != nil {
				return err
			}

			// The engine takes the allowed divergence, the inverse of
			// the user-facing similarity threshold.
			changeset := changes.ComputeChangeset(from, to, 100-run.Similarity)
			o.Printf("%s", render.Changeset(changeset, shouldColorize(run.Color, o.Out(), env)))

			return nil
		},
	}
}

func resolvePath(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}

// shouldColorize decides color use for "auto": stdout must be a
// terminal and TERM must not be dumb.
func shouldColorize(mode string, out io.Writer, env map[string]string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}

	file, ok := out.(*os.File)
	if !ok {
		return false
	}

	if env["TERM"] == "dumb" {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
