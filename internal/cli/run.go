package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/calvinalkan/tododiff/internal/config"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string) int {
	if len(args) < minArgs {
		printUsage(out)

		return 0
	}

	// Parse global flags
	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	// Load and validate config
	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: flags.workDir,
		ConfigPath:      flags.configPath,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut)

		return 1
	}

	if len(flags.remaining) == 0 {
		printUsage(out)

		return 0
	}

	name := flags.remaining[0]

	// Handle help flags
	if name == "-h" || name == helpFlag {
		printUsage(out)

		return 0
	}

	// Create IO for command
	ioCtx := NewIO(in, out, errOut)

	var cmd *Command

	switch name {
	case "diff":
		cmd = newDiffCommand(cfg, env)
	case "merge":
		cmd = newMergeCommand(cfg)
	case "print-config":
		cmd = newPrintConfigCommand(cfg)
	default:
		fprintln(errOut, "error: unknown command:", name)
		printUsage(errOut)

		return 1
	}

	return cmd.Run(context.Background(), ioCtx, flags.remaining[1:])
}

type globalFlags struct {
	workDir    string
	configPath string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if arg == "-C" || arg == "--cwd" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", ErrFlagRequiresArg, arg)
		}

		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", ErrFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", ErrUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(writer io.Writer) {
	fprintln(writer, `tododiff - semantic diff and merge for todo.txt files

Usage: tododiff [options] <command> [args]

Options:
  -C, --cwd <dir>    Run as if started in <dir>
  -c, --config       Use specified config file

Commands:
  diff <old-file> <new-file>         Show semantic changes between two task lists
  merge <base> <left> <right>        Three-way merge of task lists
  print-config                       Show resolved configuration`)
}
