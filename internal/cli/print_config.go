package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/tododiff/internal/config"
)

func newPrintConfigCommand(cfg config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			formatted, err := config.Format(cfg)
			if err != nil {
				return err
			}

			o.Println(formatted)

			// Print sources
			o.Println("")
			o.Println("# Sources:")

			if cfg.Sources.Global != "" {
				o.Println("#   global:", cfg.Sources.Global)
			}

			if cfg.Sources.Project != "" {
				o.Println("#   project:", cfg.Sources.Project)
			}

			if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
				o.Println("#   (using defaults only)")
			}

			return nil
		},
	}
}
