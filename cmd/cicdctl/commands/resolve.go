package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/30Piraten/cicd-pipeline/config"
)

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"o"},
		Usage:   "Output format (json or yaml)",
		Value:   formatJSON,
	}
}

// ResolveCommand prints the decisions derived from the options file.
func ResolveCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Print the resolved hosting, branch, buildspec and distribution decisions",
		Flags: []cli.Flag{formatFlag()},
		Action: func(c *cli.Context) error {
			resolved, err := loadResolved(c)
			if err != nil {
				return err
			}
			logger.Debug().Str("prefix", resolved.Prefix).Msg("Resolved pipeline options")
			return write(c.App.Writer, c.String("format"), resolved)
		},
	}
}

// ValidateCommand fails when a required option is missing.
func ValidateCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check the options file for missing required fields",
		Action: func(c *cli.Context) error {
			opts, err := loadOptions(c)
			if err != nil {
				return err
			}
			if _, err := config.Resolve(opts); err != nil {
				return err
			}
			logger.Info().Str("config", c.String(flagConfig)).Msg("Options are valid")
			_, err = fmt.Fprintln(c.App.Writer, "ok")
			return err
		},
	}
}
