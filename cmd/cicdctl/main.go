package main

import (
	"context"
	"io"
	"os"

	"github.com/aws/jsii-runtime-go"
	"github.com/rs/zerolog"

	"github.com/30Piraten/cicd-pipeline/cmd/cicdctl/commands"
	"github.com/30Piraten/cicd-pipeline/internal/logging"
)

func main() {
	logger := logging.New(os.Stderr)

	err := run(logger.WithContext(context.Background()), &logger, os.Stdout, os.Args)
	jsii.Close()
	if err != nil {
		logger.Error().Err(err).Msg("Application error")
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zerolog.Logger, out io.Writer, args []string) error {
	app := commands.NewApp(logger)
	app.Writer = out
	return app.RunContext(ctx, args)
}
