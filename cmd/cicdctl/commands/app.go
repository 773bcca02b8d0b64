package commands

import (
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/30Piraten/cicd-pipeline/config"
)

const (
	flagConfig  = "config"
	flagEnvFile = "env-file"
	flagRegion  = "region"
	flagProfile = "profile"
)

// NewApp returns the cicdctl command line application.
func NewApp(logger *zerolog.Logger) *cli.App {
	return &cli.App{
		Name:  "cicdctl",
		Usage: "Resolve, synthesize and inspect the S3 deploy pipeline",
		Description: `cicdctl works with the pipeline declared from cdk-variables.json.

This tool provides commands for:
  - Resolving and validating the pipeline options
  - Synthesizing the CloudFormation template
  - Checking the GitHub token secret, pipeline state and deployed objects`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "Pipeline options file (.json, .yaml or .yml)",
				Value:   config.DefaultPath,
				EnvVars: []string{"CICD_CONFIG"},
			},
			&cli.StringFlag{
				Name:  flagEnvFile,
				Usage: "Optional .env file with environment overrides",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:    flagRegion,
				Usage:   "AWS region",
				EnvVars: []string{"AWS_REGION"},
			},
			&cli.StringFlag{
				Name:    flagProfile,
				Usage:   "AWS shared config profile",
				EnvVars: []string{"AWS_PROFILE"},
			},
		},
		Commands: []*cli.Command{
			ResolveCommand(logger),
			ValidateCommand(logger),
			SynthCommand(logger),
			StatusCommand(logger),
			SecretCommand(logger),
			ObjectsCommand(logger),
		},
	}
}

// loadOptions reads the options file and applies .env and environment
// overrides.
func loadOptions(c *cli.Context) (config.PipelineOptions, error) {
	if err := config.LoadDotEnv(c.String(flagEnvFile)); err != nil {
		return config.PipelineOptions{}, err
	}

	opts, err := config.Load(c.String(flagConfig))
	if err != nil {
		return config.PipelineOptions{}, err
	}
	return config.ApplyEnv(opts, nil), nil
}

func loadResolved(c *cli.Context) (config.Resolved, error) {
	opts, err := loadOptions(c)
	if err != nil {
		return config.Resolved{}, err
	}
	return config.Resolve(opts)
}
