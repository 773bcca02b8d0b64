package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/30Piraten/cicd-pipeline/config"
	"github.com/30Piraten/cicd-pipeline/internal/logging"
	"github.com/30Piraten/cicd-pipeline/stack"
)

func main() {
	defer jsii.Close()

	logger := logging.New(os.Stderr)

	// Load .env variables one time
	if err := config.LoadDotEnv(); err != nil {
		logger.Fatal().Err(err).Msg(".env file could not be loaded")
	}

	path := os.Getenv("CICD_CONFIG")
	if path == "" {
		path = config.DefaultPath
	}
	opts, err := config.Load(path)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load pipeline options")
	}
	opts = config.ApplyEnv(opts, os.LookupEnv)

	logger.Info().
		Str("config", path).
		Str("prefix", opts.Prefix).
		Bool("cloudFront", opts.UseCloudFront).
		Bool("s3Hosting", opts.UseS3Hosting).
		Msg("Executing stack with options")

	app := awscdk.NewApp(nil)
	if _, err := stack.New(app, "CICDStack", &stack.Props{
		StackProps: awscdk.StackProps{
			Env: env(),
		},
		Options: opts,
	}); err != nil {
		logger.Fatal().Err(err).Msg("Invalid pipeline options")
	}

	app.Synth(nil)
}

func env() *awscdk.Environment {
	stackEnv := config.ResolveStackEnv(os.LookupEnv)
	out := &awscdk.Environment{
		Region: jsii.String(stackEnv.Region),
	}
	if stackEnv.Account != "" {
		out.Account = jsii.String(stackEnv.Account)
	}
	return out
}
