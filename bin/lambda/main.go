package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"

	"github.com/30Piraten/cicd-pipeline/internal/invalidator"
	"github.com/30Piraten/cicd-pipeline/internal/logging"
)

func main() {
	logger := logging.New(os.Stdout)

	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load AWS config")
	}

	handler, err := invalidator.New(
		cloudfront.NewFromConfig(cfg),
		os.Getenv("DISTRIBUTION_ID"),
		invalidator.ParsePaths(os.Getenv("INVALIDATION_PATHS")),
		logger,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create invalidation handler")
	}

	lambda.Start(handler.Handle)
}
