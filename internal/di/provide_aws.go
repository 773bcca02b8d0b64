package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/30Piraten/cicd-pipeline/internal/services"
)

var core = []any{
	ProvideAWSConfig,
	ProvideCodePipelineClient,
	ProvideS3Client,
	ProvideSecretsManagerClient,
	services.NewPipelineService,
	services.NewBucketService,
	services.NewSecretsService,
}

func ProvideAWSConfig(ctx context.Context, region Region, profile Profile) (aws.Config, error) {
	var loadOpts []func(*config.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, config.WithRegion(string(region)))
	}
	if profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(string(profile)))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

func ProvideCodePipelineClient(cfg aws.Config) services.CodePipelineAPI {
	return codepipeline.NewFromConfig(cfg)
}

func ProvideS3Client(cfg aws.Config) s3.ListObjectsV2APIClient {
	return s3.NewFromConfig(cfg)
}

func ProvideSecretsManagerClient(cfg aws.Config) services.SecretsManagerAPI {
	return secretsmanager.NewFromConfig(cfg)
}
