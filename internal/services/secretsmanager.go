package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type SecretsManagerAPI interface {
	DescribeSecret(ctx context.Context, params *secretsmanager.DescribeSecretInput,
		optFns ...func(*secretsmanager.Options)) (*secretsmanager.DescribeSecretOutput, error)
}

type SecretInfo struct {
	Name string `json:"name"`
	ARN  string `json:"arn"`
}

// SecretsService checks that the GitHub token secret exists. It never reads
// the secret value.
type SecretsService struct {
	client SecretsManagerAPI
}

func NewSecretsService(client SecretsManagerAPI) *SecretsService {
	return &SecretsService{client: client}
}

func (s *SecretsService) Check(ctx context.Context, name string) (SecretInfo, error) {
	out, err := s.client.DescribeSecret(ctx, &secretsmanager.DescribeSecretInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		if errorCode(err) == "ResourceNotFoundException" {
			return SecretInfo{}, fmt.Errorf("%w: %s", ErrSecretNotFound, name)
		}
		return SecretInfo{}, fmt.Errorf("failed to describe secret %s: %w", name, err)
	}
	if out.DeletedDate != nil {
		return SecretInfo{}, fmt.Errorf("%w: %s is scheduled for deletion", ErrSecretNotFound, name)
	}

	return SecretInfo{
		Name: aws.ToString(out.Name),
		ARN:  aws.ToString(out.ARN),
	}, nil
}
