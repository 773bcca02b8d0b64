// Package invalidator clears the CloudFront cache once a pipeline execution
// has deployed new content to the bucket.
package invalidator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
)

const StateSucceeded = "SUCCEEDED"

var (
	ErrDistributionRequired = errors.New("DISTRIBUTION_ID environment variable is required")
	ErrInvalidEvent         = errors.New("invalid pipeline state change event")
)

// CloudFrontAPI is the subset of the CloudFront client the handler uses.
type CloudFrontAPI interface {
	CreateInvalidation(ctx context.Context, params *cloudfront.CreateInvalidationInput,
		optFns ...func(*cloudfront.Options)) (*cloudfront.CreateInvalidationOutput, error)
}

// ExecutionDetail is the detail of a "CodePipeline Pipeline Execution State
// Change" event.
type ExecutionDetail struct {
	Pipeline    string `json:"pipeline"`
	ExecutionID string `json:"execution-id"`
	State       string `json:"state"`
}

type Result struct {
	Skipped        bool   `json:"skipped"`
	InvalidationID string `json:"invalidationId,omitempty"`
}

type Handler struct {
	client         CloudFrontAPI
	distributionID string
	paths          []string
	logger         zerolog.Logger
	newReference   func() string
}

func New(client CloudFrontAPI, distributionID string, paths []string, logger zerolog.Logger) (*Handler, error) {
	if distributionID == "" {
		return nil, ErrDistributionRequired
	}
	if len(paths) == 0 {
		paths = []string{"/*"}
	}
	return &Handler{
		client:         client,
		distributionID: distributionID,
		paths:          paths,
		logger:         logger,
		newReference:   func() string { return ksuid.New().String() },
	}, nil
}

// ParsePaths splits a comma separated INVALIDATION_PATHS value.
func ParsePaths(value string) []string {
	var paths []string
	for _, path := range strings.Split(value, ",") {
		if path = strings.TrimSpace(path); path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}

func (h *Handler) Handle(ctx context.Context, event events.CloudWatchEvent) (Result, error) {
	var detail ExecutionDetail
	if err := json.Unmarshal(event.Detail, &detail); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	logger := h.logger.With().
		Str("pipeline", detail.Pipeline).
		Str("execution", detail.ExecutionID).
		Str("state", detail.State).
		Logger()

	if detail.State != StateSucceeded {
		logger.Info().Msg("Ignoring pipeline state change")
		return Result{Skipped: true}, nil
	}

	// The execution id makes retries of the same event idempotent.
	reference := detail.ExecutionID
	if reference == "" {
		reference = h.newReference()
	}

	out, err := h.client.CreateInvalidation(ctx, &cloudfront.CreateInvalidationInput{
		DistributionId: aws.String(h.distributionID),
		InvalidationBatch: &types.InvalidationBatch{
			CallerReference: aws.String(reference),
			Paths: &types.Paths{
				Quantity: aws.Int32(int32(len(h.paths))),
				Items:    h.paths,
			},
		},
	})
	if err != nil {
		logger.Error().Err(err).Str("distribution", h.distributionID).Msg("Failed to create invalidation")
		return Result{}, fmt.Errorf("failed to invalidate distribution %s: %w", h.distributionID, err)
	}

	var id string
	if out.Invalidation != nil {
		id = aws.ToString(out.Invalidation.Id)
	}
	logger.Info().Str("distribution", h.distributionID).Str("invalidation", id).Msg("Created invalidation")

	return Result{InvalidationID: id}, nil
}
