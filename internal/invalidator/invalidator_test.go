package invalidator

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloudFront struct {
	inputs []*cloudfront.CreateInvalidationInput
	err    error
}

func (f *fakeCloudFront) CreateInvalidation(_ context.Context, params *cloudfront.CreateInvalidationInput,
	_ ...func(*cloudfront.Options)) (*cloudfront.CreateInvalidationOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &cloudfront.CreateInvalidationOutput{
		Invalidation: &types.Invalidation{Id: aws.String("I2J0I21PCUYOIK")},
	}, nil
}

func stateChange(t *testing.T, detail ExecutionDetail) events.CloudWatchEvent {
	t.Helper()
	raw, err := json.Marshal(detail)
	require.NoError(t, err)
	return events.CloudWatchEvent{
		Source:     "aws.codepipeline",
		DetailType: "CodePipeline Pipeline Execution State Change",
		Detail:     raw,
	}
}

func newHandler(t *testing.T, client CloudFrontAPI, paths ...string) *Handler {
	t.Helper()
	h, err := New(client, "E2QWRUHAPOMQZL", paths, zerolog.New(io.Discard))
	require.NoError(t, err)
	return h
}

func TestNewRequiresDistribution(t *testing.T) {
	_, err := New(&fakeCloudFront{}, "", nil, zerolog.Nop())
	assert.ErrorIs(t, err, ErrDistributionRequired)
}

func TestHandleInvalidatesOnSuccess(t *testing.T) {
	client := &fakeCloudFront{}
	h := newHandler(t, client)

	result, err := h.Handle(context.Background(), stateChange(t, ExecutionDetail{
		Pipeline:    "site-cicd-pipeline",
		ExecutionID: "0c1b2a3d-1111-2222-3333-444455556666",
		State:       StateSucceeded,
	}))
	require.NoError(t, err)

	assert.Equal(t, Result{InvalidationID: "I2J0I21PCUYOIK"}, result)
	require.Len(t, client.inputs, 1)

	input := client.inputs[0]
	assert.Equal(t, "E2QWRUHAPOMQZL", aws.ToString(input.DistributionId))
	assert.Equal(t, "0c1b2a3d-1111-2222-3333-444455556666", aws.ToString(input.InvalidationBatch.CallerReference))
	assert.Equal(t, []string{"/*"}, input.InvalidationBatch.Paths.Items)
	assert.Equal(t, int32(1), aws.ToInt32(input.InvalidationBatch.Paths.Quantity))
}

func TestHandleGeneratesReferenceWithoutExecutionID(t *testing.T) {
	client := &fakeCloudFront{}
	h := newHandler(t, client, "/index.html", "/assets/*")
	h.newReference = func() string { return "generated" }

	_, err := h.Handle(context.Background(), stateChange(t, ExecutionDetail{State: StateSucceeded}))
	require.NoError(t, err)

	require.Len(t, client.inputs, 1)
	assert.Equal(t, "generated", aws.ToString(client.inputs[0].InvalidationBatch.CallerReference))
	assert.Equal(t, int32(2), aws.ToInt32(client.inputs[0].InvalidationBatch.Paths.Quantity))
}

func TestHandleSkipsOtherStates(t *testing.T) {
	for _, state := range []string{"STARTED", "FAILED", "SUPERSEDED", "STOPPED"} {
		client := &fakeCloudFront{}
		h := newHandler(t, client)

		result, err := h.Handle(context.Background(), stateChange(t, ExecutionDetail{State: state}))
		require.NoError(t, err)
		assert.True(t, result.Skipped, state)
		assert.Empty(t, client.inputs, state)
	}
}

func TestHandleErrors(t *testing.T) {
	boom := errors.New("throttled")
	h := newHandler(t, &fakeCloudFront{err: boom})

	_, err := h.Handle(context.Background(), stateChange(t, ExecutionDetail{State: StateSucceeded}))
	assert.ErrorIs(t, err, boom)

	_, err = h.Handle(context.Background(), events.CloudWatchEvent{Detail: json.RawMessage(`"nope"`)})
	assert.ErrorIs(t, err, ErrInvalidEvent)
}

func TestParsePaths(t *testing.T) {
	assert.Equal(t, []string{"/*"}, ParsePaths("/*"))
	assert.Equal(t, []string{"/index.html", "/assets/*"}, ParsePaths(" /index.html, ,/assets/* "))
	assert.Nil(t, ParsePaths(""))
}
