package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline"
)

type CodePipelineAPI interface {
	GetPipelineState(ctx context.Context, params *codepipeline.GetPipelineStateInput,
		optFns ...func(*codepipeline.Options)) (*codepipeline.GetPipelineStateOutput, error)
}

type ActionStatus struct {
	Name    string `json:"name"`
	Status  string `json:"status,omitempty"`
	Summary string `json:"summary,omitempty"`
}

type StageStatus struct {
	Name        string         `json:"name"`
	Status      string         `json:"status,omitempty"`
	ExecutionID string         `json:"executionId,omitempty"`
	Actions     []ActionStatus `json:"actions"`
}

type PipelineService struct {
	client CodePipelineAPI
}

func NewPipelineService(client CodePipelineAPI) *PipelineService {
	return &PipelineService{client: client}
}

// State returns the latest status of every stage, in pipeline order.
func (s *PipelineService) State(ctx context.Context, name string) ([]StageStatus, error) {
	out, err := s.client.GetPipelineState(ctx, &codepipeline.GetPipelineStateInput{
		Name: aws.String(name),
	})
	if err != nil {
		if errorCode(err) == "PipelineNotFoundException" {
			return nil, fmt.Errorf("%w: %s", ErrPipelineNotFound, name)
		}
		return nil, fmt.Errorf("failed to get pipeline state %s: %w", name, err)
	}

	stages := make([]StageStatus, 0, len(out.StageStates))
	for _, state := range out.StageStates {
		stage := StageStatus{Name: aws.ToString(state.StageName)}
		if exec := state.LatestExecution; exec != nil {
			stage.Status = string(exec.Status)
			stage.ExecutionID = aws.ToString(exec.PipelineExecutionId)
		}
		for _, action := range state.ActionStates {
			status := ActionStatus{Name: aws.ToString(action.ActionName)}
			if exec := action.LatestExecution; exec != nil {
				status.Status = string(exec.Status)
				status.Summary = aws.ToString(exec.Summary)
			}
			stage.Actions = append(stage.Actions, status)
		}
		stages = append(stages, stage)
	}
	return stages, nil
}
