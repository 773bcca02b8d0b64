// Package stack declares the GitHub → CodeBuild → S3 deploy pipeline, and
// optionally a CloudFront distribution in front of the deploy bucket.
package stack

import (
	"errors"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodebuild"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodepipeline"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"
	"github.com/aws/constructs-go/constructs/v10"

	"github.com/30Piraten/cicd-pipeline/config"
)

var ErrNilProps = errors.New("stack props are required")

type Props struct {
	awscdk.StackProps

	Options config.PipelineOptions

	// Qualifier selects a custom bootstrap qualifier when set.
	Qualifier string

	// LambdaDir overrides the cache invalidation asset directory.
	LambdaDir string
}

// Stack exposes the declared resources. Distribution, Invalidator and
// AlarmTopic are nil when their feature is off.
type Stack struct {
	awscdk.Stack

	Resolved       config.Resolved
	DeployBucket   awss3.Bucket
	ArtifactBucket awss3.Bucket
	Project        awscodebuild.PipelineProject
	Pipeline       awscodepipeline.Pipeline
	Distribution   awscloudfront.Distribution
	Invalidator    awslambda.Function
	AlarmTopic     awssns.Topic
}

// New resolves props.Options and declares the stack. Options are validated
// before any resource is declared.
func New(scope constructs.Construct, id string, props *Props) (*Stack, error) {
	if props == nil {
		return nil, ErrNilProps
	}

	resolved, err := config.Resolve(props.Options)
	if err != nil {
		return nil, err
	}

	lambdaDir := props.LambdaDir
	if lambdaDir == "" {
		lambdaDir = defaultLambdaDir()
	}

	s := &Stack{
		Stack:    initializeStack(scope, id, props),
		Resolved: resolved,
	}

	resources := &PipelineResources{
		stack:     s.Stack,
		resolved:  resolved,
		lambdaDir: lambdaDir,
	}
	resources.githubSecret = createGithubSecret(s.Stack, resolved.TokenSecretName)

	s.DeployBucket = createDeployBucket(resources)
	resources.deployBucket = s.DeployBucket

	s.ArtifactBucket = createArtifactBucket(resources)
	resources.artifactBucket = s.ArtifactBucket

	s.Project = createCodeBuildProject(resources)
	s.Pipeline = createPipeline(resources, s.Project)

	if resolved.CloudFront {
		s.Distribution = createDistribution(resources)
		if resolved.Invalidate {
			s.Invalidator = createInvalidationResources(resources, s.Pipeline, s.Distribution)
		}
	}

	if resolved.Alarms.Enabled {
		s.AlarmTopic = createMonitoringResources(resources)
		resources.alarmTopic = s.AlarmTopic
		createFailureNotifications(resources, s.Pipeline, s.Project)
	}

	createStackOutputs(s)

	return s, nil
}
