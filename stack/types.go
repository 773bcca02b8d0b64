package stack

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssecretsmanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"

	"github.com/30Piraten/cicd-pipeline/config"
)

// PipelineResources is shared by the builders of one stack.
type PipelineResources struct {
	stack          awscdk.Stack
	resolved       config.Resolved
	githubSecret   awssecretsmanager.ISecret
	deployBucket   awss3.Bucket
	artifactBucket awss3.Bucket
	alarmTopic     awssns.ITopic
	lambdaDir      string
}

func (r *PipelineResources) id(suffix string) *string {
	name := r.resolved.Prefix + "-" + suffix
	return &name
}
