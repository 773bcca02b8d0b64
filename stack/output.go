package stack

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
)

const (
	OutputPipelineName       = "PipelineName"
	OutputProjectName        = "CodeBuildProjectName"
	OutputDeployBucket       = "DeployBucketName"
	OutputWebsiteURL         = "WebsiteURL"
	OutputDistributionDomain = "DistributionDomainName"
	OutputDistributionID     = "DistributionId"
)

func createStackOutputs(s *Stack) {
	awscdk.NewCfnOutput(s.Stack, jsii.String(OutputPipelineName), &awscdk.CfnOutputProps{
		Value: s.Pipeline.PipelineName(),
	})

	awscdk.NewCfnOutput(s.Stack, jsii.String(OutputProjectName), &awscdk.CfnOutputProps{
		Value: s.Project.ProjectName(),
	})

	awscdk.NewCfnOutput(s.Stack, jsii.String(OutputDeployBucket), &awscdk.CfnOutputProps{
		Value: s.DeployBucket.BucketName(),
	})

	if url := hostingURL(s.DeployBucket, s.Resolved.Hosting); url != nil {
		awscdk.NewCfnOutput(s.Stack, jsii.String(OutputWebsiteURL), &awscdk.CfnOutputProps{
			Value: url,
		})
	}

	if s.Distribution != nil {
		awscdk.NewCfnOutput(s.Stack, jsii.String(OutputDistributionDomain), &awscdk.CfnOutputProps{
			Value: s.Distribution.DistributionDomainName(),
		})
		awscdk.NewCfnOutput(s.Stack, jsii.String(OutputDistributionID), &awscdk.CfnOutputProps{
			Value: s.Distribution.DistributionId(),
		})
	}
}
