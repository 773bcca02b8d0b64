package stack

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodebuild"
	"github.com/aws/jsii-runtime-go"
)

// createCodeBuildProject declares the build project. A buildspec given as a
// string is a path into the source artifact and is passed through as is.
// Inline buildspecs are pinned to the resolver's canonical text so the
// template carries exactly what was resolved.
func createCodeBuildProject(resources *PipelineResources) awscodebuild.PipelineProject {
	spec := resources.resolved.Buildspec

	var buildSpec awscodebuild.BuildSpec
	if spec.Inline() {
		obj := spec.Object
		buildSpec = awscodebuild.BuildSpec_FromObject(&obj)
	} else {
		buildSpec = awscodebuild.BuildSpec_FromSourceFilename(jsii.String(spec.Text))
	}

	project := awscodebuild.NewPipelineProject(resources.stack, resources.id("cicd-codebuild"), &awscodebuild.PipelineProjectProps{
		BuildSpec: buildSpec,
		Environment: &awscodebuild.BuildEnvironment{
			ComputeType: awscodebuild.ComputeType_SMALL,
			BuildImage:  awscodebuild.LinuxBuildImage_STANDARD_7_0(),
			Privileged:  jsii.Bool(true),
		},
		Timeout: awscdk.Duration_Minutes(jsii.Number(15)),
	})

	if spec.Inline() {
		cfn := project.Node().DefaultChild().(awscodebuild.CfnProject)
		cfn.AddPropertyOverride(jsii.String("Source.BuildSpec"), jsii.String(spec.Text))
	}

	return project
}
