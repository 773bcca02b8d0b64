package stack

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodebuild"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodepipeline"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodepipelineactions"
	"github.com/aws/jsii-runtime-go"
)

const (
	StageSource = "Source"
	StageBuild  = "Build"
	StageDeploy = "Deploy"

	ActionSource = "GitHub_Source"
	ActionBuild  = "CodeBuild"
	ActionDeploy = "S3Deploy"
)

// createPipeline declares the three stage pipeline: GitHub source, CodeBuild,
// S3 deploy. Each stage has exactly one action.
func createPipeline(resources *PipelineResources, project awscodebuild.IProject) awscodepipeline.Pipeline {
	sourceArtifact := awscodepipeline.NewArtifact(jsii.String("SourceArtifact"))
	buildArtifact := awscodepipeline.NewArtifact(jsii.String("BuildArtifact"))

	return awscodepipeline.NewPipeline(resources.stack, resources.id("cicd-pipeline"),
		&awscodepipeline.PipelineProps{
			PipelineName:   resources.id("cicd-pipeline"),
			ArtifactBucket: resources.artifactBucket,
			Stages: &[]*awscodepipeline.StageProps{
				createSourceStage(resources, sourceArtifact),
				createBuildStage(sourceArtifact, buildArtifact, project),
				createDeployStage(resources, buildArtifact),
			},
			CrossAccountKeys: jsii.Bool(false),
		})
}

func createSourceStage(resources *PipelineResources, sourceArtifact awscodepipeline.Artifact) *awscodepipeline.StageProps {
	resolved := resources.resolved
	return &awscodepipeline.StageProps{
		StageName: jsii.String(StageSource),
		Actions: &[]awscodepipeline.IAction{
			awscodepipelineactions.NewGitHubSourceAction(&awscodepipelineactions.GitHubSourceActionProps{
				ActionName: jsii.String(ActionSource),
				Owner:      jsii.String(resolved.Owner),
				Repo:       jsii.String(resolved.Repo),
				Branch:     jsii.String(resolved.Branch),
				OauthToken: resources.githubSecret.SecretValue(),
				Output:     sourceArtifact,
				Trigger:    awscodepipelineactions.GitHubTrigger_WEBHOOK,
			}),
		},
	}
}

func createBuildStage(sourceArtifact, buildArtifact awscodepipeline.Artifact,
	project awscodebuild.IProject) *awscodepipeline.StageProps {
	return &awscodepipeline.StageProps{
		StageName: jsii.String(StageBuild),
		Actions: &[]awscodepipeline.IAction{
			awscodepipelineactions.NewCodeBuildAction(&awscodepipelineactions.CodeBuildActionProps{
				ActionName: jsii.String(ActionBuild),
				Project:    project,
				Input:      sourceArtifact,
				Outputs:    &[]awscodepipeline.Artifact{buildArtifact},
			}),
		},
	}
}

func createDeployStage(resources *PipelineResources, buildArtifact awscodepipeline.Artifact) *awscodepipeline.StageProps {
	return &awscodepipeline.StageProps{
		StageName: jsii.String(StageDeploy),
		Actions: &[]awscodepipeline.IAction{
			awscodepipelineactions.NewS3DeployAction(&awscodepipelineactions.S3DeployActionProps{
				ActionName: jsii.String(ActionDeploy),
				Input:      buildArtifact,
				Bucket:     resources.deployBucket,
				Extract:    jsii.Bool(true),
			}),
		},
	}
}
