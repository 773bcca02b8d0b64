package stack

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssecretsmanager"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/30Piraten/cicd-pipeline/config"
)

func initializeStack(scope constructs.Construct, id string, props *Props) awscdk.Stack {
	sprops := props.StackProps
	if props.Qualifier != "" {
		sprops.Synthesizer = awscdk.NewDefaultStackSynthesizer(&awscdk.DefaultStackSynthesizerProps{
			Qualifier: jsii.String(props.Qualifier),
		})
	}
	return awscdk.NewStack(scope, &id, &sprops)
}

// createGithubSecret references the token secret by name. The token itself
// is resolved by CloudFormation at deploy time.
func createGithubSecret(stack awscdk.Stack, name string) awssecretsmanager.ISecret {
	return awssecretsmanager.Secret_FromSecretNameV2(stack,
		jsii.String("GitHubTokenSecret"),
		jsii.String(name))
}

func createArtifactBucket(resources *PipelineResources) awss3.Bucket {
	return awss3.NewBucket(resources.stack, resources.id("cicd-artifacts"), &awss3.BucketProps{
		Encryption:        awss3.BucketEncryption_S3_MANAGED,
		BlockPublicAccess: awss3.BlockPublicAccess_BLOCK_ALL(),
		EnforceSSL:        jsii.Bool(true),
		Versioned:         jsii.Bool(true),
	})
}

// createDeployBucket declares the bucket the pipeline deploys into. Website
// hosting, and the public read access it needs, exist only when hosting is
// enabled.
func createDeployBucket(resources *PipelineResources) awss3.Bucket {
	props := &awss3.BucketProps{
		Encryption: awss3.BucketEncryption_S3_MANAGED,
	}

	hosting := resources.resolved.Hosting
	if hosting.Enabled {
		props.WebsiteIndexDocument = jsii.String(hosting.IndexDocument)
		if hosting.ErrorDocument != "" {
			props.WebsiteErrorDocument = jsii.String(hosting.ErrorDocument)
		}
		props.PublicReadAccess = jsii.Bool(true)
		props.BlockPublicAccess = awss3.NewBlockPublicAccess(&awss3.BlockPublicAccessOptions{
			BlockPublicAcls:       jsii.Bool(true),
			IgnorePublicAcls:      jsii.Bool(true),
			BlockPublicPolicy:     jsii.Bool(false),
			RestrictPublicBuckets: jsii.Bool(false),
		})
	} else {
		props.BlockPublicAccess = awss3.BlockPublicAccess_BLOCK_ALL()
		props.EnforceSSL = jsii.Bool(true)
	}

	return awss3.NewBucket(resources.stack, resources.id("cicd-deploy"), props)
}

func hostingURL(bucket awss3.Bucket, hosting config.Hosting) *string {
	if !hosting.Enabled {
		return nil
	}
	return bucket.BucketWebsiteUrl()
}
