package stack

import (
	"path/filepath"
	"runtime"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodepipeline"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsevents"
	"github.com/aws/aws-cdk-go/awscdk/v2/awseventstargets"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3assets"
	"github.com/aws/jsii-runtime-go"
)

// defaultLambdaDir is bin/lambda, which holds the bootstrap binary built
// from the invalidation handler.
func defaultLambdaDir() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("Could not get file name")
	}
	return filepath.Join(filepath.Dir(filename), "..", "bin", "lambda")
}

// createInvalidationResources invalidates the distribution after every
// successful pipeline execution.
func createInvalidationResources(resources *PipelineResources, pipeline awscodepipeline.Pipeline,
	distribution awscloudfront.Distribution) awslambda.Function {
	fn := awslambda.NewFunction(resources.stack, jsii.String("CacheInvalidator"), &awslambda.FunctionProps{
		Runtime:      awslambda.Runtime_PROVIDED_AL2023(),
		Handler:      jsii.String("bootstrap"),
		Architecture: awslambda.Architecture_ARM_64(),
		MemorySize:   jsii.Number(128),
		Timeout:      awscdk.Duration_Seconds(jsii.Number(30)),
		Code:         awslambda.Code_FromAsset(jsii.String(resources.lambdaDir), &awss3assets.AssetOptions{}),
		Environment: &map[string]*string{
			"DISTRIBUTION_ID":    distribution.DistributionId(),
			"INVALIDATION_PATHS": jsii.String("/*"),
		},
		Tracing: awslambda.Tracing_ACTIVE,
	})

	distribution.GrantCreateInvalidation(fn)

	pipeline.OnStateChange(jsii.String("InvalidateOnSuccess"), &awsevents.OnEventOptions{
		Description: jsii.String("Invalidate the CloudFront cache after a successful deploy"),
		Target:      awseventstargets.NewLambdaFunction(fn, nil),
		EventPattern: &awsevents.EventPattern{
			Detail: &map[string]interface{}{
				"state": []*string{jsii.String("SUCCEEDED")},
			},
		},
	})

	return fn
}
