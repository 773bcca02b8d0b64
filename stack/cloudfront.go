package stack

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfrontorigins"
	"github.com/aws/jsii-runtime-go"
)

// createDistribution fronts the deploy bucket with CloudFront. A bucket with
// website hosting is served through its website endpoint; otherwise the
// bucket stays private behind origin access control.
func createDistribution(resources *PipelineResources) awscloudfront.Distribution {
	hosting := resources.resolved.Hosting

	var origin awscloudfront.IOrigin
	if hosting.Enabled {
		origin = awscloudfrontorigins.NewS3StaticWebsiteOrigin(resources.deployBucket, nil)
	} else {
		origin = awscloudfrontorigins.S3BucketOrigin_WithOriginAccessControl(resources.deployBucket, nil)
	}

	props := &awscloudfront.DistributionProps{
		Comment: resources.id("cf-distribution"),
		DefaultBehavior: &awscloudfront.BehaviorOptions{
			Origin:               origin,
			ViewerProtocolPolicy: awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS,
		},
	}
	if hosting.Enabled {
		props.DefaultRootObject = jsii.String(hosting.IndexDocument)
	}

	return awscloudfront.NewDistribution(resources.stack, resources.id("cf-distribution"), props)
}
