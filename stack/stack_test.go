package stack

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/30Piraten/cicd-pipeline/config"
)

func testOptions() config.PipelineOptions {
	return config.PipelineOptions{
		Prefix:             "unittest",
		GithubOwner:        "mbonig",
		GithubRepo:         "somerepo",
		GithubBranch:       "somebranch",
		CodebuildBuildspec: config.BuildspecFromString("buildspec.yml"),
	}
}

func synth(t *testing.T, opts config.PipelineOptions) (*Stack, assertions.Template) {
	t.Helper()

	app := awscdk.NewApp(nil)
	s, err := New(app, "TestingStack", &Props{Options: opts})
	require.NoError(t, err)

	return s, assertions.Template_FromStack(s.Stack, nil)
}

func deployBucketID(s *Stack) string {
	return *s.Stack.GetLogicalId(s.DeployBucket.Node().DefaultChild().(awss3.CfnBucket))
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	app := awscdk.NewApp(nil)

	opts := testOptions()
	opts.GithubOwner = ""
	_, err := New(app, "TestingStack", &Props{Options: opts})
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingField)
	assert.Contains(t, err.Error(), "githubOwner")
	assert.Empty(t, *app.Node().Children(), "nothing is declared for invalid options")

	_, err = New(app, "TestingStack", nil)
	assert.ErrorIs(t, err, ErrNilProps)
}

func TestCloudFront(t *testing.T) {
	t.Run("creates a distribution bound to the deploy bucket", func(t *testing.T) {
		opts := testOptions()
		opts.UseCloudFront = true

		s, template := synth(t, opts)
		require.NotNil(t, s.Distribution)

		template.ResourceCountIs(jsii.String("AWS::CloudFront::Distribution"), jsii.Number(1))
		template.HasResourceProperties(jsii.String("AWS::CloudFront::Distribution"), map[string]interface{}{
			"DistributionConfig": map[string]interface{}{
				"Origins": []interface{}{
					map[string]interface{}{
						"DomainName": map[string]interface{}{
							"Fn::GetAtt": []interface{}{deployBucketID(s), "RegionalDomainName"},
						},
					},
				},
			},
		})
		template.HasOutput(jsii.String(OutputDistributionDomain), map[string]interface{}{})
	})

	t.Run("serves the website endpoint when hosting", func(t *testing.T) {
		opts := testOptions()
		opts.UseCloudFront = true
		opts.UseS3Hosting = true

		_, template := synth(t, opts)

		template.ResourceCountIs(jsii.String("AWS::CloudFront::Distribution"), jsii.Number(1))
		template.HasResourceProperties(jsii.String("AWS::CloudFront::Distribution"), map[string]interface{}{
			"DistributionConfig": map[string]interface{}{
				"DefaultRootObject": "index.html",
				"Origins": []interface{}{
					map[string]interface{}{
						"CustomOriginConfig": assertions.Match_AnyValue(),
					},
				},
			},
		})
	})

	t.Run("no distribution by default", func(t *testing.T) {
		s, template := synth(t, testOptions())

		assert.Nil(t, s.Distribution)
		assert.Nil(t, s.Invalidator)
		template.ResourceCountIs(jsii.String("AWS::CloudFront::Distribution"), jsii.Number(0))
		assert.Empty(t, *template.FindOutputs(jsii.String(OutputDistributionDomain), map[string]interface{}{}))
	})
}

func TestS3Hosting(t *testing.T) {
	t.Run("uses index.html if not provided", func(t *testing.T) {
		opts := testOptions()
		opts.UseS3Hosting = true

		_, template := synth(t, opts)

		template.HasResourceProperties(jsii.String("AWS::S3::Bucket"), map[string]interface{}{
			"WebsiteConfiguration": map[string]interface{}{
				"IndexDocument": "index.html",
				"ErrorDocument": assertions.Match_Absent(),
			},
		})
		template.HasOutput(jsii.String(OutputWebsiteURL), map[string]interface{}{})
	})

	t.Run("uses provided documents", func(t *testing.T) {
		opts := testOptions()
		opts.UseS3Hosting = true
		opts.IndexDocument = "notindex.html"
		opts.ErrorDocument = "404.html"

		_, template := synth(t, opts)

		template.HasResourceProperties(jsii.String("AWS::S3::Bucket"), map[string]interface{}{
			"WebsiteConfiguration": map[string]interface{}{
				"IndexDocument": "notindex.html",
				"ErrorDocument": "404.html",
			},
		})
	})

	t.Run("no hosting by default", func(t *testing.T) {
		opts := testOptions()
		opts.IndexDocument = "notindex.html"

		s, template := synth(t, opts)

		assert.False(t, s.Resolved.Hosting.Enabled)
		websites := template.FindResources(jsii.String("AWS::S3::Bucket"), map[string]interface{}{
			"Properties": map[string]interface{}{
				"WebsiteConfiguration": assertions.Match_AnyValue(),
			},
		})
		assert.Empty(t, *websites)
		assert.Empty(t, *template.FindOutputs(jsii.String(OutputWebsiteURL), map[string]interface{}{}))
	})
}

func stage(name, action string, actionType, configuration map[string]interface{}) map[string]interface{} {
	act := map[string]interface{}{
		"Name":         action,
		"ActionTypeId": actionType,
	}
	if configuration != nil {
		act["Configuration"] = configuration
	}
	return map[string]interface{}{
		"Name":    name,
		"Actions": []interface{}{act},
	}
}

func TestPipelineStages(t *testing.T) {
	opts := testOptions()
	s, template := synth(t, opts)

	template.ResourceCountIs(jsii.String("AWS::CodePipeline::Pipeline"), jsii.Number(1))
	template.HasResourceProperties(jsii.String("AWS::CodePipeline::Pipeline"), map[string]interface{}{
		"Name": "unittest-cicd-pipeline",
		"Stages": []interface{}{
			stage(StageSource, ActionSource,
				map[string]interface{}{"Category": "Source", "Owner": "ThirdParty", "Provider": "GitHub"},
				map[string]interface{}{
					"Owner":      "mbonig",
					"Repo":       "somerepo",
					"Branch":     "somebranch",
					"OAuthToken": assertions.Match_AnyValue(),
				}),
			stage(StageBuild, ActionBuild,
				map[string]interface{}{"Category": "Build", "Owner": "AWS", "Provider": "CodeBuild"},
				nil),
			stage(StageDeploy, ActionDeploy,
				map[string]interface{}{"Category": "Deploy", "Owner": "AWS", "Provider": "S3"},
				map[string]interface{}{
					"BucketName": map[string]interface{}{"Ref": deployBucketID(s)},
				}),
		},
	})
}

func TestPipelineDefaultsToMasterBranch(t *testing.T) {
	opts := testOptions()
	opts.GithubBranch = ""

	s, template := synth(t, opts)

	assert.Equal(t, "master", s.Resolved.Branch)
	template.HasResourceProperties(jsii.String("AWS::CodePipeline::Pipeline"), map[string]interface{}{
		"Stages": assertions.Match_ArrayWith(&[]interface{}{
			assertions.Match_ObjectLike(&map[string]interface{}{
				"Name": StageSource,
				"Actions": []interface{}{
					map[string]interface{}{
						"Name":          ActionSource,
						"Configuration": map[string]interface{}{"Branch": "master"},
					},
				},
			}),
		}),
	})
}

func TestBuildspec(t *testing.T) {
	tests := []struct {
		name      string
		buildspec config.Buildspec
		want      string
	}{
		{
			name: "uses passthrough buildspec when empty",
			want: config.PassthroughBuildspecText(),
		},
		{
			name:      "uses given buildspec",
			buildspec: config.BuildspecFromString("buildspec.prod.yml"),
			want:      "buildspec.prod.yml",
		},
		{
			name:      "uses buildspec as object",
			buildspec: config.BuildspecFromObject(map[string]any{"test": "x"}),
			want:      "{\n  \"test\": \"x\"\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			opts.CodebuildBuildspec = tt.buildspec

			s, template := synth(t, opts)

			assert.Equal(t, tt.want, s.Resolved.Buildspec.Text)
			template.HasResourceProperties(jsii.String("AWS::CodeBuild::Project"), map[string]interface{}{
				"Source": map[string]interface{}{
					"Type":      "CODEPIPELINE",
					"BuildSpec": tt.want,
				},
				"Environment": map[string]interface{}{
					"ComputeType":    "BUILD_GENERAL1_SMALL",
					"PrivilegedMode": true,
				},
			})
		})
	}
}

func TestInvalidation(t *testing.T) {
	t.Run("invalidates after successful executions", func(t *testing.T) {
		opts := testOptions()
		opts.UseCloudFront = true

		s, template := synth(t, opts)
		require.NotNil(t, s.Invalidator)

		template.HasResourceProperties(jsii.String("AWS::Lambda::Function"), map[string]interface{}{
			"Handler": "bootstrap",
			"Runtime": "provided.al2023",
			"Environment": map[string]interface{}{
				"Variables": map[string]interface{}{
					"DISTRIBUTION_ID":    assertions.Match_AnyValue(),
					"INVALIDATION_PATHS": "/*",
				},
			},
		})
		template.HasResourceProperties(jsii.String("AWS::Events::Rule"), map[string]interface{}{
			"EventPattern": map[string]interface{}{
				"source": []interface{}{"aws.codepipeline"},
				"detail": map[string]interface{}{
					"state": []interface{}{"SUCCEEDED"},
				},
			},
		})
	})

	t.Run("can be turned off", func(t *testing.T) {
		off := false
		opts := testOptions()
		opts.UseCloudFront = true
		opts.InvalidateOnDeploy = &off

		s, template := synth(t, opts)

		assert.Nil(t, s.Invalidator)
		assert.NotNil(t, s.Distribution)
		template.ResourceCountIs(jsii.String("AWS::Events::Rule"), jsii.Number(0))
	})
}

func TestAlarms(t *testing.T) {
	t.Run("off by default", func(t *testing.T) {
		s, template := synth(t, testOptions())

		assert.Nil(t, s.AlarmTopic)
		template.ResourceCountIs(jsii.String("AWS::SNS::Topic"), jsii.Number(0))
		template.ResourceCountIs(jsii.String("AWS::CloudWatch::Alarm"), jsii.Number(0))
	})

	t.Run("notifies on failures", func(t *testing.T) {
		opts := testOptions()
		opts.EnableAlarms = true
		opts.AlarmEmail = "ops@example.com"

		s, template := synth(t, opts)
		require.NotNil(t, s.AlarmTopic)

		template.HasResourceProperties(jsii.String("AWS::SNS::Topic"), map[string]interface{}{
			"TopicName": "unittest-pipeline-alarms",
		})
		template.HasResourceProperties(jsii.String("AWS::SNS::Subscription"), map[string]interface{}{
			"Protocol": "email",
			"Endpoint": "ops@example.com",
		})
		template.HasResourceProperties(jsii.String("AWS::CloudWatch::Alarm"), map[string]interface{}{
			"AlarmName":  "unittest-codebuild-failures",
			"MetricName": "FailedBuilds",
			"Namespace":  "AWS/CodeBuild",
		})
		template.HasResourceProperties(jsii.String("AWS::Events::Rule"), map[string]interface{}{
			"EventPattern": map[string]interface{}{
				"detail": map[string]interface{}{
					"state": []interface{}{"FAILED"},
				},
			},
		})
	})
}

func TestOutputs(t *testing.T) {
	_, template := synth(t, testOptions())

	template.HasOutput(jsii.String(OutputPipelineName), map[string]interface{}{})
	template.HasOutput(jsii.String(OutputProjectName), map[string]interface{}{})
	template.HasOutput(jsii.String(OutputDeployBucket), map[string]interface{}{})
}
