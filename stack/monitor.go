package stack

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatchactions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodebuild"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodepipeline"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsevents"
	"github.com/aws/aws-cdk-go/awscdk/v2/awseventstargets"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssnssubscriptions"
	"github.com/aws/jsii-runtime-go"
)

// Monitoring resources
func createMonitoringResources(resources *PipelineResources) awssns.Topic {
	topic := awssns.NewTopic(resources.stack, jsii.String("PipelineAlarmTopic"), &awssns.TopicProps{
		TopicName:   resources.id("pipeline-alarms"),
		DisplayName: jsii.String("Pipeline Alarms"),
	})

	if email := resources.resolved.Alarms.Email; email != "" {
		topic.AddSubscription(awssnssubscriptions.NewEmailSubscription(jsii.String(email), nil))
	}

	return topic
}

func createFailureNotifications(resources *PipelineResources, pipeline awscodepipeline.Pipeline,
	project awscodebuild.Project) {
	codeBuildAlarm := alarm(resources.stack, *resources.id("codebuild-failures"),
		project.MetricFailedBuilds(nil))
	codeBuildAlarm.AddAlarmAction(awscloudwatchactions.NewSnsAction(resources.alarmTopic))

	pipeline.OnStateChange(jsii.String("NotifyOnFailure"), &awsevents.OnEventOptions{
		Description: jsii.String("Alert when a pipeline execution fails"),
		Target:      awseventstargets.NewSnsTopic(resources.alarmTopic, nil),
		EventPattern: &awsevents.EventPattern{
			Detail: &map[string]interface{}{
				"state": []*string{jsii.String("FAILED")},
			},
		},
	})
}
