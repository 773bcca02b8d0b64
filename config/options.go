// Package config holds the pipeline options and resolves them into the
// decisions the stack declares resources from.
package config

const (
	DefaultBranch          = "master"
	DefaultIndexDocument   = "index.html"
	DefaultTokenSecretName = "my-github-token"
)

// PipelineOptions is the user supplied configuration, usually read from
// cdk-variables.json.
type PipelineOptions struct {
	Prefix        string `json:"prefix" yaml:"prefix"`
	UseCloudFront bool   `json:"useCloudFront" yaml:"useCloudFront"`
	UseS3Hosting  bool   `json:"useS3Hosting" yaml:"useS3Hosting"`
	IndexDocument string `json:"indexDocument,omitempty" yaml:"indexDocument,omitempty"`
	ErrorDocument string `json:"errorDocument,omitempty" yaml:"errorDocument,omitempty"`

	GithubOwner  string `json:"githubOwner" yaml:"githubOwner"`
	GithubRepo   string `json:"githubRepo" yaml:"githubRepo"`
	GithubBranch string `json:"githubBranch,omitempty" yaml:"githubBranch,omitempty"`

	// GithubTokenSecretName is the Secrets Manager secret holding the GitHub
	// OAuth token. Only a reference to it ever reaches the template.
	GithubTokenSecretName string `json:"githubTokenParameterName,omitempty" yaml:"githubTokenParameterName,omitempty"`

	CodebuildBuildspec Buildspec `json:"codebuildBuildspec,omitempty" yaml:"codebuildBuildspec,omitempty"`

	// InvalidateOnDeploy defaults to true when UseCloudFront is set.
	InvalidateOnDeploy *bool  `json:"invalidateOnDeploy,omitempty" yaml:"invalidateOnDeploy,omitempty"`
	EnableAlarms       bool   `json:"enableAlarms,omitempty" yaml:"enableAlarms,omitempty"`
	AlarmEmail         string `json:"alarmEmail,omitempty" yaml:"alarmEmail,omitempty"`
}
