package config

import "strings"

// Hosting is the static website configuration of the deploy bucket.
type Hosting struct {
	Enabled       bool   `json:"enabled" yaml:"enabled"`
	IndexDocument string `json:"indexDocument,omitempty" yaml:"indexDocument,omitempty"`
	ErrorDocument string `json:"errorDocument,omitempty" yaml:"errorDocument,omitempty"`
}

// ResolvedBuildspec is the single buildspec representation selected for the
// CodeBuild project.
type ResolvedBuildspec struct {
	Source BuildspecKind  `json:"source" yaml:"source"`
	Text   string         `json:"text" yaml:"text"`
	Object map[string]any `json:"-" yaml:"-"`
}

// Inline reports whether Text is a full buildspec rather than a path into
// the source artifact.
func (b ResolvedBuildspec) Inline() bool {
	return b.Source != BuildspecString
}

type Alarms struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Email   string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Resolved carries every decision derived from PipelineOptions.
type Resolved struct {
	Prefix          string            `json:"prefix" yaml:"prefix"`
	Owner           string            `json:"owner" yaml:"owner"`
	Repo            string            `json:"repo" yaml:"repo"`
	Branch          string            `json:"branch" yaml:"branch"`
	TokenSecretName string            `json:"tokenSecretName" yaml:"tokenSecretName"`
	Hosting         Hosting           `json:"hosting" yaml:"hosting"`
	Buildspec       ResolvedBuildspec `json:"buildspec" yaml:"buildspec"`
	CloudFront      bool              `json:"cloudFront" yaml:"cloudFront"`
	Invalidate      bool              `json:"invalidate" yaml:"invalidate"`
	Alarms          Alarms            `json:"alarms" yaml:"alarms"`
}

// Validate fails on the first missing required field.
func Validate(opts PipelineOptions) error {
	switch {
	case strings.TrimSpace(opts.Prefix) == "":
		return missing("prefix")
	case strings.TrimSpace(opts.GithubOwner) == "":
		return missing("githubOwner")
	case strings.TrimSpace(opts.GithubRepo) == "":
		return missing("githubRepo")
	}
	return nil
}

// Resolve validates opts and applies defaults field by field. It never
// modifies opts.
func Resolve(opts PipelineOptions) (Resolved, error) {
	if err := Validate(opts); err != nil {
		return Resolved{}, err
	}

	buildspec, err := ResolveBuildspec(opts.CodebuildBuildspec)
	if err != nil {
		return Resolved{}, err
	}

	return Resolved{
		Prefix:          opts.Prefix,
		Owner:           opts.GithubOwner,
		Repo:            opts.GithubRepo,
		Branch:          ResolveBranch(opts.GithubBranch),
		TokenSecretName: orDefault(opts.GithubTokenSecretName, DefaultTokenSecretName),
		Hosting:         ResolveHosting(opts),
		Buildspec:       buildspec,
		CloudFront:      opts.UseCloudFront,
		Invalidate:      opts.UseCloudFront && (opts.InvalidateOnDeploy == nil || *opts.InvalidateOnDeploy),
		Alarms: Alarms{
			Enabled: opts.EnableAlarms,
			Email:   opts.AlarmEmail,
		},
	}, nil
}

func ResolveHosting(opts PipelineOptions) Hosting {
	if !opts.UseS3Hosting {
		return Hosting{}
	}
	return Hosting{
		Enabled:       true,
		IndexDocument: orDefault(opts.IndexDocument, DefaultIndexDocument),
		ErrorDocument: opts.ErrorDocument,
	}
}

func ResolveBranch(branch string) string {
	return orDefault(branch, DefaultBranch)
}

// ResolveBuildspec picks the buildspec: an object wins over a string, and a
// missing or empty value falls back to the passthrough spec.
func ResolveBuildspec(b Buildspec) (ResolvedBuildspec, error) {
	switch {
	case b.Kind() == BuildspecObject:
		text, err := CanonicalText(b.Object())
		if err != nil {
			return ResolvedBuildspec{}, &FieldError{Field: "codebuildBuildspec", Err: err}
		}
		return ResolvedBuildspec{Source: BuildspecObject, Text: text, Object: cloneObject(b.Object())}, nil
	case b.Kind() == BuildspecString && b.String() != "":
		return ResolvedBuildspec{Source: BuildspecString, Text: b.String()}, nil
	default:
		return ResolvedBuildspec{
			Source: BuildspecAbsent,
			Text:   PassthroughBuildspecText(),
			Object: PassthroughBuildspec(),
		}, nil
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
