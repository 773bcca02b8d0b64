package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

const DefaultRegion = "us-east-1"

// LoadDotEnv loads the given .env files into the process environment.
// Files that do not exist are skipped. Variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// ApplyEnv returns a copy of opts with the environment overrides applied.
func ApplyEnv(opts PipelineOptions, lookup LookupFunc) PipelineOptions {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	override := func(dst *string, key string) {
		if value, ok := lookup(key); ok && value != "" {
			*dst = value
		}
	}
	override(&opts.Prefix, "CICD_PREFIX")
	override(&opts.GithubOwner, "GITHUB_OWNER")
	override(&opts.GithubRepo, "GITHUB_REPO")
	override(&opts.GithubBranch, "GITHUB_BRANCH")
	override(&opts.GithubTokenSecretName, "GITHUB_TOKEN_SECRET_NAME")
	return opts
}

// StackEnv is the account and region the stack is bound to.
type StackEnv struct {
	Account string
	Region  string
}

func ResolveStackEnv(lookup LookupFunc) StackEnv {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return StackEnv{
		Account: firstEnv(lookup, "ACCOUNT_ID", "CDK_DEFAULT_ACCOUNT"),
		Region:  orDefault(firstEnv(lookup, "ACCOUNT_REGION", "CDK_DEFAULT_REGION"), DefaultRegion),
	}
}

func firstEnv(lookup LookupFunc, keys ...string) string {
	for _, key := range keys {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
	}
	return ""
}
