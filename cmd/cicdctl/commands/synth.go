package commands

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/30Piraten/cicd-pipeline/config"
	"github.com/30Piraten/cicd-pipeline/stack"
)

const DefaultStackName = "CICDStack"

// SynthCommand writes the cloud assembly without going through the cdk CLI.
func SynthCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "synth",
		Usage: "Synthesize the pipeline stack into a cloud assembly directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Usage: "Output directory",
				Value: "cdk.out",
			},
			&cli.StringFlag{
				Name:  "stack-name",
				Usage: "CloudFormation stack name",
				Value: DefaultStackName,
			},
			&cli.StringFlag{
				Name:  "qualifier",
				Usage: "CDK bootstrap qualifier",
			},
		},
		Action: func(c *cli.Context) error {
			opts, err := loadOptions(c)
			if err != nil {
				return err
			}

			env := config.ResolveStackEnv(nil)
			if region := c.String(flagRegion); region != "" {
				env.Region = region
			}

			app := awscdk.NewApp(&awscdk.AppProps{
				Outdir: jsii.String(c.String("out")),
			})
			s, err := stack.New(app, c.String("stack-name"), &stack.Props{
				StackProps: awscdk.StackProps{
					Env: stackEnvironment(env),
				},
				Options:   opts,
				Qualifier: c.String("qualifier"),
			})
			if err != nil {
				return err
			}

			assembly := app.Synth(nil)
			logger.Info().
				Str("stack", *s.StackName()).
				Str("directory", *assembly.Directory()).
				Msg("Synthesized pipeline stack")
			return nil
		},
	}
}

func stackEnvironment(env config.StackEnv) *awscdk.Environment {
	out := &awscdk.Environment{Region: jsii.String(env.Region)}
	if env.Account != "" {
		out.Account = jsii.String(env.Account)
	}
	return out
}
