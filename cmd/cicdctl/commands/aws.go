package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/30Piraten/cicd-pipeline/internal/di"
	"github.com/30Piraten/cicd-pipeline/internal/services"
)

func newContainer(c *cli.Context) (di.Container, error) {
	return di.New(c.Context,
		di.WithRegion(c.String(flagRegion)),
		di.WithProfile(c.String(flagProfile)),
	)
}

// StatusCommand prints the latest status of every pipeline stage.
func StatusCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the latest execution status of each pipeline stage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "pipeline",
				Usage: "Pipeline name (defaults to <prefix>-cicd-pipeline)",
			},
			formatFlag(),
		},
		Action: func(c *cli.Context) error {
			name := c.String("pipeline")
			if name == "" {
				resolved, err := loadResolved(c)
				if err != nil {
					return err
				}
				name = resolved.Prefix + "-cicd-pipeline"
			}

			container, err := newContainer(c)
			if err != nil {
				return err
			}
			svc, err := di.Get[*services.PipelineService](container)
			if err != nil {
				return err
			}

			stages, err := svc.State(c.Context, name)
			if err != nil {
				return err
			}
			logger.Debug().Str("pipeline", name).Int("stages", len(stages)).Msg("Fetched pipeline state")
			return write(c.App.Writer, c.String("format"), stages)
		},
	}
}

// SecretCommand checks that the GitHub token secret exists.
func SecretCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "secret",
		Usage: "Check that the GitHub OAuth token secret exists",
		Action: func(c *cli.Context) error {
			resolved, err := loadResolved(c)
			if err != nil {
				return err
			}

			container, err := newContainer(c)
			if err != nil {
				return err
			}
			svc, err := di.Get[*services.SecretsService](container)
			if err != nil {
				return err
			}

			info, err := svc.Check(c.Context, resolved.TokenSecretName)
			if err != nil {
				return err
			}
			logger.Info().Str("secret", info.Name).Msg("GitHub token secret found")
			_, err = fmt.Fprintln(c.App.Writer, info.ARN)
			return err
		},
	}
}

// ObjectsCommand lists what the pipeline deployed to the bucket.
func ObjectsCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "objects",
		Usage: "List objects deployed to the bucket",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "bucket",
				Aliases:  []string{"b"},
				Usage:    "Deploy bucket name (see the DeployBucketName stack output)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Only list keys under this prefix",
			},
			formatFlag(),
		},
		Action: func(c *cli.Context) error {
			container, err := newContainer(c)
			if err != nil {
				return err
			}
			svc, err := di.Get[*services.BucketService](container)
			if err != nil {
				return err
			}

			objects, err := svc.List(c.Context, c.String("bucket"), c.String("prefix"))
			if err != nil {
				return err
			}
			logger.Debug().Str("bucket", c.String("bucket")).Int("objects", len(objects)).Msg("Listed deploy bucket")
			return write(c.App.Writer, c.String("format"), objects)
		},
	}
}
