// Package di wires the AWS clients and services used by cicdctl with uber's
// dig container.
package di

import (
	"context"

	"go.uber.org/dig"
)

// Container is the part of *dig.Container the CLI relies on.
type Container interface {
	Invoke(function any, opts ...dig.InvokeOption) error
	Provide(constructor any, opts ...dig.ProvideOption) error
}

// Get returns an instance constructed by the container.
func Get[T any](container Container) (want T, err error) {
	err = container.Invoke(func(got T) {
		want = got
	})
	return want, err
}

// New creates a container with the AWS config, clients and services.
func New(ctx context.Context, opts ...Option) (Container, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	container := dig.New()
	if err := container.Provide(func() context.Context { return ctx }); err != nil {
		return nil, err
	}
	if err := container.Provide(func() Region { return o.region }); err != nil {
		return nil, err
	}
	if err := container.Provide(func() Profile { return o.profile }); err != nil {
		return nil, err
	}

	for _, provider := range core {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}

	return container, nil
}
