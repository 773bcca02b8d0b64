package di

type (
	Region  string
	Profile string
)

// Option configures the container.
type Option func(*options)

func WithRegion(region string) Option {
	return func(opts *options) {
		opts.region = Region(region)
	}
}

func WithProfile(profile string) Option {
	return func(opts *options) {
		opts.profile = Profile(profile)
	}
}

type options struct {
	region  Region
	profile Profile
}
