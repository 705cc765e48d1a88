package model

import "github.com/goliatone/go-displaymeta/pkg/metadata"

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	Resolver *metadata.Resolver
}

func defaultOptions() Options {
	return Options{
		Resolver: metadata.MustResolver(),
	}
}
