package httpimport

import (
	"context"

	"github.com/evanw/esbuild/pkg/api"
)

// LoaderRequest carries the inputs to loader classification for one fetched
// resource.
type LoaderRequest struct {
	// Path is the canonical path the resource was requested under.
	Path string
	// Namespace is the namespace tag the path was resolved into.
	Namespace string
	// Response is the raw download result.
	Response *FetchResponse
}

// LoaderResolver decides which esbuild loader parses a fetched resource.
// Implementations return ErrLoaderNotFound to decline.
type LoaderResolver interface {
	ResolveLoader(ctx context.Context, req *LoaderRequest) (api.Loader, error)
}

// LoaderResolverFunc adapts a function to the LoaderResolver interface.
type LoaderResolverFunc func(ctx context.Context, req *LoaderRequest) (api.Loader, error)

// ResolveLoader implements the LoaderResolver interface
func (f LoaderResolverFunc) ResolveLoader(ctx context.Context, req *LoaderRequest) (api.Loader, error) {
	return f(ctx, req)
}
