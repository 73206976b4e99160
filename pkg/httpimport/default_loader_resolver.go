package httpimport

import (
	"context"

	"github.com/evanw/esbuild/pkg/api"
)

// DefaultLoaderResolver implements LoaderResolver with a fixed answer.  It
// terminates a resolver chain so classification always produces a loader:
// unknown content is treated as script.
type DefaultLoaderResolver struct {
	loader api.Loader
}

func NewDefaultLoaderResolver(loader api.Loader) *DefaultLoaderResolver {
	return &DefaultLoaderResolver{loader: loader}
}

// ResolveLoader implements the LoaderResolver interface
func (r *DefaultLoaderResolver) ResolveLoader(ctx context.Context, req *LoaderRequest) (api.Loader, error) {
	return r.loader, nil
}
