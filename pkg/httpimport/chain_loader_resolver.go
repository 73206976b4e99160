package httpimport

import (
	"context"

	"github.com/evanw/esbuild/pkg/api"
)

// ChainLoaderResolver implements LoaderResolver over a chain of resolvers,
// first match wins.
type ChainLoaderResolver struct {
	chain []LoaderResolver
}

func NewChainLoaderResolver(chain ...LoaderResolver) *ChainLoaderResolver {
	return &ChainLoaderResolver{
		chain: chain,
	}
}

// ResolveLoader implements the LoaderResolver interface
func (r *ChainLoaderResolver) ResolveLoader(ctx context.Context, req *LoaderRequest) (api.Loader, error) {
	for _, next := range r.chain {
		loader, err := next.ResolveLoader(ctx, req)
		if err == nil {
			return loader, nil
		}
		if err == ErrLoaderNotFound {
			continue
		}
		return api.LoaderNone, err
	}

	return api.LoaderNone, ErrLoaderNotFound
}
