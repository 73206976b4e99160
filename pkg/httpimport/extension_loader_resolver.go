package httpimport

import (
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// extensionLoaders maps a lower-cased filename extension to its loader.
var extensionLoaders = map[string]api.Loader{
	"js":   api.LoaderJS,
	"mjs":  api.LoaderJS,
	"cjs":  api.LoaderJS,
	"ts":   api.LoaderTS,
	"mts":  api.LoaderTS,
	"cts":  api.LoaderTS,
	"jsx":  api.LoaderJSX,
	"tsx":  api.LoaderTSX,
	"json": api.LoaderJSON,
	"css":  api.LoaderCSS,
	"txt":  api.LoaderText,
}

// ExtensionLoaderResolver implements LoaderResolver using the filename
// extension of the last segment of the request path.  Query and fragment
// are ignored; a dotfile segment with no further dot has no extension.
type ExtensionLoaderResolver struct{}

func NewExtensionLoaderResolver() *ExtensionLoaderResolver {
	return &ExtensionLoaderResolver{}
}

// ResolveLoader implements the LoaderResolver interface
func (r *ExtensionLoaderResolver) ResolveLoader(ctx context.Context, req *LoaderRequest) (api.Loader, error) {
	u, err := url.Parse(req.Path)
	if err != nil {
		return api.LoaderNone, ErrLoaderNotFound
	}
	base := path.Base(u.Path)
	dot := strings.LastIndex(base, ".")
	if dot <= 0 {
		return api.LoaderNone, ErrLoaderNotFound
	}
	if loader, ok := extensionLoaders[strings.ToLower(base[dot+1:])]; ok {
		return loader, nil
	}
	return api.LoaderNone, ErrLoaderNotFound
}
