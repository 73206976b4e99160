package httpimport

import (
	"context"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// contentTypeLoaders maps a media type (parameters stripped) to its loader.
var contentTypeLoaders = map[string]api.Loader{
	"application/javascript": api.LoaderJS,
	"text/javascript":        api.LoaderJS,
	"application/typescript": api.LoaderTS,
	"text/typescript":        api.LoaderTS,
	"application/json":       api.LoaderJSON,
	"text/json":              api.LoaderJSON,
	"text/css":               api.LoaderCSS,
	"text/plain":             api.LoaderText,
}

// ContentTypeLoaderResolver implements LoaderResolver using the
// Content-Type header of the response.
type ContentTypeLoaderResolver struct{}

func NewContentTypeLoaderResolver() *ContentTypeLoaderResolver {
	return &ContentTypeLoaderResolver{}
}

// ResolveLoader implements the LoaderResolver interface
func (r *ContentTypeLoaderResolver) ResolveLoader(ctx context.Context, req *LoaderRequest) (api.Loader, error) {
	if req.Response == nil {
		return api.LoaderNone, ErrLoaderNotFound
	}
	contentType := req.Response.Header.Get("Content-Type")
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if loader, ok := contentTypeLoaders[contentType]; ok {
		return loader, nil
	}
	return api.LoaderNone, ErrLoaderNotFound
}
