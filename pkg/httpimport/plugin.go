// Package httpimport implements an esbuild plugin that resolves and loads
// modules over http(s), rebasing relative imports that occur inside remote
// modules against the URL each module was actually served from.
package httpimport

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog"
)

const (
	// PluginName is the name the plugin registers under with esbuild.
	PluginName = "http-import"
	// DefaultNamespace tags all resolutions owned by this plugin.
	DefaultNamespace = "_http_url"
	// DefaultTimeout bounds a single download.
	DefaultTimeout = 30 * time.Second
)

const (
	// absoluteURLFilter matches fully-qualified http(s) imports anywhere in
	// the module graph, including entry points.
	absoluteURLFilter = `^https?://`
	// relativePathFilter matches `./`, `../` and `/` relative references.
	// Bare specifiers (e.g. "react") inside a remote module deliberately do
	// not match, so they fall through to esbuild's normal resolution instead
	// of being rewritten into a URL on the remote host.
	relativePathFilter = `^\.{0,2}/`
)

type PluginOption func(*plugin) *plugin

// WithNamespace sets the namespace tag used to mark plugin-owned
// resolutions.  It must not collide with another plugin's namespace.
func WithNamespace(namespace string) PluginOption {
	return func(p *plugin) *plugin {
		p.namespace = namespace
		return p
	}
}

// WithTimeout sets the per-download timeout.
func WithTimeout(timeout time.Duration) PluginOption {
	return func(p *plugin) *plugin {
		p.timeout = timeout
		return p
	}
}

// WithOnLog sets a sink for human-readable download progress messages.
func WithOnLog(onLog func(message string)) PluginOption {
	return func(p *plugin) *plugin {
		p.onLog = onLog
		return p
	}
}

// WithLoaderResolver installs a resolver consulted before the built-in
// extension and content-type inference.  Return ErrLoaderNotFound to fall
// through to the built-in chain.
func WithLoaderResolver(resolver LoaderResolver) PluginOption {
	return func(p *plugin) *plugin {
		p.loaderResolver = resolver
		return p
	}
}

// WithDefaultLoader sets the loader chosen when no other inference applies.
func WithDefaultLoader(loader api.Loader) PluginOption {
	return func(p *plugin) *plugin {
		p.defaultLoader = loader
		return p
	}
}

// WithHTTPClient sets the client used for downloads.
func WithHTTPClient(client Doer) PluginOption {
	return func(p *plugin) *plugin {
		p.client = client
		return p
	}
}

// WithAllowHosts restricts downloads to hosts matching at least one of the
// given glob patterns (e.g. "cdn.example.com", "*.jsdelivr.net").  An empty
// list allows all hosts.
func WithAllowHosts(patterns ...string) PluginOption {
	return func(p *plugin) *plugin {
		p.allowHosts = patterns
		return p
	}
}

func WithLogger(logger zerolog.Logger) PluginOption {
	return func(p *plugin) *plugin {
		p.logger = logger
		return p
	}
}

var defaultOptions = []PluginOption{
	WithNamespace(DefaultNamespace),
	WithTimeout(DefaultTimeout),
	WithDefaultLoader(api.LoaderJS),
	WithHTTPClient(http.DefaultClient),
	WithLogger(zerolog.Nop()),
}

// NewPlugin constructs the plugin.  Each returned plugin owns its own
// redirect ledger, so one instance serves exactly one build invocation and
// concurrent builds in the same process never interfere.
func NewPlugin(options ...PluginOption) api.Plugin {
	p := newPlugin(options...)
	return api.Plugin{Name: PluginName, Setup: p.setup}
}

func newPlugin(options ...PluginOption) *plugin {
	p := &plugin{}

	for _, opt := range append(defaultOptions, options...) {
		p = opt(p)
	}

	p.ledger = NewRedirectLedger()
	p.fetcher = NewFetcher(p.client, p.timeout, p.ledger, p.onLog, p.logger)

	chain := make([]LoaderResolver, 0, 4)
	if p.loaderResolver != nil {
		chain = append(chain, p.loaderResolver)
	}
	chain = append(chain,
		NewExtensionLoaderResolver(),
		NewContentTypeLoaderResolver(),
		NewDefaultLoaderResolver(p.defaultLoader),
	)
	p.loaders = NewChainLoaderResolver(chain...)

	return p
}

// plugin holds the per-build state shared by the resolve and load hooks.
type plugin struct {
	namespace      string
	timeout        time.Duration
	onLog          func(message string)
	loaderResolver LoaderResolver
	defaultLoader  api.Loader
	allowHosts     []string
	client         Doer
	logger         zerolog.Logger

	ledger  *RedirectLedger
	fetcher *Fetcher
	loaders LoaderResolver
}

func (p *plugin) setup(build api.PluginBuild) {
	build.OnResolve(api.OnResolveOptions{
		Filter: absoluteURLFilter,
	}, p.resolveAbsolute)

	build.OnResolve(api.OnResolveOptions{
		Filter:    relativePathFilter,
		Namespace: p.namespace,
	}, p.resolveRelative)

	build.OnLoad(api.OnLoadOptions{
		Filter:    `.*`,
		Namespace: p.namespace,
	}, p.load)
}

// resolveAbsolute handles fully-qualified http(s) imports.  The path is the
// canonical path already; it only needs the namespace tag.
func (p *plugin) resolveAbsolute(args api.OnResolveArgs) (api.OnResolveResult, error) {
	if err := p.checkHostAllowed(args.Path); err != nil {
		return api.OnResolveResult{}, err
	}
	p.logger.Debug().
		Str("path", args.Path).
		Str("importer", args.Importer).
		Msg("resolved absolute url")
	return api.OnResolveResult{Path: args.Path, Namespace: p.namespace}, nil
}

// resolveRelative handles relative references inside modules this plugin
// previously fetched.  The base is the importer's post-redirect URL when one
// was recorded, else the importer's canonical path itself.
func (p *plugin) resolveRelative(args api.OnResolveArgs) (api.OnResolveResult, error) {
	base := p.ledger.BaseFor(args.Importer)
	baseURL, err := url.Parse(base)
	if err != nil {
		return api.OnResolveResult{}, fmt.Errorf("parsing base url %q for import %q: %w", base, args.Path, err)
	}
	ref, err := url.Parse(args.Path)
	if err != nil {
		return api.OnResolveResult{}, fmt.Errorf("parsing import %q (importer %s): %w", args.Path, args.Importer, err)
	}
	resolved := baseURL.ResolveReference(ref).String()

	if err := p.checkHostAllowed(resolved); err != nil {
		return api.OnResolveResult{}, err
	}

	p.logger.Debug().
		Str("path", args.Path).
		Str("importer", args.Importer).
		Str("base", base).
		Str("resolved", resolved).
		Msg("resolved relative url")

	return api.OnResolveResult{Path: resolved, Namespace: p.namespace}, nil
}

// load fetches the canonical path and classifies its contents.
func (p *plugin) load(args api.OnLoadArgs) (api.OnLoadResult, error) {
	ctx := context.Background()

	response, err := p.fetcher.Fetch(ctx, args.Path)
	if err != nil {
		return api.OnLoadResult{}, err
	}

	loader, err := p.loaders.ResolveLoader(ctx, &LoaderRequest{
		Path:      args.Path,
		Namespace: args.Namespace,
		Response:  response,
	})
	if err != nil {
		return api.OnLoadResult{}, fmt.Errorf("classifying %s: %w", args.Path, err)
	}

	contents := string(response.Body)
	return api.OnLoadResult{Contents: &contents, Loader: loader}, nil
}

func (p *plugin) checkHostAllowed(rawURL string) error {
	if len(p.allowHosts) == 0 {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing url %q: %w", rawURL, err)
	}
	for _, pattern := range p.allowHosts {
		ok, err := doublestar.Match(pattern, u.Hostname())
		if err != nil {
			return fmt.Errorf("bad allow-host pattern %q: %w", pattern, err)
		}
		if ok {
			return nil
		}
	}
	return fmt.Errorf("%s: host %q is not in the allowed host list %v", rawURL, u.Hostname(), p.allowHosts)
}
