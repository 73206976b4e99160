package httpimport

import (
	"regexp"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/google/go-cmp/cmp"
)

func TestResolveAbsoluteURL(t *testing.T) {
	for name, tc := range map[string]struct {
		options []PluginOption
		args    api.OnResolveArgs
		want    api.OnResolveResult
		wantErr bool
	}{
		"https entry point is resolved to itself": {
			args: api.OnResolveArgs{Path: "https://cdn.example.com/a.js", Kind: api.ResolveEntryPoint},
			want: api.OnResolveResult{Path: "https://cdn.example.com/a.js", Namespace: DefaultNamespace},
		},
		"http import is resolved to itself": {
			args: api.OnResolveArgs{Path: "http://cdn.example.com/a.js", Importer: "entry.js"},
			want: api.OnResolveResult{Path: "http://cdn.example.com/a.js", Namespace: DefaultNamespace},
		},
		"query and fragment are preserved": {
			args: api.OnResolveArgs{Path: "https://cdn.example.com/a.js?v=2#frag"},
			want: api.OnResolveResult{Path: "https://cdn.example.com/a.js?v=2#frag", Namespace: DefaultNamespace},
		},
		"custom namespace tag": {
			options: []PluginOption{WithNamespace("cdn")},
			args:    api.OnResolveArgs{Path: "https://cdn.example.com/a.js"},
			want:    api.OnResolveResult{Path: "https://cdn.example.com/a.js", Namespace: "cdn"},
		},
		"allowed host passes": {
			options: []PluginOption{WithAllowHosts("cdn.example.com", "*.jsdelivr.net")},
			args:    api.OnResolveArgs{Path: "https://cdn.example.com/a.js"},
			want:    api.OnResolveResult{Path: "https://cdn.example.com/a.js", Namespace: DefaultNamespace},
		},
		"glob-allowed host passes": {
			options: []PluginOption{WithAllowHosts("*.jsdelivr.net")},
			args:    api.OnResolveArgs{Path: "https://fastly.jsdelivr.net/npm/left-pad"},
			want:    api.OnResolveResult{Path: "https://fastly.jsdelivr.net/npm/left-pad", Namespace: DefaultNamespace},
		},
		"disallowed host is rejected": {
			options: []PluginOption{WithAllowHosts("cdn.example.com")},
			args:    api.OnResolveArgs{Path: "https://evil.example.org/a.js"},
			wantErr: true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			p := newPlugin(tc.options...)
			got, err := p.resolveAbsolute(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatal("want error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveRelative(t *testing.T) {
	for name, tc := range map[string]struct {
		ledger   [][2]string
		args     api.OnResolveArgs
		wantPath string
	}{
		"sibling": {
			args: api.OnResolveArgs{
				Path:      "./util.js",
				Importer:  "https://cdn.example.com/lib/index.js",
				Namespace: DefaultNamespace,
			},
			wantPath: "https://cdn.example.com/lib/util.js",
		},
		"parent": {
			args: api.OnResolveArgs{
				Path:      "../shared.js",
				Importer:  "https://cdn.example.com/lib/index.js",
				Namespace: DefaultNamespace,
			},
			wantPath: "https://cdn.example.com/shared.js",
		},
		"same-origin absolute path": {
			args: api.OnResolveArgs{
				Path:      "/root.js",
				Importer:  "https://cdn.example.com/lib/index.js",
				Namespace: DefaultNamespace,
			},
			wantPath: "https://cdn.example.com/root.js",
		},
		"protocol-relative takes the base scheme": {
			args: api.OnResolveArgs{
				Path:      "//other.example.com/x.js",
				Importer:  "https://cdn.example.com/lib/index.js",
				Namespace: DefaultNamespace,
			},
			wantPath: "https://other.example.com/x.js",
		},
		"dot segments are normalized": {
			args: api.OnResolveArgs{
				Path:      "./sub/../util.js",
				Importer:  "https://cdn.example.com/lib/index.js",
				Namespace: DefaultNamespace,
			},
			wantPath: "https://cdn.example.com/lib/util.js",
		},
		"redirected importer rebases against the ledger entry": {
			ledger: [][2]string{
				{"https://cdn.example.com/pkg", "https://cdn.example.com/pkg/index.js"},
			},
			args: api.OnResolveArgs{
				Path:      "./util.js",
				Importer:  "https://cdn.example.com/pkg",
				Namespace: DefaultNamespace,
			},
			wantPath: "https://cdn.example.com/pkg/util.js",
		},
		"unredirected importer is its own base": {
			args: api.OnResolveArgs{
				Path:      "./util.js",
				Importer:  "https://cdn.example.com/pkg",
				Namespace: DefaultNamespace,
			},
			wantPath: "https://cdn.example.com/util.js",
		},
	} {
		t.Run(name, func(t *testing.T) {
			p := newPlugin()
			for _, rec := range tc.ledger {
				p.ledger.Record(rec[0], rec[1])
			}
			got, err := p.resolveRelative(tc.args)
			if err != nil {
				t.Fatal(err)
			}
			want := api.OnResolveResult{Path: tc.wantPath, Namespace: DefaultNamespace}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

// TestHookFilters pins down which import paths each registered hook claims.
// Bare specifiers must match neither filter so the host resolves them
// normally (a remote module's `import "react"` must not be rewritten into a
// URL on the remote host).
func TestHookFilters(t *testing.T) {
	absolute := regexp.MustCompile(absoluteURLFilter)
	relative := regexp.MustCompile(relativePathFilter)

	for name, tc := range map[string]struct {
		path         string
		wantAbsolute bool
		wantRelative bool
	}{
		"https url":              {path: "https://cdn.example.com/a.js", wantAbsolute: true},
		"http url":               {path: "http://cdn.example.com/a.js", wantAbsolute: true},
		"ftp url":                {path: "ftp://cdn.example.com/a.js"},
		"data url":               {path: "data:text/javascript,1"},
		"bare specifier":         {path: "react"},
		"scoped bare specifier":  {path: "@scope/pkg"},
		"subpath bare specifier": {path: "lodash/fp"},
		"dot relative":           {path: "./util.js", wantRelative: true},
		"parent relative":        {path: "../util.js", wantRelative: true},
		"absolute path":          {path: "/util.js", wantRelative: true},
		"protocol-relative":      {path: "//cdn.example.com/a.js", wantRelative: true},
		"uppercase scheme":       {path: "HTTPS://cdn.example.com/a.js"},
	} {
		t.Run(name, func(t *testing.T) {
			if got := absolute.MatchString(tc.path); got != tc.wantAbsolute {
				t.Errorf("absolute filter match for %q: want %v, got %v", tc.path, tc.wantAbsolute, got)
			}
			if got := relative.MatchString(tc.path); got != tc.wantRelative {
				t.Errorf("relative filter match for %q: want %v, got %v", tc.path, tc.wantRelative, got)
			}
		})
	}
}
