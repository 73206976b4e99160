package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/pcj/mobyprogress"

	"github.com/stackb/esbuild-http-import/pkg/collections"
	"github.com/stackb/esbuild-http-import/pkg/httpimport"
)

var (
	outputFile string
	timeout    time.Duration
	namespace  string
	allowHosts collections.StringSlice
	minify     bool
	quiet      bool
)

func main() {
	log.SetPrefix("httpbundle: ")
	log.SetFlags(0) // don't print timestamps

	fs := flag.NewFlagSet("httpbundle", flag.ContinueOnError)
	fs.StringVar(&outputFile, "outfile", "", "the output file to write")
	fs.DurationVar(&timeout, "timeout", httpimport.DefaultTimeout, "per-download timeout")
	fs.StringVar(&namespace, "namespace", httpimport.DefaultNamespace, "namespace tag for http imports")
	fs.Var(&allowHosts, "allow_host", "glob pattern of hosts that may be downloaded from (repeatable; empty allows all)")
	fs.BoolVar(&minify, "minify", false, "minify the bundle")
	fs.BoolVar(&quiet, "quiet", false, "suppress download progress")

	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	if outputFile == "" {
		log.Fatal("-outfile is required")
	}
	if len(fs.Args()) != 1 {
		log.Fatal("positional args should be a single entry point (url or file): args=", os.Args)
	}

	if err := bundle(fs.Args()[0]); err != nil {
		log.Fatal(err)
	}
}

func bundle(entryPoint string) error {
	options := []httpimport.PluginOption{
		httpimport.WithNamespace(namespace),
		httpimport.WithTimeout(timeout),
		httpimport.WithAllowHosts(allowHosts...),
	}
	if !quiet {
		output := mobyprogress.NewProgressOutput(mobyprogress.NewOut(os.Stderr))
		options = append(options, httpimport.WithOnLog(httpimport.DownloadProgress(output)))
	}

	result := api.Build(api.BuildOptions{
		EntryPoints:       []string{entryPoint},
		Bundle:            true,
		Outfile:           outputFile,
		Write:             true,
		MinifyWhitespace:  minify,
		MinifySyntax:      minify,
		MinifyIdentifiers: minify,
		LogLevel:          api.LogLevelInfo,
		Plugins:           []api.Plugin{httpimport.NewPlugin(options...)},
	})
	if len(result.Errors) > 0 {
		return fmt.Errorf("bundling %s failed with %d error(s)", entryPoint, len(result.Errors))
	}
	return nil
}
