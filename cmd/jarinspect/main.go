// Command jarinspect prints the entries, manifest and class lookups of JAR
// archives.
//
//	jarinspect -list -manifest -locate com.example.Foo,com.example.Bar app.jar lib.jar
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/meigma/jarsource"
	"github.com/meigma/jarsource/manifest"
)

type config struct {
	list         bool
	showManifest bool
	locate       []string
	workers      int
	maxEntrySize uint64
	verbose      bool
}

// located is the outcome of one lookup.
type located struct {
	typeName string
	res      jarsource.Resolution
}

// report collects everything printed for one archive.
type report struct {
	path     string
	manifest *manifest.Manifest
	names    []string
	located  []located
}

func main() {
	cfg, paths := parseFlags()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	reports, err := inspectAll(paths, cfg, logger)
	for _, r := range reports {
		if r == nil {
			continue
		}
		if werr := r.write(os.Stdout, cfg); werr != nil {
			log.Fatal(werr)
		}
	}
	if err != nil {
		log.Fatal(err)
	}
}

func parseFlags() (config, []string) {
	var cfg config
	var locate string
	flag.BoolVar(&cfg.list, "list", false, "list archive entries")
	flag.BoolVar(&cfg.showManifest, "manifest", false, "print manifest attributes")
	flag.StringVar(&locate, "locate", "", "comma-separated type names to look up")
	flag.IntVar(&cfg.workers, "workers", 4, "archives inspected concurrently")
	flag.Uint64Var(&cfg.maxEntrySize, "max-entry-size", 256<<20, "maximum class file size in bytes (0 = unlimited)")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] archive...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg.locate = splitList(locate)
	return cfg, flag.Args()
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// inspectAll inspects paths concurrently. The returned slice is in path
// order; entries for archives that failed or were not reached are nil.
func inspectAll(paths []string, cfg config, logger *slog.Logger) ([]*report, error) {
	reports := make([]*report, len(paths))
	var g errgroup.Group
	if cfg.workers > 0 {
		g.SetLimit(cfg.workers)
	}
	for i, path := range paths {
		g.Go(func() error {
			r, err := inspect(path, cfg, logger)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	return reports, g.Wait()
}

func inspect(path string, cfg config, logger *slog.Logger) (*report, error) {
	src, err := jarsource.New(path,
		jarsource.WithLogger(logger.With("archive", path)),
		jarsource.WithMaxEntrySize(cfg.maxEntrySize),
	)
	if err != nil {
		return nil, err
	}

	r := &report{path: path, manifest: src.Manifest()}
	if cfg.list {
		if r.names, err = src.Names(); err != nil {
			return nil, err
		}
	}
	locator := src.ClassFileLocator()
	for _, typeName := range cfg.locate {
		res, err := locator.Locate(typeName)
		if err != nil {
			return nil, err
		}
		r.located = append(r.located, located{typeName: typeName, res: res})
	}
	return r, nil
}

func (r *report) write(w io.Writer, cfg config) error {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s\n", r.path)
	if cfg.showManifest {
		if r.manifest == nil {
			b.WriteString("manifest: none\n")
		} else {
			b.WriteString("manifest:\n")
			for name, value := range r.manifest.Main.All() {
				fmt.Fprintf(&b, "  %s: %s\n", name, value)
			}
			for entry := range r.manifest.Entries() {
				fmt.Fprintf(&b, "  [%s]\n", entry)
			}
		}
	}
	if cfg.list {
		fmt.Fprintf(&b, "entries (%d):\n", len(r.names))
		for _, name := range r.names {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	if len(r.located) > 0 {
		b.WriteString("locate:\n")
		for _, l := range r.located {
			if !l.res.IsResolved() {
				fmt.Fprintf(&b, "  %s unresolved\n", l.typeName)
				continue
			}
			fmt.Fprintf(&b, "  %s %d bytes %s\n", l.typeName, len(l.res.Bytes()), l.res.Digest())
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
