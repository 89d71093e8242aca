// Command arc archives files and directories into a compressed container.
//
// Usage:
//
//	arc -o site.zip ./site
//	arc -o backup.tar.zst -format tar.zst -v ./etc ./var/www
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/meigma/arc"
)

type config struct {
	out       string
	format    string
	chunkSize int
	skip      bool
	verbose   bool
	quiet     bool
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.out, "o", "", "output archive path (required)")
	flag.StringVar(&cfg.format, "format", "zip", "archive format: zip, tar.zst, or tar.lz4")
	flag.IntVar(&cfg.chunkSize, "chunk", 0, "copy chunk size in bytes (0 = default)")
	flag.BoolVar(&cfg.skip, "skip-unreadable", false, "skip files that cannot be opened")
	flag.BoolVar(&cfg.verbose, "v", false, "verbose logging to stderr")
	flag.BoolVar(&cfg.quiet, "q", false, "suppress the progress line")
	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()
	if cfg.out == "" || flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s -o archive [-format zip|tar.zst|tar.lz4] path...\n", os.Args[0])
		os.Exit(2)
	}

	format, err := parseFormat(cfg.format)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	b := arc.NewBuilder()
	for _, path := range flag.Args() {
		if err := add(b, path); err != nil {
			log.Fatalf("add %s: %v", path, err)
		}
	}

	opts := []arc.BuildOption{
		arc.BuildWithFormat(format),
		arc.BuildWithChunkSize(cfg.chunkSize),
	}
	if cfg.verbose {
		opts = append(opts, arc.BuildWithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))))
	}
	if !cfg.quiet {
		opts = append(opts, arc.BuildWithProgress(func(p arc.Progress) {
			fmt.Fprintf(os.Stderr, "\r%-50.50s %10s", p.Path, formatSize(p.TotalBytes))
		}))
	}
	if cfg.skip {
		opts = append(opts, arc.BuildWithOnFailure(func(f arc.Failure) arc.RecoveryAction {
			fmt.Fprintf(os.Stderr, "\nskipping %s: %v\n", f.Path, f.Err)
			return arc.ActionIgnore
		}))
	}

	a, err := b.Build(ctx, cfg.out, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr)
		log.Fatalf("build: %v", err)
	}
	if err := a.Close(); err != nil {
		log.Fatalf("close: %v", err)
	}

	var total uint64
	for _, e := range a.Entries() {
		total += e.Size
	}
	if !cfg.quiet {
		fmt.Fprintln(os.Stderr)
	}
	fmt.Printf("%s: %d files, %s\n", a.Path(), len(a.Entries()), formatSize(total))
}

func add(b *arc.Builder, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		d, err := arc.NewOSDir(path)
		if err != nil {
			return err
		}
		return b.AddDirectory(d)
	}
	f, err := arc.NewOSFile(path)
	if err != nil {
		return err
	}
	return b.AddFile(f)
}

func parseFormat(s string) (arc.Format, error) {
	switch s {
	case "zip":
		return arc.FormatZip, nil
	case "tar.zst":
		return arc.FormatTarZstd, nil
	case "tar.lz4":
		return arc.FormatTarLZ4, nil
	default:
		return 0, fmt.Errorf("unknown format %q", s)
	}
}

// formatSize returns a human-readable size string.
func formatSize(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
