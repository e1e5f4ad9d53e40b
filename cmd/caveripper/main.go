// Command caveripper is the command-line front end to the generator,
// search driver, and exporters: generate a single sublevel deterministically
// from a seed, or search a seed range for one matching a query.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/caveripper/pkg/caveinfo"
	"github.com/dshills/caveripper/pkg/export"
	"github.com/dshills/caveripper/pkg/generator"
	"github.com/dshills/caveripper/pkg/query"
	"github.com/dshills/caveripper/pkg/search"
	"github.com/dshills/caveripper/pkg/waypoint"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(os.Args[2:])
	case "search":
		err = runSearch(os.Args[2:])
	case "stats":
		err = runStats(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	case "-version", "--version", "version":
		fmt.Printf("caveripper version %s\n", version)
		return
	case "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if isUsageErr(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// usageError marks an error caused by malformed input (bad flags, a query
// parse failure, an unknown sublevel) rather than a runtime failure, so
// main can choose the right exit code.
type usageError struct{ err error }

func (u *usageError) Error() string { return u.err.Error() }
func (u *usageError) Unwrap() error { return u.err }

func isUsageErr(err error) bool {
	_, ok := err.(*usageError)
	return ok
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: caveripper <command> [options]")
	fmt.Fprintln(os.Stderr, "\nCommands:")
	fmt.Fprintln(os.Stderr, "  generate   Generate a single sublevel from a seed")
	fmt.Fprintln(os.Stderr, "  search     Search a seed range for one matching a query")
	fmt.Fprintln(os.Stderr, "  stats      Report the fraction of a seed range matching a query")
	fmt.Fprintln(os.Stderr, "  batch      Run every job in a YAML batch file")
	fmt.Fprintln(os.Stderr, "\nRun 'caveripper <command> -help' for command-specific flags.")
}

// openLoader resolves -caveinfo and -sublevel flags shared by every
// subcommand into a Loader and a resolved Sublevel.
func openLoader(caveinfoDir, code string) (*caveinfo.Loader, caveinfo.Sublevel, error) {
	loader, err := caveinfo.NewLoader(caveinfoDir)
	if err != nil {
		return nil, caveinfo.Sublevel{}, &usageError{fmt.Errorf("opening caveinfo directory: %w", err)}
	}
	sub, err := loader.Resolve(code)
	if err != nil {
		return nil, caveinfo.Sublevel{}, &usageError{fmt.Errorf("resolving sublevel %q: %w", code, err)}
	}
	return loader, sub, nil
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	caveinfoDir := fs.String("caveinfo", "", "Path to the caveinfo directory (required)")
	sublevel := fs.String("sublevel", "", "Sublevel shortcode, e.g. scx7 (required)")
	seed := fs.Uint64("seed", 0, "Seed to generate from")
	outDir := fs.String("output", ".", "Output directory for exported files")
	format := fs.String("format", "json", "Export format: json, svg, or all")
	if err := fs.Parse(args); err != nil {
		return &usageError{err}
	}
	if *caveinfoDir == "" || *sublevel == "" {
		fs.Usage()
		return &usageError{fmt.Errorf("-caveinfo and -sublevel are required")}
	}

	loader, sub, err := openLoader(*caveinfoDir, *sublevel)
	if err != nil {
		return err
	}
	floorSpec, err := loader.Load(sub)
	if err != nil {
		return fmt.Errorf("loading floor spec: %w", err)
	}

	lo := generator.Generate(context.Background(), floorSpec, uint32(*seed))
	waypoint.Build(lo)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	baseName := fmt.Sprintf("%s_%d", *sublevel, *seed)

	switch *format {
	case "json", "all":
		path := filepath.Join(*outDir, baseName+".json")
		if err := export.SaveJSONToFile(*sublevel, lo, path); err != nil {
			return fmt.Errorf("exporting JSON: %w", err)
		}
		fmt.Println("Wrote", path)
		if *format == "json" {
			break
		}
		fallthrough
	case "svg":
		opts := export.DefaultSVGOptions()
		opts.Title = fmt.Sprintf("%s (seed=%d)", *sublevel, *seed)
		path := filepath.Join(*outDir, baseName+".svg")
		if err := export.SaveSVGToFile(lo, path, opts); err != nil {
			return fmt.Errorf("exporting SVG: %w", err)
		}
		fmt.Println("Wrote", path)
	default:
		return &usageError{fmt.Errorf("unknown format %q, must be json, svg, or all", *format)}
	}
	return nil
}

// parseSublevels parses a comma-separated "ident=code,ident=code" list into
// a search.Options.Sublevels map, resolving each code against loader.
func parseSublevels(loader *caveinfo.Loader, spec string) (map[string]caveinfo.Sublevel, error) {
	out := make(map[string]caveinfo.Sublevel)
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		ident, code := parts[0], parts[0]
		if len(parts) == 2 {
			code = parts[1]
		}
		sub, err := loader.Resolve(code)
		if err != nil {
			return nil, fmt.Errorf("resolving sublevel %q: %w", code, err)
		}
		out[ident] = sub
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no sublevels given")
	}
	return out, nil
}

func runSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	caveinfoDir := fs.String("caveinfo", "", "Path to the caveinfo directory (required)")
	sublevels := fs.String("sublevel", "", "Comma-separated ident=code pairs, e.g. scx7=scx7 (required)")
	q := fs.String("query", "", "Query string (required)")
	seedStart := fs.Uint64("seed-start", 0, "First seed to try (inclusive)")
	seedEnd := fs.Uint64("seed-end", 1<<32, "Last seed to try (exclusive)")
	workers := fs.Int("workers", 0, "Worker count (0 = GOMAXPROCS)")
	maxHits := fs.Int("max-hits", 1, "Stop after this many hits (0 = unlimited)")
	timeout := fs.Duration("timeout", 0, "Give up after this long (0 = no timeout)")
	outDir := fs.String("output", "", "Directory to write one JSON file per hit (empty = stdout only)")
	if err := fs.Parse(args); err != nil {
		return &usageError{err}
	}
	if *caveinfoDir == "" || *sublevels == "" || *q == "" {
		fs.Usage()
		return &usageError{fmt.Errorf("-caveinfo, -sublevel, and -query are required")}
	}

	loader, err := caveinfo.NewLoader(*caveinfoDir)
	if err != nil {
		return &usageError{fmt.Errorf("opening caveinfo directory: %w", err)}
	}
	subMap, err := parseSublevels(loader, *sublevels)
	if err != nil {
		return &usageError{err}
	}
	parsedQuery, err := query.Parse(*q)
	if err != nil {
		return &usageError{fmt.Errorf("parsing query: %w", err)}
	}

	opts := search.Options{
		Loader:    loader,
		Sublevels: subMap,
		Query:     parsedQuery,
		SeedStart: uint32(*seedStart),
		SeedEnd:   *seedEnd,
		Workers:   *workers,
		MaxHits:   *maxHits,
		Timeout:   *timeout,
	}

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	hits, _, errc := search.Run(context.Background(), opts)
	count := 0
	for h := range hits {
		count++
		for ident, lo := range h.Layouts {
			if *outDir == "" {
				data, err := export.ExportJSONCompact(ident, lo)
				if err != nil {
					return fmt.Errorf("encoding hit: %w", err)
				}
				fmt.Printf("seed=%#x %s %s\n", h.Seed, ident, data)
				continue
			}
			path := filepath.Join(*outDir, fmt.Sprintf("%s_%08x.json", ident, h.Seed))
			if err := export.SaveJSONToFile(ident, lo, path); err != nil {
				return fmt.Errorf("writing hit: %w", err)
			}
		}
	}
	if err := <-errc; err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("no matching seed found in [%d, %d)", *seedStart, *seedEnd)
	}
	return nil
}

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	caveinfoDir := fs.String("caveinfo", "", "Path to the caveinfo directory (required)")
	sublevels := fs.String("sublevel", "", "Comma-separated ident=code pairs (required)")
	q := fs.String("query", "", "Query string (required)")
	seedStart := fs.Uint64("seed-start", 0, "First seed (inclusive)")
	seedEnd := fs.Uint64("seed-end", 10000, "Last seed (exclusive)")
	workers := fs.Int("workers", 0, "Worker count (0 = GOMAXPROCS)")
	if err := fs.Parse(args); err != nil {
		return &usageError{err}
	}
	if *caveinfoDir == "" || *sublevels == "" || *q == "" {
		fs.Usage()
		return &usageError{fmt.Errorf("-caveinfo, -sublevel, and -query are required")}
	}

	loader, err := caveinfo.NewLoader(*caveinfoDir)
	if err != nil {
		return &usageError{fmt.Errorf("opening caveinfo directory: %w", err)}
	}
	subMap, err := parseSublevels(loader, *sublevels)
	if err != nil {
		return &usageError{err}
	}
	parsedQuery, err := query.Parse(*q)
	if err != nil {
		return &usageError{fmt.Errorf("parsing query: %w", err)}
	}

	opts := search.Options{
		Loader:    loader,
		Sublevels: subMap,
		Query:     parsedQuery,
		SeedStart: uint32(*seedStart),
		SeedEnd:   *seedEnd,
		Workers:   *workers,
	}
	report, err := search.RunStats(context.Background(), opts)
	if err != nil {
		return fmt.Errorf("stats run failed: %w", err)
	}
	fmt.Printf("evaluated=%d hits=%d fraction=%.6f\n", report.Evaluated, report.Hits, report.Fraction())
	return nil
}

func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	caveinfoDir := fs.String("caveinfo", "", "Path to the caveinfo directory (required)")
	jobFile := fs.String("file", "", "Path to the batch job YAML file (required)")
	outDir := fs.String("output", ".", "Directory for each job's default output file")
	if err := fs.Parse(args); err != nil {
		return &usageError{err}
	}
	if *caveinfoDir == "" || *jobFile == "" {
		fs.Usage()
		return &usageError{fmt.Errorf("-caveinfo and -file are required")}
	}

	loader, err := caveinfo.NewLoader(*caveinfoDir)
	if err != nil {
		return &usageError{fmt.Errorf("opening caveinfo directory: %w", err)}
	}
	bf, err := search.LoadBatchFromFile(*jobFile)
	if err != nil {
		return &usageError{err}
	}

	anyHit := false
	for _, job := range bf.Jobs {
		if err := runBatchJob(loader, job, *outDir); err != nil {
			fmt.Fprintf(os.Stderr, "job %q failed: %v\n", job.Name, err)
			continue
		}
		anyHit = true
	}
	if !anyHit {
		return fmt.Errorf("no job produced a hit")
	}
	return nil
}

func runBatchJob(loader *caveinfo.Loader, job search.Job, outDir string) error {
	subMap, err := parseSublevels(loader, joinSublevels(job.Sublevels))
	if err != nil {
		return err
	}
	q, err := query.Parse(job.Query)
	if err != nil {
		return fmt.Errorf("parsing query: %w", err)
	}

	opts := search.Options{
		Loader:    loader,
		Sublevels: subMap,
		Query:     q,
		Seeds:     job.Seeds,
		SeedStart: job.SeedStart,
		SeedEnd:   job.SeedEnd,
		MaxHits:   job.MaxHits,
		Timeout:   job.ParsedTimeout(),
	}

	outPath := job.Output
	if outPath == "" {
		outPath = filepath.Join(outDir, job.Name+".jsonl")
	} else if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(outDir, outPath)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	hits, _, errc := search.Run(context.Background(), opts)
	count := 0
	for h := range hits {
		count++
		for ident, lo := range h.Layouts {
			data, err := export.ExportJSONCompact(ident, lo)
			if err != nil {
				return fmt.Errorf("encoding hit: %w", err)
			}
			fmt.Fprintf(f, "%s\n", data)
		}
	}
	if err := <-errc; err != nil {
		return err
	}
	fmt.Printf("job %q: %d hit(s), wrote %s\n", job.Name, count, outPath)
	if count == 0 {
		return fmt.Errorf("no matching seed found")
	}
	return nil
}

func joinSublevels(m map[string]string) string {
	var b strings.Builder
	first := true
	for ident, code := range m {
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(ident)
		b.WriteByte('=')
		b.WriteString(code)
	}
	return b.String()
}
