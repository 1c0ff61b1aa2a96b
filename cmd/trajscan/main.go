// Command trajscan scans one or more trajectory files and prints their
// frame counts, formats and content hashes, with optional per-frame
// property tables and property plots. Files are scanned concurrently;
// a single file gets a terminal progress bar.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/atomic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	traj "github.com/atomvista/gotraj"
	"github.com/atomvista/gotraj/loader"
	"github.com/atomvista/gotraj/trajplot"
)

type config struct {
	jobs    int
	index   bool
	rate    int
	window  int
	meta    bool
	props   string
	table   bool
	plot    string
	quiet   bool
	verbose bool
	files   []string
}

func parseConfig(name string, args []string) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.IntVar(&cfg.jobs, "j", runtime.GOMAXPROCS(0), "number of files scanned concurrently")
	fs.BoolVar(&cfg.index, "index", false, "force indexed loading regardless of file size")
	fs.IntVar(&cfg.rate, "rate", loader.DefaultSampleRate, "index and metadata sample rate")
	fs.IntVar(&cfg.window, "window", loader.DefaultInitialWindow, "frames decoded eagerly in indexed mode")
	fs.BoolVar(&cfg.meta, "meta", false, "extract scalar per-frame metadata")
	fs.StringVar(&cfg.props, "props", "", "comma-separated properties to keep (implies -meta)")
	fs.BoolVar(&cfg.table, "table", false, "print a per-frame property table (implies -meta)")
	fs.StringVar(&cfg.plot, "plot", "", "plot the named property to <file>.<property>.png (implies -meta)")
	fs.BoolVar(&cfg.quiet, "quiet", false, "disable the progress bar")
	fs.BoolVar(&cfg.verbose, "v", false, "be verbose")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.files = fs.Args()
	if len(cfg.files) == 0 {
		return nil, fmt.Errorf("no input files; usage: %s [flags] file...", name)
	}
	if cfg.jobs < 1 {
		return nil, fmt.Errorf("-j must be at least 1, got %d", cfg.jobs)
	}
	return cfg, nil
}

func (c *config) wantMeta() bool {
	return c.meta || c.table || c.props != "" || c.plot != ""
}

func (c *config) propList() []string {
	if c.props == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(c.props, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type result struct {
	file    string
	summary traj.Summary
	total   int
	indexed bool
	entries int
	meta    []traj.FrameMeta
	err     error
}

func scanOne(ctx context.Context, logger *zap.Logger, cfg *config, file string, onProgress traj.ProgressFunc) result {
	opts := []loader.Option{
		loader.WithLogger(logger),
		loader.WithSampleRate(cfg.rate),
		loader.WithInitialWindow(cfg.window),
	}
	if cfg.index {
		opts = append(opts, loader.WithIndexing())
	}
	if cfg.wantMeta() {
		opts = append(opts, loader.WithPlotMetadata(cfg.propList()...))
	}
	if onProgress != nil {
		opts = append(opts, loader.WithProgress(onProgress))
	}
	tr, err := loader.ParseFile(ctx, file, opts...)
	if err != nil {
		return result{file: file, err: err}
	}
	return result{
		file:    file,
		summary: tr.Summary,
		total:   tr.TotalFrames,
		indexed: tr.IsIndexed,
		entries: len(tr.Indexed),
		meta:    tr.PlotMeta,
	}
}

// barProgress renders scan progress on one terminal bar, starting a
// fresh bar whenever the reported stage changes.
func barProgress(w io.Writer) traj.ProgressFunc {
	var bar *progressbar.ProgressBar
	var stage string
	return func(p traj.Progress) {
		if bar == nil || p.Stage != stage {
			stage = p.Stage
			bar = progressbar.NewOptions(p.Total,
				progressbar.OptionSetDescription(stage),
				progressbar.OptionSetWriter(w),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(p.Current)
	}
}

func printSummaries(w io.Writer, results []result) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tFORMAT\tFRAMES\tBYTES\tHASH\tMODE")
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(tw, "%s\terror\t-\t-\t-\t%v\n", r.file, r.err)
			continue
		}
		mode := "direct"
		if r.indexed {
			mode = fmt.Sprintf("indexed(%d)", r.entries)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%016x\t%s\n",
			r.file, r.summary.SourceFormat, r.total, r.summary.SizeBytes, r.summary.ContentHash, mode)
	}
	tw.Flush()
}

// printTable writes one row per metadata record with the union of the
// scalar property names as columns. Missing values print as a dash.
func printTable(w io.Writer, file string, meta []traj.FrameMeta) {
	props := trajplot.Properties(meta)
	fmt.Fprintf(w, "\n%s:\n", file)
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "FRAME\t"+strings.ToUpper(strings.Join(props, "\t")))
	for _, m := range meta {
		row := make([]string, 0, len(props)+1)
		row = append(row, fmt.Sprintf("%d", m.FrameNumber))
		for _, p := range props {
			if v, ok := m.Properties[p]; ok {
				row = append(row, fmt.Sprintf("%g", v))
			} else {
				row = append(row, "-")
			}
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

func main() {
	cfg, err := parseConfig("trajscan", os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	var logger *zap.Logger
	if cfg.verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal("failed to initialize logger", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := make([]result, len(cfg.files))
	var frames, failed atomic.Int64

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.jobs)
	for i, file := range cfg.files {
		g.Go(func() error {
			var onProgress traj.ProgressFunc
			if len(cfg.files) == 1 && !cfg.quiet {
				onProgress = barProgress(os.Stderr)
			}
			results[i] = scanOne(gCtx, logger, cfg, file, onProgress)
			if results[i].err != nil {
				failed.Inc()
				logger.Error("scan failed", zap.String("file", file), zap.Error(results[i].err))
				return nil
			}
			frames.Add(int64(results[i].total))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal("scan aborted", zap.Error(err))
	}

	printSummaries(os.Stdout, results)

	for _, r := range results {
		if r.err != nil {
			continue
		}
		if cfg.table && len(r.meta) > 0 {
			printTable(os.Stdout, r.file, r.meta)
		}
		if cfg.plot != "" && len(r.meta) > 0 {
			base := strings.TrimSuffix(r.file, filepath.Ext(r.file)) + "." + cfg.plot
			title := fmt.Sprintf("%s per frame, %s", cfg.plot, filepath.Base(r.file))
			if err := trajplot.PlotProperty(r.meta, cfg.plot, nil, title, base); err != nil {
				failed.Inc()
				logger.Error("plot failed", zap.String("file", r.file), zap.Error(err))
				continue
			}
			logger.Info("wrote plot", zap.String("file", base+".png"))
		}
	}

	if n := failed.Load(); n > 0 {
		logger.Fatal("finished with failures",
			zap.Int64("failed", n),
			zap.Int("files", len(cfg.files)),
			zap.Int64("frames", frames.Load()))
	}
	logger.Info("scan complete",
		zap.Int("files", len(cfg.files)),
		zap.Int64("frames", frames.Load()))
}
