package loader

import (
	"context"
	"os"

	"go.uber.org/zap"

	traj "github.com/atomvista/gotraj"
)

// Parse decodes raw trajectory bytes into a Trajectory. Corrupt frames
// are dropped silently, empty or unparsable input yields an empty result,
// and the only errors are an unsupported format, bad options and context
// cancellation.
//
// Small inputs are decoded whole. When indexing was requested, or raw is
// larger than the large-file threshold, Parse instead builds a frame
// index and decodes only a bounded initial window, leaving every other
// frame reachable through Trajectory.LoadFrame. Plot metadata, when
// requested, is extracted in either mode.
func Parse(ctx context.Context, raw []byte, filename string, opts ...Option) (*traj.Trajectory, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	l, err := New(filename)
	if err != nil {
		return nil, errDecorate(err, "Parse")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dec := l.NewDecoder()
	log := o.logger.With(zap.String("file", filename), zap.Stringer("format", l.Format))

	tr := &traj.Trajectory{Summary: traj.NewSummary(l.Format, filename, raw)}
	if o.indexing || int64(len(raw)) > o.threshold {
		err = parseIndexed(ctx, dec, raw, o, tr)
	} else {
		err = parseDirect(ctx, dec, raw, o, tr, log)
	}
	if err != nil {
		return nil, err
	}
	tr.Summary.FrameCount = tr.TotalFrames
	log.Debug("trajectory parsed",
		zap.Int("frames", tr.TotalFrames),
		zap.Bool("indexed", tr.IsIndexed),
		zap.Int("decoded", len(tr.Frames)))
	return tr, nil
}

// ParseFile reads path, expands it when compressed, and parses it. A
// failed decompression is logged and the bytes are parsed as they are,
// so a damaged archive degrades to however much is readable rather than
// failing the call.
func ParseFile(ctx context.Context, path string, opts ...Option) (*traj.Trajectory, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if traj.IsCompressed(raw) {
		plain, derr := traj.Decompress(raw)
		if derr != nil {
			o.logger.Warn("decompression failed, parsing raw bytes",
				zap.String("file", path), zap.Error(derr))
		} else {
			raw = plain
		}
	}
	return Parse(ctx, raw, path, opts...)
}

func parseIndexed(ctx context.Context, dec traj.FrameDecoder, raw []byte, o *options, tr *traj.Trajectory) error {
	idx, total := traj.BuildFrameIndex(dec, raw, o.sampleRate, o.progress)
	if err := ctx.Err(); err != nil {
		return err
	}
	if idx == nil {
		//IsIndexed promises a non-nil index even for empty input
		idx = []traj.FrameIndex{}
	}
	tr.Indexed = idx
	tr.IsIndexed = true
	tr.TotalFrames = total
	if o.plotMeta {
		tr.PlotMeta = traj.ExtractPlotMetadata(dec, raw,
			traj.MetaOptions{SampleRate: o.sampleRate, Properties: o.metaProps}, o.progress)
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	tr.Bind(dec, idx)

	window := o.window
	if window > total {
		window = total
	}
	if window == 0 {
		return nil
	}
	frames := make([]*traj.Frame, 0, window)
	dec.ScanFrom(raw, 0, 0, func(frame int, off, _ int64, derr error) bool {
		if ctx.Err() != nil {
			return false
		}
		if derr != nil {
			return true
		}
		if f, err := dec.DecodeAt(raw, off, frame); err == nil && f != nil {
			frames = append(frames, f)
		}
		return len(frames) < window
	})
	if err := ctx.Err(); err != nil {
		return err
	}
	tr.Frames = frames
	return nil
}

func parseDirect(ctx context.Context, dec traj.FrameDecoder, raw []byte, o *options, tr *traj.Trajectory, log *zap.Logger) error {
	//count first so the frame-stage progress has a known total
	total := traj.TotalFrames(dec, raw)
	if err := ctx.Err(); err != nil {
		return err
	}
	if o.plotMeta {
		tr.PlotMeta = traj.ExtractPlotMetadata(dec, raw,
			traj.MetaOptions{SampleRate: o.sampleRate, Properties: o.metaProps}, o.progress)
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	rep := traj.NewProgressReporter(o.progress, traj.StageFrames, total)
	frames := make([]*traj.Frame, 0, total)
	dropped := 0
	dec.ScanFrom(raw, 0, 0, func(frame int, off, _ int64, derr error) bool {
		if ctx.Err() != nil {
			return false
		}
		if derr != nil {
			dropped++
			return true
		}
		f, err := dec.DecodeAt(raw, off, frame)
		if err != nil || f == nil {
			dropped++
			return true
		}
		frames = append(frames, f)
		rep.Tick(len(frames))
		return true
	})
	if err := ctx.Err(); err != nil {
		return err
	}
	rep.Done()
	if dropped > 0 {
		log.Warn("dropped corrupt frames", zap.Int("count", dropped))
	}
	tr.Frames = frames
	tr.TotalFrames = len(frames)
	tr.Bind(dec, nil)
	return nil
}
