package loader

import (
	"fmt"

	"go.uber.org/zap"

	traj "github.com/atomvista/gotraj"
)

//Defaults for Parse.
const (
	DefaultSampleRate    = 1
	DefaultInitialWindow = 100

	//DefaultLargeFileThreshold is the raw size beyond which Parse
	//switches to indexed mode even when indexing was not requested
	DefaultLargeFileThreshold = 64 << 20
)

// Option configures one Parse call.
type Option func(*options) error

type options struct {
	indexing   bool
	plotMeta   bool
	metaProps  []string
	sampleRate int
	window     int
	threshold  int64
	progress   traj.ProgressFunc
	logger     *zap.Logger
}

func buildOptions(opts []Option) (*options, error) {
	o := &options{
		sampleRate: DefaultSampleRate,
		window:     DefaultInitialWindow,
		threshold:  DefaultLargeFileThreshold,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithIndexing makes Parse build a frame index and decode only a bounded
// initial window, whatever the input size.
func WithIndexing() Option {
	return func(o *options) error {
		o.indexing = true
		return nil
	}
}

// WithPlotMetadata makes Parse also extract the per-frame scalar
// properties, whichever mode it runs in. With no names every scalar is
// kept, otherwise only the named ones.
func WithPlotMetadata(properties ...string) Option {
	return func(o *options) error {
		o.plotMeta = true
		o.metaProps = properties
		return nil
	}
}

// WithSampleRate records every nth valid frame in the index and the plot
// metadata. The rate must be at least 1.
func WithSampleRate(n int) Option {
	return func(o *options) error {
		if n < 1 {
			return fmt.Errorf("loader: sample rate %d out of range", n)
		}
		o.sampleRate = n
		return nil
	}
}

// WithInitialWindow bounds how many frames an indexed Parse decodes
// eagerly. Zero keeps the result fully lazy.
func WithInitialWindow(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("loader: initial window %d out of range", n)
		}
		o.window = n
		return nil
	}
}

// WithLargeFileThreshold sets the raw size in bytes beyond which Parse
// indexes on its own. Zero indexes everything.
func WithLargeFileThreshold(n int64) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("loader: large file threshold %d out of range", n)
		}
		o.threshold = n
		return nil
	}
}

// WithProgress sends stage notifications to fn. A failing or panicking fn
// never affects the parse.
func WithProgress(fn traj.ProgressFunc) Option {
	return func(o *options) error {
		o.progress = fn
		return nil
	}
}

// WithLogger routes the loader's diagnostics to l instead of discarding
// them.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) error {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
		return nil
	}
}
