package traj

// Progress is one notification from a long scan. Current and Total are in
// bytes for the scanning stages and in frames for eager decoding, so
// Current/Total is always a usable completion fraction.
type Progress struct {
	Current int
	Total   int
	Stage   string
}

// Stages reported while parsing.
const (
	StageIndex    = "index"    //index building
	StageMetadata = "metadata" //plot-metadata extraction
	StageFrames   = "frames"   //eager frame decoding
)

// ProgressFunc receives progress notifications. The channel is strictly
// one-way: the producer never blocks on the receiver, and a receiver that
// panics is caught and discarded so the scan always completes.
type ProgressFunc func(Progress)

// ProgressReporter rate-limits a ProgressFunc to roughly one call per
// percent of total, always firing a final notification, and shields the
// scan from the callback. A nil fn makes every method a no-op.
type ProgressReporter struct {
	fn    ProgressFunc
	stage string
	total int
	every int
	last  int
}

// NewProgressReporter wraps fn for one stage whose Total is total.
func NewProgressReporter(fn ProgressFunc, stage string, total int) *ProgressReporter {
	r := &ProgressReporter{fn: fn, stage: stage, total: total, every: 1, last: -1}
	if total > 100 {
		r.every = total / 100
	}
	return r
}

// Tick reports the scan position, skipping notifications closer than one
// rate-limit step to the previous one.
func (r *ProgressReporter) Tick(current int) {
	if r.fn == nil {
		return
	}
	if r.last >= 0 && current < r.last+r.every {
		return
	}
	r.last = current
	r.emit(current)
}

// Done fires the final notification with Current == Total.
func (r *ProgressReporter) Done() {
	if r.fn == nil {
		return
	}
	r.emit(r.total)
}

func (r *ProgressReporter) emit(current int) {
	defer func() {
		//a failing receiver must never abort the scan
		_ = recover()
	}()
	r.fn(Progress{Current: current, Total: r.total, Stage: r.stage})
}
