package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowbreak/pkg/breaking"
	"github.com/matzehuels/flowbreak/pkg/cache"
	"github.com/matzehuels/flowbreak/pkg/elastic"
	"github.com/matzehuels/flowbreak/pkg/errors"
	flowio "github.com/matzehuels/flowbreak/pkg/io"
	"github.com/matzehuels/flowbreak/pkg/observability"
)

// Runner encapsulates breaking with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different sequences.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL overrides the per-kind cache TTLs when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// BreakLines breaks seq into lines of opts.Width units. Infeasible
// non-forced runs fail with NO_FEASIBLE_BREAKS.
func (r *Runner) BreakLines(ctx context.Context, seq *elastic.Sequence, opts LineOptions) (*Result, error) {
	r.applyLogger(&opts.Logger)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	allowed, _ := opts.allowed()
	align, last, _ := opts.alignments()

	return r.run(ctx, runSpec{
		mode:    ModeLines,
		seq:     seq,
		refresh: opts.Refresh,
		trace:   opts.Trace,
		key: func(h string) string {
			return r.Keyer.LinesKey(h, opts.KeyOpts())
		},
		ttl: cache.TTLLines,
		find: func(obs breaking.Observer) breaking.Result {
			lb := breaking.NewLineBreaker(breaking.LineOptions{
				Width:            opts.Width,
				Alignment:        align,
				AlignmentLast:    last,
				KeepAlternatives: opts.Alternatives,
				Observer:         obs,
				Logger:           opts.Logger,
				Trace:            opts.Trace,
			})
			return lb.FindBreakingPoints(seq, 0, opts.Threshold, opts.Force, allowed)
		},
	})
}

// BreakPages breaks seq into the containers of opts.Pages, placing cited
// footnotes. A result that stopped at an inline size change is resumed on
// the offset geometry until the whole flow is broken, so the returned
// breakpoints always cover the sequence.
func (r *Runner) BreakPages(ctx context.Context, seq *elastic.Sequence, opts PageOptions) (*Result, error) {
	r.applyLogger(&opts.Logger)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	allowed, _ := opts.allowed()

	return r.run(ctx, runSpec{
		mode:    ModePages,
		seq:     seq,
		refresh: opts.Refresh,
		trace:   opts.Trace,
		key: func(h string) string {
			return r.Keyer.PagesKey(h, opts.KeyOpts())
		},
		ttl: cache.TTLPages,
		find: func(obs breaking.Observer) breaking.Result {
			return breakAllPages(seq, opts, allowed, obs)
		},
	})
}

// breakAllPages runs the page breaker, resuming after every inline size
// change with the geometry offset by the containers already produced.
func breakAllPages(seq *elastic.Sequence, opts PageOptions, allowed breaking.AllowedBreaks, obs breaking.Observer) breaking.Result {
	geometry := opts.Geometry()
	var total breaking.Result
	start, offset := 0, 0
	for {
		pb := breaking.NewPageBreaker(breaking.PageOptions{
			Geometry:                 breaking.Offset(geometry, offset),
			FootnoteSeparator:        opts.SeparatorElement(),
			SplitFootnoteDemerits:    opts.SplitDemerits,
			DeferredFootnoteDemerits: opts.DeferredDemerits,
			FavorSinglePart:          opts.FavorSinglePart,
			Policy:                   opts.Policy(),
			Observer:                 obs,
			Logger:                   opts.Logger,
			Trace:                    opts.Trace,
		})
		res := pb.FindBreakingPoints(seq, start, opts.Threshold, opts.Force, allowed)
		if offset > 0 && res.Lines == 0 {
			// The flow after the change cannot be broken, so neither can the whole.
			opts.Logger.Debug("no feasible breaking after inline size change", "at", start, "containers", offset)
			return breaking.Result{}
		}
		if offset == 0 {
			total = res
		} else {
			merge(&total, res, offset)
		}
		if !res.IPDChange || res.Lines == 0 {
			total.IPDChange = false
			total.Resume = 0
			return total
		}
		opts.Logger.Debug("resuming after inline size change", "at", res.Resume, "containers", offset+res.Lines)
		start = res.Resume
		offset += res.Lines
	}
}

// merge appends a resumed run to total, renumbering its containers.
func merge(total *breaking.Result, res breaking.Result, offset int) {
	for _, bp := range res.Breakpoints {
		bp.Container += offset
		total.Breakpoints = append(total.Breakpoints, bp)
	}
	for _, o := range res.Overflows {
		o.Container += offset
		total.Overflows = append(total.Overflows, o)
	}
	total.Lines += res.Lines
	total.Demerits += res.Demerits
	total.Recoveries += res.Recoveries
	total.Degraded = total.Degraded || res.Degraded
	total.InsertedPenalty = total.InsertedPenalty || res.InsertedPenalty
	// Alternatives and graphs describe a single run; keep the latest.
	total.Graph = res.Graph
}

type runSpec struct {
	mode    string
	seq     *elastic.Sequence
	refresh bool
	trace   bool
	key     func(seqHash string) string
	ttl     time.Duration
	find    func(breaking.Observer) breaking.Result
}

func (r *Runner) run(ctx context.Context, s runSpec) (*Result, error) {
	if s.seq == nil || s.seq.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidSequence, "sequence is empty")
	}
	if err := errors.ValidateSequence(s.seq.Elements()); err != nil {
		return nil, err
	}

	hash, err := SequenceHash(s.seq)
	if err != nil {
		return nil, err
	}
	result := &Result{SequenceHash: hash, Stats: Stats{Elements: s.seq.Len()}}

	// Graphs are not serialized, so traced runs bypass the cache.
	cacheable := !s.trace
	key := s.key(hash)
	if cacheable && !s.refresh {
		if res, ok := r.lookup(ctx, s.mode, key); ok {
			result.Result = res
			result.CacheHit = true
			return result, r.check(res, s)
		}
	}

	hooks := observability.Breaking()
	hooks.OnBreakStart(ctx, s.mode, s.seq.Len())
	obs := breaking.Funcs{
		Overflow: func(container, amount int) {
			hooks.OnOverflow(ctx, s.mode, container, amount)
		},
	}

	start := time.Now()
	res := s.find(obs)
	result.Stats.BreakTime = time.Since(start)
	result.Result = res

	err = r.check(res, s)
	hooks.OnBreakComplete(ctx, s.mode, res.Lines, result.Stats.BreakTime, err)
	if res.Recoveries > 0 {
		hooks.OnRecovery(ctx, s.mode, res.Recoveries, res.Degraded)
	}
	r.Logger.Debug("broke sequence",
		"mode", s.mode,
		"elements", s.seq.Len(),
		"containers", res.Lines,
		"demerits", res.Demerits,
		"duration", result.Stats.BreakTime)
	if err != nil {
		return nil, err
	}

	// A run that inserted a leading penalty changed seq; replaying it from
	// the cache would leave the caller's copy unshifted.
	if cacheable && !res.InsertedPenalty {
		r.store(ctx, s.mode, key, res, s.ttl)
	}
	return result, nil
}

func (r *Runner) check(res breaking.Result, s runSpec) error {
	if res.Lines == 0 {
		return errors.New(errors.ErrCodeNoFeasibleBreaks,
			"no feasible %s breaking within the threshold; retry with force", s.mode)
	}
	return nil
}

func (r *Runner) lookup(ctx context.Context, mode, key string) (breaking.Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
		return breaking.Result{}, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, mode)
		return breaking.Result{}, false
	}
	res, err := flowio.ReadResult(bytes.NewReader(data))
	if err != nil {
		// Undecodable entries are recomputed and overwritten.
		observability.Cache().OnCacheMiss(ctx, mode)
		return breaking.Result{}, false
	}
	observability.Cache().OnCacheHit(ctx, mode)
	return res, true
}

func (r *Runner) store(ctx context.Context, mode, key string, res breaking.Result, ttl time.Duration) {
	var buf bytes.Buffer
	if err := flowio.WriteResult(res, &buf); err != nil {
		return
	}
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, buf.Bytes(), ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, mode, buf.Len())
}

// SequenceHash is the content hash of seq, computed over its JSON encoding.
func SequenceHash(seq *elastic.Sequence) (string, error) {
	var buf bytes.Buffer
	if err := flowio.WriteJSON(seq, &buf); err != nil {
		return "", fmt.Errorf("hash sequence: %w", err)
	}
	return cache.Hash(buf.Bytes()), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(l **log.Logger) {
	if *l == nil {
		*l = r.Logger
	}
}
