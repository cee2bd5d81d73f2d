package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/cache"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/compiler"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/logger"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/metrics"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/pattern"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/score"
)

// CompileService runs compiles with caching, history and metrics. Every
// collaborator is optional.
type CompileService struct {
	cache   *cache.Cache
	history *HistoryService
	sentry  *metrics.SentryMetrics
	cw      *metrics.Client
}

func NewCompileService(c *cache.Cache, h *HistoryService, s *metrics.SentryMetrics, cw *metrics.Client) *CompileService {
	return &CompileService{cache: c, history: h, sentry: s, cw: cw}
}

// CompileOutput is a compile result plus where it came from
type CompileOutput struct {
	compiler.Result
	Hash   string `json:"hash"`
	Cached bool   `json:"cached"`
}

// Caller identifies who asked for a compile, for history and logs
type Caller struct {
	RequestID string
	UserID    string
}

// OptionsFrom maps a request body onto compiler options
func OptionsFrom(req models.CompileRequest) compiler.Options {
	return compiler.Options{
		Tempo:        req.Tempo,
		Key:          req.Key,
		StartSection: req.StartSection,
		EndSection:   req.EndSection,
		Seed:         req.Seed,
	}
}

// cacheable compiles are deterministic: unseeded humanize differs per run
func cacheable(s models.Score, opts compiler.Options) bool {
	if opts.Seed != nil {
		return true
	}
	for _, sec := range s.Sections {
		for _, nt := range sec.Tracks {
			if nt.Track.Humanize > 0 {
				return false
			}
		}
	}
	for _, p := range s.Patterns {
		if p.Arpeggio != nil && strings.EqualFold(p.Arpeggio.Mode, pattern.ArpRandom) {
			return false
		}
	}
	return true
}

// Compile compiles s, serving deterministic compiles from the cache
func (svc *CompileService) Compile(ctx context.Context, s models.Score, opts compiler.Options, caller Caller) (*CompileOutput, error) {
	start := time.Now()

	hash, err := score.Hash(s, opts)
	if err != nil {
		return nil, err
	}
	useCache := cacheable(s, opts)

	out := &CompileOutput{Hash: hash}
	if useCache {
		found, err := svc.cache.Get(ctx, hash, &out.Result)
		if err != nil {
			logger.Warn("Cache lookup failed", logger.Fields{"error": err.Error(), "hash": hash})
		}
		out.Cached = found
		if found {
			logger.Debug("Serving cached compile", logger.Fields{"hash": hash, "request_id": caller.RequestID})
		}
	}

	if !out.Cached {
		res, err := compiler.Compile(s, opts)
		if err != nil {
			svc.record(ctx, s.Name, 0, time.Since(start), false, false)
			return nil, fmt.Errorf("compile failed: %w", err)
		}
		out.Result = res
		if useCache {
			if err := svc.cache.Put(ctx, hash, res); err != nil {
				logger.Warn("Cache store failed", logger.Fields{"error": err.Error(), "hash": hash})
			}
		}
	}

	duration := time.Since(start)
	svc.record(ctx, s.Name, out.Stats.Notes, duration, out.Cached, true)
	logger.LogCompile(ctx, logger.CompileStats{
		Score:    s.Name,
		Sections: out.Stats.Sections,
		Bars:     out.Stats.Bars,
		Notes:    out.Stats.Notes,
		Seconds:  out.Stats.DurationSeconds,
		Warnings: len(out.Warnings),
		Cached:   out.Cached,
	}, duration, logger.Fields{"request_id": caller.RequestID})

	rec := &models.CompileRecord{
		RequestID:  caller.RequestID,
		UserID:     caller.UserID,
		ScoreName:  s.Name,
		ScoreHash:  hash,
		Sections:   out.Stats.Sections,
		Bars:       out.Stats.Bars,
		Notes:      out.Stats.Notes,
		Seconds:    out.Stats.DurationSeconds,
		DurationMS: int(duration.Milliseconds()),
		Cached:     out.Cached,
	}
	if err := svc.history.Record(rec, out.Warnings); err != nil {
		logger.Error("Failed to record compile history", err, logger.Fields{"request_id": caller.RequestID})
	}
	return out, nil
}

// History lists recent compiles
func (svc *CompileService) History(userID string, limit int) ([]models.CompileRecord, error) {
	return svc.history.Recent(userID, limit)
}

// Lookup returns the latest stored compile of a score hash
func (svc *CompileService) Lookup(hash string) (*models.CompileRecord, error) {
	return svc.history.ByHash(hash)
}

// Invalidate drops the cached result of a score hash
func (svc *CompileService) Invalidate(ctx context.Context, hash string) (bool, error) {
	removed, err := svc.cache.Invalidate(ctx, hash)
	if err != nil {
		return false, err
	}
	if removed {
		logger.Info("Invalidated cached compile", logger.Fields{"hash": hash})
	}
	return removed, nil
}

// CacheEnabled reports whether compile results are cached
func (svc *CompileService) CacheEnabled() bool {
	return svc.cache.Enabled()
}

// HistoryEnabled reports whether compiles are being stored
func (svc *CompileService) HistoryEnabled() bool {
	return svc.history != nil
}

// CacheStats exposes the cache counters
func (svc *CompileService) CacheStats() cache.Stats {
	return svc.cache.Stats()
}

func (svc *CompileService) record(ctx context.Context, name string, notes int, d time.Duration, cached, success bool) {
	if svc.sentry != nil {
		svc.sentry.RecordCompile(ctx, name, notes, d, cached, success)
	}
	svc.cw.RecordCompile(notes, d, cached, success)
}
