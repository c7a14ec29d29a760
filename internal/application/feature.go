package application

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"omtnames/internal/domain"
	"omtnames/internal/domain/entities"
	"omtnames/internal/ports/input"
	"omtnames/internal/ports/output"
)

var _ input.FeatureUseCase = (*FeatureService)(nil)

const (
	defaultWorkers   = 4
	defaultBatchSize = 500
	maxLineSize      = 4 << 20
)

// Resolver turns a feature's tags into its name bundle.
type Resolver interface {
	Resolve(tags entities.Tags) entities.Names
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(tags entities.Tags) entities.Names

func (f ResolverFunc) Resolve(tags entities.Tags) entities.Names {
	return f(tags)
}

// FeatureObserver is told about every feature a run handles.
type FeatureObserver interface {
	FeatureResolved()
	FeatureFailed()
}

// FeatureService runs name resolution over feature streams and the feature
// table.
type FeatureService struct {
	resolver  Resolver
	repo      output.FeatureRepository
	observer  FeatureObserver
	logger    *slog.Logger
	workers   int
	batchSize int
	now       func() time.Time
}

type FeatureServiceOption func(*FeatureService)

func WithWorkers(n int) FeatureServiceOption {
	return func(s *FeatureService) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithBatchSize(n int) FeatureServiceOption {
	return func(s *FeatureService) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

func WithFeatureObserver(o FeatureObserver) FeatureServiceOption {
	return func(s *FeatureService) {
		if o != nil {
			s.observer = o
		}
	}
}

func WithServiceLogger(l *slog.Logger) FeatureServiceOption {
	return func(s *FeatureService) { s.logger = l }
}

// WithClock overrides the time stamped on resolved features.
func WithClock(now func() time.Time) FeatureServiceOption {
	return func(s *FeatureService) { s.now = now }
}

// NewFeatureService wires a resolver to an optional repository. Without a
// repository only ResolveStream is usable.
func NewFeatureService(
	resolver Resolver,
	repo output.FeatureRepository,
	opts ...FeatureServiceOption,
) *FeatureService {
	s := &FeatureService{
		resolver:  resolver,
		repo:      repo,
		observer:  nopObserver{},
		logger:    slog.Default(),
		workers:   defaultWorkers,
		batchSize: defaultBatchSize,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type streamRecord struct {
	ID   *int64          `json:"id,omitempty"`
	Tags json.RawMessage `json:"tags"`
}

type streamResult struct {
	ID    *int64         `json:"id,omitempty"`
	Names entities.Names `json:"names"`
}

// ResolveStream reads one feature per line from r and writes one name bundle
// per line to w, in input order. A line is either {"id":1,"tags":{...}} or a
// bare tag object. Blank lines are ignored; malformed lines are logged,
// counted as failed and skipped.
func (s *FeatureService) ResolveStream(ctx context.Context, r io.Reader, w io.Writer) (input.Summary, error) {
	summary := input.Summary{RunID: uuid.NewString()}
	logger := s.logger.With("run_id", summary.RunID)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		id, tags, err := decodeRecord(line)
		if err != nil {
			logger.Warn("skipping malformed feature", "line", lineNo, "error", err)
			summary.Failed++
			s.observer.FeatureFailed()
			continue
		}

		res := streamResult{ID: id, Names: s.resolver.Resolve(tags)}
		if err := enc.Encode(res); err != nil {
			return summary, fmt.Errorf("write names: %w", err)
		}
		summary.Processed++
		s.observer.FeatureResolved()
	}
	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("read features: %w", err)
	}

	logger.Info("stream resolved", "processed", summary.Processed, "failed", summary.Failed)
	return summary, nil
}

func decodeRecord(line []byte) (*int64, entities.Tags, error) {
	var tags entities.Tags
	var rec streamRecord
	if err := json.Unmarshal(line, &rec); err == nil {
		if raw := bytes.TrimSpace(rec.Tags); len(raw) > 0 && raw[0] == '{' {
			if err := json.Unmarshal(raw, &tags); err != nil {
				return nil, entities.Tags{}, fmt.Errorf("%w: %v", domain.ErrMalformedFeature, err)
			}
			return rec.ID, tags, nil
		}
	}
	if err := json.Unmarshal(line, &tags); err != nil {
		return nil, entities.Tags{}, fmt.Errorf("%w: %v", domain.ErrMalformedFeature, err)
	}
	return nil, tags, nil
}

// ResolveBatch resolves every unresolved feature in the repository, one page
// of batchSize features at a time, and stores the bundles. Pages are walked by
// id so features that fail to save are not retried within the run.
func (s *FeatureService) ResolveBatch(ctx context.Context) (input.Summary, error) {
	summary := input.Summary{RunID: uuid.NewString()}
	if s.repo == nil {
		return summary, errors.New("resolve batch: no feature repository configured")
	}
	logger := s.logger.With("run_id", summary.RunID)
	logger.Info("batch started", "workers", s.workers, "batch_size", s.batchSize)

	var afterID int64
	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		features, err := s.repo.FindUnresolved(ctx, afterID, s.batchSize)
		if err != nil {
			return summary, err
		}
		if len(features) == 0 {
			break
		}
		afterID = features[len(features)-1].ID

		processed, failed, err := s.resolvePage(ctx, logger, features)
		summary.Processed += processed
		summary.Failed += failed
		if err != nil {
			return summary, err
		}
		logger.Debug("page resolved", "last_id", afterID, "processed", processed, "failed", failed)
	}

	logger.Info("batch finished", "processed", summary.Processed, "failed", summary.Failed)
	return summary, nil
}

// resolvePage resolves and saves one page. A failed save only counts the
// feature as failed; the page stops early only when ctx is cancelled.
func (s *FeatureService) resolvePage(ctx context.Context, logger *slog.Logger, features []entities.Feature) (int, int, error) {
	var processed, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range features {
		f := &features[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f.Names = s.resolver.Resolve(f.Tags)
			f.ResolvedAt = s.now()
			if err := s.repo.SaveNames(gctx, f); err != nil {
				logger.Warn("saving names failed", "feature_id", f.ID, "error", err)
				failed.Add(1)
				s.observer.FeatureFailed()
				return nil
			}
			processed.Add(1)
			s.observer.FeatureResolved()
			return nil
		})
	}
	err := g.Wait()

	return int(processed.Load()), int(failed.Load()), err
}

type nopObserver struct{}

func (nopObserver) FeatureResolved() {}
func (nopObserver) FeatureFailed()   {}
