// Package consult answers free-text shopping questions. It reads the query's
// intent, retrieves products through statistics or filtering, assembles a
// grounded context and delegates the wording to a text generator.
package consult

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/odyssey-erp/odyssey-advisor/internal/catalog"
	"github.com/odyssey-erp/odyssey-advisor/internal/filter"
	"github.com/odyssey-erp/odyssey-advisor/internal/intent"
	"github.com/odyssey-erp/odyssey-advisor/internal/stats"
)

// DefaultGenerationTimeout bounds the generator call when none is configured.
const DefaultGenerationTimeout = 20 * time.Second

// ErrBlankAnswer marks a generator response without usable text.
var ErrBlankAnswer = errors.New("consult: blank answer")

// Generator produces natural-language text from a system and user prompt.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f(ctx, systemPrompt, userPrompt)
}

// Observer receives per-consultation measurements.
type Observer interface {
	ObserveConsultation(branch string, fallback bool, generation time.Duration)
}

// Options tune a Service.
type Options struct {
	GenerationTimeout time.Duration
	Logger            *slog.Logger
	Observer          Observer
}

// Result is the outcome of one consultation.
type Result struct {
	ID       string            `json:"id"`
	Query    string            `json:"query"`
	Answer   string            `json:"answer"`
	Branch   Branch            `json:"branch"`
	Intent   intent.Record     `json:"intent"`
	Products []catalog.Product `json:"products"`
	Fallback bool              `json:"fallback"`
}

// Service orchestrates consultations. It holds no per-request state.
type Service struct {
	provider  catalog.Provider
	generator Generator
	filter    *filter.Engine
	timeout   time.Duration
	logger    *slog.Logger
	observer  Observer
}

// NewService wires the orchestrator.
func NewService(provider catalog.Provider, generator Generator, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	timeout := opts.GenerationTimeout
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	return &Service{
		provider:  provider,
		generator: generator,
		filter:    filter.NewEngine(logger),
		timeout:   timeout,
		logger:    logger,
		observer:  opts.Observer,
	}
}

// Consult answers query. It never returns an error: every failure resolves to
// FallbackAnswer with Fallback set.
func (s *Service) Consult(ctx context.Context, query string) Result {
	rec := intent.Extract(query)
	res := Result{
		ID:       uuid.NewString(),
		Query:    query,
		Branch:   selectBranch(rec),
		Intent:   rec,
		Products: []catalog.Product{},
	}
	logger := s.logger.With(
		slog.String("consultation_id", res.ID),
		slog.String("branch", string(res.Branch)),
	)
	logger.Info("consultation started", slog.Any("flags", rec.Flags()))

	snap, err := catalog.LoadSnapshot(ctx, s.provider)
	if err != nil {
		logger.Error("load catalog snapshot", slog.Any("error", err))
		return s.fallback(res, 0)
	}

	products, promptContext := s.retrieve(res.Branch, rec, snap)
	if len(products) > MaxContextProducts {
		products = products[:MaxContextProducts]
	}
	res.Products = products

	started := time.Now()
	answer, err := s.generate(ctx, promptContext, query)
	elapsed := time.Since(started)
	if err != nil {
		logger.Warn("generation failed", slog.Any("error", err), slog.Duration("elapsed", elapsed))
		return s.fallback(res, elapsed)
	}

	res.Answer = answer
	s.observe(res, elapsed)
	logger.Info("consultation answered",
		slog.Int("products", len(res.Products)),
		slog.Duration("elapsed", elapsed),
	)
	return res
}

// retrieve picks the products for branch and renders the generator context.
func (s *Service) retrieve(branch Branch, rec intent.Record, snap catalog.Snapshot) ([]catalog.Product, string) {
	engine := stats.NewEngineFromSnapshot(snap)
	var products []catalog.Product
	switch branch {
	case BranchBestSelling:
		ranked := engine.BestSelling(statsLimit)
		products = make([]catalog.Product, 0, len(ranked))
		for _, item := range ranked {
			products = append(products, item.Product)
		}
	case BranchHotTrend:
		products = engine.HotTrend(statsLimit)
	case BranchNewProducts:
		products = engine.Newest(statsLimit)
	case BranchTopRated:
		products = engine.TopRated(statsLimit)
	case BranchCheap:
		products = engine.Cheapest(statsLimit)
	case BranchExpensive:
		products = engine.MostExpensive(statsLimit)
	default:
		products = s.filter.Filter(snap.Products, filter.FromIntent(rec))
		return products, withReport(BuildContext(products), engine.Report())
	}
	return products, BuildContext(products)
}

// generate calls the generator under the configured timeout. A generator that
// ignores cancellation is abandoned once the deadline passes.
func (s *Service) generate(ctx context.Context, promptContext, query string) (string, error) {
	if s.generator == nil {
		return "", errors.New("consult: generator not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		text, err := s.generator.Generate(ctx, systemPrompt, userPrompt(promptContext, query))
		done <- outcome{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case out := <-done:
		if out.err != nil {
			return "", out.err
		}
		if strings.TrimSpace(out.text) == "" {
			return "", ErrBlankAnswer
		}
		return out.text, nil
	}
}

func (s *Service) fallback(res Result, elapsed time.Duration) Result {
	res.Answer = FallbackAnswer
	res.Fallback = true
	s.observe(res, elapsed)
	return res
}

func (s *Service) observe(res Result, elapsed time.Duration) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveConsultation(string(res.Branch), res.Fallback, elapsed)
}
