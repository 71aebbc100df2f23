package consulthttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/odyssey-erp/odyssey-advisor/internal/catalog"
	"github.com/odyssey-erp/odyssey-advisor/internal/consult"
	"github.com/odyssey-erp/odyssey-advisor/internal/events"
	"github.com/odyssey-erp/odyssey-advisor/internal/filter"
	"github.com/odyssey-erp/odyssey-advisor/internal/intent"
	"github.com/odyssey-erp/odyssey-advisor/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-advisor/internal/stats"
)

const (
	defaultRankLimit = 10
	maxRankLimit     = 100
	publishTimeout   = 2 * time.Second
)

// Consulter answers a free-text question.
type Consulter interface {
	Consult(ctx context.Context, query string) consult.Result
}

// StatsService exposes ranked views and the cached report.
type StatsService interface {
	Rank(ctx context.Context, view stats.View, n int) ([]stats.Ranking, error)
	Report(ctx context.Context) (string, error)
	Invalidate(ctx context.Context) (int64, error)
}

// ProductFilter narrows the catalog with explicit criteria.
type ProductFilter interface {
	FilterProducts(ctx context.Context, c filter.Criteria) ([]catalog.Product, error)
}

// Options configures a Handler.
type Options struct {
	Logger    *slog.Logger
	Consulter Consulter
	Stats     StatsService
	Filter    ProductFilter
	Publisher events.Publisher
	// ConsultRateLimit is the number of consultations allowed per client per
	// minute. Zero disables limiting.
	ConsultRateLimit int
}

// Handler serves the advisor JSON API.
type Handler struct {
	logger    *slog.Logger
	consulter Consulter
	stats     StatsService
	filter    ProductFilter
	publisher events.Publisher
	validate  *validator.Validate
	rateLimit func(http.Handler) http.Handler
	reports   singleflight.Group
}

// NewHandler validates dependencies and builds the handler.
func NewHandler(opts Options) (*Handler, error) {
	if opts.Consulter == nil {
		return nil, errors.New("consult http: consulter required")
	}
	if opts.Stats == nil {
		return nil, errors.New("consult http: stats service required")
	}
	if opts.Filter == nil {
		return nil, errors.New("consult http: filter service required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	publisher := opts.Publisher
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Handler{
		logger:    logger,
		consulter: opts.Consulter,
		stats:     opts.Stats,
		filter:    opts.Filter,
		publisher: publisher,
		validate:  newValidator(),
		rateLimit: newRateLimiter(opts.ConsultRateLimit),
	}, nil
}

func (h *Handler) handleConsult(w http.ResponseWriter, r *http.Request) {
	var req consultRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if err := h.validateStruct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	res := h.consulter.Consult(r.Context(), req.Query)
	h.publish(r.Context(), res)
	httpx.JSON(w, http.StatusOK, newConsultResponse(res))
}

// publish emits the consultation event detached from the request lifetime.
func (h *Handler) publish(ctx context.Context, res consult.Result) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	ids := make([]int64, len(res.Products))
	for i, p := range res.Products {
		ids[i] = p.ID
	}
	err := h.publisher.PublishConsultation(ctx, events.ConsultationEvent{
		ID:         res.ID,
		Query:      res.Query,
		Branch:     string(res.Branch),
		ProductIDs: ids,
		Fallback:   res.Fallback,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		h.logger.Warn("publish consultation event", slog.String("consultation_id", res.ID), slog.Any("error", err))
	}
}

func (h *Handler) handleIntent(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "q is required")
		return
	}
	rec := intent.Extract(query)
	httpx.JSON(w, http.StatusOK, intentResponse{
		Query:    query,
		Intent:   rec,
		Flags:    rec.Flags(),
		Criteria: filter.FromIntent(rec),
	})
}

func (h *Handler) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validateStruct(req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	products, err := h.filter.FilterProducts(r.Context(), req.criteria())
	if err != nil {
		h.logger.Error("filter products", slog.Any("error", err))
		httpx.RespondError(w, fmt.Errorf("%w: catalog", httpx.ErrUnavailable))
		return
	}
	httpx.JSON(w, http.StatusOK, productsResponse{Count: len(products), Products: products})
}

func (h *Handler) handleRank(w http.ResponseWriter, r *http.Request) {
	view, ok := stats.ParseView(chi.URLParam(r, "view"))
	if !ok {
		httpx.RespondError(w, fmt.Errorf("%w: unknown view %q", httpx.ErrNotFound, chi.URLParam(r, "view")))
		return
	}
	n := defaultRankLimit
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > maxRankLimit {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", fmt.Sprintf("n must be between 0 and %d", maxRankLimit))
			return
		}
		n = parsed
	}
	rows, err := h.stats.Rank(r.Context(), view, n)
	if err != nil {
		h.logger.Error("rank products", slog.String("view", string(view)), slog.Any("error", err))
		httpx.RespondError(w, fmt.Errorf("%w: catalog", httpx.ErrUnavailable))
		return
	}
	httpx.JSON(w, http.StatusOK, rankResponse{View: view, Items: rows})
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.buildReport(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			httpx.Problem(w, http.StatusGatewayTimeout, "Timeout", "report build timed out")
			return
		}
		h.logger.Error("build stats report", slog.Any("error", err))
		httpx.RespondError(w, fmt.Errorf("%w: catalog", httpx.ErrUnavailable))
		return
	}
	httpx.JSON(w, http.StatusOK, reportResponse{Report: report})
}

// buildReport collapses concurrent report requests into one build.
func (h *Handler) buildReport(ctx context.Context) (string, error) {
	ch := h.reports.DoChan("report", func() (interface{}, error) {
		return h.stats.Report(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (h *Handler) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	version, err := h.stats.Invalidate(r.Context())
	if err != nil {
		h.logger.Error("invalidate stats cache", slog.Any("error", err))
		httpx.RespondError(w, fmt.Errorf("%w: cache", httpx.ErrUnavailable))
		return
	}
	h.logger.Info("stats cache invalidated", slog.Int64("version", version))
	httpx.JSON(w, http.StatusOK, invalidateResponse{Version: version})
}

func (h *Handler) validateStruct(v any) error {
	err := h.validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", httpx.ErrValidation, strings.Join(msgs, "; "))
}
