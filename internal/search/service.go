package search

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	searchmetrics "contact-registry/internal/search/metrics"
	"contact-registry/pkg/domain"
)

var tracer = otel.Tracer("contact-registry/search")

// Service is the search entry point: it validates the request, plans the
// matching tiers, resolves candidates and paginates the final id set.
type Service struct {
	selector *Selector
	resolver *Resolver
	logger   *slog.Logger
	metrics  *searchmetrics.Metrics
}

// Option configures the Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *searchmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(selector *Selector, resolver *Resolver, opts ...Option) *Service {
	s := &Service{selector: selector, resolver: resolver}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search resolves one page of matching contact ids. Sort property and query
// validation fail fast before any store access. Pagination is applied once,
// after deduplication, so a page boundary never splits or duplicates a
// contact, and repeated reads over unchanged data are byte-identical.
func (s *Service) Search(ctx context.Context, q MatchQuery, page PageRequest, sortProperty string) (*Page, error) {
	ctx, span := tracer.Start(ctx, "search.Search")
	defer span.End()
	span.SetAttributes(
		attribute.Bool("search.sounds_like", q.SoundsLike),
		attribute.Bool("search.include_history", q.IncludeHistory),
	)
	start := time.Now()

	sortKey, err := ParseSort(sortProperty)
	if err != nil {
		return nil, err
	}

	plan, err := s.selector.Plan(q)
	if err != nil {
		return nil, err
	}

	ids, tier, err := s.resolver.Resolve(ctx, q, plan)
	if err != nil {
		return nil, err
	}

	if sortKey != SortByID && len(ids) > 1 {
		ids, err = s.resolver.contacts.SortIDs(ctx, ids, sortKey)
		if err != nil {
			return nil, err
		}
	}

	result := paginate(ids, page)

	outcome := "match"
	if len(ids) == 0 {
		outcome = "no_match"
	}
	if s.metrics != nil {
		s.metrics.ObserveSearch(string(tier), outcome, time.Since(start).Seconds())
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "contact search",
			"tier", string(tier),
			"matches", len(ids),
			"page", page.Page,
			"history", q.IncludeHistory,
		)
	}
	return result, nil
}

// paginate slices one page out of the ordered candidate set.
func paginate(ids []domain.ContactID, page PageRequest) *Page {
	if page.Size <= 0 {
		page.Size = 20
	}
	if page.Page < 0 {
		page.Page = 0
	}

	total := len(ids)
	from := page.Page * page.Size
	if from > total {
		from = total
	}
	to := from + page.Size
	if to > total {
		to = total
	}

	return &Page{
		ContactIDs:    append([]domain.ContactID{}, ids[from:to]...),
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
	}
}
