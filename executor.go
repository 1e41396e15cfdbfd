package pagesearch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Executor runs dynamic member searches against a Store. It holds no mutable
// state, so one Executor may serve concurrent callers.
type Executor struct {
	store Store
	log   zerolog.Logger
}

type Option func(*Executor)

// WithLogger sets the logger used for query diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Executor) {
		e.log = logger.With().Str("component", "pagesearch").Logger()
	}
}

func NewExecutor(store Store, opts ...Option) *Executor {
	e := &Executor{
		store: store,
		log:   zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Search returns every row matching the condition, ordered by member id. The
// result is never nil.
func (e *Executor) Search(ctx context.Context, condition FilterCondition) ([]ResultRow, error) {
	predicates, err := buildPredicates(condition)
	if err != nil {
		return nil, err
	}

	rows, err := e.store.FetchRows(ctx, Query{
		Predicates: predicates,
		Orderings:  Orderings(nil).Deterministic(),
		Limit:      NoLimit,
	})
	if err != nil {
		e.log.Error().Err(err).Str("step", string(QueryStepContent)).Msg("search failed")
		return nil, newQueryExecutionError(QueryStepContent, err)
	}

	if rows == nil {
		rows = []ResultRow{}
	}

	return rows, nil
}

// SearchPage returns one page of the rows matching the condition and the
// total number of matches.
//
// The total is resolved with at most one extra query. When the first page
// comes back shorter than the limit, the page already holds every match and
// its size is the total. In every other case, including pages past the end
// of the result, a count query with the same predicates is issued.
func (e *Executor) SearchPage(ctx context.Context, condition FilterCondition, page PageRequest) (PageResult[ResultRow], error) {
	err := page.Validate()
	if err != nil {
		return PageResult[ResultRow]{}, err
	}

	predicates, err := buildPredicates(condition)
	if err != nil {
		return PageResult[ResultRow]{}, err
	}

	content, err := e.store.FetchRows(ctx, Query{
		Predicates: predicates,
		Orderings:  page.Sort.Deterministic(),
		Offset:     page.Offset,
		Limit:      page.Limit,
	})
	if err != nil {
		e.log.Error().Err(err).Str("step", string(QueryStepContent)).
			Int("offset", page.Offset).Int("limit", page.Limit).Msg("page search failed")
		return PageResult[ResultRow]{}, newQueryExecutionError(QueryStepContent, err)
	}

	if content == nil {
		content = []ResultRow{}
	}

	total, err := e.resolveTotal(ctx, predicates, page, len(content))
	if err != nil {
		return PageResult[ResultRow]{}, err
	}

	return PageResult[ResultRow]{
		Content:    content,
		TotalCount: total,
		Offset:     page.Offset,
		Limit:      page.Limit,
	}, nil
}

func (e *Executor) resolveTotal(ctx context.Context, predicates Predicates, page PageRequest, contentSize int) (int64, error) {
	if IsShortFirstPage(page, contentSize) {
		e.log.Debug().Int("limit", page.Limit).Int("content", contentSize).Msg("count query skipped")
		return int64(page.Offset + contentSize), nil
	}

	total, err := e.store.CountRows(ctx, Query{
		Predicates: predicates,
		Limit:      NoLimit,
	})
	if err != nil {
		e.log.Error().Err(err).Str("step", string(QueryStepCount)).
			Int("offset", page.Offset).Int("limit", page.Limit).Msg("page count failed")
		return 0, newQueryExecutionError(QueryStepCount, err)
	}

	e.log.Debug().Int64("total", total).Int("offset", page.Offset).Msg("count query issued")

	return total, nil
}

// IsShortFirstPage returns true if the content of the first page is strictly
// smaller than the limit. Such a page is the whole result set, so its size is
// the total count.
//
// A full first page proves nothing: the next row may or may not exist. Later
// pages prove nothing either, since an empty page past the end does not tell
// how far the result actually reaches.
func IsShortFirstPage(page PageRequest, contentSize int) bool {
	return page.Offset == 0 && contentSize < page.Limit
}

func buildPredicates(condition FilterCondition) (Predicates, error) {
	predicates := condition.Predicates()

	if err := predicates.validate(); err != nil {
		return nil, fmt.Errorf("cannot build predicates: %w", err)
	}

	return predicates, nil
}
