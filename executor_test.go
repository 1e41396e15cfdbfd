package pagesearch

import (
	"context"
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceStore serves queries from an in-memory slice. Predicates are ignored;
// tests that need filtering use the SQLite fixture instead.
type sliceStore struct {
	rows     []ResultRow
	fetchErr error
	countErr error
}

func (s sliceStore) FetchRows(_ context.Context, q Query) ([]ResultRow, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}

	if q.Offset >= len(s.rows) {
		return nil, nil
	}

	end := len(s.rows)
	if q.Limit != NoLimit {
		end = min(end, q.Offset+q.Limit)
	}

	return s.rows[q.Offset:end], nil
}

func (s sliceStore) CountRows(context.Context, Query) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}

	return int64(len(s.rows)), nil
}

func fourRows() []ResultRow {
	return []ResultRow{
		{MemberID: 1, Username: "alice", Age: 10},
		{MemberID: 2, Username: "bob", Age: 20},
		{MemberID: 3, Username: "carl", Age: 30},
		{MemberID: 4, Username: "dana", Age: 40},
	}
}

func Test_Executor_SearchPage_CountStrategy(t *testing.T) {
	tests := []struct {
		name           string
		page           PageRequest
		wantIDs        []int64
		wantTotal      int64
		wantCountCalls int
	}{
		{
			name:           "full first page issues a count query",
			page:           PageRequest{Offset: 0, Limit: 2},
			wantIDs:        []int64{1, 2},
			wantTotal:      4,
			wantCountCalls: 1,
		},
		{
			name:           "limit equal to match count still counts",
			page:           PageRequest{Offset: 0, Limit: 4},
			wantIDs:        []int64{1, 2, 3, 4},
			wantTotal:      4,
			wantCountCalls: 1,
		},
		{
			name:           "short first page skips the count query",
			page:           PageRequest{Offset: 0, Limit: 10},
			wantIDs:        []int64{1, 2, 3, 4},
			wantTotal:      4,
			wantCountCalls: 0,
		},
		{
			name:           "short later page still counts",
			page:           PageRequest{Offset: 3, Limit: 2},
			wantIDs:        []int64{4},
			wantTotal:      4,
			wantCountCalls: 1,
		},
		{
			name:           "page past the end counts and returns no content",
			page:           PageRequest{Offset: 10, Limit: 2},
			wantIDs:        []int64{},
			wantTotal:      4,
			wantCountCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &countingStore{next: sliceStore{rows: fourRows()}}
			executor := NewExecutor(store)

			res, err := executor.SearchPage(context.Background(), FilterCondition{}, tt.page)
			require.NoError(t, err)

			gotIDs := lo.Map(res.Content, func(r ResultRow, _ int) int64 { return r.MemberID })
			require.Equal(t, tt.wantIDs, gotIDs)
			require.NotNil(t, res.Content)
			require.Equal(t, tt.wantTotal, res.TotalCount)
			require.Equal(t, tt.page.Offset, res.Offset)
			require.Equal(t, tt.page.Limit, res.Limit)

			require.Equal(t, 1, store.fetchCalls())
			require.Equal(t, tt.wantCountCalls, store.countCalls())
		})
	}
}

func Test_Executor_SearchPage_QueryShapes(t *testing.T) {
	store := &countingStore{next: sliceStore{rows: fourRows()}}
	executor := NewExecutor(store)

	condition := FilterCondition{TeamName: lo.ToPtr("teamY"), AgeMin: lo.ToPtr(35)}
	page := PageRequest{Offset: 1, Limit: 2, Sort: Orderings{{Column: ColumnAge, Direction: DirectionDESC}}}

	_, err := executor.SearchPage(context.Background(), condition, page)
	require.NoError(t, err)

	require.Len(t, store.fetches, 1)
	require.Len(t, store.counts, 1)

	fetch := store.fetches[0]
	assert.Equal(t, condition.Predicates(), fetch.Predicates)
	assert.Equal(t, Orderings{{Column: ColumnAge, Direction: DirectionDESC}, DefaultOrderBy}, fetch.Orderings)
	assert.Equal(t, 1, fetch.Offset)
	assert.Equal(t, 2, fetch.Limit)

	count := store.counts[0]
	assert.Equal(t, fetch.Predicates, count.Predicates)
	assert.Empty(t, count.Orderings)
	assert.Zero(t, count.Offset)
	assert.Equal(t, NoLimit, count.Limit)
}

func Test_Executor_SearchPage_InvalidPage(t *testing.T) {
	tests := []struct {
		name string
		page PageRequest
	}{
		{"zero limit", PageRequest{Limit: 0}},
		{"negative limit", PageRequest{Limit: -2}},
		{"negative offset", PageRequest{Offset: -1, Limit: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &countingStore{next: sliceStore{rows: fourRows()}}

			_, err := NewExecutor(store).SearchPage(context.Background(), FilterCondition{}, tt.page)
			require.ErrorIs(t, err, ErrInvalidPageRequest)
			require.Zero(t, store.fetchCalls())
			require.Zero(t, store.countCalls())
		})
	}
}

func Test_Executor_SearchPage_ContentFailure(t *testing.T) {
	cause := errors.New("connection refused")
	store := &countingStore{next: sliceStore{fetchErr: cause}}

	res, err := NewExecutor(store).SearchPage(context.Background(), FilterCondition{}, PageRequest{Limit: 2})
	require.ErrorIs(t, err, ErrQueryExecution)
	require.ErrorIs(t, err, cause)
	require.Empty(t, res.Content)

	var queryErr *QueryExecutionError
	require.ErrorAs(t, err, &queryErr)
	require.Equal(t, QueryStepContent, queryErr.Step)

	require.Equal(t, 1, store.fetchCalls())
	require.Zero(t, store.countCalls(), "no count query after a failed content fetch")
}

func Test_Executor_SearchPage_CountFailure(t *testing.T) {
	cause := errors.New("statement timeout")
	store := &countingStore{next: sliceStore{rows: fourRows(), countErr: cause}}

	res, err := NewExecutor(store).SearchPage(context.Background(), FilterCondition{}, PageRequest{Limit: 2})
	require.ErrorIs(t, err, ErrQueryExecution)
	require.ErrorIs(t, err, cause)
	require.Empty(t, res.Content, "no partial page on failure")

	var queryErr *QueryExecutionError
	require.ErrorAs(t, err, &queryErr)
	require.Equal(t, QueryStepCount, queryErr.Step)
	require.Equal(t, "count query failed: statement timeout", err.Error())
}

func Test_Executor_Search(t *testing.T) {
	store := &countingStore{next: sliceStore{rows: fourRows()}}

	rows, err := NewExecutor(store).Search(context.Background(), FilterCondition{})
	require.NoError(t, err)
	require.Equal(t, fourRows(), rows)

	require.Equal(t, 1, store.fetchCalls())
	require.Zero(t, store.countCalls())

	fetch := store.fetches[0]
	require.Equal(t, NoLimit, fetch.Limit)
	require.Zero(t, fetch.Offset)
	require.Equal(t, Orderings{DefaultOrderBy}, fetch.Orderings)
}

func Test_Executor_Search_EmptyIsNotNil(t *testing.T) {
	rows, err := NewExecutor(sliceStore{}).Search(context.Background(), FilterCondition{})
	require.NoError(t, err)
	require.NotNil(t, rows)
	require.Empty(t, rows)
}

func Test_Executor_Search_Failure(t *testing.T) {
	cause := errors.New("malformed predicate")

	rows, err := NewExecutor(sliceStore{fetchErr: cause}).Search(context.Background(), FilterCondition{})
	require.Nil(t, rows)
	require.ErrorIs(t, err, ErrQueryExecution)
	require.ErrorIs(t, err, cause)
}

func Test_IsShortFirstPage(t *testing.T) {
	tests := []struct {
		name        string
		page        PageRequest
		contentSize int
		want        bool
	}{
		{"short first page", PageRequest{Offset: 0, Limit: 10}, 4, true},
		{"empty first page", PageRequest{Offset: 0, Limit: 10}, 0, true},
		{"full first page", PageRequest{Offset: 0, Limit: 4}, 4, false},
		{"short later page", PageRequest{Offset: 3, Limit: 2}, 1, false},
		{"empty later page", PageRequest{Offset: 10, Limit: 2}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsShortFirstPage(tt.page, tt.contentSize))
		})
	}
}
