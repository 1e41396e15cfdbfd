package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/Alp4ka/pagesearch"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QueriesTotal counts storage queries by step (content, count) and status.
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagesearch_queries_total",
			Help: "Total number of storage queries issued by searches",
		},
		[]string{"step", "status"},
	)
	// QueryDuration is the latency of storage queries.
	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pagesearch_query_duration_seconds",
			Help:    "Storage query latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"step"},
	)
	// RequestTotal counts HTTP requests by method, route and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagesearch_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

// InstrumentedStore records query counts and latencies of the wrapped store.
type InstrumentedStore struct {
	next pagesearch.Store
}

func Instrument(next pagesearch.Store) *InstrumentedStore {
	return &InstrumentedStore{next: next}
}

func (s *InstrumentedStore) FetchRows(ctx context.Context, q pagesearch.Query) ([]pagesearch.ResultRow, error) {
	defer observe(pagesearch.QueryStepContent, time.Now())

	rows, err := s.next.FetchRows(ctx, q)
	record(pagesearch.QueryStepContent, err)

	return rows, err
}

func (s *InstrumentedStore) CountRows(ctx context.Context, q pagesearch.Query) (int64, error) {
	defer observe(pagesearch.QueryStepCount, time.Now())

	total, err := s.next.CountRows(ctx, q)
	record(pagesearch.QueryStepCount, err)

	return total, err
}

func observe(step pagesearch.QueryStep, start time.Time) {
	QueryDuration.WithLabelValues(string(step)).Observe(time.Since(start).Seconds())
}

func record(step pagesearch.QueryStep, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	QueriesTotal.WithLabelValues(string(step), status).Inc()
}

// GinMiddleware counts handled requests. The route template is used as the
// path label to keep cardinality bounded.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RequestTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

var _ pagesearch.Store = (*InstrumentedStore)(nil)
