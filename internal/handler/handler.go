package handler

import (
	"context"
	"net/http"

	"github.com/Alp4ka/pagesearch"
	"github.com/Alp4ka/pagesearch/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const APIV1Prefix = "/api/v1"

// MemberSearcher is the search capability the member endpoints are served by.
type MemberSearcher interface {
	Search(ctx context.Context, condition pagesearch.FilterCondition) ([]pagesearch.ResultRow, error)
	SearchPage(ctx context.Context, condition pagesearch.FilterCondition, page pagesearch.PageRequest) (pagesearch.PageResult[pagesearch.ResultRow], error)
}

// NewRouter builds the gin engine with every public route mounted.
func NewRouter(searcher MemberSearcher, maxPageSize int, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), metrics.GinMiddleware())

	r.GET("/live", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(APIV1Prefix)
	NewMemberHandler(searcher, maxPageSize, logger).Register(api)

	return r
}
