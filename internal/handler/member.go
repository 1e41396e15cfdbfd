package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Alp4ka/pagesearch"
	"github.com/Alp4ka/pagesearch/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type MemberHandler struct {
	searcher    MemberSearcher
	maxPageSize int
	log         zerolog.Logger
}

func NewMemberHandler(searcher MemberSearcher, maxPageSize int, logger zerolog.Logger) *MemberHandler {
	return &MemberHandler{
		searcher:    searcher,
		maxPageSize: maxPageSize,
		log:         logger.With().Str("module", "handler").Str("component", "member").Logger(),
	}
}

func (h *MemberHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/members")
	{
		g.GET("", h.searchPage)
		g.GET("/all", h.search)
	}
}

type searchPageRequest struct {
	pagesearch.FilterCondition
	pagesearch.RawPageRequest
}

// pageResponse is PageResult plus the navigation fields clients need to walk
// the result without recomputing offsets.
type pageResponse struct {
	pagesearch.PageResult[pagesearch.ResultRow]
	TotalPages    int    `json:"totalPages"`
	PageNumber    int    `json:"pageNumber"`
	HasNext       bool   `json:"hasNext"`
	Last          bool   `json:"last"`
	NextPageToken string `json:"nextPageToken,omitempty"`
}

func (h *MemberHandler) searchPage(c *gin.Context) {
	start := time.Now()

	var req searchPageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.WriteError(c, fmt.Errorf("%w: %w", response.ErrInvalidParams, err))
		return
	}

	page, err := req.RawPageRequest.Decode(pagesearch.MemberColumnMapping, h.maxPageSize)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	res, err := h.searcher.SearchPage(c.Request.Context(), req.FilterCondition, page)

	logger := h.log.With().
		Str("path", c.Request.URL.Path).
		Str("query", c.Request.URL.RawQuery).
		Dur("duration", time.Since(start)).
		Logger()

	if err != nil {
		status, _ := response.MapError(err)
		logger.Error().Err(err).Int("status", status).Msg("member page search failed")
		response.WriteError(c, err)
		return
	}

	logger.Debug().Int("rows", len(res.Content)).Int64("total", res.TotalCount).Msg("member page served")
	resp := pageResponse{
		PageResult: res,
		TotalPages: res.TotalPages(),
		PageNumber: res.PageNumber(),
		HasNext:    res.HasNext(),
		Last:       res.IsLast(),
	}
	if token := res.NextPageToken(); !token.IsEmpty() {
		resp.NextPageToken = token.String()
	}

	response.WriteData(c, http.StatusOK, resp)
}

func (h *MemberHandler) search(c *gin.Context) {
	var condition pagesearch.FilterCondition
	if err := c.ShouldBindQuery(&condition); err != nil {
		response.WriteError(c, fmt.Errorf("%w: %w", response.ErrInvalidParams, err))
		return
	}

	rows, err := h.searcher.Search(c.Request.Context(), condition)
	if err != nil {
		h.log.Error().Err(err).Str("query", c.Request.URL.RawQuery).Msg("member search failed")
		response.WriteError(c, err)
		return
	}

	response.WriteData(c, http.StatusOK, rows)
}
