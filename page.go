package pagesearch

import (
	"fmt"

	"github.com/samber/lo"
)

// PageRequest selects one LIMIT/OFFSET window of a search result.
type PageRequest struct {
	// Offset - number of matching rows to skip. Must be >= 0.
	Offset int
	// Limit - maximum number of rows to return. Must be >= 1. The engine
	// enforces no upper bound; transports cap it via RawPageRequest.Decode.
	Limit int
	// Sort - requested ordering. The member id is always appended as the final
	// tiebreaker, and an empty Sort orders by member id ascending.
	Sort Orderings
}

// Validate returns an error wrapping ErrInvalidPageRequest when the window is
// malformed.
func (p PageRequest) Validate() error {
	if p.Offset < 0 {
		return fmt.Errorf("%w: offset must be >= 0, got %d", ErrInvalidPageRequest, p.Offset)
	}

	if p.Limit < 1 {
		return fmt.Errorf("%w: limit must be >= 1, got %d", ErrInvalidPageRequest, p.Limit)
	}

	if len(p.Sort) > 0 {
		if err := p.Sort.validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPageRequest, err)
		}
	}

	return nil
}

// RawPageRequest is intended for API payloads. For proper code generation, inline it:
//
//	type MemberSearchRequest struct {
//	    Paging RawPageRequest `json:",inline"`
//	}
type RawPageRequest struct {
	// Limit - maximum number of records to return in the response. Zero means
	// DefaultLimit.
	Limit int `json:"limit" form:"limit"`
	// Offset - number of records to skip. Ignored when StartToken is set.
	Offset int `json:"offset" form:"offset"`
	// StartToken - token obtained via PageResult.NextPageToken().
	StartToken string `json:"startToken" form:"startToken"`
	// Sort - list of "column asc|desc" items, resolved through a ColumnMapping.
	Sort []string `json:"sort" form:"sort"`
}

// Decode converts RawPageRequest into a PageRequest. Limit is normalized with
// CapLimit; malformed tokens and sort items are reported as errors.
// The result is not validated, SearchPage does that.
func (p RawPageRequest) Decode(columnMapping ColumnMapping, maxLimit int) (PageRequest, error) {
	offset := p.Offset
	if p.StartToken != "" {
		token, err := DecodePageToken(p.StartToken)
		if err != nil {
			return PageRequest{}, fmt.Errorf("%w: %w", ErrInvalidPageRequest, err)
		}
		offset = token.GetOffset()
	}

	sort, err := ParseSort(p.Sort, columnMapping)
	if err != nil {
		return PageRequest{}, err
	}

	return PageRequest{
		Offset: offset,
		Limit:  CapLimit(p.Limit, maxLimit),
		Sort:   sort,
	}, nil
}

// PageResult is one page of a search together with the total number of rows
// matching the search.
type PageResult[T any] struct {
	// Content - rows of the page, at most Limit of them.
	Content []T `json:"content"`
	// TotalCount - number of rows matching the search across all pages.
	TotalCount int64 `json:"totalCount"`
	// Offset of the page as requested.
	Offset int `json:"offset"`
	// Limit of the page as requested.
	Limit int `json:"limit"`
}

// HasNext returns true when rows exist beyond this page.
func (r PageResult[T]) HasNext() bool {
	return int64(r.Offset+len(r.Content)) < r.TotalCount
}

// IsLast returns true when no rows exist beyond this page.
func (r PageResult[T]) IsLast() bool {
	return !r.HasNext()
}

// TotalPages returns the number of pages of size Limit needed to cover every
// match.
func (r PageResult[T]) TotalPages() int {
	if r.Limit < 1 {
		return 0
	}

	limit := int64(r.Limit)

	return int((r.TotalCount + limit - 1) / limit)
}

// PageNumber returns the zero-based page index of this page. Offsets that are
// not a multiple of Limit are rounded down.
func (r PageResult[T]) PageNumber() int {
	if r.Limit < 1 {
		return 0
	}

	return r.Offset / r.Limit
}

// NextPageToken returns the token for the page following this one, or nil on
// the last page.
func (r PageResult[T]) NextPageToken() *PageToken {
	return lo.Ternary(r.HasNext(), NewPageToken(r.Offset+len(r.Content)), nil)
}
