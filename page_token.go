package pagesearch

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

var _encoder = base64.RawURLEncoding

// PageToken is an opaque continuation token for clients that prefer "give me
// the next page" over computing offsets themselves.
//
// It wraps the offset of the first row of the page it points to.
type PageToken struct {
	offset int
}

func NewPageToken(offset int) *PageToken {
	return &PageToken{
		offset: offset,
	}
}

// DecodePageToken attempts to parse a base64-encoded string into *PageToken.
// An empty string decodes to a nil token.
func DecodePageToken(b64String string) (*PageToken, error) {
	if len(b64String) == 0 {
		return nil, nil
	}

	offsetBytes, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 encoded page token: %w", err)
	}

	offset, err := strconv.Atoi(string(offsetBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode page token offset value: %w", err)
	}

	return &PageToken{
		offset: offset,
	}, nil
}

// String - implements fmt.Stringer. The first page is encoded as an empty string.
func (p *PageToken) String() string {
	if p.IsEmpty() {
		return ""
	}

	return _encoder.EncodeToString([]byte(strconv.Itoa(p.offset)))
}

// IsEmpty returns true for the token of the first page.
func (p *PageToken) IsEmpty() bool {
	return p == nil || p.offset == 0
}

// GetOffset returns the numeric offset value.
func (p *PageToken) GetOffset() int {
	if p != nil {
		return p.offset
	}

	return 0
}

var _ fmt.Stringer = (*PageToken)(nil)
