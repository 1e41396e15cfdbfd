package pagesearch

const (
	// NoLimit disables the row limit of a store query.
	NoLimit = -1

	DefaultLimit = 10
	MaxLimit     = 100
)

// CapLimit resolves the page size a transport received. Zero means the limit
// was not given and becomes DefaultLimit. Limits above maxLimit are capped, and
// a maxLimit below 1 falls back to MaxLimit. Negative limits are returned
// unchanged so that PageRequest.Validate rejects them.
func CapLimit(limit, maxLimit int) int {
	if maxLimit < 1 {
		maxLimit = MaxLimit
	}

	switch {
	case limit == 0:
		return min(DefaultLimit, maxLimit)
	case limit > maxLimit:
		return maxLimit
	default:
		return limit
	}
}
