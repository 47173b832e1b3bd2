package pagination

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Normalize clamps Box offset pagination parameters.
func Normalize(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}

	if limit <= 0 {
		limit = DefaultLimit
	} else if limit > MaxLimit {
		limit = MaxLimit
	}

	return offset, limit
}

func ComputeTotals(totalCount, limit int) int {
	totalPages := 0
	if limit > 0 {
		totalPages = (totalCount + limit - 1) / limit
	}

	return totalPages
}

func HasMore(offset, limit, totalCount int) bool {
	return offset+limit < totalCount
}
