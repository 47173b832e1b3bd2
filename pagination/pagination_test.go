package pagination_test

import (
	"testing"

	"github.com/andyle182810/boxsdk/pagination"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		offset         int
		limit          int
		expectedOffset int
		expectedLimit  int
	}{
		{"defaults", 0, 0, 0, pagination.DefaultLimit},
		{"negative offset", -10, 50, 0, 50},
		{"limit capped", 200, 5000, 200, pagination.MaxLimit},
		{"negative limit", 10, -1, 10, pagination.DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			offset, limit := pagination.Normalize(tt.offset, tt.limit)
			require.Equal(t, tt.expectedOffset, offset)
			require.Equal(t, tt.expectedLimit, limit)
		})
	}
}

func TestComputeTotals(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, pagination.ComputeTotals(0, 100))
	require.Equal(t, 1, pagination.ComputeTotals(1, 100))
	require.Equal(t, 3, pagination.ComputeTotals(201, 100))
	require.Equal(t, 0, pagination.ComputeTotals(50, 0))
}

func TestHasMore(t *testing.T) {
	t.Parallel()

	require.True(t, pagination.HasMore(0, 100, 150))
	require.False(t, pagination.HasMore(100, 100, 150))
	require.False(t, pagination.HasMore(0, 100, 100))
}
