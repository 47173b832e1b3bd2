package pagination_test

import (
	"net/http"
	"testing"

	"github.com/andyle182810/boxsdk/boxresponse"
	"github.com/andyle182810/boxsdk/pagination"
	"github.com/stretchr/testify/require"
)

func linkExchange(name, value string) *boxresponse.Exchange {
	return boxresponse.NewExchange(http.StatusOK, "", boxresponse.Headers{
		{Name: name, Values: []string{value}},
	})
}

func TestCountPages_WithoutLinkHeader(t *testing.T) {
	t.Parallel()

	ex := boxresponse.NewExchange(http.StatusOK, "", boxresponse.Headers{
		{Name: "Content-Type", Values: []string{"image/png"}},
	})

	require.Equal(t, 1, pagination.CountPages(ex))
	require.Equal(t, 1, pagination.CountPages(boxresponse.NewExchange(http.StatusOK, "", nil)))
}

func TestCountPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headerName string
		value      string
		expected   int
	}{
		{
			name:       "lower-case header",
			headerName: "link",
			value:      `<https://x/y?page=3>; rel="last"`,
			expected:   3,
		},
		{
			name:       "canonical header",
			headerName: "Link",
			value:      `<https://x/y?page=3>; rel="last"`,
			expected:   3,
		},
		{
			name:       "upper-case rel",
			headerName: "Link",
			value:      `<https://x/y?page=3>; REL="LAST"`,
			expected:   3,
		},
		{
			name:       "upper-case page parameter",
			headerName: "LINK",
			value:      `<https://x/y?PAGE=12>; rel="last"`,
			expected:   12,
		},
		{
			name:       "several entries",
			headerName: "Link",
			value: `<https://api.box.com/2.0/files/1/preview.png?page=1>; rel="first", ` +
				`<https://api.box.com/2.0/files/1/preview.png?page=2>; rel="next", ` +
				`<https://api.box.com/2.0/files/1/preview.png?page=9>; rel="last"`,
			expected: 9,
		},
		{
			name:       "first page match wins",
			headerName: "Link",
			value:      `<https://x/y?page=4&subpage=8>; rel="last"`,
			expected:   4,
		},
		{
			name:       "no last entry",
			headerName: "Link",
			value:      `<https://x/y?page=2>; rel="next", <https://x/y?page=1>; rel="first"`,
			expected:   1,
		},
		{
			name:       "last entry without page",
			headerName: "Link",
			value:      `<https://x/y?offset=3>; rel="last"`,
			expected:   1,
		},
		{
			name:       "page after semicolon ignored",
			headerName: "Link",
			value:      `<https://x/y>; rel="last"; page=5`,
			expected:   1,
		},
		{
			name:       "zero page count",
			headerName: "Link",
			value:      `<https://x/y?page=0>; rel="last"`,
			expected:   1,
		},
		{
			name:       "zero-padded zero page count",
			headerName: "Link",
			value:      `<https://x/y?page=00>; rel="last"`,
			expected:   1,
		},
		{
			name:       "zero-padded page count",
			headerName: "Link",
			value:      `<https://x/y?page=05>; rel="last"`,
			expected:   5,
		},
		{
			name:       "page number overflows",
			headerName: "Link",
			value:      `<https://x/y?page=99999999999999999999999>; rel="last"`,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.expected, pagination.CountPages(linkExchange(tt.headerName, tt.value)))
		})
	}
}

func TestCountPages_UsesFirstHeaderValue(t *testing.T) {
	t.Parallel()

	ex := boxresponse.NewExchange(http.StatusOK, "", boxresponse.Headers{
		{Name: "Link", Values: []string{`<https://x/y?page=2>; rel="last"`, `<https://x/y?page=7>; rel="last"`}},
	})

	require.Equal(t, 2, pagination.CountPages(ex))
}

func TestCountPagesFromHeaders(t *testing.T) {
	t.Parallel()

	headers := boxresponse.HeadersFromHTTP(http.Header{
		"Link": []string{`<https://api.box.com/2.0/files/1/preview.png?page=1>; rel="first", <https://api.box.com/2.0/files/1/preview.png?page=12>; rel="last"`},
	})

	require.Equal(t, 12, pagination.CountPagesFromHeaders(headers))
	require.Equal(t, 1, pagination.CountPagesFromHeaders(nil))
}
