package boxresponse

import (
	"net/http"
	"slices"
	"strings"
)

type Header struct {
	Name   string
	Values []string
}

// Headers is an ordered header mapping. Lookups compare names case-insensitively.
type Headers []Header

func HeadersFromHTTP(h http.Header) Headers {
	headers := make(Headers, 0, len(h))
	for name, values := range h {
		headers = append(headers, Header{Name: name, Values: slices.Clone(values)})
	}

	slices.SortFunc(headers, func(a, b Header) int {
		return strings.Compare(a.Name, b.Name)
	})

	return headers
}

// Values returns the values of the first header whose name matches.
func (h Headers) Values(name string) []string {
	for _, header := range h {
		if strings.EqualFold(header.Name, name) {
			return header.Values
		}
	}

	return nil
}

func (h Headers) Get(name string) (string, bool) {
	values := h.Values(name)
	if len(values) == 0 {
		return "", false
	}

	return values[0], true
}

func (h Headers) Has(name string) bool {
	for _, header := range h {
		if strings.EqualFold(header.Name, name) {
			return true
		}
	}

	return false
}
