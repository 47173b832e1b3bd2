package pagination

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/andyle182810/boxsdk/boxresponse"
)

const (
	HeaderLink = "link"
	relLast    = `REL="LAST"`
)

var pageParam = regexp.MustCompile(`(?i)page=([0-9]+)`)

// CountPages reads the total page count from the rel="last" entry of the Link
// header. Any missing or malformed piece yields 1.
func CountPages(exchange *boxresponse.Exchange) int {
	return CountPagesFromHeaders(exchange.Headers)
}

func CountPagesFromHeaders(headers boxresponse.Headers) int {
	link, ok := headers.Get(HeaderLink)
	if !ok {
		return 1
	}

	var last string

	found := false

	for entry := range strings.SplitSeq(link, ",") {
		if strings.Contains(strings.ToUpper(entry), relLast) {
			last = entry
			found = true

			break
		}
	}

	if !found {
		return 1
	}

	target, _, _ := strings.Cut(last, ";")

	match := pageParam.FindStringSubmatch(target)
	if match == nil {
		return 1
	}

	count, err := strconv.Atoi(match[1])
	if err != nil || count < 1 {
		return 1
	}

	return count
}
