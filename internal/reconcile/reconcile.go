package reconcile

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"

	"github.com/pfrederiksen/toto-draws/internal/draw"
)

var (
	spplNumberPattern = regexp.MustCompile(`(?i)DrawNumber\s*=\s*(\d+)`)
	idParamPattern    = regexp.MustCompile(`(?:^|[?&])id=(\d+)`)
)

// RecoverDrawNumber determines a locator's draw number so it can be matched
// against stored draws. Recovery order: the number already attached to the
// locator, a base64 sppl= token decoding to "DrawNumber=NNNN", and finally a
// literal id= query parameter. Returns 0 when nothing works.
func RecoverDrawNumber(loc draw.Locator) int {
	if loc.DrawNumber > 0 {
		return loc.DrawNumber
	}
	if n := decodeSpplToken(loc.QueryString); n > 0 {
		return n
	}
	if m := idParamPattern.FindStringSubmatch(loc.QueryString); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 0
}

// decodeSpplToken decodes the opaque archive token. The value after the first
// '=' is base64 for a "DrawNumber=NNNN" query fragment.
func decodeSpplToken(qs string) int {
	_, token, found := strings.Cut(qs, "=")
	if !found || token == "" {
		return 0
	}
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		decoded, err = base64.RawStdEncoding.DecodeString(token)
		if err != nil {
			return 0
		}
	}
	m := spplNumberPattern.FindStringSubmatch(string(decoded))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// Missing returns the catalog entries not present in the stored set. A
// locator whose draw number cannot be recovered is always included: fetching
// a draw we already hold is harmless, silently skipping one we are missing
// is not.
func Missing(catalog []draw.Locator, existing map[int]bool) []draw.Locator {
	var missing []draw.Locator
	for _, loc := range catalog {
		n := RecoverDrawNumber(loc)
		if n == 0 || !existing[n] {
			missing = append(missing, loc)
		}
	}
	return missing
}
