// Package charset decides whether a page declares a non-default encoding.
//
// Only Shift_JIS is recognised. Pages declaring anything else are decoded
// as UTF-8 by the fetcher.
package charset

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ShiftJIS is the canonical label returned for Shift_JIS declarations.
const ShiftJIS = "shift-jis"

// candidateSelector matches both declaration styles. http-equiv values are
// compared case-insensitively in code.
const candidateSelector = "meta[http-equiv], meta[charset]"

var shiftJISMarkers = []string{"shift_jis", "sjis"}

// Detect inspects charset declarations in document order and reports the
// first one naming Shift_JIS.
func Detect(doc *goquery.Document) (string, bool) {
	var found bool
	doc.Find(candidateSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !isCandidate(s) {
			return true
		}
		for _, attr := range []string{"content", "charset"} {
			if v, ok := s.Attr(attr); ok && isShiftJIS(v) {
				found = true
				return false
			}
		}
		return true
	})
	if found {
		return ShiftJIS, true
	}
	return "", false
}

// DetectHTML parses html and runs Detect on it.
func DetectHTML(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}
	return Detect(doc)
}

func isCandidate(s *goquery.Selection) bool {
	if _, ok := s.Attr("charset"); ok {
		return true
	}
	equiv, _ := s.Attr("http-equiv")
	return strings.EqualFold(strings.TrimSpace(equiv), "content-type")
}

func isShiftJIS(v string) bool {
	v = strings.ToLower(v)
	for _, m := range shiftJISMarkers {
		if strings.Contains(v, m) {
			return true
		}
	}
	return false
}
