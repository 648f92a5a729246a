// Package links discovers candidate document URLs on a landing page.
package links

import (
	"bytes"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// documentSuffixes are the file extensions the harvester knows how to handle.
var documentSuffixes = []string{".pdf", ".doc", ".docx"}

// barePDFPattern recovers document URLs referenced outside anchor tags,
// typically script-generated markup on institutional sites.
var barePDFPattern = regexp.MustCompile(`(?i)https://[^\s"']+\.pdf`)

// Extract returns the absolute URLs of every PDF/DOC/DOCX referenced by an
// anchor element in html, relative hrefs resolved against base. When the
// anchor scan finds nothing it falls back to a raw-text scan for bare
// https://...pdf substrings. The result is deduplicated and sorted.
func Extract(html []byte, base *url.URL) []string {
	found := make(map[string]struct{})

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err == nil {
		doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			href, ok := sel.Attr("href")
			if !ok || !IsDocumentURL(href) {
				return
			}
			if abs := resolve(base, href); abs != "" {
				found[abs] = struct{}{}
			}
		})
	}

	if len(found) == 0 {
		for _, m := range barePDFPattern.FindAllString(string(html), -1) {
			found[m] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for u := range found {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// IsDocumentURL reports whether the URL's lowercased suffix is one of the
// supported document extensions.
func IsDocumentURL(raw string) bool {
	lower := strings.ToLower(raw)
	for _, suffix := range documentSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return ref.String()
	}
	if base == nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
