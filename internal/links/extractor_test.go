package links

import (
	"net/url"
	"testing"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %s: %v", raw, err)
	}
	return u
}

func TestExtractAnchors(t *testing.T) {
	t.Parallel()

	base := mustParse(t, "https://research.acme.test/grants/")
	html := []byte(`<html><body>
		<a href="/files/call.pdf">Call for proposals</a>
		<a href="guidelines.DOCX">Guidelines</a>
		<a href="https://other.test/rfp.doc">External RFP</a>
		<a href="/files/call.pdf">Duplicate</a>
		<a href="notes.txt">Ignored</a>
		<a href="/about">Also ignored</a>
	</body></html>`)

	got := Extract(html, base)
	want := []string{
		"https://other.test/rfp.doc",
		"https://research.acme.test/files/call.pdf",
		"https://research.acme.test/grants/guidelines.DOCX",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d links, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("link %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestExtractFallbackScan(t *testing.T) {
	t.Parallel()

	base := mustParse(t, "https://research.acme.test/")
	html := []byte(`<html><body><script>
		var call = "https://example.org/call.pdf";
	</script></body></html>`)

	got := Extract(html, base)
	if len(got) != 1 || got[0] != "https://example.org/call.pdf" {
		t.Fatalf("expected bare PDF URL from fallback scan, got %v", got)
	}
}

func TestExtractAnchorsSuppressFallback(t *testing.T) {
	t.Parallel()

	base := mustParse(t, "https://research.acme.test/")
	html := []byte(`<html><body>
		<a href="/a.pdf">A</a>
		<p>see also https://elsewhere.test/stray.pdf</p>
	</body></html>`)

	got := Extract(html, base)
	if len(got) != 1 || got[0] != "https://research.acme.test/a.pdf" {
		t.Fatalf("fallback must not run when anchors matched, got %v", got)
	}
}

func TestExtractEmptyPage(t *testing.T) {
	t.Parallel()

	if got := Extract([]byte("<html><body>nothing here</body></html>"), nil); len(got) != 0 {
		t.Fatalf("expected no links, got %v", got)
	}
}

func TestIsDocumentURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		url  string
		want bool
	}{
		{"https://x.test/a.pdf", true},
		{"https://x.test/a.PDF", true},
		{"https://x.test/a.doc", true},
		{"https://x.test/a.docx", true},
		{"https://x.test/a.txt", false},
		{"https://x.test/pdf", false},
	}
	for _, tc := range cases {
		if got := IsDocumentURL(tc.url); got != tc.want {
			t.Fatalf("IsDocumentURL(%s) = %v, want %v", tc.url, got, tc.want)
		}
	}
}
