package extract

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestScan(t *testing.T) {
	t.Parallel()

	t.Run("BothLabels", func(t *testing.T) {
		meta := Scan("Call for Proposals\nIssued: Jan 1, 2025\nDeadline: Mar 1, 2025\nDetails follow.")
		assert.Equal(t, "Jan 1, 2025", meta.Posted)
		assert.Equal(t, "Mar 1, 2025", meta.Deadline)
		assert.Contains(t, meta.Snippet, "Call for Proposals")
	})

	t.Run("AlternateLabelsCaseInsensitive", func(t *testing.T) {
		meta := Scan("posted: 2025-01-15 something DUE: February 2, 2025")
		assert.Equal(t, "2025-01-15 something DUE", meta.Posted)
		assert.Equal(t, "February 2, 2025", meta.Deadline)
	})

	t.Run("NoLabels", func(t *testing.T) {
		meta := Scan("An open call with no dates mentioned at all.")
		assert.Equal(t, Sentinel, meta.Posted)
		assert.Equal(t, Sentinel, meta.Deadline)
	})

	t.Run("SnippetCollapsesWhitespace", func(t *testing.T) {
		meta := Scan("alpha\n\n  beta\tgamma\ndelta")
		assert.Equal(t, "alpha beta gamma delta", meta.Snippet)
	})

	t.Run("SnippetCapped", func(t *testing.T) {
		meta := Scan(strings.Repeat("word ", 200))
		assert.Len(t, strings.Fields(meta.Snippet), 60)
	})
}

func TestClipWindow(t *testing.T) {
	t.Parallel()

	t.Run("ShortTextUntouched", func(t *testing.T) {
		assert.Equal(t, "short text", clipWindow("short text"))
	})

	t.Run("LongTextCapped", func(t *testing.T) {
		got := clipWindow(strings.Repeat("a", 2000))
		assert.Len(t, got, 1500)
	})

	t.Run("NeverSplitsARune", func(t *testing.T) {
		// The two-byte "é" straddles the window boundary.
		text := strings.Repeat("a", 1499) + "é" + strings.Repeat("b", 50)
		got := clipWindow(text)
		assert.True(t, utf8.ValidString(got))
		assert.Len(t, got, 1499)
	})
}

func TestForFileCorruptPDF(t *testing.T) {
	t.Parallel()

	meta := ForFile("call.pdf", []byte("%PDF-1.4 truncated garbage"))
	assert.Equal(t, Sentinel, meta.Posted)
	assert.Equal(t, Sentinel, meta.Deadline)
	assert.NotEmpty(t, meta.Snippet)
	assert.Contains(t, meta.Snippet, "Error parsing PDF")
}

func TestForFileCorruptDocx(t *testing.T) {
	t.Parallel()

	meta := ForFile("guidelines.docx", []byte("not a zip archive"))
	assert.Equal(t, Sentinel, meta.Posted)
	assert.Equal(t, Sentinel, meta.Deadline)
	assert.Contains(t, meta.Snippet, "Error parsing DOCX")
}

func TestForFileLegacyDoc(t *testing.T) {
	t.Parallel()

	meta := ForFile("old.doc", []byte{0xd0, 0xcf, 0x11, 0xe0})
	assert.Equal(t, Sentinel, meta.Posted)
	assert.Equal(t, Sentinel, meta.Deadline)
	assert.Contains(t, meta.Snippet, "not supported")
}

func TestForFileUnknownExtension(t *testing.T) {
	t.Parallel()

	meta := ForFile("notes.txt", []byte("plain text"))
	assert.Equal(t, Sentinel, meta.Posted)
	assert.Contains(t, meta.Snippet, "Unsupported document format")
}

func TestKindForURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		url  string
		kind Kind
		ok   bool
	}{
		{"https://x.test/call.pdf", KindPDF, true},
		{"https://x.test/call.PDF", KindPDF, true},
		{"https://x.test/old.doc", KindDoc, true},
		{"https://x.test/new.docx", KindDocx, true},
		{"https://x.test/page.html", "", false},
		{"https://x.test/nosuffix", "", false},
	}
	for _, tc := range cases {
		kind, ok := KindForURL(tc.url)
		assert.Equal(t, tc.ok, ok, tc.url)
		assert.Equal(t, tc.kind, kind, tc.url)
	}
}
