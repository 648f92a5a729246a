// Package extract pulls issue dates, deadlines, and text snippets out of
// harvested documents. Extraction never fails loudly: a document the parsers
// cannot read still yields a record, with sentinel fields and an error
// snippet, so one bad file never aborts a harvest.
package extract

import (
	"fmt"
	"path"
	"strings"
	"unicode/utf8"
)

// Sentinel is the placeholder for fields that could not be determined.
const Sentinel = "n/a"

// textWindow bounds how much extracted text is scanned for labels.
const textWindow = 1500

// Metadata is what the harvester learns about one document.
type Metadata struct {
	Posted   string
	Deadline string
	Snippet  string
}

// Kind is a supported document format, keyed by file extension.
type Kind string

// Supported document kinds.
const (
	KindPDF  Kind = "pdf"
	KindDoc  Kind = "doc"
	KindDocx Kind = "docx"
)

// Func extracts metadata from raw document bytes. The name is only used to
// pick the format. Implementations must not panic and must not fail: parse
// problems degrade to sentinel metadata.
type Func func(name string, data []byte) Metadata

// KindForURL maps a URL or filename to its document kind by extension.
func KindForURL(raw string) (Kind, bool) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(raw), "."))
	switch Kind(ext) {
	case KindPDF, KindDoc, KindDocx:
		return Kind(ext), true
	}
	return "", false
}

// textExtractors is the closed dispatch table from kind to text extraction.
// Legacy .doc has no entry: the binary Word format is not worth parsing, the
// file is stored anyway and the record carries a fixed snippet.
var textExtractors = map[Kind]func([]byte) (string, error){
	KindPDF:  pdfText,
	KindDocx: docxText,
}

// ForFile is the default Func. It dispatches on the file extension, scans the
// first textWindow characters of extracted text, and folds every parse
// failure into sentinel metadata.
func ForFile(name string, data []byte) Metadata {
	kind, ok := KindForURL(name)
	if !ok {
		return Metadata{
			Posted:   Sentinel,
			Deadline: Sentinel,
			Snippet:  fmt.Sprintf("Unsupported document format: %s", path.Ext(name)),
		}
	}
	if kind == KindDoc {
		return Metadata{
			Posted:   Sentinel,
			Deadline: Sentinel,
			Snippet:  "Legacy .doc format: text extraction not supported",
		}
	}

	text, err := textExtractors[kind](data)
	if err != nil {
		return Metadata{
			Posted:   Sentinel,
			Deadline: Sentinel,
			Snippet:  fmt.Sprintf("Error parsing %s: %v", strings.ToUpper(string(kind)), err),
		}
	}
	return Scan(clipWindow(text))
}

// clipWindow bounds the text scanned for labels, cutting on a rune boundary
// so a multi-byte character is never split into a mangled token.
func clipWindow(text string) string {
	if len(text) <= textWindow {
		return text
	}
	cut := textWindow
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
