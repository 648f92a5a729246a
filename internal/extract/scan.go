package extract

import (
	"regexp"
	"strings"
)

// snippetTokens is how many whitespace-delimited tokens the preview keeps.
const snippetTokens = 60

var (
	issuedPattern   = regexp.MustCompile(`(?i)(Issued|Posted):\s*([\d\w ,-]+)`)
	deadlinePattern = regexp.MustCompile(`(?i)(Deadline|Due):\s*([\d\w ,-]+)`)
)

// Scan locates "Issued:/Posted:" and "Deadline:/Due:" labels in the text
// window and builds the snippet preview. Dates stay freeform text; nothing
// here validates them as calendar dates.
func Scan(text string) Metadata {
	meta := Metadata{Posted: Sentinel, Deadline: Sentinel}
	if m := issuedPattern.FindStringSubmatch(text); m != nil {
		meta.Posted = strings.TrimSpace(m[2])
	}
	if m := deadlinePattern.FindStringSubmatch(text); m != nil {
		meta.Deadline = strings.TrimSpace(m[2])
	}

	tokens := strings.Fields(text)
	if len(tokens) > snippetTokens {
		tokens = tokens[:snippetTokens]
	}
	meta.Snippet = strings.Join(tokens, " ")
	return meta
}
