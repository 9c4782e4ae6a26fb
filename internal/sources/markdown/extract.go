package markdown

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MrSnakeDoc/sourcepage/internal/domain"
)

// ExtractLinks returns one Link per line holding a "- [Title](URL)" pattern,
// in the order the lines appear. Lines without the pattern are skipped.
func ExtractLinks(text string) []domain.Link {
	links := make([]domain.Link, 0)
	for _, line := range splitLines(text) {
		if link, ok := MatchLine(line); ok {
			links = append(links, link)
		}
	}
	return links
}

// MatchLine reports the leftmost link on line, if any.
//
// A match is a '-', optional whitespace, '[', then the title up to the first
// "](", then the URL up to the next ')'. Every '-' on the line is tried in turn.
func MatchLine(line string) (domain.Link, bool) {
	for i := 0; i < len(line); i++ {
		if line[i] != '-' {
			continue
		}
		if link, ok := matchAfterDash(line, i+1); ok {
			return link, true
		}
	}
	return domain.Link{}, false
}

func matchAfterDash(line string, pos int) (domain.Link, bool) {
	for pos < len(line) {
		r, size := utf8.DecodeRuneInString(line[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	if pos >= len(line) || line[pos] != '[' {
		return domain.Link{}, false
	}

	titleStart := pos + 1
	sep := strings.Index(line[titleStart:], "](")
	if sep < 0 {
		return domain.Link{}, false
	}
	titleEnd := titleStart + sep

	urlStart := titleEnd + len("](")
	urlLen := strings.IndexByte(line[urlStart:], ')')
	if urlLen < 0 {
		return domain.Link{}, false
	}

	return domain.Link{
		Title: line[titleStart:titleEnd],
		URL:   line[urlStart : urlStart+urlLen],
	}, true
}

// splitLines splits on "\n", "\r\n" and lone "\r".
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
