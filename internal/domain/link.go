package domain

import "strings"

// Link is a (title, url) pair taken from a single source line.
// Both fields are kept exactly as written, including inner whitespace.
type Link struct {
	Title string
	URL   string
}

// DisplayURL returns the cosmetic form of the link's URL.
func (l Link) DisplayURL() string {
	return DisplayURL(l.URL)
}

// DisplayURL strips "https://", "http://" and "www." wherever they occur
// (in that order), then drops a single trailing slash.
// Example: "https://www.example.com/" -> "example.com"
func DisplayURL(raw string) string {
	s := strings.ReplaceAll(raw, "https://", "")
	s = strings.ReplaceAll(s, "http://", "")
	s = strings.ReplaceAll(s, "www.", "")
	return strings.TrimSuffix(s, "/")
}
