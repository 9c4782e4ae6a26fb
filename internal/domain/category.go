package domain

// Category is a named group of links shown as one section of the page.
//
// Categories are compiled in, never derived from the source files.
// Their position on the page is their index in the catalog.
type Category struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// Key identifies the category and names its source file.
	// Example: "software" -> sources/software.md
	Key string

	// ─────────────────────────────
	// Presentation
	// ─────────────────────────────

	// Title is the heading shown above the links.
	// Example: "Software & Tech"
	Title string

	// Class is the CSS class set on the category's <section>.
	// Example: "cat-software"
	Class string
}

// SourceFile returns the file name holding the category's links.
func (c Category) SourceFile() string {
	return c.Key + ".md"
}
