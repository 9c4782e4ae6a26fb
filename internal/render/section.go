package render

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/sourcepage/internal/domain"
)

// Section renders one category block. Callers skip categories with no links.
//
// Titles and URLs are written verbatim, without HTML escaping.
func Section(cat domain.Category, links []domain.Link) string {
	var b strings.Builder

	fmt.Fprintf(&b, "        <!-- Category: %s -->\n", cat.Title)
	fmt.Fprintf(&b, "        <section class=\"%s\">\n", cat.Class)
	b.WriteString("            <div class=\"category-header\">\n")
	b.WriteString("                <span class=\"category-marker\"></span>\n")
	fmt.Fprintf(&b, "                <h2>%s</h2>\n", cat.Title)
	b.WriteString("            </div>\n")
	b.WriteString("            <ul>\n")

	for _, link := range links {
		writeItem(&b, link)
	}

	b.WriteString("            </ul>\n")
	b.WriteString("        </section>\n")
	b.WriteString("\n")

	return b.String()
}

func writeItem(b *strings.Builder, link domain.Link) {
	fmt.Fprintf(b, "                <li><a href=\"%s\" target=\"_blank\">\n", link.URL)
	fmt.Fprintf(b, "                    <span class=\"source-name\">%s</span>\n", link.Title)
	fmt.Fprintf(b, "                    <span class=\"source-url\">%s</span>\n", link.DisplayURL())
	b.WriteString("                </a></li>\n")
}
