package render

import "strings"

// Stylesheet is the external stylesheet the page links to. It is not produced here.
const Stylesheet = "styles.css"

const header = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Inspiration Sources</title>
    <link rel="stylesheet" href="` + Stylesheet + `">
</head>
<body>
    <header>
        <h1>Sources</h1>
        <p class="intro">A curated list of makers, machinists, and aesthetic inspiration.</p>
    </header>

    <main>
`

const footer = `    </main>

    <footer>
        <p>Collated with &hearts;</p>
    </footer>
</body>
</html>
`

// Header returns the static markup preceding the sections.
func Header() string { return header }

// Footer returns the static markup following the sections.
func Footer() string { return footer }

// Page wraps the concatenated sections with the static header and footer.
func Page(body string) string {
	var b strings.Builder
	b.Grow(len(header) + len(body) + len(footer))
	b.WriteString(header)
	b.WriteString(body)
	b.WriteString(footer)
	return b.String()
}
