package render

import (
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"

	"github.com/yaklabco/mdspan/pkg/annotate"
)

// Stylesheet is the default CSS for the classes produced by the annotator.
const Stylesheet = `.mdspan { white-space: pre-wrap; font-family: ui-monospace, monospace; line-height: 1.5; }
.cm-strong { font-weight: bold; }
.cm-em { font-style: italic; }
.cm-strikethrough { text-decoration: line-through; }
.cm-inline-code { font-family: ui-monospace, monospace; background: #f0f0f0; border-radius: 3px; }
.cm-h1 { font-size: 2em; font-weight: bold; }
.cm-h2 { font-size: 1.6em; font-weight: bold; }
.cm-h3 { font-size: 1.3em; font-weight: bold; }
.cm-h4, .cm-h5, .cm-h6 { font-weight: bold; }
.cm-blockquote { color: #666; border-left: 3px solid #ccc; }
.cm-code-block { background: #f6f8fa; display: inline-block; width: 100%; }
`

// HTML writes content as a <pre> block with one <span> per styled run.
// Text is escaped; code runs carry their language in data-lang.
func HTML(w io.Writer, content []byte, spans []annotate.Span) error {
	var buf strings.Builder
	writeHTML(&buf, content, spans)

	if _, err := io.WriteString(w, buf.String()); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}

func writeHTML(buf *strings.Builder, content []byte, spans []annotate.Span) {
	buf.WriteString(`<pre class="mdspan">`)
	for _, seg := range Segments(content, spans) {
		text := html.EscapeString(string(seg.Text(content)))
		if len(seg.Classes) == 0 {
			buf.WriteString(text)
			continue
		}

		buf.WriteString(`<span class="`)
		buf.WriteString(html.EscapeString(strings.Join(seg.Classes, " ")))
		buf.WriteString(`"`)
		if seg.Lang != "" {
			buf.WriteString(` data-lang="`)
			buf.WriteString(html.EscapeString(seg.Lang))
			buf.WriteString(`"`)
		}
		buf.WriteString(">")
		buf.WriteString(text)
		buf.WriteString("</span>")
	}
	buf.WriteString("</pre>\n")
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
{{.Stylesheet}}</style>
</head>
<body>
{{.Body}}</body>
</html>
`))

// Page writes a standalone HTML document embedding the default stylesheet.
func Page(w io.Writer, title string, content []byte, spans []annotate.Span) error {
	var body strings.Builder
	writeHTML(&body, content, spans)

	data := struct {
		Title      string
		Stylesheet template.CSS
		Body       template.HTML
	}{
		Title:      title,
		Stylesheet: template.CSS(Stylesheet),
		Body:       template.HTML(body.String()), //nolint:gosec // body is built from escaped text
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("write html page: %w", err)
	}
	return nil
}
