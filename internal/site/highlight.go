package site

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const highlightStyle = "dracula"

// Highlighter renders source code as class-annotated HTML.
type Highlighter struct {
	style     *chroma.Style
	formatter *html.Formatter
}

func NewHighlighter() *Highlighter {
	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{
		style:     style,
		formatter: html.New(html.WithClasses(true), html.WithLineNumbers(true), html.TabWidth(4)),
	}
}

// Highlight tokenises source with the lexer for language. Unknown
// languages are rendered as plain text.
func (h *Highlighter) Highlight(language, source string) (template.HTML, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("site: tokenise %s: %w", language, err)
	}
	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, it); err != nil {
		return "", fmt.Errorf("site: format %s: %w", language, err)
	}
	return template.HTML(buf.String()), nil
}

// CSS returns the stylesheet for the highlighted markup.
func (h *Highlighter) CSS() (template.CSS, error) {
	var buf bytes.Buffer
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", err
	}
	return template.CSS(buf.String()), nil
}
