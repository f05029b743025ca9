package pipeline

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

// HTMLDocument holds the data rendered into the HTML template.
// Pages are trusted MathML fragments produced by a MathConverter.
type HTMLDocument struct {
	CSS   string
	Pages []string
}

// PageSize is the measured box of one page section, in CSS pixels.
type PageSize struct {
	ID     string  `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PageID returns the element id of the zero-based page i.
func PageID(i int) string {
	return "eq" + strconv.Itoa(i+1)
}

// RenderHTML renders an HTML document from template content.
// Each page is emitted unescaped; the CSS is emitted as a trusted stylesheet.
func RenderHTML(tmplContent string, doc HTMLDocument) (string, error) {
	tmpl, err := template.New("document.html").
		Funcs(template.FuncMap{"pageID": PageID}).
		Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	pages := make([]template.HTML, len(doc.Pages))
	for i, p := range doc.Pages {
		pages[i] = template.HTML(p) // #nosec G203 -- MathML produced by treeblood
	}

	data := struct {
		CSS   template.CSS
		Pages []template.HTML
	}{
		CSS:   template.CSS(sanitizeCSS(doc.CSS)), // #nosec G203 -- embedded or user-owned stylesheet
		Pages: pages,
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateExecute, err)
	}
	return sb.String(), nil
}

// PageSizeCSS builds named @page rules that size every page to its section.
// Sizes are rounded up to whole pixels so content is never clipped.
func PageSizeCSS(sizes []PageSize) string {
	var sb strings.Builder
	for _, s := range sizes {
		w := ceilPx(s.Width)
		h := ceilPx(s.Height)
		fmt.Fprintf(&sb, "#%s{page:%s}@page %s{size:%dpx %dpx;margin:0}", s.ID, s.ID, s.ID, w, h)
	}
	return sb.String()
}

// ceilPx rounds a measurement up to whole pixels, minimum 1.
func ceilPx(v float64) int {
	n := int(v)
	if float64(n) < v {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
func InjectCSS(htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
