package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// Sentinel errors for document rendering.
var (
	ErrTemplateParse   = errors.New("template parsing failed")
	ErrTemplateExecute = errors.New("template rendering failed")
)

// DefaultBorder is the padding standalone adds around each page.
const DefaultBorder = "1pt"

// TeXDocument holds the data rendered into the LaTeX template.
// Pages are complete math-mode bodies, already wrapped in their delimiters.
type TeXDocument struct {
	Border string
	Pages  []string
}

// RenderTeX renders a LaTeX document from template content.
// An empty Border falls back to DefaultBorder.
func RenderTeX(tmplContent string, doc TeXDocument) (string, error) {
	tmpl, err := template.New("document.tex").Option("missingkey=error").Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	if doc.Border == "" {
		doc.Border = DefaultBorder
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateExecute, err)
	}
	return sb.String(), nil
}
