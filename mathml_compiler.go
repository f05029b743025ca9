package eqn2vec

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-eqn2vec/internal/assets"
	"github.com/alnah/go-eqn2vec/internal/pipeline"
)

// pageRenderer prints an HTML page document to a PDF with one page per
// section, sized to its content.
type pageRenderer interface {
	RenderPages(ctx context.Context, htmlPath, pdfPath string, pages int) error
	Close() error
}

// mathmlCompiler converts each equation to MathML and prints the page
// document with headless Chrome. It needs no TeX installation.
type mathmlCompiler struct {
	math     pipeline.MathConverter
	assets   assets.AssetLoader
	renderer pageRenderer
	logger   io.Writer
}

// newMathMLCompiler creates a mathmlCompiler with the production renderer.
// The browser starts lazily on the first Compile.
func newMathMLCompiler(loader assets.AssetLoader, logger io.Writer, timeout time.Duration) *mathmlCompiler {
	return &mathmlCompiler{
		math:     pipeline.NewGoldmarkMathML(),
		assets:   loader,
		renderer: newRodRenderer(timeout),
		logger:   logger,
	}
}

// Compile builds equations.html from the batch and prints it to equations.pdf.
func (c *mathmlCompiler) Compile(ctx context.Context, doc Document) (string, error) {
	ws := doc.Workspace
	htmlPath := ws.HTMLPath()
	pdfPath := ws.PDFPath()

	logf(c.logger, "Compiling %s to %s", filepath.Base(htmlPath), filepath.Base(pdfPath))

	display := doc.Style == StyleDisplay
	pages := make([]string, len(doc.Equations))
	for i, eq := range doc.Equations {
		mathml, err := c.math.ToMathML(ctx, eq, display)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			return "", fmt.Errorf("%w: equation %d: %v", ErrCompile, i+1, err)
		}
		pages[i] = mathml
	}

	tmpl, err := c.assets.LoadTemplate(assets.DefaultTemplateName, assets.KindHTML)
	if err != nil {
		return "", fmt.Errorf("loading page template: %w", err)
	}
	css, err := c.assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return "", fmt.Errorf("loading page style: %w", err)
	}

	htmlContent, err := pipeline.RenderHTML(tmpl, pipeline.HTMLDocument{CSS: css, Pages: pages})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompile, err)
	}
	if err := os.WriteFile(htmlPath, []byte(htmlContent), filePermissions); err != nil { // #nosec G306 -- user-facing intermediate
		return "", fmt.Errorf("writing %s: %w", htmlPath, err)
	}

	absHTML, err := filepath.Abs(htmlPath)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", htmlPath, err)
	}
	if err := c.renderer.RenderPages(ctx, absHTML, pdfPath, len(pages)); err != nil {
		return "", err
	}
	return pdfPath, nil
}

// Close releases the browser.
func (c *mathmlCompiler) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
