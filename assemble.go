package eqn2vec

import (
	"fmt"
	"os"

	"github.com/alnah/go-eqn2vec/internal/assets"
	"github.com/alnah/go-eqn2vec/internal/pipeline"
)

// filePermissions is used for every file the pipeline writes.
const filePermissions = 0o644 // rw-r--r--: owner read+write, others read

// AssembleDocument writes a standalone LaTeX document to path with one
// equation per page, each wrapped according to style. An existing file is
// overwritten. The style is validated before anything is written.
//
// Options honored: WithLogger, WithVerbose, WithAssetPath.
func AssembleDocument(path string, equations []string, style Style, opts ...Option) error {
	cfg := newConfig(opts)
	loader, err := newAssetLoader(cfg.assetPath)
	if err != nil {
		return err
	}
	return assemble(path, equations, style, loader, cfg)
}

// assemble renders and writes the LaTeX document.
func assemble(path string, equations []string, style Style, loader assets.AssetLoader, cfg *converterConfig) error {
	if err := style.Validate(); err != nil {
		return err
	}
	if len(equations) == 0 {
		return ErrNoEquations
	}

	tmpl, err := loader.LoadTemplate(assets.DefaultTemplateName, assets.KindTeX)
	if err != nil {
		return fmt.Errorf("loading document template: %w", err)
	}

	pages := make([]string, len(equations))
	for i, eq := range equations {
		if cfg.verbose {
			logf(cfg.logger, "Equation %d: %s", i+1, eq)
		}
		pages[i] = style.Wrap(eq)
	}

	doc, err := pipeline.RenderTeX(tmpl, pipeline.TeXDocument{Pages: pages})
	if err != nil {
		return fmt.Errorf("rendering document: %w", err)
	}

	if err := os.WriteFile(path, []byte(doc), filePermissions); err != nil { // #nosec G306 -- user-facing output
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// newAssetLoader returns the embedded loader, or a resolver over dir.
func newAssetLoader(dir string) (assets.AssetLoader, error) {
	if dir == "" {
		return assets.NewEmbeddedLoader(), nil
	}
	resolver, err := assets.NewAssetResolver(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	return resolver, nil
}
