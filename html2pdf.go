package eqn2vec

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-eqn2vec/internal/pipeline"
	"github.com/alnah/go-eqn2vec/internal/process"
)

// Compile-time interface check.
var _ pageRenderer = (*rodRenderer)(nil)

// measurePagesJS returns the bounding box of every page section as JSON.
const measurePagesJS = `() => JSON.stringify(Array.from(document.querySelectorAll("section.page")).map(s => {
	const r = s.getBoundingClientRect();
	return {id: s.id, width: r.width, height: r.height};
}))`

// rodRenderer implements pageRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

// newRodRenderer creates a rodRenderer with the given per-step timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		r.kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources, killing the browser's process group.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.kill()
	return err
}

// kill terminates the launched browser and its helpers.
func (r *rodRenderer) kill() {
	if r.launcher == nil {
		return
	}
	if pid := r.launcher.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	r.launcher.Kill()
	r.launcher = nil
}

// RenderPages opens htmlPath, sizes each page section to its content with
// named CSS pages, and prints the result to pdfPath.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) RenderPages(ctx context.Context, htmlPath, pdfPath string, pages int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := r.ensureBrowser(); err != nil {
		return err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: fileURL(htmlPath)})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return context.DeadlineExceeded
		}
	}
	p := page.Context(ctx).Timeout(timeout)

	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	sizes, err := measurePages(p)
	if err != nil {
		return err
	}
	if len(sizes) != pages {
		return fmt.Errorf("%w: rendered %d pages for %d equations", ErrPageCountMismatch, len(sizes), pages)
	}

	if err := injectPageSizes(htmlPath, sizes); err != nil {
		return err
	}
	if err := p.Navigate(fileURL(htmlPath)); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	reader, err := p.PDF(&proto.PagePrintToPDF{
		PreferCSSPageSize: true,
		PrintBackground:   true,
		MarginTop:         floatPtr(0),
		MarginBottom:      floatPtr(0),
		MarginLeft:        floatPtr(0),
		MarginRight:       floatPtr(0),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	if err := os.WriteFile(pdfPath, pdfBuf, filePermissions); err != nil { // #nosec G306 -- user-facing intermediate
		return fmt.Errorf("writing %s: %w", pdfPath, err)
	}
	return nil
}

// measurePages reads the size of every page section from the loaded page.
func measurePages(p *rod.Page) ([]pipeline.PageSize, error) {
	obj, err := p.Eval(measurePagesJS)
	if err != nil {
		return nil, fmt.Errorf("%w: measuring pages: %v", ErrPageLoad, err)
	}
	return decodePageSizes(obj.Value.Str())
}

// decodePageSizes parses the JSON produced by measurePagesJS.
func decodePageSizes(raw string) ([]pipeline.PageSize, error) {
	var sizes []pipeline.PageSize
	if err := json.Unmarshal([]byte(raw), &sizes); err != nil {
		return nil, fmt.Errorf("%w: decoding page sizes: %v", ErrPageLoad, err)
	}
	return sizes, nil
}

// injectPageSizes rewrites htmlPath with @page rules matching sizes.
func injectPageSizes(htmlPath string, sizes []pipeline.PageSize) error {
	content, err := os.ReadFile(htmlPath) // #nosec G304 -- fixed name inside the work dir
	if err != nil {
		return fmt.Errorf("reading %s: %w", htmlPath, err)
	}
	sized := pipeline.InjectCSS(string(content), pipeline.PageSizeCSS(sizes))
	if err := os.WriteFile(htmlPath, []byte(sized), filePermissions); err != nil { // #nosec G306 -- user-facing intermediate
		return fmt.Errorf("writing %s: %w", htmlPath, err)
	}
	return nil
}

// fileURL converts an absolute path to a file:// URL on every platform.
func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
