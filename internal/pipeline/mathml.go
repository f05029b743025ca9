package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	treeblood "github.com/wyatt915/goldmark-treeblood"
	"github.com/yuin/goldmark"
)

// ErrMathConversion indicates LaTeX to MathML conversion failed.
var ErrMathConversion = errors.New("MathML conversion failed")

// MathConverter abstracts LaTeX to MathML conversion.
type MathConverter interface {
	ToMathML(ctx context.Context, tex string, display bool) (string, error)
}

// GoldmarkMathML converts LaTeX math to MathML using goldmark and treeblood (pure Go).
type GoldmarkMathML struct {
	md goldmark.Markdown
}

// NewGoldmarkMathML creates a GoldmarkMathML converter.
func NewGoldmarkMathML() *GoldmarkMathML {
	md := goldmark.New(
		goldmark.WithExtensions(
			treeblood.MathML(),
		),
	)
	return &GoldmarkMathML{md: md}
}

// ToMathML converts a single equation body to a MathML fragment.
// Display equations use $$ delimiters, inline ones use $.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkMathML) ToMathML(ctx context.Context, tex string, display bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	source := mathSource(tex, display)

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(source), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMathConversion, err)}
			return
		}
		out := strings.TrimSpace(buf.String())
		if !strings.Contains(out, "<math") {
			done <- result{err: fmt.Errorf("%w: no math produced for %q", ErrMathConversion, tex)}
			return
		}
		done <- result{html: out}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// mathSource wraps tex in Markdown math delimiters.
// Line breaks are flattened so a blank line cannot end the math span.
func mathSource(tex string, display bool) string {
	body := strings.Join(strings.Fields(tex), " ")
	if display {
		return "$$" + body + "$$"
	}
	return "$" + body + "$"
}

// Compile-time interface check.
var _ MathConverter = (*GoldmarkMathML)(nil)
