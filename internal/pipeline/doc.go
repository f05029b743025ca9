// Package pipeline builds the intermediate documents compiled by the
// rendering engines.
//
// This package handles the text stages that precede compilation:
//   - LaTeX document assembly from the multi-page standalone template
//   - LaTeX to MathML conversion via Goldmark and treeblood
//   - HTML document assembly with one page section per equation
//   - Per-page size CSS generation and injection
//
// Running pdflatex, driving headless Chrome and splitting the result are
// handled by the root eqn2vec package. This package never touches external
// processes, which keeps it testable with plain strings.
package pipeline
