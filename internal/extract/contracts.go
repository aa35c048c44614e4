// Package extract reads financial-statement documents: text extraction
// from the raw file, a heuristic keyword scan for target figures, and a
// generative fallback for figures the heuristics missed.
package extract

// TextExtractor turns a statement document into plain text, pages
// concatenated with newline separators.
type TextExtractor interface {
	ExtractText(content []byte) (string, error)
}
