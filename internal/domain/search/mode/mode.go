// Package mode classifies which query signals a search can use.
package mode

// Mode is the effective search strategy, derived from the signals that are
// actually available rather than threaded around as nullable parameters.
type Mode string

const (
	// Hybrid fuses lexical and semantic candidates.
	Hybrid Mode = "hybrid"
	// LexicalOnly runs full-text sources alone (no usable vector).
	LexicalOnly Mode = "lexical_only"
	// SemanticOnly runs the embedding source alone (no query text).
	SemanticOnly Mode = "semantic_only"
	// None means no signal at all; the result is a valid empty page.
	None Mode = "none"
)

// For derives the mode from the available signals.
func For(hasText, hasVector bool) Mode {
	switch {
	case hasText && hasVector:
		return Hybrid
	case hasText:
		return LexicalOnly
	case hasVector:
		return SemanticOnly
	default:
		return None
	}
}

// UsesLexical reports whether lexical sources participate.
func (m Mode) UsesLexical() bool { return m == Hybrid || m == LexicalOnly }

// UsesSemantic reports whether the semantic source participates.
func (m Mode) UsesSemantic() bool { return m == Hybrid || m == SemanticOnly }
