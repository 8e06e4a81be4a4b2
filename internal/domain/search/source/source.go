// Package source identifies candidate sources for hybrid search.
package source

// Class distinguishes how a source ranks its candidates.
type Class string

const (
	// Lexical sources rank by full-text relevance.
	Lexical Class = "lexical"
	// Semantic sources rank by embedding distance.
	Semantic Class = "semantic"
)

// Source identifies one candidate source. Lexical sources are configured by
// name (one per indexed language), so adding a language is a config change.
type Source struct {
	Name  string
	Class Class
}

// NewLexical creates a named lexical source.
func NewLexical(name string) Source {
	return Source{Name: name, Class: Lexical}
}

// SemanticSource is the single embedding-similarity source.
var SemanticSource = Source{Name: "semantic", Class: Semantic}
