package mode

import "testing"

func TestFor(t *testing.T) {
	tests := []struct {
		hasText, hasVector bool
		want               Mode
	}{
		{true, true, Hybrid},
		{true, false, LexicalOnly},
		{false, true, SemanticOnly},
		{false, false, None},
	}

	for _, tc := range tests {
		if got := For(tc.hasText, tc.hasVector); got != tc.want {
			t.Errorf("For(%v, %v) = %s, want %s", tc.hasText, tc.hasVector, got, tc.want)
		}
	}
}

func TestSignalUse(t *testing.T) {
	if !Hybrid.UsesLexical() || !Hybrid.UsesSemantic() {
		t.Error("hybrid must use both signal classes")
	}
	if !LexicalOnly.UsesLexical() || LexicalOnly.UsesSemantic() {
		t.Error("lexical_only must use lexical only")
	}
	if SemanticOnly.UsesLexical() || !SemanticOnly.UsesSemantic() {
		t.Error("semantic_only must use semantic only")
	}
	if None.UsesLexical() || None.UsesSemantic() {
		t.Error("none must use nothing")
	}
}
