package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCovers(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		rendered string
		expected bool
	}{
		{"identical", "DEFINE TABLE user", "DEFINE TABLE user;", true},
		{"case and aliases", "define index i on user columns a fulltext", "DEFINE INDEX i ON TABLE user FIELDS a SEARCH;", true},
		{"requoted string", `COMMENT 'it\'s'`, `COMMENT "it's";`, true},
		{"quoted identifier", "DEFINE TABLE ⟨user⟩", "DEFINE TABLE user;", true},
		{"digit separators", "BATCH 1_000", "BATCH 1000;", true},
		{"dropped text", "DEFINE SEQUENCE s BATCH lots", "DEFINE SEQUENCE s;", false},
		{"string became literal", `DEFAULT "true"`, "DEFAULT true;", false},
		{"repeated token dropped", "AS SELECT a AS b", "AS SELECT a b;", false},
		{"escape changed", `VALUE "a\nb"`, `VALUE "a\\nb";`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, covers(tt.source, tt.rendered))
		})
	}
}
