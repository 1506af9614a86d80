package parser_test

import (
	"testing"

	. "github.com/pseudomuto/definer/pkg/parser"
	"github.com/stretchr/testify/require"
)

func TestStripComments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no comments",
			input: "DEFINE TABLE user;",
			want:  "DEFINE TABLE user;",
		},
		{
			name:  "line comment",
			input: "DEFINE TABLE a; -- the a table\nDEFINE TABLE b;",
			want:  "DEFINE TABLE a; \nDEFINE TABLE b;",
		},
		{
			name:  "block comment becomes a space",
			input: "DEFINE/* kind */TABLE a",
			want:  "DEFINE TABLE a",
		},
		{
			name:  "multiline block comment",
			input: "/*\n * header\n */\nDEFINE TABLE a;",
			want:  " \nDEFINE TABLE a;",
		},
		{
			name:  "line comment marker inside block comment",
			input: "DEFINE TABLE a /* -- not a line */;",
			want:  "DEFINE TABLE a  ;",
		},
		{
			// Known limitation of the lenient stripper.
			name:  "marker inside literal is stripped",
			input: `DEFINE PARAM $u VALUE "a--b";`,
			want:  `DEFINE PARAM $u VALUE "a`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, StripComments(tt.input))
		})
	}
}

func TestStripCommentsSafe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "line comment",
			input: "DEFINE TABLE a -- trailing\n;",
			want:  "DEFINE TABLE a \n;",
		},
		{
			name:  "block comment",
			input: "DEFINE /* x */ TABLE a",
			want:  "DEFINE   TABLE a",
		},
		{
			name:  "markers inside literals are kept",
			input: `DEFINE PARAM $u VALUE "a--b /* c */"; -- done`,
			want:  `DEFINE PARAM $u VALUE "a--b /* c */"; `,
		},
		{
			name:  "single quoted literal",
			input: `DEFINE PARAM $u VALUE 'http://x--y'`,
			want:  `DEFINE PARAM $u VALUE 'http://x--y'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, StripCommentsSafe(tt.input))
		})
	}
}

func TestNoComments(t *testing.T) {
	t.Parallel()

	input := "DEFINE TABLE a; -- kept"
	require.Equal(t, input, NoComments(input))
}
