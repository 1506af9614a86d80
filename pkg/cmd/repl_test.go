package cmd

import (
	"bytes"
	"io"
	"testing"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/pseudomuto/definer/pkg/config"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter replays a fixed list of inputs, then reports io.EOF.
type scriptedPrompter struct {
	inputs  []any
	prompts []string
	history []string
}

func (p *scriptedPrompter) Prompt(prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.inputs) == 0 {
		return "", io.EOF
	}

	next := p.inputs[0]
	p.inputs = p.inputs[1:]
	if err, ok := next.(error); ok {
		return "", err
	}
	return next.(string), nil
}

func (p *scriptedPrompter) AppendHistory(item string) {
	p.history = append(p.history, item)
}

func runRepl(t *testing.T, inputs ...any) (*scriptedPrompter, string) {
	t.Helper()

	var out bytes.Buffer
	p := &scriptedPrompter{inputs: inputs}
	require.NoError(t, newApp(config.Default()).repl(p, &out))
	return p, out.String()
}

func TestRepl(t *testing.T) {
	p, out := runRepl(t,
		"DEFINE TABLE user",
		"  SCHEMAFULL;",
		"",
		":yaml",
		"DEFINE FIELD name ON user TYPE string;",
		":json",
		"DEFINE PARAM $limit VALUE 10;",
		":format",
		"DEFINE WIDGET x;",
		"exit",
		"DEFINE TABLE never;",
	)

	require.Contains(t, out, "DEFINE TABLE user SCHEMAFULL;\n")
	require.Contains(t, out, "output: yaml\n# field name\nname: name\ntable: user\ntype: string\n")
	require.Contains(t, out, "output: json\n{\n  \"name\": \"limit\",\n  \"value\": \"10\"\n}\n")
	require.Contains(t, out, "error: unknown statement DEFINE WIDGET: DEFINE WIDGET x\n")
	require.NotContains(t, out, "never")

	require.Equal(t, []string{
		"DEFINE TABLE user\n  SCHEMAFULL;",
		"DEFINE FIELD name ON user TYPE string;",
		"DEFINE PARAM $limit VALUE 10;",
		"DEFINE WIDGET x;",
	}, p.history)
	require.Equal(t, replContinuation, p.prompts[1])
}

func TestRepl_MultilineBody(t *testing.T) {
	p, out := runRepl(t,
		"DEFINE FUNCTION fn::greet($name: string) {",
		"  LET $greeting = 'Hello ';",
		"  RETURN $greeting + $name;",
		"};",
	)

	require.Contains(t, out, "DEFINE FUNCTION fn::greet($name: string) {\n    LET $greeting = 'Hello ';\n    RETURN $greeting + $name;\n};\n")
	require.Len(t, p.history, 1)
	require.Equal(t, []string{replPrompt, replContinuation, replContinuation, replContinuation, replPrompt}, p.prompts)
}

func TestRepl_AbortDiscardsInput(t *testing.T) {
	_, out := runRepl(t,
		"DEFINE TABLE draft",
		liner.ErrPromptAborted,
		"DEFINE TABLE kept;",
	)

	require.Contains(t, out, "DEFINE TABLE kept;\n")
	require.NotContains(t, out, "draft")
}

func TestRepl_Commands(t *testing.T) {
	_, out := runRepl(t, ":help", ":kinds", ":bogus", "quit")

	require.Contains(t, out, ":format   print definitions as formatted statements")
	require.Contains(t, out, "ACCESS ANALYZER BUCKET EVENT FIELD FUNCTION INDEX MODULE PARAM SEQUENCE TABLE USER\n")
	require.Contains(t, out, "unknown command :bogus (try :help)\n")
}

func TestRepl_PromptError(t *testing.T) {
	p := &scriptedPrompter{inputs: []any{errors.New("terminal gone")}}

	err := newApp(config.Default()).repl(p, io.Discard)
	require.EqualError(t, err, "failed to read input: terminal gone")
}

func TestNeedsMoreInput(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"DEFINE TABLE user;", false},
		{"DEFINE TABLE user", true},
		{"DEFINE TABLE user;  ", false},
		{"DEFINE FUNCTION fn::a() { RETURN 1;", true},
		{"DEFINE FUNCTION fn::a() { RETURN 1; };", false},
		{"DEFINE PARAM $x VALUE [1, 2", true},
		{"DEFINE TABLE t COMMENT 'unclosed;", true},
		{"DEFINE TABLE t COMMENT 'a } b';", false},
		{`DEFINE TABLE t COMMENT "it\"s";`, false},
		{"DEFINE TABLE ⟨it's⟩;", false},
		{"DEFINE TABLE ⟨it's⟩ COMMENT 'open", true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			require.Equal(t, tt.expected, needsMoreInput(tt.text))
		})
	}
}

func TestComplete(t *testing.T) {
	a := newApp(config.Default())

	require.Equal(t, []string{"DEFINE TABLE"}, a.complete("DEFINE TA"))
	require.Equal(t, []string{"define FUNCTION"}, a.complete("define fu"))
	require.Equal(t, []string{"DEFINE EVENT", "DEFINE EXISTS"}, a.complete("DEFINE E"))
	require.Equal(t, []string{"DEFAULT", "DEFINE"}, a.complete("def"))
	require.Nil(t, a.complete("DEFINE "))
	require.Nil(t, a.complete(""))
}
