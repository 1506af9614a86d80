package parser

import (
	"strings"

	"github.com/pseudomuto/definer/pkg/compare"
)

type (
	// FunctionDef represents DEFINE FUNCTION statements
	// Syntax: DEFINE FUNCTION [OVERWRITE | IF NOT EXISTS] fn::name($arg: type, ...)
	//
	//	[-> type] { body } [PERMISSIONS ...] [COMMENT "text"]
	FunctionDef struct {
		Common `yaml:",inline"`

		Args        []FunctionArg `json:"args,omitempty" yaml:"args,omitempty"`
		Returns     *string       `json:"returns,omitempty" yaml:"returns,omitempty"`
		Body        *string       `json:"body,omitempty" yaml:"body,omitempty"`
		Permissions *string       `json:"permissions,omitempty" yaml:"permissions,omitempty"`
	}

	// FunctionArg is a single `$name: type` parameter. Name has no `$`.
	FunctionArg struct {
		Name string `json:"name" yaml:"name"`
		Type string `json:"type,omitempty" yaml:"type,omitempty"`
	}
)

var functionClauses = []string{"PERMISSIONS", "COMMENT"}

func (f *FunctionDef) Kind() Kind { return KindFunction }

func (f *FunctionDef) Equal(other Definition) bool {
	o, ok := other.(*FunctionDef)
	return ok && f.equalCommon(&o.Common) &&
		compare.Slices(f.Args, o.Args, func(a, b FunctionArg) bool { return a == b }) &&
		compare.Pointers(f.Returns, o.Returns) &&
		compare.PointersWithEqual(f.Body, o.Body, func(a, b *string) bool {
			return normalizeWhitespace(*a) == normalizeWhitespace(*b)
		}) &&
		compare.Pointers(f.Permissions, o.Permissions)
}

func extractFunction(rest string) Definition {
	c := newCursor(rest)
	def := &FunctionDef{}
	def.Overwrite, def.IfNotExists = c.modifiers()
	def.Name = strings.TrimPrefix(c.name(), "fn::")

	if inner, ok := c.enclosed("("); ok {
		def.Args = functionArgs(inner)
	}

	if c.acceptPunct("-", ">") {
		def.Returns = c.until("{")
	}

	if body, ok := c.enclosed("{"); ok {
		body = strings.TrimSpace(body)
		def.Body = &body
	}

	clauses := c.clauses(functionClauses...)
	def.Permissions = clauses.raw("PERMISSIONS")
	def.Comment = clauses.value("COMMENT")

	return def
}

func functionArgs(text string) []FunctionArg {
	var args []FunctionArg
	for _, item := range splitList(text) {
		name, typ, _ := strings.Cut(item, ":")
		args = append(args, FunctionArg{
			Name: strings.TrimPrefix(strings.TrimSpace(name), "$"),
			Type: strings.TrimSpace(typ),
		})
	}
	return args
}
