// Package filter evaluates expression-based filters against content items.
//
// Filters use expr-lang syntax and see the fields of a single content item
// plus a small set of string helpers:
//
//	contains(Title, "live")
//	Category == "news" && HasFile
//	startsWith(lower(Title), "episode")
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/streamworks/streamctl/streaming"
)

// Filter is a compiled content filter expression
type Filter struct {
	program *vm.Program
	expr    string
}

// helpers are the static functions available inside filter expressions
func helpers() map[string]interface{} {
	return map[string]interface{}{
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

// Compile compiles a filter expression
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty filter expression"}
	}

	program, err := expr.Compile(expression,
		expr.Env(helpers()),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Reason: err.Error(), Err: err}
	}

	return &Filter{program: program, expr: expression}, nil
}

// String returns the original expression
func (f *Filter) String() string {
	return f.expr
}

// Match evaluates the filter against a content item
func (f *Filter) Match(item streaming.Content) (bool, error) {
	env := helpers()

	env["Title"] = item.Title
	env["Description"] = item.Description
	env["HasFile"] = item.HasFile()

	env["ID"] = 0
	if item.ID != nil {
		env["ID"] = *item.ID
	}
	env["Category"] = ""
	if item.Category != nil {
		env["Category"] = *item.Category
	}
	env["FilePath"] = ""
	if item.FilePath != nil {
		env["FilePath"] = *item.FilePath
	}

	output, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{Expression: f.expr, ItemTitle: item.Title, Err: err}
	}

	result, ok := output.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expr,
			ItemTitle:  item.Title,
			Reason:     fmt.Sprintf("expression returned %T, expected bool", output),
		}
	}

	return result, nil
}

// Apply returns the items matching the filter
func (f *Filter) Apply(items []streaming.Content) ([]streaming.Content, error) {
	var matched []streaming.Content
	for _, item := range items {
		ok, err := f.Match(item)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, item)
		}
	}
	return matched, nil
}
