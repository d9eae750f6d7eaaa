// Package template wraps the template engine used for dotfile
// rendering. It exposes parsing, rendering against a binding map, and
// static extraction of the variable names a template references (for
// discovery mode, which needs no bindings at all).
package template

import (
	"bytes"
	"sort"
	"text/template"
	"text/template/parse"
)

// Extension is the file name suffix marking a file as a template
const Extension = ".tpl"

// Template is a parsed template ready for rendering or inspection
type Template struct {
	tmpl *template.Template
}

// Parse parses src as a template body. Undefined variable references
// are render-time errors, not parse-time errors.
func Parse(name, src string) (*Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, err
	}
	return &Template{tmpl: tmpl}, nil
}

// Render executes the template against the binding map and returns
// the rendered bytes. Rendering is deterministic: the same bindings
// always produce the same bytes. A reference to a binding that does
// not exist fails.
func (t *Template) Render(bindings map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, bindings); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Variables returns the sorted, deduplicated set of top-level variable
// names the template references, by walking its syntax tree.
func (t *Template) Variables() []string {
	seen := map[string]struct{}{}
	walk(t.tmpl.Tree.Root, seen)

	vars := make([]string, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars
}

func walk(node parse.Node, seen map[string]struct{}) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *parse.ListNode:
		for _, item := range n.Nodes {
			walk(item, seen)
		}
	case *parse.ActionNode:
		walk(n.Pipe, seen)
	case *parse.PipeNode:
		for _, cmd := range n.Cmds {
			walk(cmd, seen)
		}
	case *parse.CommandNode:
		for _, arg := range n.Args {
			walk(arg, seen)
		}
	case *parse.FieldNode:
		if len(n.Ident) > 0 {
			seen[n.Ident[0]] = struct{}{}
		}
	case *parse.ChainNode:
		walk(n.Node, seen)
	case *parse.IfNode:
		walkBranch(&n.BranchNode, seen)
	case *parse.RangeNode:
		walkBranch(&n.BranchNode, seen)
	case *parse.WithNode:
		walkBranch(&n.BranchNode, seen)
	case *parse.TemplateNode:
		walk(n.Pipe, seen)
	}
}

func walkBranch(branch *parse.BranchNode, seen map[string]struct{}) {
	walk(branch.Pipe, seen)
	walk(branch.List, seen)
	walk(branch.ElseList, seen)
}
