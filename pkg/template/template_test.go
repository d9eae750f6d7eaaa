// pkg/template/template_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test template parsing, rendering and variable extraction

package template_test

import (
	"testing"

	"github.com/arthur-debert/dotweave/pkg/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	_, err := template.Parse("bad", "hello {{.name")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	tmpl, err := template.Parse("greeting", "hello {{.name}} on {{.hostname}}\n")
	require.NoError(t, err)

	out, err := tmpl.Render(map[string]interface{}{
		"name":     "alice",
		"hostname": "workstation",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello alice on workstation\n", string(out))
}

func TestRenderIsIdempotent(t *testing.T) {
	tmpl, err := template.Parse("idem", "{{.a}}-{{.b}}{{if .work}}!{{end}}")
	require.NoError(t, err)

	bindings := map[string]interface{}{"a": "x", "b": "y", "work": true}

	first, err := tmpl.Render(bindings)
	require.NoError(t, err)
	second, err := tmpl.Render(bindings)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderUndefinedVariableFails(t *testing.T) {
	tmpl, err := template.Parse("missing", "value: {{.nope}}")
	require.NoError(t, err)

	_, err = tmpl.Render(map[string]interface{}{"name": "alice"})
	assert.Error(t, err)
}

func TestRenderBooleanConditional(t *testing.T) {
	tmpl, err := template.Parse("cond", "{{if .work}}proxy=on{{else}}proxy=off{{end}}")
	require.NoError(t, err)

	on, err := tmpl.Render(map[string]interface{}{"work": true})
	require.NoError(t, err)
	assert.Equal(t, "proxy=on", string(on))

	off, err := tmpl.Render(map[string]interface{}{"work": false})
	require.NoError(t, err)
	assert.Equal(t, "proxy=off", string(off))
}

func TestVariables(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "plain references",
			src:  "{{.hostname}} {{.username}}",
			want: []string{"hostname", "username"},
		},
		{
			name: "repeated references deduplicated",
			src:  "{{.a}} {{.a}} {{.b}}",
			want: []string{"a", "b"},
		},
		{
			name: "references inside conditionals",
			src:  "{{if .work}}{{.proxy}}{{else}}{{.direct}}{{end}}",
			want: []string{"direct", "proxy", "work"},
		},
		{
			name: "sorted output",
			src:  "{{.zebra}} {{.apple}}",
			want: []string{"apple", "zebra"},
		},
		{
			name: "no references",
			src:  "static content only\n",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := template.Parse(tt.name, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tmpl.Variables())
		})
	}
}
