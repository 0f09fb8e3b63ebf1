package templates

import (
	"testing"
	"text/template"

	"github.com/stretchr/testify/require"
)

func TestAutoEncode_RewritesOutputActions(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`{{.A}}`, `{{.A | encode}}`},
		{`{{.A | printf "%v"}}`, `{{.A | printf "%v" | encode}}`},
		{`{{$x := .A}}{{$x}}`, `{{$x := .A}}{{$x | encode}}`},
		{`{{$x := 1}}{{$x = 2}}`, `{{$x := 1}}{{$x = 2}}`},
		{`{{.A | encode}}`, `{{.A | encode}}`},
		{`{{if .B}}{{.C}}{{else}}{{.D}}{{end}}`, `{{if .B}}{{.C | encode}}{{else}}{{.D | encode}}{{end}}`},
		{`{{range .L}}{{.}}{{else}}none{{end}}`, `{{range .L}}{{. | encode}}{{else}}none{{end}}`},
		{`{{with .W}}{{.}}{{end}}`, `{{with .W}}{{. | encode}}{{end}}`},
		{`{{template "x" .}}`, `{{template "x" .}}`},
		{`text only`, `text only`},
	}
	funcs := template.FuncMap{encodeFunc: func(v any) any { return v }}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tmpl, err := template.New("t").Funcs(funcs).Parse(tt.src)
			require.NoError(t, err)
			autoEncode(tmpl.Tree)
			require.Equal(t, tt.want, tmpl.Tree.Root.String())
		})
	}
}

func TestAutoEncode_NilTree(t *testing.T) {
	autoEncode(nil)
}
