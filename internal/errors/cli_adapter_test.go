package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", fmt.Errorf("x"), 1},
		{"contract", InvalidArgument("entity", "nil"), 2},
		{"config", ConfigNotFound("docrender.yaml"), 7},
		{"compile", TemplateCompile("class", "", fmt.Errorf("bad")), 9},
		{"execution wrapped", fmt.Errorf("page: %w", TemplateExecution("class", fmt.Errorf("bad"))), 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, a.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)
	require.Equal(t, "", a.FormatError(nil))
	require.Equal(t, "configuration file not found", a.FormatError(ConfigNotFound("x.yaml")))
	require.Equal(t, `execute template "class": boom`, a.FormatError(TemplateExecution("class", fmt.Errorf("boom"))))

	verbose := NewCLIErrorAdapter(true, nil)
	require.Contains(t, verbose.FormatError(ConfigNotFound("x.yaml")), "config (fatal)")
}
