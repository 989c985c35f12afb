package legend_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/walteh/semls/cmd/semls/legend"
	"github.com/walteh/semls/pkg/semtok"
)

func TestLegendCommand(t *testing.T) {
	tests := []struct {
		name   string
		format string
		decode func([]byte, any) error
	}{
		{name: "json", format: "json", decode: json.Unmarshal},
		{name: "yaml", format: "yaml", decode: yaml.Unmarshal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := legend.NewLegendCommand()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs([]string{"--format", tt.format})
			require.NoError(t, cmd.Execute())

			var got semtok.Legend
			require.NoError(t, tt.decode(out.Bytes(), &got))
			assert.Equal(t, semtok.DefaultLegend(), got)
		})
	}
}

func TestLegendUnknownFormat(t *testing.T) {
	cmd := legend.NewLegendCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "xml"})
	require.Error(t, cmd.Execute())
}
