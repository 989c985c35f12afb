package tokens_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/walteh/semls/cmd/semls/tokens"
	"github.com/walteh/semls/pkg/parser"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.zc")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := tokens.NewTokensCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTokensFormats(t *testing.T) {
	path := writeSource(t, "fn main() {}")

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"data":[0,3,4,1,1]}`, out)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := execute(t, path, "--format", "yaml")
		require.NoError(t, err)

		var got []tokens.Entry
		require.NoError(t, yaml.Unmarshal([]byte(out), &got))
		assert.Equal(t, []tokens.Entry{
			{Line: 0, Column: 3, Length: 4, Type: "function", Modifiers: []string{"declaration"}},
		}, got)
	})

	t.Run("table", func(t *testing.T) {
		out, err := execute(t, path, "--format", "table")
		require.NoError(t, err)
		assert.Contains(t, out, "LINE")
		assert.Contains(t, out, "function")
		assert.Contains(t, out, `["declaration"]`)
	})
}

func TestTokensErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		args []string
		is   error
	}{
		{name: "syntax_error", src: "fn main( {", is: parser.ErrSyntax},
		{name: "unknown_format", src: "fn main() {}", args: []string{"--format", "xml"}},
		{name: "token_limit", src: "fn main() { let a = b; }", args: []string{"--max-tokens", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, tt.src)
			_, err := execute(t, append([]string{path}, tt.args...)...)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestTokensMissingFile(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "nope.zc"))
	require.Error(t, err)
}
