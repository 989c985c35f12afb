package tokens

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/semls/pkg/config"
	"github.com/walteh/semls/pkg/parser"
	"github.com/walteh/semls/pkg/semtok"
)

const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

type Handler struct {
	format    string
	maxTokens int
	fs        afero.Fs
}

func NewTokensCommand() *cobra.Command {
	me := &Handler{fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "print the semantic tokens of a .zc file",
		Args:  cobra.ExactArgs(1),
	}

	cmd.Flags().StringVar(&me.format, "format", FormatJSON, "output format: json, yaml or table")
	cmd.Flags().IntVar(&me.maxTokens, "max-tokens", config.Defaults().Tokens.MaxTokens, "token ceiling, 0 for none")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), args[0], cmd.OutOrStdout())
	}

	return cmd
}

// Entry is one decoded token with its legend names.
type Entry struct {
	Line      uint32   `json:"line" yaml:"line"`
	Column    uint32   `json:"column" yaml:"column"`
	Length    uint32   `json:"length" yaml:"length"`
	Type      string   `json:"type" yaml:"type"`
	Modifiers []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
}

func Entries(tokens []semtok.Token) []Entry {
	out := make([]Entry, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, Entry{
			Line:      tok.Line,
			Column:    tok.Column,
			Length:    tok.Length,
			Type:      tok.Type.String(),
			Modifiers: tok.Modifiers.Names(),
		})
	}
	return out
}

func (me *Handler) Run(ctx context.Context, path string, out io.Writer) error {
	src, err := afero.ReadFile(me.fs, path)
	if err != nil {
		return errors.Errorf("reading %s: %w", path, err)
	}

	file, err := parser.Parse(ctx, path, src)
	if err != nil {
		return errors.Errorf("parsing %s: %w", path, err)
	}

	res, err := semtok.Tokenize(ctx, file, semtok.Options{MaxTokens: me.maxTokens})
	if err != nil {
		return errors.Errorf("tokenizing %s: %w", path, err)
	}

	switch me.format {
	case FormatJSON:
		body, err := semtok.Marshal(res.Tokens)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(body))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(Entries(res.Tokens)); err != nil {
			return errors.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatTable:
		return writeTable(out, Entries(res.Tokens))
	default:
		return errors.Errorf("unknown format %q", me.format)
	}
}

func writeTable(out io.Writer, entries []Entry) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	header := color.New(color.Bold).SprintFunc()
	fmt.Fprintln(tw, header("LINE\tCOL\tLEN\tTYPE\tMODIFIERS"))
	for _, e := range entries {
		mods, _ := json.Marshal(e.Modifiers)
		if e.Modifiers == nil {
			mods = []byte("-")
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\n", e.Line, e.Column, e.Length, e.Type, mods)
	}
	return tw.Flush()
}
