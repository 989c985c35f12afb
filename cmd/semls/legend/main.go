package legend

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/semls/pkg/semtok"
)

type Handler struct {
	format string
}

func NewLegendCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "legend",
		Short: "print the token types and modifiers advertised to editors",
		Args:  cobra.NoArgs,
	}

	cmd.Flags().StringVar(&me.format, "format", "json", "output format: json or yaml")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.OutOrStdout())
	}

	return cmd
}

func (me *Handler) Run(out io.Writer) error {
	legend := semtok.DefaultLegend()

	switch me.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(legend)
	case "yaml":
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(legend); err != nil {
			return errors.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return errors.Errorf("unknown format %q", me.format)
	}
}
