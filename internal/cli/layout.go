package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sigil/pkg/core/patp"
	"github.com/matzehuels/sigil/pkg/core/seal"
	"github.com/matzehuels/sigil/pkg/pipeline"
)

// layoutCommand creates the layout command for inspecting grid geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		size   float64
	)

	cmd := &cobra.Command{
		Use:   "layout <count|identifier>",
		Short: "Print the grid layout for a symbol count",
		Long: `Print the grid layout used to place symbols, as JSON.

The argument is either a symbol count (1, 2, 4, 6, 8, ...) or an identifier,
in which case its syllable count is used.`,
		Example: `  sigil layout 4
  sigil layout ~ridlur-figbud --size 512`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := symbolCount(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("size") {
				size = c.config().Render.Size
			}
			return c.runLayout(count, size, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().Float64VarP(&size, "size", "s", seal.DefaultSize, "canvas edge length")

	return cmd
}

func (c *CLI) runLayout(count int, size float64, output string) error {
	l, err := seal.NewLayout(count, seal.Unit, size, seal.BorderRatio)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Layout for %d symbols: %dx%d grid, scale %g", count, l.Columns, l.Rows, l.ScaleFactor())

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	data = append(data, '\n')

	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	printSuccess("Layout complete")
	printFile(output)
	return nil
}

// symbolCount interprets arg as a count or as an identifier.
func symbolCount(arg string) (int, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if err := pipeline.ValidateSymbolCount(n); err != nil {
			return 0, err
		}
		return n, nil
	}
	id, err := patp.Parse(arg)
	if err != nil {
		return 0, err
	}
	return id.Len(), nil
}
