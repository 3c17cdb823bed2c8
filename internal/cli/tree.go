package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sigil/pkg/core/patp"
	"github.com/matzehuels/sigil/pkg/core/render/nodelink"
	"github.com/matzehuels/sigil/pkg/pipeline"
)

// treeCommand creates the tree command for drawing a seal's document tree.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		flags    pourFlags
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "tree <identifier>",
		Short: "Draw a seal's document tree as a node-link diagram",
		Long: `Pour a seal and draw its document tree with Graphviz.

Each node shows its tag; styled nodes are filled with their resolved color.
With --detailed, drawing attributes and pipeline metadata are listed too.`,
		Example: `  sigil tree ~marzod
  sigil tree ~ridlur-figbud --detailed -t svg -o tree.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			opts.Identifier = args[0]
			return c.runTree(cmd.Context(), opts, format, output, detailed, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "type", "t", pipeline.FormatDOT, "diagram format: dot, svg, pdf, png")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show attributes and metadata")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, opts pipeline.Options, format, output string, detailed, noCache bool) error {
	id, err := patp.Parse(opts.Identifier)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	doc, err := runner.Pour(ctx, id, opts)
	if err != nil {
		return err
	}

	dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: detailed})
	var data []byte
	switch format {
	case pipeline.FormatDOT:
		data = []byte(dot)
	case pipeline.FormatSVG:
		data, err = nodelink.RenderSVG(dot)
	case pipeline.FormatPDF:
		data, err = nodelink.RenderPDF(dot)
	case pipeline.FormatPNG:
		data, err = nodelink.RenderPNG(dot, 2.0)
	default:
		return fmt.Errorf("invalid diagram format: %s (must be 'dot', 'svg', 'pdf', or 'png')", format)
	}
	if err != nil {
		return fmt.Errorf("render tree: %w", err)
	}
	c.Logger.Debugf("Tree for %s: %d nodes, %d bytes of %s", id, doc.Count(), len(data), format)

	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	printSuccess("Tree for %s", StyleHighlight.Render(id.String()))
	printFile(output)
	return nil
}
