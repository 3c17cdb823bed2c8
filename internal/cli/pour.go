package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sigil/pkg/pipeline"
)

// pourFlags holds the flags shared by pour and batch.
type pourFlags struct {
	formats    string
	size       float64
	scale      float64
	colorway   string
	dictionary string
	title      bool
	noCache    bool
	refresh    bool
}

func (f *pourFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().Float64VarP(&f.size, "size", "s", pipeline.DefaultSize, "canvas edge length")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().StringVarP(&f.colorway, "colorway", "c", "", "colorway override: canonical index or comma-separated colors")
	cmd.Flags().StringVarP(&f.dictionary, "dictionary", "d", "", "symbol dictionary JSON file or URL")
	cmd.Flags().BoolVar(&f.title, "title", false, "embed the identifier as an SVG <title>")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results and re-render")
}

// options merges flags over the config file's [render] section. Only flags
// the user set override config values.
func (c *CLI) options(cmd *cobra.Command, f *pourFlags) (pipeline.Options, error) {
	cfg := c.config().Render
	opts := pipeline.Options{
		Size:    cfg.Size,
		Scale:   cfg.Scale,
		Formats: cfg.Formats,
		Title:   f.title,
		Refresh: f.refresh,
		Logger:  c.Logger,
	}
	changed := cmd.Flags().Changed
	if changed("size") {
		opts.Size = f.size
	}
	if changed("scale") {
		opts.Scale = f.scale
	}
	if changed("format") || len(opts.Formats) == 0 {
		opts.Formats = parseFormats(f.formats)
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return opts, err
	}

	colorway := cfg.Colorway
	if changed("colorway") {
		colorway = f.colorway
	}
	cw, err := pipeline.ParseColorway(colorway)
	if err != nil {
		return opts, err
	}
	opts.Colorway = cw

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	dict, err := c.loadDictionary(ctx, f.dictionary)
	if err != nil {
		return opts, err
	}
	opts.Dictionary = dict
	return opts, nil
}

// pourCommand creates the pour command for rendering a single seal.
func (c *CLI) pourCommand() *cobra.Command {
	var (
		flags  pourFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "pour <identifier>",
		Short: "Pour a seal and write it to SVG, PNG, PDF, JSON or DOT",
		Long: `Pour a seal for an identifier and write the requested formats.

The identifier is split into three-letter syllables. Each syllable selects a
glyph from the symbol dictionary (or the default glyph when none is given);
the glyphs are placed on a square grid and colored by the identifier's
colorway.

Files are named after the identifier unless -o is given. With a single
format, -o - writes to stdout.`,
		Example: `  sigil pour ~zod
  sigil pour ~ridlur-figbud -f svg,png --scale 4
  sigil pour ~marzod -d symbols.json -c "#000,#fff" -o marzod.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			opts.Identifier = args[0]
			return c.runPour(cmd.Context(), opts, output, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")

	return cmd
}

// runPour executes the pipeline and writes each artifact.
func (c *CLI) runPour(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Pouring %s...", opts.Identifier))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Pour failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if output == "-" {
		if len(opts.Formats) != 1 {
			return fmt.Errorf("stdout output needs exactly one format, got %d", len(opts.Formats))
		}
		_, err := os.Stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	base := output
	if base == "" {
		base = fileStem(result.Identifier.String())
	}
	paths, err := writeArtifacts(result.Artifacts, opts.Formats, base)
	if err != nil {
		return err
	}

	printSuccess("Poured %s", StyleHighlight.Render(result.Identifier.String()))
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Syllables, result.Stats.NodeCount, result.CacheInfo.PourHit && result.CacheInfo.RenderHit)
	printNewline()
	printNextStep("Inspect", "sigil tree "+result.Identifier.String())

	return nil
}

// writeArtifacts writes one file per format and returns the paths in
// format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(base, format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
