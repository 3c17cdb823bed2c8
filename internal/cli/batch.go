package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/sigil/pkg/core/patp"
	"github.com/matzehuels/sigil/pkg/errors"
	"github.com/matzehuels/sigil/pkg/pipeline"
)

// batchCommand creates the batch command for pouring many seals at once.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		flags   pourFlags
		input   string
		outDir  string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "batch [identifiers...]",
		Short: "Pour many seals concurrently",
		Long: `Pour many seals concurrently, one file per identifier and format.

Identifiers come from the arguments and from --input, one per line. Blank
lines and lines starting with # are ignored; --input - reads stdin.

A bad identifier is reported and skipped; the remaining seals still render.`,
		Example: `  sigil batch ~zod ~marzod ~ridlur-figbud -O seals/
  sigil batch -i ships.txt -f png --scale 2 -j 16`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := append([]string(nil), args...)
			if input != "" {
				more, err := readIdentifierFile(input)
				if err != nil {
					return err
				}
				ids = append(ids, more...)
			}
			if len(ids) == 0 {
				return fmt.Errorf("no identifiers given")
			}

			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runBatch(cmd.Context(), ids, opts, outDir, workers, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", "", "file with one identifier per line (- for stdin)")
	cmd.Flags().StringVarP(&outDir, "out-dir", "O", ".", "output directory")
	cmd.Flags().IntVarP(&workers, "jobs", "j", defaultWorkers, "concurrent renders")

	return cmd
}

// batchResult is the outcome of one identifier in a batch.
type batchResult struct {
	identifier string
	paths      []string
	err        error
}

// runBatch pours every identifier with at most workers renders in flight.
// Per-identifier failures are collected; only cancellation and write
// failures stop the batch. Spellings of the same identifier are poured once.
func (c *CLI) runBatch(ctx context.Context, ids []string, opts pipeline.Options, outDir string, workers int, noCache bool) error {
	ids = dedupeIdentifiers(ids)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	results := make([]batchResult, len(ids))

	var finished atomic.Int64
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Pouring 0/%d seals...", len(ids)))
	spinner.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, id := range ids {
		g.Go(func() error {
			o := opts
			o.Identifier = id
			results[i].identifier = id

			res, err := runner.Execute(gctx, o)
			spinner.Update(fmt.Sprintf("Pouring %d/%d seals...", finished.Add(1), len(ids)))
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				results[i].err = err
				loggerFromContext(ctx).Debug("pour failed", "identifier", id, "err", err)
				return nil
			}
			results[i].identifier = res.Identifier.String()
			base := filepath.Join(outDir, fileStem(res.Identifier.String()))
			paths, err := writeArtifacts(res.Artifacts, opts.Formats, base)
			results[i].paths = paths
			return err
		})
	}
	err = g.Wait()
	spinner.Stop()
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			printError("%s: %s", r.identifier, errors.UserMessage(r.err))
			continue
		}
		for _, p := range r.paths {
			printFile(p)
		}
	}
	prog.poured(len(ids)-failed, len(ids))

	if failed > 0 {
		return fmt.Errorf("%d of %d seals failed", failed, len(ids))
	}
	printSuccess("Batch complete")
	return nil
}

// dedupeIdentifiers drops identifiers whose canonical form was already seen,
// so two workers never write the same output files. Unparseable entries are
// kept to be reported by the pour.
func dedupeIdentifiers(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if parsed, err := patp.Parse(id); err == nil {
			key := parsed.String()
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, id)
	}
	return out
}

// readIdentifierFile reads identifiers from path, or stdin for "-".
func readIdentifierFile(path string) ([]string, error) {
	if path == "-" {
		return readIdentifiers(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readIdentifiers(f)
}

// readIdentifiers returns one identifier per non-blank line, skipping
// # comments.
func readIdentifiers(r io.Reader) ([]string, error) {
	var ids []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	return ids, sc.Err()
}
