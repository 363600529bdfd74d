package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/geodraw/pkg/diagram"
	"github.com/matzehuels/geodraw/pkg/errors"
	"github.com/matzehuels/geodraw/pkg/pipeline"
)

// stdio is the file argument that means stdin (input) or stdout (output).
const stdio = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string  // output file, base path for several outputs, or "-" for stdout
	formats string  // comma-separated formats
	width   float64 // canvas width in pixels
	height  float64 // canvas height in pixels
	scale   float64 // PNG resolution multiplier
	screen  bool    // input y grows downward
	embed   bool    // embed the label font in SVG output
	pick    bool    // choose one diagram of a batch interactively
	noCache bool    // bypass the cache entirely
	refresh bool    // re-render even on a cache hit
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render diagrams to SVG, PNG, PDF or JSON",
		Long: `Render one diagram or a {"diagrams": [...]} batch.

The file "-" reads from stdin. With a single diagram and a single format the
output goes to --output (or <file>.<format>); otherwise each artifact is
written next to the base path as <base>_<name>.<format>.`,
		Example: `  geodraw render triangle.json
  geodraw render lesson.json -f svg,png -o out/lesson
  cat triangle.json | geodraw render - -o - > triangle.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file, base path, or "-" for stdout`)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg, png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "canvas width (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "canvas height (default from config)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.screen, "screen-coordinates", false, "treat input y as growing downward")
	cmd.Flags().BoolVar(&opts.embed, "embed-font", false, "embed the label font in SVG output")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "pick one diagram of a batch interactively")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render and overwrite cached artifacts")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if opts.output != "" && opts.output != stdio {
		if err := errors.ValidatePath(opts.output); err != nil {
			return err
		}
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	docs, err := loadDocuments(input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %d diagram(s) from %s", len(docs), input)

	if opts.pick && len(docs) > 1 {
		doc, ok, err := pickDiagram(docs)
		if err != nil {
			return err
		}
		if !ok {
			newPrinter(cmd.OutOrStdout()).detail("No selection made")
			return nil
		}
		docs = []diagram.Document{doc}
	}

	popts := cfg.PipelineOptions()
	applyRenderFlags(&popts, opts)
	popts.Logger = logger
	if err := popts.ValidateForRender(); err != nil {
		return err
	}
	if opts.output == stdio && len(docs)*len(popts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidPath, "--output - needs exactly one diagram and one format")
	}

	runner := c.newRunner(ctx, cfg, opts.noCache)
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %d diagram(s)...", len(docs)))
	spinner.Start()
	results, err := runner.ExecuteBatch(ctx, docs, popts)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d diagram(s)", len(results)))

	if opts.output == stdio {
		_, err := cmd.OutOrStdout().Write(results[0].Artifacts[popts.Formats[0]])
		return err
	}
	return writeResults(newPrinter(cmd.OutOrStdout()), results, popts.Formats, input, opts.output)
}

// applyRenderFlags lays explicitly set flags over the configured defaults.
func applyRenderFlags(popts *pipeline.Options, opts renderOpts) {
	if f := parseFormats(opts.formats); len(f) > 0 {
		popts.Formats = f
	}
	if opts.width > 0 {
		popts.Width = opts.width
	}
	if opts.height > 0 {
		popts.Height = opts.height
	}
	if opts.scale > 0 {
		popts.Scale = opts.scale
	}
	if opts.screen {
		popts.ScreenCoordinates = true
	}
	if opts.embed {
		popts.EmbedFont = true
	}
	popts.Refresh = opts.refresh
}

// writeResults writes every artifact and reports it.
func writeResults(p printer, results []*pipeline.Result, formats []string, input, output string) error {
	single := len(results) == 1 && len(formats) == 1
	base := basePath(output, input)
	skippedAny := false

	for _, res := range results {
		for _, format := range formats {
			path := artifactPath(base, res.Name, format, len(results) > 1)
			if single && output != "" {
				path = output
			}
			if err := writeFile(path, res.Artifacts[format]); err != nil {
				return err
			}
			p.file(path)
		}
		p.renderStats(res.Family, res.Stats.Commands, len(res.Skipped), res.CacheInfo.RenderHit)
		for _, s := range res.Skipped {
			skippedAny = true
			p.warning("%s: skipped %s (%s)", res.Name, s.Kind, s.Reason)
		}
	}

	if skippedAny && input != stdio {
		p.nextStep("Check point positions", appName+" inspect "+input)
	}
	return nil
}

// loadDocuments decodes path, or r when path is "-".
func loadDocuments(path string, r io.Reader) ([]diagram.Document, error) {
	if path == stdio {
		return diagram.Decode(r)
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return diagram.Decode(f)
}

// basePath derives the base output path. An empty output strips the
// extension from input; a known format extension is stripped from output.
func basePath(output, input string) string {
	if output == "" {
		if input == stdio {
			return "diagram"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// artifactPath names one artifact. Batches add the diagram name so their
// files do not collide.
func artifactPath(base, name, format string, batch bool) string {
	if batch {
		return fmt.Sprintf("%s_%s.%s", base, fileSafe(name), format)
	}
	return base + "." + format
}

// fileSafe maps a diagram name onto characters safe in a file name.
func fileSafe(name string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '-'
	}, name)
	if strings.Trim(safe, ".") == "" {
		return "diagram"
	}
	return safe
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
