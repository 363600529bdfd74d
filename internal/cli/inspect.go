package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/geodraw/pkg/render/figure"
)

// inspectCommand shows where each input point lands on the canvas.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		width, height float64
		screen        bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the canvas projection of every point",
		Long: `Inspect validates each diagram and prints its points in data and canvas
coordinates, using the same viewport fit as render. Transformation diagrams
list the computed image vertices after the pre-image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			docs, err := loadDocuments(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			popts := cfg.PipelineOptions()
			applyRenderFlags(&popts, renderOpts{width: width, height: height, screen: screen})
			fopts := figure.Options{
				Width:             popts.Width,
				Height:            popts.Height,
				Padding:           popts.Padding,
				ScreenCoordinates: popts.ScreenCoordinates,
			}

			out := cmd.OutOrStdout()
			for i, doc := range docs {
				in, err := figure.Inspect(doc, fopts)
				if err != nil {
					return fmt.Errorf("%s: %w", doc.Name, err)
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				writeInspection(out, doc.Name, in)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "canvas width (default from config)")
	cmd.Flags().Float64Var(&height, "height", 0, "canvas height (default from config)")
	cmd.Flags().BoolVar(&screen, "screen-coordinates", false, "treat input y as growing downward")
	return cmd
}

func writeInspection(w io.Writer, name string, in *figure.Inspection) {
	fmt.Fprintln(w, StyleTitle.Render(name)+" "+StyleDim.Render(in.Family))
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("canvas %gx%g · scale %s px/unit", in.Width, in.Height, num(in.Scale))))

	rows := make([][]string, len(in.Points))
	for i, p := range in.Points {
		rows[i] = []string{p.Label, p.Role, num(p.Data.X), num(p.Data.Y), num(p.Screen.X), num(p.Screen.Y)}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Point", "Role", "x", "y", "screen x", "screen y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col >= 2:
				return StyleNumber
			}
			return StyleValue
		})
	fmt.Fprintln(w, t.Render())
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
