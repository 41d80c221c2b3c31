package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

var shapesCmd = &cobra.Command{
	Use:   "shapes",
	Short: "Print every shape and rotation",
	Long:  `Shows each shape of the catalog in all of its rotation states, in order.`,
	Args:  cobra.NoArgs,
	Run:   runShapes,
}

// previewWidth is the screen width of one rotation state plus a gap.
const previewWidth = 10

func runShapes(_ *cobra.Command, _ []string) {
	fmt.Print(renderCatalog(tetris.DefaultCatalog(), tui.NewStyles(nil)))
}

// renderCatalog draws one row per shape with its rotation states side by side.
func renderCatalog(c *tetris.Catalog, styles tui.Styles) string {
	var sb strings.Builder
	for _, id := range c.IDs() {
		shape := c.Shape(id)
		screen := core.NewScreen(4+len(shape.States)*previewWidth, 4)
		screen.DrawText(0, 0, id.String())
		for i := range shape.States {
			tetris.DrawShape(screen, shape, i, 4+i*previewWidth, 0)
		}
		sb.WriteString(tui.RenderScreen(screen, styles))
		sb.WriteString("\n\n")
	}
	return sb.String()
}
