package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Aaron-Ben/Magentic-mini/internal/inspect"
	"github.com/Aaron-Ben/Magentic-mini/internal/output"
)

var viewportCmd = &cobra.Command{
	Use:   "viewport",
	Short: "Report the visual viewport and document extents",
	RunE:  runViewport,
}

func init() {
	rootCmd.AddCommand(viewportCmd)
	addHostFlags(viewportCmd)
}

func runViewport(cmd *cobra.Command, args []string) error {
	doc, cleanup, err := openDocument(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ins := inspect.New(doc)
	return output.Print(output.ViewportResult{
		URL:      doc.URL(),
		TS:       time.Now().Unix(),
		Viewport: ins.VisualViewport(),
	})
}
