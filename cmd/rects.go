package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Aaron-Ben/Magentic-mini/internal/inspect"
	"github.com/Aaron-Ben/Magentic-mini/internal/output"
)

var rectsCmd = &cobra.Command{
	Use:   "rects",
	Short: "Map interactive elements keyed by identifier",
	Long: `Label every interactive element on the page and output the map form of
the snapshot: string-encoded identifier to region record. This is the shape
an orchestrator consumes when it needs random access by identifier.`,
	RunE: runRects,
}

func init() {
	rootCmd.AddCommand(rectsCmd)
	addHostFlags(rectsCmd)
}

func runRects(cmd *cobra.Command, args []string) error {
	doc, cleanup, err := openDocument(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ins := inspect.New(doc)
	return output.Print(output.RectsResult{
		URL:   doc.URL(),
		Title: doc.Title(),
		TS:    time.Now().Unix(),
		Rects: ins.InteractiveRects(),
	})
}
