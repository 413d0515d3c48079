package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Aaron-Ben/Magentic-mini/internal/inspect"
	"github.com/Aaron-Ben/Magentic-mini/internal/output"
)

var elementsCmd = &cobra.Command{
	Use:   "elements",
	Short: "List interactive elements with their identifiers",
	Long: `Label every interactive element on the page with a stable identifier and
output them in identifier order: tag class, role, accessible name, scroll
flag, and the visible non-occluded rectangles.`,
	RunE: runElements,
}

func init() {
	rootCmd.AddCommand(elementsCmd)
	addHostFlags(elementsCmd)
}

func runElements(cmd *cobra.Command, args []string) error {
	doc, cleanup, err := openDocument(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ins := inspect.New(doc)
	return output.Print(output.ElementsResult{
		URL:      doc.URL(),
		Title:    doc.Title(),
		TS:       time.Now().Unix(),
		Elements: ins.InteractiveElements(),
	})
}
