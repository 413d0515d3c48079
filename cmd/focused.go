package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Aaron-Ben/Magentic-mini/internal/inspect"
	"github.com/Aaron-Ben/Magentic-mini/internal/output"
)

var focusedCmd = &cobra.Command{
	Use:   "focused",
	Short: "Report the identifier of the focused interactive element",
	Long: `Report the identifier of the labeled element owning keyboard focus, or
null when focus is on nothing labeled. Focus inside an interactive element
resolves to the nearest labeled ancestor.`,
	RunE: runFocused,
}

func init() {
	rootCmd.AddCommand(focusedCmd)
	addHostFlags(focusedCmd)
}

func runFocused(cmd *cobra.Command, args []string) error {
	doc, cleanup, err := openDocument(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ins := inspect.New(doc)

	// Labeling must have happened for focus to resolve to an identifier.
	ins.InteractiveRects()

	result := output.FocusedResult{
		URL: doc.URL(),
		TS:  time.Now().Unix(),
	}
	if id, ok := ins.FocusedElementID(); ok {
		result.ID = &id
	}
	return output.Print(result)
}
