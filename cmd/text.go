package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Aaron-Ben/Magentic-mini/internal/inspect"
	"github.com/Aaron-Ben/Magentic-mini/internal/output"
)

var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Extract the text currently visible in the viewport",
	RunE:  runText,
}

func init() {
	rootCmd.AddCommand(textCmd)
	addHostFlags(textCmd)
}

func runText(cmd *cobra.Command, args []string) error {
	doc, cleanup, err := openDocument(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ins := inspect.New(doc)
	return output.Print(output.TextResult{
		URL:  doc.URL(),
		TS:   time.Now().Unix(),
		Text: ins.VisibleText(),
	})
}
