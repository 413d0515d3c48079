package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Aaron-Ben/Magentic-mini/internal/inspect"
	"github.com/Aaron-Ben/Magentic-mini/internal/output"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Extract JSON-LD, meta tags, and microdata from the page",
	RunE:  runMetadata,
}

func init() {
	rootCmd.AddCommand(metadataCmd)
	addHostFlags(metadataCmd)
}

func runMetadata(cmd *cobra.Command, args []string) error {
	doc, cleanup, err := openDocument(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ins := inspect.New(doc)
	return output.Print(output.MetadataResult{
		URL:      doc.URL(),
		TS:       time.Now().Unix(),
		Metadata: ins.PageMetadata(),
	})
}
