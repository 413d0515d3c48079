package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Aaron-Ben/Magentic-mini/internal/inspect"
	"github.com/Aaron-Ben/Magentic-mini/internal/output"
)

var markdownCmd = &cobra.Command{
	Use:   "markdown",
	Short: "Render the page content as simplified markdown",
	RunE:  runMarkdown,
}

func init() {
	rootCmd.AddCommand(markdownCmd)
	addHostFlags(markdownCmd)
	markdownCmd.Flags().Int("max-chars", 0, "Truncate the markdown to this many characters (0 = unlimited)")
}

func runMarkdown(cmd *cobra.Command, args []string) error {
	doc, cleanup, err := openDocument(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	maxChars, _ := cmd.Flags().GetInt("max-chars")

	ins := inspect.New(doc)
	md := ins.PageMarkdown()
	if maxChars > 0 {
		md = truncateRunes(md, maxChars)
	}
	return output.Print(output.MarkdownResult{
		URL:      doc.URL(),
		TS:       time.Now().Unix(),
		Markdown: md,
	})
}

// truncateRunes caps s at n runes without splitting a character.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
