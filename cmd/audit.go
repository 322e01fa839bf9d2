package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/seo-optimizer/contentquality/analyzer"
	"github.com/seo-optimizer/contentquality/artifacts"
	"github.com/seo-optimizer/contentquality/config"
	"github.com/seo-optimizer/contentquality/report"
)

func newAuditCommand(cfg *config.Config) *cobra.Command {
	var title, pageURL string

	cmd := &cobra.Command{
		Use:   "audit [file|-]",
		Short: "Audit one HTML document",
		Long: `Audit reads an HTML document from a file, or from standard input when the
argument is "-" or missing, and prints its Content Quality report.

Scores never affect the exit code; only unreadable input does.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}

			raw, err := readDocument(cmd.InOrStdin(), source)
			if err != nil {
				return err
			}

			page, err := artifacts.Gather(string(raw), pageURL)
			if err != nil {
				return fmt.Errorf("error reading %s: %w", source, err)
			}
			if title != "" {
				page.Title = title
			}

			writer, err := report.NewWriter(cfg.Format, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = writer.Write(analyzer.Evaluate(page, cfg.Thresholds))
			return err
		},
	}

	cmd.Flags().StringP("format", "f", "console", "report format (console|markdown|json|yaml)")
	cmd.Flags().StringVar(&title, "title", "", "page title, overriding the document's <title>")
	cmd.Flags().StringVar(&pageURL, "url", "", "URL the document was fetched from")

	return cmd
}

func readDocument(stdin io.Reader, source string) ([]byte, error) {
	if source == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("error reading standard input: %w", err)
		}
		return raw, nil
	}

	raw, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("error reading document: %w", err)
	}
	return raw, nil
}
