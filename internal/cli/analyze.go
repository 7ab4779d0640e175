package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/govsift/govsift/internal/model"
	"github.com/govsift/govsift/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	analyzeCompany string
	analyzeProduct string
	analyzeTimeout time.Duration
	analyzeNoCache bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Download and mine a single document for contract facts",
	Long: `Analyze downloads one document and extracts prices, contract dates,
term lengths, pricing model hints and included items, printing the
structured result as JSON.

Example:
  govsift analyze https://cityofmadison.civicweb.net/document/12345 -c "Acme Corp" -p "Permit Cloud"`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeCompany, "company", "c", "", "company name to look for (required)")
	analyzeCmd.Flags().StringVarP(&analyzeProduct, "product", "p", "", "product name to look for (required)")
	_ = analyzeCmd.MarkFlagRequired("company")
	_ = analyzeCmd.MarkFlagRequired("product")

	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", time.Minute, "download timeout")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "disable document cache")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if analyzeNoCache {
		cfg.Cache.Enabled = false
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	p := pipeline.New(cfg, nil)
	report := p.AnalyzeURL(ctx, args[0], analyzeCompany, analyzeProduct)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if report.Status != model.StatusAnalyzed {
		return fmt.Errorf("analysis incomplete: %s", report.Status)
	}
	return nil
}
