package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/govsift/govsift/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	rankCompany    string
	rankProduct    string
	rankOut        string
	rankTimeout    time.Duration
	rankUserAgent  string
	rankMaxBytes   int64
	rankNoCache    bool
	rankCheckLinks bool
	rankDropBroken bool
	rankAnalyze    bool
	rankMaxDocs    int
	rankMaxLinks   int
	rankBreakdown  bool
	rankLimit      int
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank <candidates-file>",
	Short: "Filter, score and rank search result candidates",
	Long: `Rank reads search result candidates from a file and runs the full
relevance pipeline: domain filtering, document-type classification,
multi-factor scoring, deduplication, optional link verification,
optional document download and content analysis, and geographic
diversity re-ranking.

The candidates file is either a JSON array of {"title", "url"} objects
or plain lines of "title<TAB>url". Use "-" to read from stdin.

Example:
  govsift rank results.tsv --company "Acme Corp" --product "Permit Cloud"
  govsift rank results.json -c "Acme Corp" -p "Permit Cloud" --check-links --analyze --out acme.json`,
	Args: cobra.ExactArgs(1),
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVarP(&rankCompany, "company", "c", "", "company name to search for (required)")
	rankCmd.Flags().StringVarP(&rankProduct, "product", "p", "", "product name to search for (required)")
	_ = rankCmd.MarkFlagRequired("company")
	_ = rankCmd.MarkFlagRequired("product")

	rankCmd.Flags().StringVar(&rankOut, "out", "", "output JSON path (a .csv sibling is written alongside)")
	rankCmd.Flags().DurationVar(&rankTimeout, "timeout", 5*time.Minute, "overall run timeout")
	rankCmd.Flags().StringVar(&rankUserAgent, "ua", "", "HTTP User-Agent override")
	rankCmd.Flags().Int64Var(&rankMaxBytes, "max-bytes", 0, "max document bytes to download (0 = default)")
	rankCmd.Flags().BoolVar(&rankNoCache, "no-cache", false, "disable document cache (force fresh downloads)")

	rankCmd.Flags().BoolVar(&rankCheckLinks, "check-links", false, "probe top result URLs for reachability")
	rankCmd.Flags().BoolVar(&rankDropBroken, "drop-broken", false, "drop results whose links fail verification (implies --check-links)")
	rankCmd.Flags().BoolVar(&rankAnalyze, "analyze", false, "download and mine top documents for prices, dates and terms")
	rankCmd.Flags().IntVar(&rankMaxDocs, "max-docs", 0, "max documents to analyze (0 = config default)")
	rankCmd.Flags().IntVar(&rankMaxLinks, "max-links", 0, "max links to verify (0 = config default)")

	rankCmd.Flags().BoolVar(&rankBreakdown, "breakdown", false, "show score breakdown per result")
	rankCmd.Flags().IntVar(&rankLimit, "limit", 0, "max results to display (0 = config default)")
}

func runRank(cmd *cobra.Command, args []string) error {
	candidates, err := readCandidates(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if rankUserAgent != "" {
		cfg.HTTP.UserAgent = rankUserAgent
	}
	if rankMaxBytes > 0 {
		cfg.HTTP.MaxBodyBytes = rankMaxBytes
	}
	if rankNoCache {
		cfg.Cache.Enabled = false
	}
	if rankMaxDocs > 0 {
		cfg.Limits.MaxDocuments = rankMaxDocs
	}
	if rankMaxLinks > 0 {
		cfg.Limits.MaxLinkChecks = rankMaxLinks
	}
	if rankBreakdown {
		cfg.Output.ShowBreakdown = true
	}
	if rankLimit > 0 {
		cfg.Output.DisplayLimit = rankLimit
	}

	ctx, cancel := context.WithTimeout(context.Background(), rankTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Company: %s\n", rankCompany)
		fmt.Fprintf(os.Stderr, "Product: %s\n", rankProduct)
		fmt.Fprintf(os.Stderr, "Candidates: %d\n\n", len(candidates))
	}

	p := pipeline.New(cfg, nil)

	report, err := p.Run(ctx, pipeline.Request{
		Company:        rankCompany,
		Product:        rankProduct,
		Candidates:     candidates,
		CheckLinks:     rankCheckLinks || rankDropBroken,
		DropBroken:     rankDropBroken,
		AnalyzeContent: rankAnalyze,
	})
	if err != nil {
		return fmt.Errorf("rank failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output)
	renderer.Display(os.Stdout, report)

	if rankOut != "" {
		if err := renderer.WriteFiles(report, rankOut); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "\nSaved report to %s\n", rankOut)
		}
	}

	return nil
}
