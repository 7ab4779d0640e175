package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/govsift/govsift/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	queriesCompany string
	queriesProduct string
	queriesType    string
	queriesJSON    bool
)

// queriesCmd represents the queries command
var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "Generate search engine queries for a company and product",
	Long: `Queries prints the search queries govsift would use to find contract
documents, ordered by priority. Feed them to your search tool of choice
and pass the collected results to "govsift rank".

Example:
  govsift queries -c "Acme Corp" -p "Permit Cloud"
  govsift queries -c "Acme Corp" -p "Permit Cloud" --type both --json`,
	RunE: runQueries,
}

func init() {
	rootCmd.AddCommand(queriesCmd)

	queriesCmd.Flags().StringVarP(&queriesCompany, "company", "c", "", "company name (required)")
	queriesCmd.Flags().StringVarP(&queriesProduct, "product", "p", "", "product name (required)")
	_ = queriesCmd.MarkFlagRequired("company")
	_ = queriesCmd.MarkFlagRequired("product")

	queriesCmd.Flags().StringVar(&queriesType, "type", "software", "query families to include (software, services, both)")
	queriesCmd.Flags().BoolVar(&queriesJSON, "json", false, "print queries as JSON")
}

func runQueries(cmd *cobra.Command, args []string) error {
	searchType := pipeline.SearchType(queriesType)
	switch searchType {
	case pipeline.SearchSoftware, pipeline.SearchServices, pipeline.SearchBoth:
	default:
		return fmt.Errorf("unknown search type: %s", queriesType)
	}

	queries := pipeline.GenerateQueries(queriesCompany, queriesProduct, searchType)

	if queriesJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(queries)
	}

	for _, q := range queries {
		fmt.Printf("[%s/%s] %s\n", q.Priority, q.Category, q.Query)
	}
	return nil
}
