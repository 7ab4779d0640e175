package pipeline

import (
	"fmt"

	"github.com/govsift/govsift/internal/model"
)

// SearchType selects which query families GenerateQueries emits
type SearchType string

const (
	SearchSoftware SearchType = "software"
	SearchServices SearchType = "services"
	SearchBoth     SearchType = "both"
)

// GenerateQueries builds search engine queries for a company and product,
// ordered by how often each family surfaces priced contract documents.
// Order forms come first: they carry actual dollar figures far more often
// than the contracts themselves.
func GenerateQueries(company, product string, searchType SearchType) []model.Query {
	var queries []model.Query

	add := func(priority string, pairs [][2]string) {
		for _, p := range pairs {
			queries = append(queries, model.Query{
				Query:    p[0],
				Category: p[1],
				Priority: priority,
			})
		}
	}

	add("highest", [][2]string{
		{fmt.Sprintf(`"%s" order form pdf`, company), "order_form"},
		{fmt.Sprintf(`"%s" renewal order form pdf`, company), "order_form"},
		{fmt.Sprintf(`"%s" subscription services agreement pdf`, company), "agreement"},
		{fmt.Sprintf(`"%s" master services agreement pdf`, company), "agreement"},
	})

	add("high", [][2]string{
		{fmt.Sprintf(`"%s" "%s" pricing schedule pdf`, company, product), "pricing"},
		{fmt.Sprintf(`"%s" "%s" fee schedule pdf`, company, product), "pricing"},
		{fmt.Sprintf(`"%s" "%s" cost proposal pdf`, company, product), "pricing"},
	})

	add("high", [][2]string{
		{fmt.Sprintf(`"%s" "%s" contract pdf`, company, product), "contract"},
		{fmt.Sprintf(`"%s" "%s" agreement pdf`, company, product), "agreement"},
		{fmt.Sprintf(`"%s" "%s" city contract pdf`, company, product), "contract"},
		{fmt.Sprintf(`"%s" "%s" county contract pdf`, company, product), "contract"},
		{fmt.Sprintf(`"%s" contract renewal pdf`, company), "renewal"},
	})

	if searchType == SearchSoftware || searchType == SearchBoth {
		add("high", [][2]string{
			{fmt.Sprintf(`"%s" "%s" software license agreement pdf`, company, product), "software_license"},
			{fmt.Sprintf(`"%s" "%s" SaaS agreement pdf`, company, product), "software_license"},
		})
	}

	add("medium", [][2]string{
		{fmt.Sprintf(`"%s" "%s" staff report pdf`, company, product), "staff_report"},
		{fmt.Sprintf(`"%s" civicweb contract`, company), "civicweb"},
		{fmt.Sprintf(`site:civicweb.net "%s" contract`, company), "civicweb"},
	})

	return queries
}
