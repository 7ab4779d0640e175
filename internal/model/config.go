package model

import "time"

// Config is the complete runtime configuration. All rule tables are data,
// loaded once at startup and treated as immutable by the packages that
// consume them.
type Config struct {
	HTTP         HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Limits       LimitsConfig      `yaml:"limits" mapstructure:"limits"`
	Rules        RuleSet           `yaml:"rules" mapstructure:"rules"`
	Analysis     AnalysisRules     `yaml:"analysis" mapstructure:"analysis"`
	Geo          GeoRules          `yaml:"geo" mapstructure:"geo"`
	Diversity    DiversityConfig   `yaml:"diversity" mapstructure:"diversity"`
	Output       OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls outbound document retrieval and link probing
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// CacheConfig controls the layered document cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig bounds the pipeline's fan-out stages
type ConcurrencyConfig struct {
	AnalysisWorkers  int `yaml:"analysis_workers" mapstructure:"analysis_workers"`
	LinkCheckWorkers int `yaml:"link_check_workers" mapstructure:"link_check_workers"`
}

// RateLimitConfig controls per-domain request pacing
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// LimitsConfig caps the expensive pipeline stages
type LimitsConfig struct {
	MaxLinkChecks int `yaml:"max_link_checks" mapstructure:"max_link_checks"`
	MaxDocuments  int `yaml:"max_documents" mapstructure:"max_documents"`
	MaxPages      int `yaml:"max_pages" mapstructure:"max_pages"`
}

// DiversityConfig controls the repeated-location penalty
type DiversityConfig struct {
	PenaltyStep float64 `yaml:"penalty_step" mapstructure:"penalty_step"`
	MaxPenalty  float64 `yaml:"max_penalty" mapstructure:"max_penalty"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	ShowBreakdown bool `yaml:"show_breakdown" mapstructure:"show_breakdown"`
	DisplayLimit  int  `yaml:"display_limit" mapstructure:"display_limit"`
}

// RuleSet holds the classification and filtering rule tables
type RuleSet struct {
	BlockedDomains       []string           `yaml:"blocked_domains" mapstructure:"blocked_domains"`
	TrustedMarkers       []string           `yaml:"trusted_markers" mapstructure:"trusted_markers"`
	RepositoryPatterns   []string           `yaml:"repository_patterns" mapstructure:"repository_patterns"`
	UserDocURLPatterns   []string           `yaml:"user_doc_url_patterns" mapstructure:"user_doc_url_patterns"`
	UserDocTitlePatterns []string           `yaml:"user_doc_title_patterns" mapstructure:"user_doc_title_patterns"`
	ContractKeywords     []string           `yaml:"contract_keywords" mapstructure:"contract_keywords"`
	TitleBonuses         []TitleBonus       `yaml:"title_bonuses" mapstructure:"title_bonuses"`
	DocumentTypes        []DocumentTypeRule `yaml:"document_types" mapstructure:"document_types"`
}

// TitleBonus awards a score bonus when a title contains a phrase.
// Only the single highest matching bonus is applied.
type TitleBonus struct {
	Phrase string  `yaml:"phrase" mapstructure:"phrase"`
	Bonus  float64 `yaml:"bonus" mapstructure:"bonus"`
}

// DocumentTypeRule is one entry of the priority-ordered taxonomy. Rules are
// evaluated in slice order; the first whose inclusion patterns match (and
// whose exclusion patterns do not) wins. A rule with no patterns is the
// terminal fallback.
type DocumentTypeRule struct {
	Name            string   `yaml:"name" mapstructure:"name"`
	Patterns        []string `yaml:"patterns" mapstructure:"patterns"`
	ExcludePatterns []string `yaml:"exclude_patterns,omitempty" mapstructure:"exclude_patterns"`
	Priority        int      `yaml:"priority" mapstructure:"priority"`
	PricingLikely   bool     `yaml:"pricing_likely" mapstructure:"pricing_likely"`
	Description     string   `yaml:"description" mapstructure:"description"`
}

// LabeledPattern pairs a regex with the label reported for its matches
type LabeledPattern struct {
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
	Label   string `yaml:"label" mapstructure:"label"`
}

// KeywordSet pairs a tag name with the keywords that imply it
type KeywordSet struct {
	Name     string   `yaml:"name" mapstructure:"name"`
	Keywords []string `yaml:"keywords" mapstructure:"keywords"`
}

// AnalysisRules holds the content-mining pattern families
type AnalysisRules struct {
	PricePatterns []LabeledPattern `yaml:"price_patterns" mapstructure:"price_patterns"`
	DatePatterns  []LabeledPattern `yaml:"date_patterns" mapstructure:"date_patterns"`
	TermPatterns  []LabeledPattern `yaml:"term_patterns" mapstructure:"term_patterns"`
	PricingModels []KeywordSet     `yaml:"pricing_models" mapstructure:"pricing_models"`
	Inclusions    []KeywordSet     `yaml:"inclusions" mapstructure:"inclusions"`
	MinPrice      float64          `yaml:"min_price" mapstructure:"min_price"`
	MaxPrices     int              `yaml:"max_prices" mapstructure:"max_prices"`
}

// CityEntry is one gazetteer row; slice order decides match precedence
type CityEntry struct {
	Name  string `yaml:"name" mapstructure:"name"`
	State string `yaml:"state" mapstructure:"state"`
}

// GeoRules holds the location-inference tables
type GeoRules struct {
	// States maps lowercase full state names to postal abbreviations
	States map[string]string `yaml:"states" mapstructure:"states"`
	// CompactStateCodes are the postal codes recognized in cityXX.gov hosts
	CompactStateCodes []string `yaml:"compact_state_codes" mapstructure:"compact_state_codes"`
	// KnownCities is the gazetteer; first containment match wins
	KnownCities []CityEntry `yaml:"known_cities" mapstructure:"known_cities"`
}

// DefaultConfig returns the built-in configuration with the full rule tables
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "govsift/0.2 (+https://github.com/govsift/govsift)",
			MaxBodyBytes:  20_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.govsift/cache at startup
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			AnalysisWorkers:  4,
			LinkCheckWorkers: 5,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 2,
			Burst:             4,
		},
		Limits: LimitsConfig{
			MaxLinkChecks: 30,
			MaxDocuments:  15,
			MaxPages:      15,
		},
		Diversity: DiversityConfig{
			PenaltyStep: 1.5,
			MaxPenalty:  4.0,
		},
		Output: OutputConfig{
			ShowBreakdown: true,
			DisplayLimit:  20,
		},
		Rules:    defaultRules(),
		Analysis: defaultAnalysisRules(),
		Geo:      defaultGeoRules(),
	}
}

func defaultRules() RuleSet {
	return RuleSet{
		BlockedDomains: []string{
			// Vendor sites
			"accela.com", "tyler.com", "tylertech.com", "civicplus.com", "granicus.com",
			// Review/marketing sites
			"govbusinessreview.com", "govciooutlook.com", "g2.com", "capterra.com",
			"softwareadvice.com", "softwaresuggest.com", "gartner.com", "trustradius.com",
			"getapp.com", "peerspot.com", "sourceforge.net", "slashdot.org",
			"f6s.com", "toolsinfo.com", "saascounter.com",
			// Partner/reseller marketing
			"3sgplus.com", "vision33.com", "contentarch.com", "sewcopy.com",
			"civicdata.com", "carahsoft.com",
			// Cloud marketplace artifacts
			"catalogartifact.azureedge.net", "marketplace.microsoft.com",
			"aws.amazon.com", "azure.microsoft.com",
			// Manual aggregators
			"usermanual.wiki", "scribd.com",
			// News/press
			"prnewswire.com", "businesswire.com", "globenewswire.com", "prweb.com", "prbuzz.com",
			// Bid platforms without direct document access
			"bidnet.com", "bidnetdirect.com", "bonfirehub.com", "publicpurchase.com",
			"govwin.com", "bidsync.com", "planetbids.com", "bidexpress.com",
			"demandstar.com", "negometrix.com", "ionwave.net", "bidsandawards.com",
			"highergov.com", "bidbanana.thebidlab.com",
			// PDF aggregators
			"pdffiller.com", "documentcloud.org",
			// Social and generic
			"linkedin.com", "twitter.com", "facebook.com", "youtube.com",
			"wikipedia.org", "reddit.com",
		},
		TrustedMarkers: []string{
			".gov", ".us", ".state.", "civicweb", "legistar.com",
		},
		RepositoryPatterns: []string{
			`/documents?/`, `/files?/`, `/attachments?/`, `/contracts?/`,
			`/purchasing/`, `/procurement/`, `/bids?/`, `/rfp/`, `/agenda/`,
			`/minutes/`, `/resolutions?/`, `/ordinances?/`, `documentcenter`,
			`weblink`, `edoc`, `civicweb`, `questys`, `laserfiche`, `/archive/`,
			`agendacenter`, `boardagenda`, `boardpacket`,
		},
		UserDocURLPatterns: []string{
			`user[-_]?guide`, `how[-_]?to`, `instructions`, `tutorial`,
			`help[-_]?doc`, `getting[-_]?started`, `quick[-_]?start`,
			`admin[-_]?guide`, `administrator[-_]?guide`, `scripting[-_]?guide`,
			`planning[-_]?guide`, `system[-_]?planning`, `concepts[-_]?guide`,
			`training`, `glossary`, `faq`,
		},
		UserDocTitlePatterns: []string{
			`user guide`, `user's guide`, `how to`, `instructions for`,
			`submission guide`, `submittal guide`, `online permitting system`,
			`getting started`, `tutorial`, `admin guide`, `administrator guide`,
			`scripting guide`, `concepts guide`, `gis administration`,
			`system planning`, `view and manage`, `glossary`, `faq`,
		},
		ContractKeywords: []string{
			"contract", "agreement", "procurement", "purchasing", "rfp", "bid",
			"proposal", "memo", "resolution", "agenda", "ordinance", "staff report",
			"award", "amendment", "renewal", "pricing", "order form", "fee schedule",
		},
		TitleBonuses: []TitleBonus{
			{Phrase: "order form", Bonus: 2.5},
			{Phrase: "renewal order form", Bonus: 2.5},
			{Phrase: "subscription services agreement", Bonus: 2.0},
			{Phrase: "master services agreement", Bonus: 2.0},
			{Phrase: "software license agreement", Bonus: 2.0},
			{Phrase: "license agreement", Bonus: 1.5},
			{Phrase: "pricing schedule", Bonus: 2.0},
			{Phrase: "fee schedule", Bonus: 2.0},
			{Phrase: "cost proposal", Bonus: 1.5},
			{Phrase: "price proposal", Bonus: 1.5},
			{Phrase: "cost exhibit", Bonus: 2.0},
			{Phrase: "pricing exhibit", Bonus: 2.0},
			{Phrase: "exhibit a", Bonus: 1.0},
			{Phrase: "exhibit b", Bonus: 1.0},
		},
		DocumentTypes: []DocumentTypeRule{
			{
				Name:          "Order Form",
				Patterns:      []string{"order form", "renewal order", "purchase order"},
				Priority:      1,
				PricingLikely: true,
				Description:   "Specific pricing and quantities",
			},
			{
				Name:            "Contract/Agreement",
				Patterns:        []string{"agreement", "contract", "master service"},
				ExcludePatterns: []string{`item \d+`, "agenda", "staff report", "memo"},
				Priority:        2,
				PricingLikely:   true,
				Description:     "Full contract terms with pricing",
			},
			{
				Name:          "Pricing Document",
				Patterns:      []string{"pricing", "fee schedule", "cost exhibit", "cost proposal", "price list"},
				Priority:      3,
				PricingLikely: true,
				Description:   "Detailed pricing breakdown",
			},
			{
				Name: "Staff Report/Memo",
				Patterns: []string{
					"staff report", "council report", "agenda report", "memo", "memorandum",
					`item \d+`, "board agenda", "council agenda",
				},
				Priority:      4,
				PricingLikely: false,
				Description:   "Government summary - may reference pricing",
			},
			{
				Name:          "RFP/Proposal",
				Patterns:      []string{"rfp", "request for proposal", "bid", "solicitation", "proposal", "response"},
				Priority:      5,
				PricingLikely: false,
				Description:   "Proposed/estimated pricing",
			},
			{
				Name:          "Other Government Document",
				Patterns:      nil,
				Priority:      6,
				PricingLikely: false,
				Description:   "Unknown - needs review",
			},
		},
	}
}

func defaultAnalysisRules() AnalysisRules {
	return AnalysisRules{
		PricePatterns: []LabeledPattern{
			{Pattern: `(?:total|contract|agreement)\s*(?:amount|value|price|cost)[:\s]*\$?([\d,]+(?:\.\d{2})?)`, Label: "Total Value"},
			{Pattern: `not[- ]to[- ]exceed[:\s]*\$?([\d,]+(?:\.\d{2})?)`, Label: "Not to Exceed"},
			{Pattern: `(?:annual|yearly)\s*(?:fee|cost|subscription|amount)[:\s]*\$?([\d,]+(?:\.\d{2})?)`, Label: "Annual Fee"},
			{Pattern: `(?:monthly)\s*(?:fee|cost|subscription)[:\s]*\$?([\d,]+(?:\.\d{2})?)`, Label: "Monthly Fee"},
			{Pattern: `(?:one[- ]time|implementation|setup)\s*(?:fee|cost)[:\s]*\$?([\d,]+(?:\.\d{2})?)`, Label: "One-time Fee"},
			{Pattern: `(?:license|licensing)\s*(?:fee|cost)[:\s]*\$?([\d,]+(?:\.\d{2})?)`, Label: "License Fee"},
			{Pattern: `(?:maintenance|support)\s*(?:fee|cost)[:\s]*\$?([\d,]+(?:\.\d{2})?)`, Label: "Maintenance Fee"},
			{Pattern: `(?:professional services|consulting|implementation services)[:\s]*\$?([\d,]+(?:\.\d{2})?)`, Label: "Services Fee"},
			{Pattern: `\$([\d,]+(?:\.\d{2})?)\s*(?:per year|annually|/year)`, Label: "Per Year"},
			{Pattern: `\$([\d,]+(?:\.\d{2})?)\s*(?:per month|monthly|/month)`, Label: "Per Month"},
		},
		DatePatterns: []LabeledPattern{
			{Pattern: `(?:effective|start|commencement)\s*date[:\s]*([a-z]+\s+\d{1,2},?\s+\d{4}|\d{1,2}[/-]\d{1,2}[/-]\d{4})`, Label: "Effective Date"},
			{Pattern: `(?:end|expiration|termination|expiry)\s*date[:\s]*([a-z]+\s+\d{1,2},?\s+\d{4}|\d{1,2}[/-]\d{1,2}[/-]\d{4})`, Label: "End Date"},
			{Pattern: `(?:expire|expires|expiring|terminates?)\s*(?:on\s+)?([a-z]+\s+\d{1,2},?\s+\d{4}|\d{1,2}[/-]\d{1,2}[/-]\d{4})`, Label: "Expiration"},
			{Pattern: `(?:through|until|ending)\s+([a-z]+\s+\d{1,2},?\s+\d{4}|\d{1,2}[/-]\d{1,2}[/-]\d{4})`, Label: "Valid Through"},
		},
		TermPatterns: []LabeledPattern{
			{Pattern: `(?:initial\s+)?term\s+(?:of\s+)?(\d+)\s*(?:year|yr)s?`, Label: "Term"},
			{Pattern: `(\d+)[- ]year\s+(?:term|agreement|contract)`, Label: "Term"},
			{Pattern: `(?:initial\s+)?term\s+(?:of\s+)?(\d+)\s*months?`, Label: "Term (months)"},
		},
		PricingModels: []KeywordSet{
			{Name: "subscription", Keywords: []string{"subscription", "saas", "annual fee", "recurring"}},
			{Name: "perpetual", Keywords: []string{"perpetual license", "one-time license", "permanent license"}},
			{Name: "per_user", Keywords: []string{"per user", "per seat", "named user", "concurrent user"}},
			{Name: "tiered", Keywords: []string{"tiered pricing", "volume discount", "tier 1", "tier 2"}},
			{Name: "population_based", Keywords: []string{"population-based", "per capita", "based on population"}},
		},
		Inclusions: []KeywordSet{
			{Name: "Software License", Keywords: []string{"software license", "license grant", "right to use"}},
			{Name: "Maintenance/Support", Keywords: []string{"maintenance", "support services", "technical support", "help desk"}},
			{Name: "Implementation", Keywords: []string{"implementation", "configuration", "setup", "installation"}},
			{Name: "Training", Keywords: []string{"training", "user training", "admin training"}},
			{Name: "Hosting", Keywords: []string{"hosting", "cloud hosting", "saas", "data center"}},
			{Name: "Data Migration", Keywords: []string{"data migration", "data conversion", "import"}},
			{Name: "Customization", Keywords: []string{"customization", "custom development", "modifications"}},
			{Name: "Integrations", Keywords: []string{"integration", "api", "interface", "third-party"}},
		},
		MinPrice:  100,
		MaxPrices: 8,
	}
}

func defaultGeoRules() GeoRules {
	return GeoRules{
		States: map[string]string{
			"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
			"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
			"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
			"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
			"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
			"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
			"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
			"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
			"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
			"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
			"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
			"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
			"wisconsin": "WI", "wyoming": "WY", "district of columbia": "DC",
		},
		CompactStateCodes: []string{
			"ca", "tx", "ny", "fl", "wa", "or", "az", "co", "il", "oh", "pa", "ga",
			"nc", "nj", "va", "ma", "mi", "md", "mn", "mo", "wi", "tn", "in", "ks",
			"ne", "nv",
		},
		KnownCities: []CityEntry{
			{Name: "anaheim", State: "CA"}, {Name: "berkeley", State: "CA"},
			{Name: "san diego", State: "CA"}, {Name: "san francisco", State: "CA"},
			{Name: "los angeles", State: "CA"}, {Name: "oakland", State: "CA"},
			{Name: "sacramento", State: "CA"}, {Name: "fresno", State: "CA"},
			{Name: "galveston", State: "TX"}, {Name: "houston", State: "TX"},
			{Name: "dallas", State: "TX"}, {Name: "austin", State: "TX"},
			{Name: "tacoma", State: "WA"}, {Name: "seattle", State: "WA"},
			{Name: "spokane", State: "WA"}, {Name: "bellevue", State: "WA"},
			{Name: "hillsboro", State: "OR"}, {Name: "portland", State: "OR"},
			{Name: "salem", State: "OR"}, {Name: "eugene", State: "OR"},
			{Name: "denver", State: "CO"}, {Name: "phoenix", State: "AZ"},
			{Name: "goodyear", State: "AZ"}, {Name: "charlotte", State: "NC"},
			{Name: "tampa", State: "FL"}, {Name: "miami", State: "FL"},
			{Name: "brevard", State: "FL"}, {Name: "papillion", State: "NE"},
			{Name: "omaha", State: "NE"}, {Name: "andover", State: "KS"},
			{Name: "moreno valley", State: "CA"}, {Name: "moval", State: "CA"},
			{Name: "merced", State: "CA"}, {Name: "washoe", State: "NV"},
			{Name: "kern", State: "CA"}, {Name: "evanston", State: "IL"},
			{Name: "mulberry", State: "FL"},
		},
	}
}
