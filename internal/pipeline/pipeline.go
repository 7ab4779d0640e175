package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/govsift/govsift/internal/analyze"
	"github.com/govsift/govsift/internal/cache"
	"github.com/govsift/govsift/internal/classify"
	"github.com/govsift/govsift/internal/extract"
	"github.com/govsift/govsift/internal/geo"
	"github.com/govsift/govsift/internal/model"
	"github.com/govsift/govsift/internal/rank"
	"github.com/govsift/govsift/internal/score"
	"github.com/govsift/govsift/internal/util"
	"github.com/govsift/govsift/internal/validate"
	"github.com/govsift/govsift/internal/worker"
)

// Version is stamped into report metadata
const Version = "0.2.0"

// Pipeline orchestrates filtering, scoring, validation, content analysis
// and ranking of search result candidates
type Pipeline struct {
	cfg       *model.Config
	domains   *classify.DomainClassifier
	filter    *classify.Filter
	scorer    *score.Scorer
	diversity *rank.DiversityRanker
	analyzer  *analyze.Analyzer
	texts     *extract.Dispatcher
	fetcher   *Fetcher
	links     *validate.LinkChecker
	verbose   bool
}

// New creates a pipeline from configuration. pdf is the optional PDF
// text extractor; nil means PDF documents yield no text.
func New(cfg *model.Config, pdf extract.Extractor) *Pipeline {
	domains := classify.NewDomainClassifier(&cfg.Rules)
	docTypes := classify.NewDocTypeClassifier(cfg.Rules.DocumentTypes)
	limiter := worker.NewDomainLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.Burst)

	var robots *util.RobotsChecker
	if cfg.HTTP.RespectRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	var store cache.Cache = cache.Nop{}
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cacheDir(cfg.Cache.Dir), cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		cfg:       cfg,
		domains:   domains,
		filter:    classify.NewFilter(domains, &cfg.Rules),
		scorer:    score.NewScorer(domains, docTypes, &cfg.Rules),
		diversity: rank.NewDiversityRanker(geo.NewExtractor(&cfg.Geo), cfg.Diversity),
		analyzer:  analyze.NewAnalyzer(&cfg.Analysis),
		texts:     extract.NewDispatcher(pdf),
		fetcher:   NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes, store, robots, limiter),
		links:     validate.NewLinkChecker(cfg.HTTP.Timeout, cfg.Concurrency.LinkCheckWorkers, cfg.HTTP.UserAgent, limiter),
		verbose:   cfg.Output.Verbose,
	}
}

// Request describes one pipeline run
type Request struct {
	Company        string
	Product        string
	Candidates     []model.Candidate
	CheckLinks     bool
	DropBroken     bool
	AnalyzeContent bool
}

// Run executes the full pipeline and returns the ranked report
func (p *Pipeline) Run(ctx context.Context, req Request) (*model.Report, error) {
	company := strings.TrimSpace(req.Company)
	product := strings.TrimSpace(req.Product)
	if company == "" || product == "" {
		return nil, fmt.Errorf("company and product are required")
	}

	// Filter and score. Candidates missing a title or URL are malformed
	// and never reach the filter.
	kept := make([]model.Candidate, 0, len(req.Candidates))
	for _, c := range req.Candidates {
		if strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.URL) == "" {
			p.logf("skip malformed candidate: %q", c.URL)
			continue
		}
		c.Link = model.LinkValidity{State: model.LinkUnchecked}

		admitted, reason := p.filter.Admit(&c, company, product)
		if !admitted {
			p.logf("skip: %s (%s)", c.URL, reason)
			continue
		}
		c.IncludeReason = reason
		p.scorer.Score(&c, company, product)
		kept = append(kept, c)
	}
	p.logf("admitted %d of %d candidates", len(kept), len(req.Candidates))

	kept = rank.Deduplicate(kept)
	rank.SortByScore(kept)

	if req.CheckLinks {
		kept = p.checkLinks(ctx, kept, req.DropBroken)
	}

	if req.AnalyzeContent {
		p.analyzeContent(ctx, kept, company, product)

		rescorer := score.NewRescorer(company, product)
		rescorer.Apply(kept)
		rank.SortByScore(kept)
	}

	p.diversity.Apply(kept)
	rank.SortByScore(kept)

	return &model.Report{
		Metadata: model.Metadata{
			Company:      company,
			Product:      product,
			GeneratedAt:  time.Now().UTC(),
			TotalResults: len(kept),
			Version:      Version,
		},
		Results: kept,
	}, nil
}

// checkLinks probes the top candidates and annotates their validity
func (p *Pipeline) checkLinks(ctx context.Context, candidates []model.Candidate, dropBroken bool) []model.Candidate {
	limit := p.cfg.Limits.MaxLinkChecks
	if limit <= 0 || limit > len(candidates) {
		limit = len(candidates)
	}

	urls := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		urls = append(urls, candidates[i].URL)
	}

	p.logf("checking %d links", len(urls))
	validity := p.links.Check(ctx, urls)

	out := candidates[:0]
	for i := range candidates {
		if v, ok := validity[candidates[i].URL]; ok {
			candidates[i].Link = v
		}
		if dropBroken && candidates[i].Link.State == model.LinkInvalid {
			p.logf("drop broken: %s (%s)", candidates[i].URL, candidates[i].Link.Reason)
			continue
		}
		out = append(out, candidates[i])
	}
	return out
}

// analyzeContent downloads and mines the most promising documents in
// parallel, writing a ContentReport onto each analyzed candidate
func (p *Pipeline) analyzeContent(ctx context.Context, candidates []model.Candidate, company, product string) {
	indices := p.selectForAnalysis(candidates)
	if len(indices) == 0 {
		return
	}
	p.logf("analyzing %d documents", len(indices))

	pool := worker.NewPool(p.cfg.Concurrency.AnalysisWorkers)
	pool.Start()

	for _, idx := range indices {
		pool.Submit(&analysisJob{
			index:    idx,
			url:      candidates[idx].URL,
			pipeline: p,
			company:  company,
			product:  product,
		})
	}

	for _, res := range pool.Wait() {
		ar, ok := res.(*analysisResult)
		if !ok {
			continue
		}
		candidates[ar.index].Content = ar.report
	}
}

// selectForAnalysis picks the top candidates worth downloading: PDFs
// anywhere plus any document hosted on a trusted domain
func (p *Pipeline) selectForAnalysis(candidates []model.Candidate) []int {
	limit := p.cfg.Limits.MaxDocuments
	if limit <= 0 {
		limit = len(candidates)
	}

	var indices []int
	for i := range candidates {
		if len(indices) >= limit {
			break
		}
		if candidates[i].Link.State == model.LinkInvalid {
			continue
		}
		if classify.IsPDF(candidates[i].URL) || p.domains.IsTrusted(candidates[i].URL) {
			indices = append(indices, i)
		}
	}
	return indices
}

// analysisJob downloads and analyzes one document
type analysisJob struct {
	index    int
	url      string
	pipeline *Pipeline
	company  string
	product  string
}

type analysisResult struct {
	index  int
	report *model.ContentReport
	err    error
}

func (r *analysisResult) GetError() error { return r.err }

func (j *analysisJob) Execute(ctx context.Context) worker.Result {
	report := j.pipeline.analyzeOne(ctx, j.url, j.company, j.product)
	res := &analysisResult{index: j.index, report: report}
	if report.Error != "" {
		res.err = fmt.Errorf("%s", report.Error)
	}
	return res
}

// analyzeOne fetches a document, extracts its text and mines it
func (p *Pipeline) analyzeOne(ctx context.Context, rawURL, company, product string) *model.ContentReport {
	fetched, err := p.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return &model.ContentReport{
			Status: model.StatusDownloadFailed,
			Error:  err.Error(),
		}
	}

	text, err := p.texts.Extract(fetched.Data, p.cfg.Limits.MaxPages)
	if err != nil {
		return &model.ContentReport{
			Status: model.StatusError,
			Error:  err.Error(),
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return &model.ContentReport{Status: model.StatusNoText}
	}

	return &model.ContentReport{
		Status:     model.StatusAnalyzed,
		TextLength: len(text),
		Analysis:   p.analyzer.Analyze(text, company, product),
	}
}

// AnalyzeURL fetches and mines a single document outside a full run
func (p *Pipeline) AnalyzeURL(ctx context.Context, rawURL, company, product string) *model.ContentReport {
	return p.analyzeOne(ctx, rawURL, company, product)
}

// cacheDir resolves the document cache location
func cacheDir(configured string) string {
	if configured != "" {
		return configured
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".govsift", "cache")
	}
	return filepath.Join(os.TempDir(), "govsift-cache")
}

// logf prints progress to stderr when verbose output is enabled
func (p *Pipeline) logf(format string, args ...any) {
	if !p.verbose {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
