package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/govsift/govsift/internal/model"
	"github.com/spf13/viper"
)

// loadConfig builds the runtime configuration: defaults overlaid with
// whatever the config file and environment provide
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	cfg.Output.Verbose = verbose
	return cfg, nil
}

// readCandidates loads search result candidates from a file. Two formats
// are accepted: a JSON array of {"title": ..., "url": ...} objects, or
// plain lines of title and URL separated by a tab. "-" reads stdin.
func readCandidates(path string) ([]model.Candidate, error) {
	var data []byte
	var err error

	if path == "-" {
		reader := bufio.NewReader(os.Stdin)
		var buf bytes.Buffer
		if _, err = buf.ReadFrom(reader); err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		data = buf.Bytes()
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("no candidates in %s", path)
	}

	if trimmed[0] == '[' {
		var candidates []model.Candidate
		if err := json.Unmarshal(trimmed, &candidates); err != nil {
			return nil, fmt.Errorf("parse JSON candidates: %w", err)
		}
		return candidates, nil
	}

	return parseTabLines(trimmed)
}

// parseTabLines parses "title<TAB>url" lines; lines with no tab are
// treated as bare URLs with an empty title. Titleless candidates are
// rejected as malformed once the pipeline runs.
func parseTabLines(data []byte) ([]model.Candidate, error) {
	var candidates []model.Candidate

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if title, url, found := strings.Cut(line, "\t"); found {
			candidates = append(candidates, model.Candidate{
				Title: strings.TrimSpace(title),
				URL:   strings.TrimSpace(url),
			})
		} else {
			candidates = append(candidates, model.Candidate{URL: line})
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan candidates: %w", err)
	}
	return candidates, nil
}
