package geo

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/govsift/govsift/internal/model"
)

// Extractor infers a human-readable place name from a candidate's URL and
// title. It runs a cascade of host-pattern rules, then a gazetteer lookup,
// then free-text phrase extraction, stopping at the first rule that yields
// a city or county.
type Extractor struct {
	states       map[string]string
	abbrevToFull map[string]string
	stateNames   []string // sorted longest-first for free-text containment
	cities       []model.CityEntry

	reCivicHost  *regexp.Regexp
	reCompactGov *regexp.Regexp
	reCityStUS   *regexp.Regexp
	reCountyUS   *regexp.Regexp
	reCountyHost *regexp.Regexp
	reStateHost  *regexp.Regexp
	reCityStGov  *regexp.Regexp
	reCityOf     *regexp.Regexp
	reCountyOf   *regexp.Regexp
}

// NewExtractor builds an extractor from the geo rule tables
func NewExtractor(rules *model.GeoRules) *Extractor {
	e := &Extractor{
		states:       rules.States,
		abbrevToFull: make(map[string]string, len(rules.States)),
		cities:       rules.KnownCities,
	}

	for name, abbrev := range rules.States {
		e.abbrevToFull[abbrev] = titleCase(name)
		e.stateNames = append(e.stateNames, name)
	}
	// Longest first so "west virginia" wins over "virginia"
	sort.Slice(e.stateNames, func(i, j int) bool {
		if len(e.stateNames[i]) == len(e.stateNames[j]) {
			return e.stateNames[i] < e.stateNames[j]
		}
		return len(e.stateNames[i]) > len(e.stateNames[j])
	})

	codes := strings.Join(rules.CompactStateCodes, "|")

	e.reCivicHost = regexp.MustCompile(`([a-z]+)-([a-z]+)\.(?:civicweb|legistar)`)
	e.reCompactGov = regexp.MustCompile(`(?:www\.)?([a-z]+)(` + codes + `)\.gov`)
	e.reCityStUS = regexp.MustCompile(`(?:www\.)?([a-z]+)\.([a-z]{2})\.us`)
	e.reCountyUS = regexp.MustCompile(`co\.([a-z]+)\.([a-z]{2})\.us`)
	e.reCountyHost = regexp.MustCompile(`(?:www\.)?([a-z]+)county\.(?:gov|org|us)`)
	e.reStateHost = regexp.MustCompile(`(?:state|das|dgs|doa)\.([a-z]{2})\.(?:us|gov)`)
	e.reCityStGov = regexp.MustCompile(`(?:www\.)?([a-z]+)\.([a-z]{2})\.gov`)
	e.reCityOf = regexp.MustCompile(`city of ([a-z]+(?: [a-z]+)?)`)
	e.reCountyOf = regexp.MustCompile(`county of ([a-z]+(?: [a-z]+)?)`)

	return e
}

// Extract returns one of five shapes: "State of <Name>",
// "<County> County, <ST>", "<City>, <ST>", a single known fragment, or
// "Unknown". City and county are never combined.
func (e *Extractor) Extract(rawURL, title string) string {
	host := hostOf(rawURL)
	text := strings.ToLower(rawURL) + " " + strings.ToLower(title)

	var city, county, stateAbbrev string
	stateLevel := false

	// Host: city-state.civicweb / city-state.legistar
	if m := e.reCivicHost.FindStringSubmatch(host); m != nil {
		if abbrev, ok := e.states[m[2]]; ok {
			city = titleCase(m[1])
			stateAbbrev = abbrev
		}
	}

	// Host: cityST.gov with a compact state code
	if city == "" {
		if m := e.reCompactGov.FindStringSubmatch(host); m != nil {
			city = titleCase(m[1])
			stateAbbrev = strings.ToUpper(m[2])
		}
	}

	// Host: co.county.st.us, before the city form so county hosts do not
	// parse as cities
	if city == "" && county == "" {
		if m := e.reCountyUS.FindStringSubmatch(host); m != nil {
			county = titleCase(m[1])
			stateAbbrev = strings.ToUpper(m[2])
		}
	}

	// Host: city.st.us
	if city == "" && county == "" {
		if m := e.reCityStUS.FindStringSubmatch(host); m != nil {
			city = titleCase(m[1])
			stateAbbrev = strings.ToUpper(m[2])
		}
	}

	// Host: somethingcounty.gov/org/us, county with no state
	if city == "" && county == "" {
		if m := e.reCountyHost.FindStringSubmatch(host); m != nil {
			county = titleCase(m[1])
		}
	}

	// Host: state agency (state.st.us, das.st.gov, ...)
	if city == "" && county == "" {
		if m := e.reStateHost.FindStringSubmatch(host); m != nil {
			stateAbbrev = strings.ToUpper(m[1])
			stateLevel = true
		}
	}

	// Host: city.st.gov with a dotted state code. Runs after the agency
	// check so state hosts like das.oh.gov keep their state shape; the
	// two-letter token must be a real state code.
	if city == "" && county == "" && !stateLevel {
		if m := e.reCityStGov.FindStringSubmatch(host); m != nil {
			if abbrev := strings.ToUpper(m[2]); e.abbrevToFull[abbrev] != "" {
				city = titleCase(m[1])
				stateAbbrev = abbrev
			}
		}
	}

	// Gazetteer: first containment match wins; a nearby "county" marker
	// reclassifies the matched name as a county
	if city == "" && county == "" {
		for _, entry := range e.cities {
			if strings.Contains(text, entry.Name) {
				if strings.Contains(text, "county") {
					county = titleCase(entry.Name)
				} else {
					city = titleCase(entry.Name)
				}
				if stateAbbrev == "" {
					stateAbbrev = entry.State
				}
				break
			}
		}
	}

	// Free text: "city of X" / "county of X". A trailing state name in the
	// captured phrase belongs to the state, not the place name.
	if city == "" && county == "" {
		if m := e.reCountyOf.FindStringSubmatch(text); m != nil {
			name, abbrev := e.trimStateSuffix(m[1])
			county = titleCase(name)
			if stateAbbrev == "" {
				stateAbbrev = abbrev
			}
		} else if m := e.reCityOf.FindStringSubmatch(text); m != nil {
			name, abbrev := e.trimStateSuffix(m[1])
			city = titleCase(name)
			if stateAbbrev == "" {
				stateAbbrev = abbrev
			}
		}
	}

	// Free text: full state name containment
	if stateAbbrev == "" {
		for _, name := range e.stateNames {
			if strings.Contains(text, name) {
				stateAbbrev = e.states[name]
				break
			}
		}
	}

	return compose(city, county, stateAbbrev, stateLevel, e.abbrevToFull)
}

// trimStateSuffix drops a state name from the end of a captured place
// phrase, returning the shortened phrase and the state's abbreviation
func (e *Extractor) trimStateSuffix(phrase string) (string, string) {
	for _, name := range e.stateNames {
		if phrase == name {
			continue
		}
		if strings.HasSuffix(phrase, " "+name) {
			return strings.TrimSuffix(phrase, " "+name), e.states[name]
		}
	}
	return phrase, ""
}

// compose emits exactly one of the five documented output shapes
func compose(city, county, stateAbbrev string, stateLevel bool, abbrevToFull map[string]string) string {
	if stateLevel && stateAbbrev != "" {
		full, ok := abbrevToFull[stateAbbrev]
		if !ok {
			full = stateAbbrev
		}
		return "State of " + full
	}

	if county != "" && stateAbbrev != "" {
		return county + " County, " + stateAbbrev
	}
	if city != "" && stateAbbrev != "" {
		return city + ", " + stateAbbrev
	}
	if county != "" {
		return county + " County"
	}
	if city != "" {
		return city
	}
	if stateAbbrev != "" {
		return stateAbbrev
	}
	return "Unknown"
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Host)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
