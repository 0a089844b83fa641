package inference

import (
	"context"
	"slices"
	"strings"

	"github.com/agentstation/skillmap/pkg/institutions"
)

// Rule maps keywords found in an institution's text to a skill domain.
type Rule struct {
	Domain   string
	Keywords []string
	Tools    []institutions.Tool
}

// Keyword is the default, deterministic inferrer. A domain's signal is the
// number of keyword hits across name, category and program names; programs
// that hit a rule become specializations.
type Keyword struct {
	rules []Rule
}

// NewKeyword creates a keyword inferrer. With no rules, DefaultRules is used.
func NewKeyword(rules ...Rule) *Keyword {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	folded := make([]Rule, len(rules))
	for i, r := range rules {
		folded[i] = Rule{Domain: r.Domain, Tools: slices.Clone(r.Tools)}
		for _, kw := range r.Keywords {
			folded[i].Keywords = append(folded[i].Keywords, institutions.Fold(kw))
		}
	}
	return &Keyword{rules: folded}
}

// Name returns the inferrer name.
func (k *Keyword) Name() string {
	return "keyword"
}

// Infer classifies inst by keyword matching. It never fails.
func (k *Keyword) Infer(_ context.Context, inst institutions.Institution) (Skills, error) {
	skills := Skills{Domains: institutions.Domains{}}

	header := institutions.Fold(inst.Name + " " + string(inst.Category))
	programs := inst.Programs()

	for _, rule := range k.rules {
		hits := countHits(header, rule.Keywords)
		for _, p := range programs {
			n := countHits(institutions.Fold(p.Name), rule.Keywords)
			if n == 0 {
				continue
			}
			hits += n
			if p.Name != "" && !slices.Contains(skills.Specializations, p.Name) {
				skills.Specializations = append(skills.Specializations, p.Name)
			}
		}
		if hits == 0 {
			continue
		}
		skills.Domains[rule.Domain] += float64(hits)
		skills.Tools = append(skills.Tools, rule.Tools...)
	}

	return skills, nil
}

func countHits(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

// DefaultRules returns the built-in district skill taxonomy.
func DefaultRules() []Rule {
	return []Rule{
		{
			Domain:   "information_technology",
			Keywords: []string{"computer", "software", "data science", "information technology", "artificial intelligence", "programming", "copa"},
			Tools: []institutions.Tool{
				{Name: "Python", Category: "language"},
				{Name: "SQL", Category: "database"},
				{Name: "MS Office", Category: "productivity"},
			},
		},
		{
			Domain:   "electronics",
			Keywords: []string{"electronic", "electrical", "electrician", "communication"},
			Tools: []institutions.Tool{
				{Name: "Multimeter", Category: "instrument"},
				{Name: "PLC", Category: "automation"},
			},
		},
		{
			Domain:   "manufacturing",
			Keywords: []string{"mechanical", "fitter", "welder", "machinist", "turner", "production", "fabrication"},
			Tools: []institutions.Tool{
				{Name: "AutoCAD", Category: "design"},
				{Name: "CNC", Category: "machine"},
				{Name: "Lathe", Category: "machine"},
			},
		},
		{
			Domain:   "construction",
			Keywords: []string{"civil", "draughtsman", "plumber", "architecture", "surveyor"},
			Tools: []institutions.Tool{
				{Name: "AutoCAD", Category: "design"},
				{Name: "Total Station", Category: "instrument"},
			},
		},
		{
			Domain:   "automotive",
			Keywords: []string{"automobile", "motor vehicle", "mechanic diesel", "automotive"},
			Tools: []institutions.Tool{
				{Name: "Engine Diagnostics", Category: "instrument"},
			},
		},
		{
			Domain:   "healthcare",
			Keywords: []string{"nursing", "pharmacy", "medical", "paramedical", "health"},
			Tools: []institutions.Tool{
				{Name: "Patient Monitoring", Category: "clinical"},
			},
		},
		{
			Domain:   "agriculture",
			Keywords: []string{"agri", "horticulture", "dairy", "fisheries", "food processing"},
			Tools: []institutions.Tool{
				{Name: "Drip Irrigation", Category: "equipment"},
			},
		},
		{
			Domain:   "hospitality",
			Keywords: []string{"hotel", "catering", "tourism", "food production", "bakery"},
		},
		{
			Domain:   "commerce",
			Keywords: []string{"commerce", "business", "accounting", "management", "banking"},
			Tools: []institutions.Tool{
				{Name: "Tally", Category: "accounting"},
				{Name: "MS Office", Category: "productivity"},
			},
		},
	}
}
