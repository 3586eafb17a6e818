package classification

import (
	"fmt"
	"os"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/core/ledger"
	"gopkg.in/yaml.v3"
)

// fileFormat mirrors the YAML document.
//
//	cashAccounts: [Cash]
//	categories:
//	  CURRENT_ASSET:
//	    - {from: "1000", to: "1499"}
//	accounts:
//	  "1300": [INVENTORY]
//	cashFlow:
//	  "1500": INVESTING
type fileFormat struct {
	CashAccounts []string                      `yaml:"cashAccounts"`
	Categories   map[string][]ledger.CodeRange `yaml:"categories"`
	Accounts     map[string][]string           `yaml:"accounts"`
	CashFlow     map[string]string             `yaml:"cashFlow"`
}

// Settings is a parsed classification file.
type Settings struct {
	CashAccountNames []string
	Classification   ledger.Classification
}

// Load reads and parses the classification file at path. An empty path yields
// empty settings.
func Load(path string) (*Settings, error) {
	if path == "" {
		return &Settings{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classification file %s: %w", path, err)
	}
	settings, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("classification file %s: %w", path, err)
	}
	return settings, nil
}

// Parse decodes a classification document, rejecting unknown categories,
// unknown activities and inverted ranges.
func Parse(data []byte) (*Settings, error) {
	var raw fileFormat
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	known := make(map[ledger.Category]bool, len(ledger.Categories))
	for _, c := range ledger.Categories {
		known[c] = true
	}
	category := func(name string) (ledger.Category, error) {
		c := ledger.Category(strings.ToUpper(strings.TrimSpace(name)))
		if !known[c] {
			return "", fmt.Errorf("unknown category %q", name)
		}
		return c, nil
	}

	c := ledger.Classification{
		Ranges:   make(map[ledger.Category][]ledger.CodeRange),
		Accounts: make(map[string][]ledger.Category),
		CashFlow: make(map[string]domain.CashFlowActivity),
	}

	for name, ranges := range raw.Categories {
		cat, err := category(name)
		if err != nil {
			return nil, err
		}
		for _, r := range ranges {
			if r.From == "" || r.To == "" {
				return nil, fmt.Errorf("category %s: range needs both from and to", cat)
			}
			if ledger.CompareCodes(r.From, r.To) > 0 {
				return nil, fmt.Errorf("category %s: range %s-%s is inverted", cat, r.From, r.To)
			}
			c.Ranges[cat] = append(c.Ranges[cat], r)
		}
	}

	for code, names := range raw.Accounts {
		for _, name := range names {
			cat, err := category(name)
			if err != nil {
				return nil, fmt.Errorf("account %s: %w", code, err)
			}
			c.Accounts[code] = append(c.Accounts[code], cat)
		}
	}

	for code, name := range raw.CashFlow {
		activity := domain.CashFlowActivity(strings.ToUpper(strings.TrimSpace(name)))
		if !activity.IsValid() {
			return nil, fmt.Errorf("account %s: unknown cash flow activity %q", code, name)
		}
		c.CashFlow[code] = activity
	}

	return &Settings{CashAccountNames: raw.CashAccounts, Classification: c}, nil
}
