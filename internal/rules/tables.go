package rules

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hakarun/kifuku/internal/common"
)

//go:embed data/suffix_rules.json
var suffixRulesJSON []byte

// suffixEntry is one row of the static suffix rule table, extracted from
// UniDic's accent fields. The table backs suffixes the analyzer returned
// without an aConType of their own.
type suffixEntry struct {
	Surface string `json:"surface"`
	POS1    string `json:"pos1"`
	POS2    string `json:"pos2"`
	CType   string `json:"ctype"`
	ConType string `json:"con_type"`
}

type suffixRulesFile struct {
	SuffixRules map[string]suffixEntry `json:"suffix_rules"`
}

// SuffixTable is the read-only F-type rule table, keyed by suffix surface.
// Loaded once at startup; safe for concurrent reads.
type SuffixTable struct {
	bySurface map[string][]suffixEntry
}

// LoadSuffixTable parses and validates the embedded rule table. Any entry
// whose aConType names an unparseable rule is a fatal configuration error:
// the table is assumed complete and correct, so a bad row means the data
// extraction broke, not that user input is odd.
func LoadSuffixTable() (*SuffixTable, error) {
	var file suffixRulesFile
	if err := json.Unmarshal(suffixRulesJSON, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidRuleTable, err)
	}
	if len(file.SuffixRules) == 0 {
		return nil, fmt.Errorf("%w: no suffix rules", common.ErrInvalidRuleTable)
	}

	table := &SuffixTable{bySurface: make(map[string][]suffixEntry, len(file.SuffixRules))}
	for key, entry := range file.SuffixRules {
		if entry.Surface == "" {
			return nil, fmt.Errorf("%w: entry %q has no surface", common.ErrInvalidRuleTable, key)
		}
		if err := validateConType(entry.ConType); err != nil {
			return nil, fmt.Errorf("%w: entry %q: %v", common.ErrInvalidRuleTable, key, err)
		}
		table.bySurface[entry.Surface] = append(table.bySurface[entry.Surface], entry)
	}
	return table, nil
}

// validateConType checks that every POS-keyed spec in an aConType value
// parses as a known F-rule.
func validateConType(conType string) error {
	if conType == "" || conType == "*" {
		return fmt.Errorf("empty aConType")
	}
	seen := false
	for _, part := range strings.Split(conType, ",") {
		_, spec, ok := strings.Cut(part, "%")
		if !ok {
			continue
		}
		if _, err := ParseFRule(spec); err != nil {
			return err
		}
		seen = true
	}
	if !seen {
		return fmt.Errorf("no POS-keyed rules in %q", conType)
	}
	return nil
}

// Lookup finds the combination rule for a suffix surface when it follows a
// word of the given POS class.
func (t *SuffixTable) Lookup(surface, posKey string) (FRule, bool) {
	for _, entry := range t.bySurface[surface] {
		if rule, ok := ParseConType(entry.ConType, posKey); ok {
			return rule, true
		}
	}
	return FRule{}, false
}

// Len returns the number of distinct suffix surfaces in the table.
func (t *SuffixTable) Len() int {
	return len(t.bySurface)
}
