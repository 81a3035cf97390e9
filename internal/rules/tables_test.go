package rules

import (
	"testing"
)

func TestLoadSuffixTable(t *testing.T) {
	table, err := LoadSuffixTable()
	if err != nil {
		t.Fatalf("LoadSuffixTable error: %v", err)
	}
	if table.Len() == 0 {
		t.Fatal("table is empty")
	}

	rule, ok := table.Lookup("ない", "動詞")
	if !ok {
		t.Fatal("ない not found for 動詞")
	}
	if rule.Type != F4 || rule.M != 0 {
		t.Errorf("ない rule = %+v, want F4@0", rule)
	}

	if _, ok := table.Lookup("ない", "名詞"); ok {
		t.Error("ない matched after a noun; its aConType covers verbs and adjectives only")
	}

	if _, ok := table.Lookup("存在しない接尾辞", "動詞"); ok {
		t.Error("unknown surface matched")
	}
}

func TestValidateConType(t *testing.T) {
	if err := validateConType("動詞%F4@1,名詞%F1"); err != nil {
		t.Errorf("valid aConType rejected: %v", err)
	}
	if err := validateConType("動詞%F9"); err == nil {
		t.Error("unknown F-type accepted")
	}
	if err := validateConType("*"); err == nil {
		t.Error("wildcard accepted as a table entry")
	}
	if err := validateConType("noseparator"); err == nil {
		t.Error("aConType without POS keys accepted")
	}
}
