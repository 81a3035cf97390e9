package storage

import (
	"context"
	"fmt"

	"github.com/hakarun/kifuku/internal/common"
	"github.com/hakarun/kifuku/internal/model"
)

// WordEntry is one dictionary row: a surface form with its base accent
// and the UniDic combination fields the suffix engine needs.
type WordEntry struct {
	Surface string
	Reading string // hiragana
	POS     string
	Accent  int
	ConType string
	ModType string
	Lemma   string
}

// LookupWord retrieves all entries for a surface form, best match first
// (exact surface, ordered by POS).
func (s *SQLiteStorage) LookupWord(ctx context.Context, surface string) ([]WordEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(surface, "surface"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT surface, reading, pos, accent, COALESCE(con_type, ''), COALESCE(mod_type, ''), COALESCE(lemma, '')
		FROM words
		WHERE surface = ? OR reading = ?
		ORDER BY pos
	`, surface, surface)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []WordEntry
	for rows.Next() {
		var e WordEntry
		if err := rows.Scan(&e.Surface, &e.Reading, &e.POS, &e.Accent, &e.ConType, &e.ModType, &e.Lemma); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate words: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownWord, surface)
	}
	return entries, nil
}

// SaveWords inserts or updates dictionary entries in one transaction.
// Returns the number of rows written.
func (s *SQLiteStorage) SaveWords(ctx context.Context, entries []WordEntry) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO words (surface, reading, pos, accent, con_type, mod_type, lemma)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(surface, reading, pos) DO UPDATE SET
			accent = excluded.accent,
			con_type = excluded.con_type,
			mod_type = excluded.mod_type,
			lemma = excluded.lemma
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	saved := 0
	for _, e := range entries {
		if e.Surface == "" || e.Reading == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, e.Surface, e.Reading, e.POS, e.Accent, e.ConType, e.ModType, e.Lemma); err != nil {
			return saved, fmt.Errorf("failed to save word %q: %w", e.Surface, err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit words: %w", err)
	}
	return saved, nil
}

// GetWordCount returns the total number of dictionary entries.
func (s *SQLiteStorage) GetWordCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM words").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return count, nil
}

// SaveOverride records a lexicalized compound whose memorized accent wins
// over the sandhi rules.
func (s *SQLiteStorage) SaveOverride(ctx context.Context, surface, reading string, pattern model.AccentPattern, source string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(surface, "surface"); err != nil {
		return err
	}
	if err := validateString(reading, "reading"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO compound_overrides (surface, reading, mora_count, accent, source)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(surface) DO UPDATE SET
			reading = excluded.reading,
			mora_count = excluded.mora_count,
			accent = excluded.accent,
			source = excluded.source
	`, surface, reading, pattern.MoraCount, pattern.Downstep, source)
	if err != nil {
		return fmt.Errorf("failed to save override: %w", err)
	}
	return nil
}

// GetOverrides loads the full override map for the pipeline.
func (s *SQLiteStorage) GetOverrides(ctx context.Context) (map[string]model.AccentPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT surface, mora_count, accent FROM compound_overrides
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query overrides: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	overrides := make(map[string]model.AccentPattern)
	for rows.Next() {
		var surface string
		var mora, accent int
		if err := rows.Scan(&surface, &mora, &accent); err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		pattern, err := model.NewAccentPattern(mora, accent)
		if err != nil {
			return nil, fmt.Errorf("%w: override %q: %v", common.ErrInvalidRuleTable, surface, err)
		}
		overrides[surface] = pattern
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate overrides: %w", err)
	}
	return overrides, nil
}

// RecordImport logs an import batch for provenance.
func (s *SQLiteStorage) RecordImport(ctx context.Context, source string, wordCount int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(source, "source"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO import_batches (source, word_count) VALUES (?, ?)
	`, source, wordCount)
	if err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}
	return nil
}

// ImportBatch describes one recorded dictionary import.
type ImportBatch struct {
	ID        int
	Source    string
	WordCount int
}

// GetImportHistory returns recorded imports, newest first.
func (s *SQLiteStorage) GetImportHistory(ctx context.Context) ([]ImportBatch, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, word_count FROM import_batches ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query imports: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var batches []ImportBatch
	for rows.Next() {
		var b ImportBatch
		if err := rows.Scan(&b.ID, &b.Source, &b.WordCount); err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate imports: %w", err)
	}
	return batches, nil
}
