// Package corpus loads example-sentence corpora for bulk analysis: the
// Tatoeba Japanese sentence dump and plain text files.
package corpus

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hakarun/kifuku/internal/common"

	"github.com/schollz/progressbar/v3"
)

// DefaultTatoebaURL is the per-language sentence export from tatoeba.org.
const DefaultTatoebaURL = "https://downloads.tatoeba.org/exports/per_language/jpn/jpn_sentences.tsv.bz2"

// Loader fetches and caches sentence corpora.
type Loader struct {
	cacheDir string
	client   *http.Client
}

// NewLoader creates a loader caching downloads under cacheDir.
func NewLoader(cacheDir string) *Loader {
	return &Loader{
		cacheDir: cacheDir,
		client:   &http.Client{Timeout: 5 * time.Minute},
	}
}

// LoadTextFile reads sentences from a plain text file, one block of prose
// per line. Blank lines and # comments are skipped.
func LoadTextFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}
	return lines, nil
}

// Sentence length bounds for corpus rows, in runes. Fragments below the
// minimum carry no useful accent context; rows above the maximum are
// usually concatenation artifacts in the export.
const (
	minSentenceLen = 5
	maxSentenceLen = 100
)

// IsJapaneseSentence reports whether at least half of a sentence's runes
// are kana or CJK ideographs. The export's lang column is unreliable for
// romaji transcriptions, so rows are checked character by character.
func IsJapaneseSentence(text string) bool {
	jp, total := 0, 0
	for _, r := range text {
		total++
		if (r >= 0x3040 && r <= 0x309F) || // hiragana
			(r >= 0x30A0 && r <= 0x30FF) || // katakana
			(r >= 0x4E00 && r <= 0x9FFF) { // CJK ideographs
			jp++
		}
	}
	if total == 0 {
		return false
	}
	return jp*2 >= total
}

// ParseTatoebaTSV reads Tatoeba's three-column export (id, lang, text) and
// returns the sentence texts. Rows are kept only when tagged jpn, mostly
// written in Japanese script, and of usable length. limit <= 0 means no
// limit.
func ParseTatoebaTSV(r io.Reader, limit int) ([]string, error) {
	var sentences []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.SplitN(scanner.Text(), "\t", 3)
		if len(fields) != 3 {
			continue
		}
		if fields[1] != "jpn" {
			continue
		}
		sentence := strings.TrimSpace(fields[2])
		if n := utf8.RuneCountInString(sentence); n < minSentenceLen || n > maxSentenceLen {
			continue
		}
		if !IsJapaneseSentence(sentence) {
			continue
		}
		sentences = append(sentences, sentence)
		if limit > 0 && len(sentences) >= limit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse Tatoeba export: %w", err)
	}
	return sentences, nil
}

// LoadTatoeba returns Japanese sentences from a cached Tatoeba export,
// downloading and decompressing it on first use. The cache always holds
// the plain .tsv.
func (l *Loader) LoadTatoeba(ctx context.Context, url string, limit int) ([]string, error) {
	if url == "" {
		url = DefaultTatoebaURL
	}

	cached := filepath.Join(l.cacheDir, filepath.Base(url))
	cached = strings.TrimSuffix(cached, ".bz2")
	cached = strings.TrimSuffix(cached, ".gz")

	if _, err := os.Stat(cached); err != nil {
		if err := l.download(ctx, url, cached); err != nil {
			return nil, err
		}
	} else {
		slog.Debug("Using cached corpus", "path", cached)
	}

	f, err := os.Open(cached)
	if err != nil {
		return nil, fmt.Errorf("failed to open cached corpus: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return ParseTatoebaTSV(f, limit)
}

// decompressReader wraps r according to the url's compression suffix.
// Tatoeba has served both bz2 and gz exports over the years.
func decompressReader(url string, r io.Reader) (io.Reader, error) {
	switch {
	case strings.HasSuffix(url, ".bz2"):
		return bzip2.NewReader(r), nil
	case strings.HasSuffix(url, ".gz"):
		return gzip.NewReader(r)
	default:
		return r, nil
	}
}

// download fetches url to dest with retry and a progress bar, decompressing
// bz2/gz payloads so dest is always the plain TSV.
func (l *Loader) download(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	slog.Info("Downloading corpus", "url", url)

	return common.WithRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}

		resp, err := l.client.Do(req)
		if err != nil {
			return err
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return common.ErrRateLimit
		case resp.StatusCode >= 500:
			return fmt.Errorf("corpus server returned %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return &common.RetryableError{
				Err:       fmt.Errorf("corpus download failed with status %d", resp.StatusCode),
				Retryable: false,
			}
		}

		tmp := dest + ".tmp"
		out, err := os.Create(tmp)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}

		// The bar tracks bytes off the wire; decompression happens
		// between it and the cache file.
		bar := progressbar.DefaultBytes(resp.ContentLength, "downloading")
		src, err := decompressReader(url, io.TeeReader(resp.Body, bar))
		if err != nil {
			_ = out.Close()
			_ = os.Remove(tmp)
			return &common.RetryableError{
				Err:       fmt.Errorf("corpus payload is not valid compressed data: %w", err),
				Retryable: false,
			}
		}

		_, err = io.Copy(out, src)
		closeErr := out.Close()
		if err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("failed to download corpus: %w", err)
		}
		if closeErr != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("failed to write corpus: %w", closeErr)
		}

		return os.Rename(tmp, dest)
	}, common.RetryOptions{MaxAttempts: 3, InitialDelay: time.Second})
}
