// Package segment adapts an external morphological analyzer (MeCab with a
// UniDic dictionary) and drives the accent pipeline over its output. All
// segmentation happens outside this module; we only parse what the
// analyzer emits.
package segment

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/hakarun/kifuku/internal/model"
)

// Segmenter produces morphemes with UniDic accent fields for a text.
type Segmenter interface {
	Segment(ctx context.Context, text string) ([]model.Morpheme, error)
}

// UniDic CSV feature indexes (UniDic 3.1 layout).
const (
	fieldPOS1    = 0
	fieldPOS2    = 1
	fieldCType   = 4
	fieldCForm   = 5
	fieldLemma   = 7
	fieldKana    = 20
	fieldAType   = 24
	fieldConType = 25
	fieldModType = 26
)

// MeCabSegmenter shells out to the mecab binary. The dictionary directory
// must point at a UniDic install; the accent fields (aType, aConType,
// aModType) are only present there.
type MeCabSegmenter struct {
	Binary string // mecab executable, default "mecab"
	DicDir string // -d argument, empty for the system default
}

// NewMeCabSegmenter creates a segmenter for the given dictionary directory.
func NewMeCabSegmenter(dicDir string) *MeCabSegmenter {
	return &MeCabSegmenter{Binary: "mecab", DicDir: dicDir}
}

// Segment runs mecab over the text and parses its node-per-line output.
func (s *MeCabSegmenter) Segment(ctx context.Context, text string) ([]model.Morpheme, error) {
	binary := s.Binary
	if binary == "" {
		binary = "mecab"
	}

	var args []string
	if s.DicDir != "" {
		args = append(args, "-d", s.DicDir)
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("mecab failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return ParseMeCabOutput(stdout.String())
}

// ParseMeCabOutput parses mecab's default output format: one
// "surface\tfeature,feature,..." line per morpheme, terminated by EOS.
// Feature fields containing commas (aConType often does) are quoted, so
// each feature string is read as a CSV record.
func ParseMeCabOutput(output string) ([]model.Morpheme, error) {
	var morphemes []model.Morpheme

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || line == "EOS" {
			continue
		}
		surface, features, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}

		reader := csv.NewReader(strings.NewReader(features))
		fields, err := reader.Read()
		if err != nil {
			return nil, fmt.Errorf("malformed mecab features for %q: %w", surface, err)
		}

		get := func(i int) string {
			if i < len(fields) {
				return fields[i]
			}
			return "*"
		}

		morphemes = append(morphemes, model.Morpheme{
			Surface: surface,
			Reading: get(fieldKana),
			POS1:    get(fieldPOS1),
			POS2:    get(fieldPOS2),
			CType:   get(fieldCType),
			CForm:   get(fieldCForm),
			AType:   get(fieldAType),
			ConType: get(fieldConType),
			ModType: get(fieldModType),
			Lemma:   get(fieldLemma),
		})
	}

	return morphemes, nil
}

var sentenceEndRe = regexp.MustCompile(`[。！？\n]+`)

// ExtractSentences splits raw text into sentences on Japanese sentence
// punctuation and newlines, keeping the terminal punctuation.
func ExtractSentences(text string) []string {
	var sentences []string
	rest := text
	for rest != "" {
		loc := sentenceEndRe.FindStringIndex(rest)
		if loc == nil {
			if s := strings.TrimSpace(rest); s != "" {
				sentences = append(sentences, s)
			}
			break
		}
		sentence := rest[:loc[0]] + strings.TrimRight(rest[loc[0]:loc[1]], "\n")
		if s := strings.TrimSpace(sentence); s != "" {
			sentences = append(sentences, s)
		}
		rest = rest[loc[1]:]
	}
	return sentences
}
