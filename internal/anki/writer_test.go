package anki

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.tsv")
	cards := []Card{
		{Front: "犬", Back: `<span class="pitch-l">い</span>`, Reading: "いぬ", Accent: 2, Shape: "odaka", Tags: "kifuku noun"},
		{Front: "日本", Back: "b", Reading: "にほん", Accent: 0, Shape: "heiban", Tags: "kifuku noun"},
	}

	require.NoError(t, WriteTSV(path, cards, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	fields := strings.Split(lines[0], "\t")
	require.Len(t, fields, 6)
	assert.Equal(t, "犬", fields[0])
	assert.Equal(t, "いぬ", fields[2])
	assert.Equal(t, "2", fields[3])
	assert.Equal(t, "odaka", fields[4])
	assert.Equal(t, "kifuku noun", fields[5])
}

func TestWriteTSV_SanitizesFieldBreaks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.tsv")
	cards := []Card{
		{Front: "a\tb", Back: "line1\nline2", Reading: "r", Shape: "heiban", Tags: "t"},
	}

	require.NoError(t, WriteTSV(path, cards, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	line := strings.TrimRight(string(data), "\n")
	fields := strings.Split(line, "\t")
	require.Len(t, fields, 6)
	assert.Equal(t, "a b", fields[0])
	assert.Equal(t, "line1<br>line2", fields[1])
}

func TestWriteTSV_EmptyDeck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.tsv")
	require.NoError(t, WriteTSV(path, nil, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}
