package anki

import (
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
)

// WriteTSV writes cards to path as an Anki-importable tab-separated file:
// front, back, reading, accent, shape, tags. Shows a progress bar for
// large decks.
func WriteTSV(path string, cards []Card, showProgress bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create deck file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.NewOptions(len(cards),
			progressbar.OptionSetDescription("Writing cards..."),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
		)
	}

	for _, c := range cards {
		fields := []string{
			sanitize(c.Front),
			sanitize(c.Back),
			sanitize(c.Reading),
			fmt.Sprintf("%d", c.Accent),
			c.Shape,
			c.Tags,
		}
		if _, err := fmt.Fprintln(f, strings.Join(fields, "\t")); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}
	return nil
}

// sanitize strips tabs and newlines that would break the TSV row.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\n", "<br>")
	return s
}
