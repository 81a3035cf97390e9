// Package jpdb talks to the jpdb.io API, used to cross-check computed
// accents against jpdb's dictionary annotations.
package jpdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hakarun/kifuku/internal/common"
	"github.com/hakarun/kifuku/internal/model"
)

const defaultBaseURL = "https://jpdb.io/api/v1"

// Client is an authenticated jpdb.io API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a jpdb client. The API key comes from the user's
// jpdb.io account settings.
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: jpdb API key not set", common.ErrMissingConfig)
	}
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// parse API request/response types.
type parseRequest struct {
	Text        string   `json:"text"`
	TokenFields []string `json:"token_fields"`
	VocabFields []string `json:"vocabulary_fields"`
}

type parseResponse struct {
	Tokens     [][]json.RawMessage `json:"tokens"`
	Vocabulary [][]json.RawMessage `json:"vocabulary"`
}

// Token is one parsed token with jpdb's reference accent.
type Token struct {
	Spelling string
	Reading  string
	Pattern  model.AccentPattern
}

// Parse tokenizes text through jpdb and returns its accent annotations.
// Rate-limited responses are retried with backoff.
func (c *Client) Parse(ctx context.Context, text string) ([]Token, error) {
	body, err := json.Marshal(parseRequest{
		Text:        text,
		TokenFields: []string{"vocabulary_index"},
		VocabFields: []string{"spelling", "reading", "pitch_accent"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode parse request: %w", err)
	}

	var parsed parseResponse
	err = common.WithRetry(ctx, func() error {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse", bytes.NewReader(body))
		if reqErr != nil {
			return &common.RetryableError{Err: reqErr, Retryable: false}
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, doErr := c.httpClient.Do(req)
		if doErr != nil {
			return doErr
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return common.ErrRateLimit
		case resp.StatusCode == http.StatusUnauthorized:
			return &common.RetryableError{
				Err:       fmt.Errorf("%w: jpdb rejected API key", common.ErrInvalidConfig),
				Retryable: false,
			}
		case resp.StatusCode >= 500:
			return fmt.Errorf("jpdb returned %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return &common.RetryableError{
				Err:       fmt.Errorf("jpdb returned %d: %s", resp.StatusCode, data),
				Retryable: false,
			}
		}

		if decErr := json.NewDecoder(resp.Body).Decode(&parsed); decErr != nil {
			return fmt.Errorf("failed to decode jpdb response: %w", decErr)
		}
		return nil
	}, common.RetryOptions{MaxAttempts: 4, InitialDelay: 500 * time.Millisecond})
	if err != nil {
		return nil, err
	}

	return decodeTokens(parsed)
}

// decodeTokens flattens jpdb's positional arrays into Tokens. jpdb returns
// pitch accents as contour strings ("LHLL"); empty means no annotation.
func decodeTokens(resp parseResponse) ([]Token, error) {
	var tokens []Token
	for _, vocab := range resp.Vocabulary {
		if len(vocab) < 3 {
			continue
		}

		var spelling, reading string
		if err := json.Unmarshal(vocab[0], &spelling); err != nil {
			return nil, fmt.Errorf("failed to decode jpdb spelling: %w", err)
		}
		if err := json.Unmarshal(vocab[1], &reading); err != nil {
			return nil, fmt.Errorf("failed to decode jpdb reading: %w", err)
		}

		var contours []string
		if err := json.Unmarshal(vocab[2], &contours); err != nil {
			// Some entries carry a single contour, not a list.
			var single string
			if err2 := json.Unmarshal(vocab[2], &single); err2 != nil {
				return nil, fmt.Errorf("failed to decode jpdb pitch accent: %w", err)
			}
			contours = []string{single}
		}

		token := Token{Spelling: spelling, Reading: model.KataToHira(reading)}
		if len(contours) > 0 && contours[0] != "" {
			token.Pattern = model.PatternFromContour(contours[0])
		} else {
			token.Pattern = model.AccentPattern{MoraCount: model.CountMora(token.Reading)}
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}
