package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/hakarun/kifuku/internal/common"
	"github.com/hakarun/kifuku/internal/model"
	"github.com/hakarun/kifuku/internal/rules"
	"github.com/hakarun/kifuku/internal/segment"

	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the accent analyzer as a JSON REST API",
		Long: `Expose the analyzer over HTTP:

  POST /api/analyze        body: {"text":"..."}
  GET  /api/numeral?n=3&counter=本
  GET  /healthz`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8080", "Listen address")
	_ = viper.BindPFlag("serve.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

// JSON response types.

type wordJSON struct {
	Surface   string   `json:"surface"`
	Reading   string   `json:"reading"`
	Accent    int      `json:"accent"`
	MoraCount int      `json:"mora_count"`
	Shape     string   `json:"shape"`
	Contour   string   `json:"contour"`
	POS       string   `json:"pos"`
	Trace     []string `json:"trace,omitempty"`
}

type sentenceJSON struct {
	Original string     `json:"original"`
	Words    []wordJSON `json:"words"`
}

type analyzeResponse struct {
	Sentences []sentenceJSON `json:"sentences"`
}

type numeralResponse struct {
	Reading   string `json:"reading"`
	Accent    int    `json:"accent"`
	MoraCount int    `json:"mora_count"`
	Shape     string `json:"shape"`
	Contour   string `json:"contour"`
	Rule      string `json:"rule"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeHTTPError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func toWordJSON(w model.Word) wordJSON {
	return wordJSON{
		Surface:   w.Surface,
		Reading:   w.Reading,
		Accent:    w.Pattern.Downstep,
		MoraCount: w.Pattern.MoraCount,
		Shape:     w.Pattern.Shape().String(),
		Contour:   w.Pattern.Pattern(true),
		POS:       w.POS1,
		Trace:     w.Trace,
	}
}

func handleAnalyze(pipeline *segment.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeHTTPError(w, http.StatusMethodNotAllowed, "POST required")
			return
		}
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Text == "" {
			writeHTTPError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'text' field")
			return
		}

		sentences, err := pipeline.AnalyzeText(r.Context(), body.Text)
		if err != nil {
			common.LogError(err, "Analysis failed", common.Fields{"text_len": len(body.Text)})
			writeHTTPError(w, http.StatusInternalServerError, "analysis failed")
			return
		}

		resp := analyzeResponse{Sentences: make([]sentenceJSON, 0, len(sentences))}
		for _, s := range sentences {
			sj := sentenceJSON{Original: s.Original}
			for _, word := range s.ContentWords() {
				sj.Words = append(sj.Words, toWordJSON(word))
			}
			resp.Sentences = append(resp.Sentences, sj)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleNumeral() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeHTTPError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		n, err := strconv.Atoi(r.URL.Query().Get("n"))
		if err != nil {
			writeHTTPError(w, http.StatusBadRequest, "missing or bad 'n' query parameter")
			return
		}
		counter := r.URL.Query().Get("counter")
		if counter == "" {
			writeHTTPError(w, http.StatusBadRequest, "missing 'counter' query parameter")
			return
		}

		phrase, err := rules.NumeralCounterAccent(n, counter)
		if err != nil {
			if errors.Is(err, common.ErrUnknownCounter) {
				writeHTTPError(w, http.StatusNotFound, fmt.Sprintf("counter %q has no accent class", counter))
				return
			}
			writeHTTPError(w, http.StatusInternalServerError, "computation failed")
			return
		}

		writeJSON(w, http.StatusOK, numeralResponse{
			Reading:   phrase.Reading,
			Accent:    phrase.Pattern.Downstep,
			MoraCount: phrase.Pattern.MoraCount,
			Shape:     phrase.Pattern.Shape().String(),
			Contour:   phrase.Pattern.Pattern(true),
			Rule:      phrase.Rule,
		})
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	pipeline, err := initPipeline(ctx, store)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze", handleAnalyze(pipeline))
	mux.HandleFunc("/api/numeral", handleNumeral())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	addr := viper.GetString("serve.addr")
	server := &http.Server{
		Addr:              addr,
		Handler:           cors.Default().Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
