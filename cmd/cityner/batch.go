package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Yogendra14/chatbot-ner/city"
)

const maxLineBytes = 1<<20 + 4096 // a maximal message plus JSON framing

// batchRequest is one input line.
type batchRequest struct {
	ID         string `json:"id,omitempty"`
	Text       string `json:"text"`
	BotMessage string `json:"bot_message,omitempty"`
}

// batchResponse is one output line. Error is set instead of the result
// fields when the line could not be processed.
type batchResponse struct {
	ID    string `json:"id,omitempty"`
	Line  int    `json:"line"`
	Error string `json:"error,omitempty"`
	*city.Result
}

func newBatchCmd(a *app) *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "Detect cities in JSON lines of {\"text\", \"bot_message\"} (stdin when no file or -)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			lines, err := readLines(in)
			if err != nil {
				return err
			}

			out, failed, err := a.detectAll(cmd, lines, workers)
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			enc := json.NewEncoder(w)
			for i := range out {
				if err := enc.Encode(&out[i]); err != nil {
					return fmt.Errorf("writing results: %w", err)
				}
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("writing results: %w", err)
			}

			a.log.Info("batch done", zap.Int("messages", len(out)), zap.Int("failed", failed))
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "Messages processed concurrently")
	return cmd
}

// inputLine is a non-blank input line and its 1-based number in the input.
type inputLine struct {
	n    int
	text string
}

// readLines returns the non-blank lines of r.
func readLines(r io.Reader) ([]inputLine, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	var lines []inputLine
	for n := 1; sc.Scan(); n++ {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		lines = append(lines, inputLine{n: n, text: sc.Text()})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}

// detectAll runs the detector over lines with up to workers goroutines.
// Results keep input order. Bad lines are reported in their response and
// counted; only a resolver outage aborts the batch.
func (a *app) detectAll(cmd *cobra.Command, lines []inputLine, workers int) ([]batchResponse, int, error) {
	out := make([]batchResponse, len(lines))
	failed := make([]bool, len(lines))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(1, workers))
	for i, line := range lines {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			resp := batchResponse{Line: line.n}
			var req batchRequest
			if err := json.Unmarshal([]byte(line.text), &req); err != nil {
				resp.Error = "invalid JSON: " + err.Error()
				failed[i] = true
				a.log.Warn("skipping line", zap.Int("line", line.n), zap.Error(err))
				out[i] = resp
				return nil
			}
			resp.ID = req.ID

			res, err := a.detector.Detect(req.Text, req.BotMessage)
			if err != nil {
				return fmt.Errorf("line %d: %w", line.n, err)
			}
			resp.Result = &res
			out[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	n := 0
	for _, f := range failed {
		if f {
			n++
		}
	}
	return out, n, nil
}
