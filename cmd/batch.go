package cmd

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/freefood/internal/domain"
	"github.com/jonesrussell/freefood/internal/logger"
	"github.com/jonesrussell/freefood/internal/processor"
)

const maxLineBytes = 1 << 20

func newBatchCommand(root *rootOptions) *cobra.Command {
	var (
		input       string
		metricsFile string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Extract events from a JSON Lines file of posts",
		Long: `Read posts as JSON Lines, extract events concurrently and write one JSON
result per line in input order.

Each input line is a post:
  {"id": "...", "text": "...", "source_type": "instagram",
   "post_timestamp": "2026-02-23T09:00:00Z", "image_urls": [], "ocr_low_yield": false}

Examples:
  freefood batch --input posts.jsonl > events.jsonl
  cat posts.jsonl | freefood batch --metrics-file freefood.prom
  freefood batch --input posts.jsonl --format table`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != formatJSON && format != formatTable {
				return fmt.Errorf("unknown --format %q, want json or table", format)
			}
			r, closeInput, err := openInput(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer closeInput()

			posts, err := readPosts(r)
			if err != nil {
				return err
			}

			deps, err := buildDeps(cmd.Context(), root)
			if err != nil {
				return err
			}
			defer func() { _ = deps.Close() }()

			bp := processor.NewBatchProcessor(deps.Extractor, deps.Config.Processor.Concurrency, deps.Logger, deps.Telemetry)
			results, _, procErr := bp.Process(cmd.Context(), posts)

			if format == formatTable {
				renderTable(cmd.OutOrStdout(), results)
			} else if err = writeJSONLines(cmd.OutOrStdout(), results); err != nil {
				return err
			}

			if metricsFile != "" {
				if err = deps.Telemetry.WriteTextfile(metricsFile); err != nil {
					deps.Logger.Warn("write metrics file failed",
						logger.String("path", metricsFile), logger.Error(err))
				}
			}
			return procErr
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "JSON Lines file of posts, - for stdin")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file when done")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json or table")
	return cmd
}

func writeJSONLines(w io.Writer, results []*processor.ProcessResult) error {
	enc := newEncoder(w, false)
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if err := writeOutcome(enc, res.Post.ID, res.Result, res.Verdict); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	return nil
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func readPosts(r io.Reader) ([]domain.Post, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var posts []domain.Post
	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		var p domain.Post
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("line %d: decode post: %w", line, err)
		}
		posts = append(posts, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return posts, nil
}
