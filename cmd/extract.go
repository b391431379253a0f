package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/freefood/internal/domain"
)

type extractFlags struct {
	id          string
	text        string
	timestamp   string
	imageURLs   []string
	ocrLowYield bool
	sourceType  string
}

func newExtractCommand(root *rootOptions) *cobra.Command {
	f := &extractFlags{}

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract a free-food event from a post",
		Long: `Classify a single post and, when it announces a free-food event, print the
extracted event. Rejected posts print the rejection reason.

Examples:
  freefood extract --text "Free pizza tomorrow at 6:30pm in Astra Hall"
  freefood extract --text "See poster" --image-url https://cdn.example.com/p.jpg --ocr-low-yield
  freefood extract --text "Lunch at 1" --timestamp 2026-02-23T09:00:00Z`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			post, err := f.post()
			if err != nil {
				return err
			}
			deps, err := buildDeps(cmd.Context(), root)
			if err != nil {
				return err
			}
			defer func() { _ = deps.Close() }()

			result, verdict := deps.Extractor.Extract(cmd.Context(), post)
			return writeOutcome(newEncoder(cmd.OutOrStdout(), true), post.ID, result, verdict)
		},
	}

	cmd.Flags().StringVar(&f.id, "id", "", "post identifier echoed in the output")
	cmd.Flags().StringVarP(&f.text, "text", "t", "", "post text, caption plus any OCR output (required)")
	cmd.Flags().StringVar(&f.timestamp, "timestamp", "", "post time in RFC 3339 format")
	cmd.Flags().StringSliceVar(&f.imageURLs, "image-url", nil, "image URL for the vision fallback (repeatable)")
	cmd.Flags().BoolVar(&f.ocrLowYield, "ocr-low-yield", false, "OCR produced little text for the images")
	cmd.Flags().StringVar(&f.sourceType, "source-type", "instagram", "where the post came from")
	return cmd
}

func (f *extractFlags) post() (domain.Post, error) {
	if f.text == "" {
		return domain.Post{}, errTextRequired
	}
	post := domain.Post{
		ID:          f.id,
		Text:        f.text,
		SourceType:  f.sourceType,
		ImageURLs:   f.imageURLs,
		OCRLowYield: f.ocrLowYield,
	}
	if f.timestamp != "" {
		ts, err := time.Parse(time.RFC3339, f.timestamp)
		if err != nil {
			return domain.Post{}, fmt.Errorf("parse --timestamp: %w", err)
		}
		post.PostTimestamp = &ts
	}
	return post, nil
}
