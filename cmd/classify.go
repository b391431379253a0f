package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

var errTextRequired = errors.New("--text is required")

func newClassifyCommand(root *rootOptions) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Run the rule classifier over a post",
		Long: `Run the rule classifier over a single post and print its verdict.

Examples:
  freefood classify --text "Free pizza in the Newman Building at 1pm"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if text == "" {
				return errTextRequired
			}
			deps, err := buildDeps(cmd.Context(), root)
			if err != nil {
				return err
			}
			defer func() { _ = deps.Close() }()

			return newEncoder(cmd.OutOrStdout(), true).Encode(deps.Extractor.Classify(text))
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "post text (required)")
	return cmd
}
