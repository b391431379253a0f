package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jonesrussell/freefood/internal/domain"
	"github.com/jonesrussell/freefood/internal/processor"
)

// rejection is printed for posts that do not describe a qualifying event.
type rejection struct {
	ID       string `json:"id"`
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason"`
	Filter   string `json:"filter,omitempty"`
}

func writeOutcome(enc *json.Encoder, id string, result *domain.ExtractionResult, v domain.Verdict) error {
	if result != nil {
		return enc.Encode(result)
	}
	return enc.Encode(rejection{ID: id, Reason: v.Reason, Filter: v.Filter})
}

func newEncoder(w io.Writer, pretty bool) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc
}

const (
	formatJSON  = "json"
	formatTable = "table"

	summaryColumnWidth = 60
	summaryColumn      = 3
)

// renderTable prints one row per processed post.
func renderTable(w io.Writer, results []*processor.ProcessResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: summaryColumn, WidthMax: summaryColumnWidth},
	})
	t.AppendHeader(table.Row{"ID", "Accepted", "Title / Reason", "Start", "Location", "Confidence"})

	accepted := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			t.AppendRow(table.Row{r.Post.ID, "skipped", r.Err.Error(), "", "", ""})
		case r.Result != nil:
			accepted++
			t.AppendRow(table.Row{
				r.Post.ID,
				"yes",
				r.Result.Title,
				r.Result.StartTime.Format(time.RFC3339),
				r.Result.Location,
				fmt.Sprintf("%.2f", r.Result.ConfidenceScore),
			})
		default:
			t.AppendRow(table.Row{r.Post.ID, "no", r.Verdict.Reason, "", "", ""})
		}
	}
	t.AppendFooter(table.Row{"Total", len(results), fmt.Sprintf("Accepted: %d", accepted)})
	t.Render()
}
