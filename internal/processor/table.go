package processor

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"codeberg.org/snonux/subvocab/internal/vocab"
)

// renderRanking renders the first limit words as a table
func renderRanking(ranking []vocab.WordCount, limit int) string {
	style := table.StyleRounded
	style.Format.Header = text.FormatDefault
	style.Format.Footer = text.FormatDefault

	tw := table.NewWriter()
	tw.SetStyle(style)
	tw.AppendHeader(table.Row{"#", "Word", "Count"})

	for i, wc := range ranking {
		if i >= limit {
			tw.AppendFooter(table.Row{"", "... " + strconv.Itoa(len(ranking)-limit) + " more", ""})
			break
		}
		tw.AppendRow(table.Row{i + 1, wc.Word, wc.Count})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
