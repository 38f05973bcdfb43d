// Package report prints the end-of-run summary for a conversion batch.
package report

import (
	"fmt"

	"github.com/robertgumeny/retemplate/internal/batch"
	"github.com/robertgumeny/retemplate/internal/log"
)

// PrintSummary prints a box-draw summary of res: the processed count, the
// destination, the processed and skipped filenames, and the transformation
// categories that were applied.
func PrintSummary(res *batch.Result, categories []string) {
	title := "Summary"
	if res.DryRun {
		title = "Summary (dry run)"
	}
	log.Section(title)

	fmt.Fprintf(log.Out, "  %-24s %d\n", "Total files processed:", len(res.Processed))
	fmt.Fprintf(log.Out, "  %-24s %d\n", "Files changed:", len(res.Changed))
	fmt.Fprintf(log.Out, "  %-24s %s\n\n", "Destination:", res.DestDir)

	list("Processed files:", res.Processed)
	if len(res.Missing) > 0 {
		list("Skipped (not found):", res.Missing)
	}
	list("Transformations applied:", categories)
}

func list(heading string, items []string) {
	fmt.Fprintln(log.Out, heading)
	for _, it := range items {
		log.Item(it)
	}
	fmt.Fprintln(log.Out)
}
