package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/eshaffer321/cart-bundle-transforms/internal/domain/cart"
	"github.com/eshaffer321/cart-bundle-transforms/internal/transform"
)

// PrintTransformList prints the registered transforms as a table.
func PrintTransformList(w io.Writer, transforms []transform.Transform) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDESCRIPTION")
	for _, t := range transforms {
		fmt.Fprintf(tw, "%s\t%s\n", t.Name(), t.Description())
	}
	_ = tw.Flush()
}

// PrintRunSummary prints a one-line summary of a transform result.
func PrintRunSummary(w io.Writer, name string, result cart.Result) {
	counts := map[string]int{}
	for _, op := range result.Operations {
		counts[op.Kind()]++
	}

	if len(result.Operations) == 0 {
		fmt.Fprintf(w, "%s: no changes\n", name)
		return
	}

	parts := make([]string, 0, len(counts))
	for _, kind := range []string{"linesMerge", "lineExpand"} {
		if counts[kind] > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", kind, counts[kind]))
		}
	}
	fmt.Fprintf(w, "%s: %s\n", name, strings.Join(parts, " "))
}
