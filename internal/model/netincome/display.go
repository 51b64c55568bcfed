package netincome

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"max.ks1230/finance-tracker/internal/entity/finance"
)

// Print writes the amounts of agg followed by its total.
func Print(w io.Writer, label string, agg finance.Aggregate) {
	amounts := agg.Amounts()
	parts := make([]string, 0, len(amounts))
	for _, am := range amounts {
		parts = append(parts, formatAmount(am))
	}
	fmt.Fprintf(w, "\n%s: \n", label)
	if len(parts) > 0 {
		fmt.Fprint(w, strings.Join(parts, ", "))
	}
	fmt.Fprintf(w, "\nTotal: %s\n", formatAmount(ReduceToTotal(agg)))
}

func formatAmount(am float64) string {
	return strconv.FormatFloat(am, 'f', -1, 64)
}
