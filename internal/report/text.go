package report

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/selcukyildirim/argus-core/internal/conflict"
	"github.com/selcukyildirim/argus-core/internal/model"
)

// Render renders the report as a human-readable table: a summary block
// followed by contention hotspots sorted worst-offender first.
func (r Report) Render(graph model.ConflictGraph) string {
	var out strings.Builder

	out.WriteString("ARGUS ANALYSIS REPORT\n")
	summary := tablewriter.NewWriter(&out)
	summary.SetHeader([]string{"metric", "value"})
	summary.Append([]string{"block", fmt.Sprintf("%d", r.BlockNumber)})
	summary.Append([]string{"transactions", fmt.Sprintf("%d", r.TotalTxs)})
	summary.Append([]string{"with storage ops", fmt.Sprintf("%d", r.TxsWithStorage)})
	summary.Append([]string{"storage entries", fmt.Sprintf("%d", r.TotalEntries)})
	summary.Append([]string{"conflicts", fmt.Sprintf("%d", r.TotalConflicts)})
	summary.Append([]string{"fetch time", r.FetchTime.String()})
	summary.Append([]string{"total time", r.TotalTime.String()})
	summary.Render()

	contention := conflict.Aggregate(graph)
	if len(contention) == 0 {
		out.WriteString("\nNo conflicts -- all transactions can run in parallel.\n")
		return out.String()
	}

	out.WriteString("\nCONTENTION HOTSPOTS\n")
	hotspots := tablewriter.NewWriter(&out)
	hotspots.SetHeader([]string{"#", "severity", "protocol", "contract", "slot", "hazard", "txs", "conflicts", "density"})
	for i, ev := range contention {
		protocol, name := labelFor(ev.Address)
		hotspots.Append([]string{
			fmt.Sprintf("%d", i+1),
			ev.Severity.String(),
			protocol,
			fmt.Sprintf("%s (%s)", name, shortHex(ev.Address.Hex())),
			shortHex(ev.Slot.Hex()),
			ev.Hazard,
			fmt.Sprintf("%d", ev.AffectedTxCount),
			fmt.Sprintf("%d", ev.ConflictCount),
			fmt.Sprintf("%.2f", ev.Density),
		})
	}
	hotspots.Render()

	return out.String()
}

func shortHex(s string) string {
	if len(s) <= 10 {
		return s
	}
	return s[:10] + "…"
}
