package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dd0wney/cluso-followgraph/pkg/algorithms"
	"github.com/dd0wney/cluso-followgraph/pkg/analysis"
)

const maxListed = 10

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00"))
)

func writeJSON(w io.Writer, report *analysis.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// renderText formats a report as a terminal summary.
func renderText(report *analysis.Report) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Follow graph analysis for @%s", report.Seed)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("run %s at %s", report.RunID, report.Timestamp.Format("2006-01-02 15:04:05 MST"))))
	b.WriteString("\n")
	if !report.SeedInGraph {
		b.WriteString(warnStyle.Render("seed is not in the graph; ghost and orbit results are empty"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	c := report.Counts
	stats := fmt.Sprintf("Nodes: %d  Edges: %d  Follows: %d\nMutuals: %d  Clusters: %d  Ghosts: %d",
		c.Nodes, c.Edges, c.FollowEdges, c.MutualConnections, c.Clusters, c.GhostFollowers)
	b.WriteString(statsBoxStyle.Render(stats))
	b.WriteString("\n\n")

	bridgeTitle := "Bridge accounts"
	if report.BridgesApproximate {
		bridgeTitle += " (sampled)"
	}
	writeRanking(&b, bridgeTitle, report.BridgeAccounts)
	writeRanking(&b, "Influence", report.InfluenceRanking)

	b.WriteString(headerStyle.Render("Clusters"))
	b.WriteString("\n")
	if len(report.Clusters) == 0 {
		b.WriteString(dimStyle.Render("  none"))
		b.WriteString("\n")
	}
	for i, cl := range report.Clusters {
		if i == maxListed {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", len(report.Clusters)-maxListed)))
			b.WriteString("\n")
			break
		}
		fmt.Fprintf(&b, "  #%d  %d members: %s\n", cl.ID, cl.Size, truncateList(cl.Members, 5))
	}
	b.WriteString("\n")

	b.WriteString(headerStyle.Render("Orbits"))
	b.WriteString("\n")
	o := report.Orbits
	fmt.Fprintf(&b, "  inner circle %d  active %d  outer ring %d  periphery %d  (total %d)\n\n",
		o.InnerCircle, o.Active, o.OuterRing, o.Periphery, o.Total)

	b.WriteString(headerStyle.Render("Ghost followers"))
	b.WriteString("\n")
	if len(report.GhostFollowers) == 0 {
		b.WriteString(dimStyle.Render("  none"))
		b.WriteString("\n")
	}
	for i, gf := range report.GhostFollowers {
		if i == maxListed {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", len(report.GhostFollowers)-maxListed)))
			b.WriteString("\n")
			break
		}
		fmt.Fprintf(&b, "  @%s (%d edges)\n", gf.Username, gf.EdgesInGraph)
	}

	return b.String()
}

func writeRanking(b *strings.Builder, title string, ranking []algorithms.RankedNode) {
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	if len(ranking) == 0 {
		b.WriteString(dimStyle.Render("  none"))
		b.WriteString("\n")
	}
	for i, rn := range ranking {
		if i == maxListed {
			break
		}
		fmt.Fprintf(b, "  %2d. @%-24s %10.2f\n", i+1, rn.Username, rn.Score)
	}
	b.WriteString("\n")
}

func truncateList(items []string, n int) string {
	if len(items) <= n {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:n], ", ") + fmt.Sprintf(", +%d", len(items)-n)
}
