// ABOUTME: Terminal dashboard statistics for the integration console
// ABOUTME: Counts integrations by status and category and flags failed syncs
package viz

import (
	"fmt"
	"strings"

	"github.com/drylogics/marketingos/models"
)

type DashboardStats struct {
	Total      int
	ByStatus   map[models.ConnectionStatus]int
	ByCategory map[models.Category]int

	// Campaigns is the sum of campaigns reported by each integration.
	Campaigns int

	// Needs attention
	NeedsAttention []AttentionItem
	FailedSyncs    []FailedSync
}

type AttentionItem struct {
	Name   string
	Status models.ConnectionStatus
	Errors string
}

type FailedSync struct {
	Integration string
	Timestamp   string
	Action      string
}

func GenerateDashboardStats(integrations []models.Integration) *DashboardStats {
	stats := &DashboardStats{
		Total:      len(integrations),
		ByStatus:   make(map[models.ConnectionStatus]int),
		ByCategory: make(map[models.Category]int),
	}

	for _, it := range integrations {
		stats.ByStatus[it.Status]++
		stats.ByCategory[it.Category]++
		stats.Campaigns += it.Dashboard.Campaigns

		if it.Status != models.StatusConnected {
			stats.NeedsAttention = append(stats.NeedsAttention, AttentionItem{
				Name:   it.Name,
				Status: it.Status,
				Errors: it.Errors,
			})
		}

		for _, l := range it.Logs {
			if l.Outcome == "Failed" {
				stats.FailedSyncs = append(stats.FailedSyncs, FailedSync{
					Integration: it.Name,
					Timestamp:   l.Timestamp,
					Action:      l.Action,
				})
			}
		}
	}

	return stats
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	// Header
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  MARKETING OS CONNECTION HEALTH\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("STATUS\n")
	renderStatus(&out, stats)
	out.WriteString("\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  🔌 %d integrations  📣 %d campaigns  ✗ %d failed syncs\n\n",
		stats.Total, stats.Campaigns, len(stats.FailedSyncs)))

	if len(stats.NeedsAttention) > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		for _, a := range stats.NeedsAttention {
			out.WriteString(fmt.Sprintf("  ⚠️  %s (%s): %s\n", a.Name, a.Status.Badge(), a.Errors))
		}
	}

	return out.String()
}

func renderStatus(out *strings.Builder, stats *DashboardStats) {
	statuses := []models.ConnectionStatus{
		models.StatusConnected,
		models.StatusNeedsRefresh,
		models.StatusDisconnected,
	}

	maxCount := 1
	for _, n := range stats.ByStatus {
		maxCount = max(maxCount, n)
	}

	for _, s := range statuses {
		count := stats.ByStatus[s]

		// Bar length (0-10 blocks)
		barLength := (count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)

		out.WriteString(fmt.Sprintf("  %-18s %s  %2d\n", s.Badge(), bar, count))
	}
}
