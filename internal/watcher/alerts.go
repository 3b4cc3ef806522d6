package watcher

import (
	"fmt"

	"github.com/blackwell-systems/navwatch/internal/insights"
)

// Compare detects notable changes between two watch states and returns
// alerts: one per insight that newly appeared and is neither dismissed nor
// expired, and one per warning that cleared.
func Compare(prev, curr *WatchState) []Alert {
	var alerts []Alert
	alerts = append(alerts, compareNew(prev, curr)...)
	alerts = append(alerts, compareResolved(prev, curr)...)
	return alerts
}

func compareNew(prev, curr *WatchState) []Alert {
	seen := insightIDs(prev.Insights)

	var alerts []Alert
	for _, ins := range curr.Insights {
		if seen[ins.ID] || curr.Dismissed[ins.ID] || ins.Expired(curr.Timestamp) {
			continue
		}
		alerts = append(alerts, Alert{
			Level:     levelFor(ins.Kind),
			Title:     ins.Title,
			Message:   ins.Description,
			InsightID: ins.ID,
			Time:      curr.Timestamp,
		})
	}
	return alerts
}

func compareResolved(prev, curr *WatchState) []Alert {
	present := insightIDs(curr.Insights)

	var alerts []Alert
	for _, ins := range prev.Insights {
		if ins.Kind != insights.KindWarning || present[ins.ID] || curr.Dismissed[ins.ID] {
			continue
		}
		alerts = append(alerts, Alert{
			Level:     "info",
			Title:     fmt.Sprintf("Resolved: %s", ins.Title),
			Message:   "The condition behind this warning no longer holds.",
			InsightID: ins.ID,
			Time:      curr.Timestamp,
		})
	}
	return alerts
}

func levelFor(k insights.Kind) string {
	if k == insights.KindWarning {
		return "warning"
	}
	return "info"
}

func insightIDs(list []insights.Insight) map[string]bool {
	out := make(map[string]bool, len(list))
	for _, ins := range list {
		out[ins.ID] = true
	}
	return out
}
