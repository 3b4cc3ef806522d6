package watcher

import (
	"testing"
	"time"
)

func TestNotifyFallback(t *testing.T) {
	tests := []struct {
		name  string
		alert Alert
	}{
		{
			name: "info alert",
			alert: Alert{
				Level:   "info",
				Title:   "Try Kitchen Display",
				Message: "Kitchen Display is relevant to operational work",
				Time:    time.Now(),
			},
		},
		{
			name: "warning alert",
			alert: Alert{
				Level:   "warning",
				Title:   "Unusual navigation activity",
				Message: "250 navigation events in the last 24h",
				Time:    time.Now(),
			},
		},
		{
			name:  "empty fields",
			alert: Alert{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := notifyFallback(tc.alert); err != nil {
				t.Errorf("notifyFallback() error = %v", err)
			}
		})
	}
}
