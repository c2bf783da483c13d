// Package prompt assembles the completion prompt sent for each chat turn.
package prompt

import "strings"

const (
	userLabel     = ":User  "
	realTimeLabel = "\nAI (with real-time data): "
)

// Build returns the prompt for one turn. The result depends only on its
// arguments; an empty realTimeData still carries the label.
func Build(userMessage, realTimeData string) string {
	var sb strings.Builder
	sb.Grow(len(userLabel) + len(userMessage) + len(realTimeLabel) + len(realTimeData))
	sb.WriteString(userLabel)
	sb.WriteString(userMessage)
	sb.WriteString(realTimeLabel)
	sb.WriteString(realTimeData)
	return sb.String()
}
