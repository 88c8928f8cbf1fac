package service

import (
	"fmt"
	"strings"
)

// ComposeMessage builds the user-facing check summary. It returns the empty
// string when both counts are zero. The phrasing is load-bearing: build
// tooling and users pattern-match on it, so the conditional structure and
// pluralization are reproduced exactly.
func ComposeMessage(failureCount, warningCount int, noun, reportPath string) string {
	if failureCount == 0 && warningCount == 0 {
		return ""
	}

	var message strings.Builder
	if failureCount > 0 {
		fmt.Fprintf(&message, "You have %d %s", failureCount, noun)
		if failureCount > 1 {
			message.WriteString("s")
		}
	}

	if warningCount > 0 {
		if failureCount > 0 {
			message.WriteString(" and ")
		} else {
			message.WriteString("You have ")
		}
		fmt.Fprintf(&message, "%d warning", warningCount)
		if warningCount > 1 {
			message.WriteString("s")
		}
	}

	message.WriteString(". For more details see:")
	message.WriteString(reportPath)
	return message.String()
}
