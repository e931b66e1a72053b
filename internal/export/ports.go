package export

import (
	"context"
)

// Ports for outbound adapters.
type (
	// ReportWriter pushes a rendered monthly report to an external sheet.
	ReportWriter interface {
		WriteReport(ctx context.Context, userID string, report Report) error
	}
)
