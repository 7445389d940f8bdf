package events

import "time"

const PayrollRunCompletedTopic = "erp.payroll.run.completed.v1"

type PayrollRunCompletedEvent struct {
	EventType      string    `json:"event_type"`
	PayrollRunID   string    `json:"payroll_run_id"`
	CompanyID      string    `json:"company_id"`
	BatchID        string    `json:"batch_id"`
	TotalGenerated int       `json:"total_generated"`
	TotalSkipped   int       `json:"total_skipped"`
	TotalErrors    int       `json:"total_errors"`
	OccurredAt     time.Time `json:"occurred_at"`
}
