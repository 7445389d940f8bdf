package events

import "time"

const AssignmentCreatedTopic = "erp.assignment.lifecycle.v1"

type AssignmentCreatedEvent struct {
	EventType    string    `json:"event_type"`
	AssignmentID string    `json:"assignment_id"`
	CompanyID    string    `json:"company_id"`
	EntityType   string    `json:"entity_type"`
	EntityID     string    `json:"entity_id"`
	Kind         string    `json:"kind"`
	StartDate    string    `json:"start_date"`
	OccurredAt   time.Time `json:"occurred_at"`
}
