package api

import "time"

// Event is a travel event grouping the expenses of one trip.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventRequest is the create/update payload for an event.
type EventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

// Expense is a single expense line inside an event.
type Expense struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	IncurredAt  time.Time `json:"incurred_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExpenseRequest is the create/update payload for an expense.
type ExpenseRequest struct {
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	IncurredAt  time.Time `json:"incurred_at"`
}

// CorporateCard is a company card that can be assigned to an event.
type CorporateCard struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	LastDigits string `json:"last_digits"`
	Assigned   bool   `json:"assigned"`
}

// AssignCardRequest binds a corporate card to an event.
type AssignCardRequest struct {
	EventID string `json:"event_id"`
}

// DispatchReportRequest asks the backend to assemble and send the expense
// report for an event.
type DispatchReportRequest struct {
	EventID    string   `json:"event_id"`
	Recipients []string `json:"recipients,omitempty"`
}

// DispatchReportResponse acknowledges a dispatched report.
type DispatchReportResponse struct {
	ReportID     string    `json:"report_id"`
	DispatchedAt time.Time `json:"dispatched_at"`
}
