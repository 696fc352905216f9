package domain

import (
	"github.com/google/uuid"
)

// DateFormat is the wire format for calendar dates
const DateFormat = "2006-01-02"

// TimestampFormat is the wire format for timestamps
const TimestampFormat = "2006-01-02T15:04:05Z"

// HealthSystemDTO is the API representation of a health system
type HealthSystemDTO struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	City             string    `json:"city,omitempty"`
	State            string    `json:"state,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	OpportunityCount int64     `json:"opportunityCount"`
	ContactCount     int64     `json:"contactCount"`
	CreatedAt        string    `json:"createdAt"`
	UpdatedAt        string    `json:"updatedAt"`
}

// OpportunityDTO is the API representation of an opportunity
type OpportunityDTO struct {
	ID               uuid.UUID         `json:"id"`
	HealthSystemID   uuid.UUID         `json:"healthSystemId"`
	HealthSystemName string            `json:"healthSystemName,omitempty"`
	Product          string            `json:"product"`
	Status           OpportunityStatus `json:"status"`
	Notes            string            `json:"notes,omitempty"`
	CreatedAt        string            `json:"createdAt"`
	UpdatedAt        string            `json:"updatedAt"`
}

// AssignmentDTO is a contact-to-opportunity link with its cadence
type AssignmentDTO struct {
	ID                uuid.UUID         `json:"id"`
	ContactID         uuid.UUID         `json:"contactId"`
	OpportunityID     uuid.UUID         `json:"opportunityId"`
	Product           string            `json:"product,omitempty"`
	OpportunityStatus OpportunityStatus `json:"opportunityStatus,omitempty"`
	CadenceDays       int               `json:"cadenceDays"`
	CreatedAt         string            `json:"createdAt"`
}

// ContactDTO is the API representation of a contact
type ContactDTO struct {
	ID               uuid.UUID       `json:"id"`
	HealthSystemID   uuid.UUID       `json:"healthSystemId"`
	HealthSystemName string          `json:"healthSystemName,omitempty"`
	FirstName        string          `json:"firstName"`
	LastName         string          `json:"lastName"`
	FullName         string          `json:"fullName"`
	Title            string          `json:"title,omitempty"`
	Email            string          `json:"email,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	Role             string          `json:"role,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	Assignments      []AssignmentDTO `json:"assignments,omitempty"`
	CreatedAt        string          `json:"createdAt"`
	UpdatedAt        string          `json:"updatedAt"`
}

// OutreachLogDTO is the API representation of an outreach event
type OutreachLogDTO struct {
	ID            uuid.UUID     `json:"id"`
	ContactID     uuid.UUID     `json:"contactId"`
	OpportunityID *uuid.UUID    `json:"opportunityId,omitempty"`
	Product       string        `json:"product,omitempty"`
	ContactMethod ContactMethod `json:"contactMethod"`
	ContactDate   string        `json:"contactDate"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     string        `json:"createdAt"`
}

// TodoOpportunityDTO names a prospect opportunity a due contact is assigned to
type TodoOpportunityDTO struct {
	ID      uuid.UUID `json:"id"`
	Product string    `json:"product"`
}

// TodoItemDTO is one contact on the to-do list
type TodoItemDTO struct {
	ContactID          uuid.UUID            `json:"contactId"`
	ContactName        string               `json:"contactName"`
	Title              string               `json:"title,omitempty"`
	Email              string               `json:"email,omitempty"`
	Phone              string               `json:"phone,omitempty"`
	HealthSystemID     uuid.UUID            `json:"healthSystemId"`
	AccountName        string               `json:"accountName"`
	Opportunities      []TodoOpportunityDTO `json:"opportunities"`
	CadenceDays        int                  `json:"cadenceDays"`
	LastOutreachDate   *string              `json:"lastOutreachDate"`
	LastOutreachMethod *ContactMethod       `json:"lastOutreachMethod"`
	DueDate            string               `json:"dueDate"`
	DaysSinceContact   *int                 `json:"daysSinceContact"`
	DaysOverdue        int                  `json:"daysOverdue"`
	IsRollover         bool                 `json:"isRollover"`
	NeverContacted     bool                 `json:"neverContacted"`
}

// TodoResponse is the full to-do view for one date
type TodoResponse struct {
	Date               string        `json:"date"`
	IsBusinessDay      bool          `json:"isBusinessDay"`
	NextBusinessDay    string        `json:"nextBusinessDay"`
	DueToday           []TodoItemDTO `json:"dueToday"`
	DueNextBusinessDay []TodoItemDTO `json:"dueNextBusinessDay"`
	RolloverCount      int           `json:"rolloverCount"`
}

// OpportunityStatusCounts counts opportunities per pipeline stage
type OpportunityStatusCounts struct {
	Prospect int64 `json:"prospect"`
	Active   int64 `json:"active"`
	Won      int64 `json:"won"`
}

// DashboardDTO summarizes the CRM for the landing page
type DashboardDTO struct {
	HealthSystems    int64                   `json:"healthSystems"`
	Contacts         int64                   `json:"contacts"`
	Opportunities    OpportunityStatusCounts `json:"opportunities"`
	OutreachThisWeek int64                   `json:"outreachThisWeek"`
	OutreachByMethod map[ContactMethod]int64 `json:"outreachByMethod"`
	DueToday         int                     `json:"dueToday"`
	Rollovers        int                     `json:"rollovers"`
	DueNextDay       int                     `json:"dueNextBusinessDay"`
}

// EmailPromptDTO is a drafting prompt for an outreach email
type EmailPromptDTO struct {
	ContactID     uuid.UUID  `json:"contactId"`
	OpportunityID *uuid.UUID `json:"opportunityId,omitempty"`
	Product       string     `json:"product,omitempty"`
	Template      string     `json:"template"`
	Subject       string     `json:"subject"`
	Prompt        string     `json:"prompt"`
}

// SessionDTO describes the caller's login session
type SessionDTO struct {
	Authenticated bool   `json:"authenticated"`
	Method        string `json:"method,omitempty"`
	ExpiresAt     string `json:"expiresAt,omitempty"`
}

// PaginatedResponse wraps a page of results
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// Request types

// LoginRequest carries the shared application password
type LoginRequest struct {
	Password string `json:"password" validate:"required,max=200"`
}

type CreateHealthSystemRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	City  string `json:"city,omitempty" validate:"max=100"`
	State string `json:"state,omitempty" validate:"max=50"`
	Notes string `json:"notes,omitempty" validate:"max=5000"`
}

type UpdateHealthSystemRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	City  string `json:"city,omitempty" validate:"max=100"`
	State string `json:"state,omitempty" validate:"max=50"`
	Notes string `json:"notes,omitempty" validate:"max=5000"`
}

type CreateOpportunityRequest struct {
	HealthSystemID uuid.UUID          `json:"healthSystemId" validate:"required"`
	Product        string             `json:"product" validate:"required,max=100"`
	Status         *OpportunityStatus `json:"status,omitempty" validate:"omitempty,oneof=prospect active won"`
	Notes          string             `json:"notes,omitempty" validate:"max=5000"`
}

type UpdateOpportunityRequest struct {
	Product string             `json:"product" validate:"required,max=100"`
	Status  *OpportunityStatus `json:"status,omitempty" validate:"omitempty,oneof=prospect active won"`
	Notes   string             `json:"notes,omitempty" validate:"max=5000"`
}

type CreateContactRequest struct {
	HealthSystemID uuid.UUID `json:"healthSystemId" validate:"required"`
	FirstName      string    `json:"firstName" validate:"required,max=100"`
	LastName       string    `json:"lastName" validate:"required,max=100"`
	Title          string    `json:"title,omitempty" validate:"max=150"`
	Email          string    `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone          string    `json:"phone,omitempty" validate:"max=50"`
	Role           string    `json:"role,omitempty" validate:"max=100"`
	Notes          string    `json:"notes,omitempty" validate:"max=5000"`
}

// UpdateContactRequest cannot move a contact to another health system
type UpdateContactRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Title     string `json:"title,omitempty" validate:"max=150"`
	Email     string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone     string `json:"phone,omitempty" validate:"max=50"`
	Role      string `json:"role,omitempty" validate:"max=100"`
	Notes     string `json:"notes,omitempty" validate:"max=5000"`
}

// CreateAssignmentRequest links a contact to an opportunity. CadenceDays is clamped, never rejected.
type CreateAssignmentRequest struct {
	ContactID     uuid.UUID `json:"contactId" validate:"required"`
	OpportunityID uuid.UUID `json:"opportunityId" validate:"required"`
	CadenceDays   *int      `json:"cadenceDays,omitempty"`
}

type UpdateAssignmentRequest struct {
	CadenceDays *int `json:"cadenceDays" validate:"required"`
}

// CreateOutreachRequest logs an outreach event. ContactDate defaults to today when empty.
type CreateOutreachRequest struct {
	OpportunityID *uuid.UUID    `json:"opportunityId,omitempty"`
	ContactMethod ContactMethod `json:"contactMethod" validate:"required,oneof=call email meeting"`
	ContactDate   string        `json:"contactDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes         string        `json:"notes,omitempty" validate:"max=5000"`
}
