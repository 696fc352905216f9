package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel carries the primary key and timestamps shared by the CRM tables
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns a UUID when the caller did not set one
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// HealthSystem is a hospital or health-system account being sold into
type HealthSystem struct {
	BaseModel
	Name          string        `gorm:"type:varchar(200);not null;uniqueIndex"`
	City          string        `gorm:"type:varchar(100)"`
	State         string        `gorm:"type:varchar(50)"`
	Notes         string        `gorm:"type:text"`
	Opportunities []Opportunity `gorm:"foreignKey:HealthSystemID;constraint:OnDelete:CASCADE"`
	Contacts      []Contact     `gorm:"foreignKey:HealthSystemID;constraint:OnDelete:CASCADE"`
}

// OpportunityStatus is the pipeline stage of an opportunity
type OpportunityStatus string

const (
	OpportunityStatusProspect OpportunityStatus = "prospect"
	OpportunityStatusActive   OpportunityStatus = "active"
	OpportunityStatusWon      OpportunityStatus = "won"
)

// IsValid reports whether s is a known status
func (s OpportunityStatus) IsValid() bool {
	switch s {
	case OpportunityStatusProspect, OpportunityStatusActive, OpportunityStatusWon:
		return true
	}
	return false
}

// Opportunity is one product being pursued at a health system
type Opportunity struct {
	BaseModel
	HealthSystemID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_opportunity_system_product;column:health_system_id"`
	HealthSystem   *HealthSystem      `gorm:"foreignKey:HealthSystemID"`
	Product        string             `gorm:"type:varchar(100);not null;uniqueIndex:idx_opportunity_system_product"`
	Status         *OpportunityStatus `gorm:"type:varchar(20);index"`
	Notes          string             `gorm:"type:text"`
}

// EffectiveStatus returns the status, treating an unset value as prospect
func (o *Opportunity) EffectiveStatus() OpportunityStatus {
	if o.Status == nil || *o.Status == "" {
		return OpportunityStatusProspect
	}
	return *o.Status
}

// IsProspect reports whether the opportunity feeds the outreach to-do list
func (o *Opportunity) IsProspect() bool {
	return o.EffectiveStatus() == OpportunityStatusProspect
}

// Contact is a person at a health system
type Contact struct {
	BaseModel
	HealthSystemID uuid.UUID            `gorm:"type:uuid;not null;index;column:health_system_id"`
	HealthSystem   *HealthSystem        `gorm:"foreignKey:HealthSystemID"`
	FirstName      string               `gorm:"type:varchar(100);not null;column:first_name"`
	LastName       string               `gorm:"type:varchar(100);not null;column:last_name"`
	Title          string               `gorm:"type:varchar(150)"`
	Email          string               `gorm:"type:varchar(255)"`
	Phone          string               `gorm:"type:varchar(50)"`
	Role           string               `gorm:"type:varchar(100)"`
	Notes          string               `gorm:"type:text"`
	Assignments    []ContactOpportunity `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`
}

// FullName returns the contact's full name
func (c *Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ContactOpportunity ties a contact to an opportunity with its outreach cadence
type ContactOpportunity struct {
	BaseModel
	ContactID     uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_contact_opportunity;column:contact_id"`
	Contact       *Contact     `gorm:"foreignKey:ContactID"`
	OpportunityID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_contact_opportunity;index;column:opportunity_id"`
	Opportunity   *Opportunity `gorm:"foreignKey:OpportunityID;constraint:OnDelete:CASCADE"`
	CadenceDays   int          `gorm:"not null;default:10;column:cadence_days"`
}

// TableName overrides the default pluralization
func (ContactOpportunity) TableName() string {
	return "contact_opportunities"
}

// ContactMethod is how an outreach happened
type ContactMethod string

const (
	ContactMethodCall    ContactMethod = "call"
	ContactMethodEmail   ContactMethod = "email"
	ContactMethodMeeting ContactMethod = "meeting"
)

// IsValid reports whether m is a known method
func (m ContactMethod) IsValid() bool {
	switch m {
	case ContactMethodCall, ContactMethodEmail, ContactMethodMeeting:
		return true
	}
	return false
}

// OutreachLog is one recorded touch on a contact. Rows are never edited.
type OutreachLog struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey"`
	ContactID     uuid.UUID     `gorm:"type:uuid;not null;index:idx_outreach_contact_date,priority:1;column:contact_id"`
	Contact       *Contact      `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`
	OpportunityID *uuid.UUID    `gorm:"type:uuid;column:opportunity_id"`
	Opportunity   *Opportunity  `gorm:"foreignKey:OpportunityID;constraint:OnDelete:SET NULL"`
	ContactMethod ContactMethod `gorm:"type:varchar(20);not null;column:contact_method"`
	ContactDate   time.Time     `gorm:"type:date;not null;index:idx_outreach_contact_date,priority:2;column:contact_date"`
	Notes         string        `gorm:"type:text"`
	CreatedAt     time.Time     `gorm:"not null"`
}

// BeforeCreate assigns a UUID when the caller did not set one
func (o *OutreachLog) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
