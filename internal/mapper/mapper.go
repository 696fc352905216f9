package mapper

import (
	"time"

	"github.com/outreach-crm/outreach-api/internal/cadence"
	"github.com/outreach-crm/outreach-api/internal/domain"
)

// ToHealthSystemDTO converts HealthSystem to HealthSystemDTO
func ToHealthSystemDTO(hs *domain.HealthSystem, opportunityCount, contactCount int64) domain.HealthSystemDTO {
	return domain.HealthSystemDTO{
		ID:               hs.ID,
		Name:             hs.Name,
		City:             hs.City,
		State:            hs.State,
		Notes:            hs.Notes,
		OpportunityCount: opportunityCount,
		ContactCount:     contactCount,
		CreatedAt:        formatTimestamp(hs.CreatedAt),
		UpdatedAt:        formatTimestamp(hs.UpdatedAt),
	}
}

// ToOpportunityDTO converts Opportunity to OpportunityDTO
func ToOpportunityDTO(opp *domain.Opportunity) domain.OpportunityDTO {
	dto := domain.OpportunityDTO{
		ID:             opp.ID,
		HealthSystemID: opp.HealthSystemID,
		Product:        opp.Product,
		Status:         opp.EffectiveStatus(),
		Notes:          opp.Notes,
		CreatedAt:      formatTimestamp(opp.CreatedAt),
		UpdatedAt:      formatTimestamp(opp.UpdatedAt),
	}
	if opp.HealthSystem != nil {
		dto.HealthSystemName = opp.HealthSystem.Name
	}
	return dto
}

// ToAssignmentDTO converts ContactOpportunity to AssignmentDTO
func ToAssignmentDTO(a *domain.ContactOpportunity) domain.AssignmentDTO {
	dto := domain.AssignmentDTO{
		ID:            a.ID,
		ContactID:     a.ContactID,
		OpportunityID: a.OpportunityID,
		CadenceDays:   a.CadenceDays,
		CreatedAt:     formatTimestamp(a.CreatedAt),
	}
	if a.Opportunity != nil {
		dto.Product = a.Opportunity.Product
		dto.OpportunityStatus = a.Opportunity.EffectiveStatus()
	}
	return dto
}

// ToContactDTO converts Contact to ContactDTO, including assignments when loaded
func ToContactDTO(contact *domain.Contact) domain.ContactDTO {
	dto := domain.ContactDTO{
		ID:             contact.ID,
		HealthSystemID: contact.HealthSystemID,
		FirstName:      contact.FirstName,
		LastName:       contact.LastName,
		FullName:       contact.FullName(),
		Title:          contact.Title,
		Email:          contact.Email,
		Phone:          contact.Phone,
		Role:           contact.Role,
		Notes:          contact.Notes,
		CreatedAt:      formatTimestamp(contact.CreatedAt),
		UpdatedAt:      formatTimestamp(contact.UpdatedAt),
	}
	if contact.HealthSystem != nil {
		dto.HealthSystemName = contact.HealthSystem.Name
	}
	if len(contact.Assignments) > 0 {
		dto.Assignments = make([]domain.AssignmentDTO, len(contact.Assignments))
		for i := range contact.Assignments {
			dto.Assignments[i] = ToAssignmentDTO(&contact.Assignments[i])
		}
	}
	return dto
}

// ToOutreachLogDTO converts OutreachLog to OutreachLogDTO
func ToOutreachLogDTO(entry *domain.OutreachLog) domain.OutreachLogDTO {
	dto := domain.OutreachLogDTO{
		ID:            entry.ID,
		ContactID:     entry.ContactID,
		OpportunityID: entry.OpportunityID,
		ContactMethod: entry.ContactMethod,
		ContactDate:   FormatDate(entry.ContactDate),
		Notes:         entry.Notes,
		CreatedAt:     formatTimestamp(entry.CreatedAt),
	}
	if entry.Opportunity != nil {
		dto.Product = entry.Opportunity.Product
	}
	return dto
}

// ToTodoItemDTO combines a computed due status with the contact and its prospect opportunities
func ToTodoItemDTO(status cadence.Status, contact *domain.Contact, opportunities []domain.Opportunity) domain.TodoItemDTO {
	dto := domain.TodoItemDTO{
		ContactID:        status.ContactID,
		AccountName:      status.AccountName,
		Opportunities:    make([]domain.TodoOpportunityDTO, 0, len(opportunities)),
		CadenceDays:      status.CadenceDays,
		DueDate:          FormatDate(status.DueDate),
		DaysSinceContact: status.DaysSinceContact,
		DaysOverdue:      status.DaysOverdue,
		IsRollover:       status.IsRollover,
		NeverContacted:   status.NeverContacted,
	}

	if contact != nil {
		dto.ContactName = contact.FullName()
		dto.Title = contact.Title
		dto.Email = contact.Email
		dto.Phone = contact.Phone
		dto.HealthSystemID = contact.HealthSystemID
	}

	for _, opp := range opportunities {
		dto.Opportunities = append(dto.Opportunities, domain.TodoOpportunityDTO{ID: opp.ID, Product: opp.Product})
	}

	if status.LastOutreach != nil {
		date := FormatDate(status.LastOutreach.Date)
		method := domain.ContactMethod(status.LastOutreach.Method)
		dto.LastOutreachDate = &date
		dto.LastOutreachMethod = &method
	}

	return dto
}

// FormatDate renders a calendar date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return cadence.DateOf(t).Format(domain.DateFormat)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(domain.TimestampFormat)
}
