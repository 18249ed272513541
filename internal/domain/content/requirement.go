package content

import (
	"fmt"
	"time"
)

type RequirementStatus string

const (
	RequirementDraft     RequirementStatus = "draft"
	RequirementInReview  RequirementStatus = "in_review"
	RequirementApproved  RequirementStatus = "approved"
	RequirementConverted RequirementStatus = "converted"
	RequirementRejected  RequirementStatus = "rejected"
)

func (s RequirementStatus) IsValid() bool {
	switch s {
	case RequirementDraft, RequirementInReview, RequirementApproved, RequirementConverted, RequirementRejected:
		return true
	}
	return false
}

// ProjectRequirement is an intake questionnaire filled by staff for a
// prospective client.
type ProjectRequirement struct {
	ID                  uint
	ClientID            *uint
	ContactName         string
	ContactEmail        string
	ContactPhone        string
	CompanyName         string
	BusinessType        string
	BusinessDesc        string
	ProjectType         string
	ProjectObjective    string
	Sections            []string
	Branding            string
	Technologies        []string
	BudgetRange         string
	Timeline            string
	Comments            string
	InternalNotes       string
	Status              RequirementStatus
	CreatedBy           uint
	ConvertedToClientID *uint
	CreatedAt           time.Time
	UpdatedAt           time.Time
	ClientName          string
	CreatorName         string
}

func (r *ProjectRequirement) Validate() error {
	if err := required("contact_name", r.ContactName); err != nil {
		return err
	}
	if err := required("contact_email", r.ContactEmail); err != nil {
		return err
	}
	if err := required("business_type", r.BusinessType); err != nil {
		return err
	}
	if err := required("project_type", r.ProjectType); err != nil {
		return err
	}
	if r.Status == "" {
		r.Status = RequirementDraft
	}
	if !r.Status.IsValid() {
		return fmt.Errorf("invalid requirement status: %s", r.Status)
	}
	return nil
}

func (r *ProjectRequirement) IsConverted() bool {
	return r.Status == RequirementConverted
}

// MarkConverted links the requirement to the client account created from it.
func (r *ProjectRequirement) MarkConverted(clientID uint) error {
	if r.IsConverted() {
		return fmt.Errorf("requirement %d is already converted", r.ID)
	}
	r.Status = RequirementConverted
	r.ConvertedToClientID = &clientID
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// RequirementOptions are the dropdown values of the requirement form.
type RequirementOptions struct {
	BusinessTypes []string `yaml:"business_types" json:"businessTypes"`
	ProjectTypes  []string `yaml:"project_types" json:"projectTypes"`
	Sections      []string `yaml:"sections" json:"sections"`
	Technologies  []string `yaml:"technologies" json:"technologies"`
	BudgetRanges  []string `yaml:"budget_ranges" json:"budgetRanges"`
	Timelines     []string `yaml:"timelines" json:"timelines"`
}
