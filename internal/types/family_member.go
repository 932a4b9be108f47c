package types

import (
	"time"

	"github.com/google/uuid"
)

// FamilyMember is one person's census record. Name, BirthDate and Gender are
// the hard requirements enforced at validation time; everything else is
// nullable, with NULL being the explicit absent marker (distinct from "").
type FamilyMember struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HouseholdID uuid.UUID `gorm:"type:uuid;not null;index;column:household_id" json:"household_id"`

	Name      string `gorm:"not null;column:name" json:"name"`
	BirthDate string `gorm:"not null;column:birthdate" json:"birthDate"`
	Gender    string `gorm:"not null;column:gender" json:"gender"`

	Phone         *string `gorm:"column:phone" json:"phone"`
	ServeInChurch *string `gorm:"column:serveinchurch" json:"serveInChurch"`
	MaritalStatus *string `gorm:"column:maritalstatus" json:"maritalStatus"`
	Community     *string `gorm:"column:community" json:"community"`
	JobType       *string `gorm:"column:jobtype" json:"jobType"`
	HasDisability *string `gorm:"column:hasdisability" json:"hasDisability"`

	EducationLevel  *string `gorm:"column:educationlevel" json:"educationLevel"`
	SchoolName      *string `gorm:"column:schoolname" json:"schoolName"`
	StudyType       *string `gorm:"column:studytype" json:"studyType"`
	StudyYear       *string `gorm:"column:studyyear" json:"studyYear"`
	DisabilityType  *string `gorm:"column:disabilitytype" json:"disabilityType"`
	OtherDisability *string `gorm:"column:otherdisability" json:"otherDisability"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (FamilyMember) TableName() string {
	return "family_member"
}
