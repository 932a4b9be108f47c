package census

// RawMember is one family member record as submitted. Unknown JSON keys are
// dropped at bind time, which keeps the form forward-compatible.
type RawMember struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	BirthDate       string `json:"birthDate"`
	Gender          string `json:"gender"`
	ServeInChurch   string `json:"serveInChurch"`
	MaritalStatus   string `json:"maritalStatus"`
	Community       string `json:"community"`
	JobType         string `json:"jobType"`
	HasDisability   string `json:"hasDisability"`
	EducationLevel  string `json:"educationLevel"`
	SchoolName      string `json:"schoolName"`
	StudyType       string `json:"studyType"`
	StudyYear       string `json:"studyYear"`
	DisabilityType  string `json:"disabilityType"`
	OtherDisability string `json:"otherDisability"`
}

// ValidatedMember is a member record after validation. Mandatory fields are
// plain strings; every other field is resolved once, here, to either a value
// or nil (the stored absent marker). An explicit empty string collapses to
// the same marker as omission, matching the original forms.
type ValidatedMember struct {
	Name      string
	BirthDate string
	Gender    string

	Phone         *string
	ServeInChurch *string
	MaritalStatus *string
	Community     *string
	JobType       *string
	HasDisability *string

	EducationLevel  *string
	SchoolName      *string
	StudyType       *string
	StudyYear       *string
	DisabilityType  *string
	OtherDisability *string
}

// ValidateMember checks one record for the mandatory name/birthDate/gender
// set and normalizes the rest. index is the record's position in the
// submission, reported back on rejection. Pure.
func ValidateMember(m RawMember, index int) (ValidatedMember, error) {
	var missing []string
	if m.Name == "" {
		missing = append(missing, "name")
	}
	if m.BirthDate == "" {
		missing = append(missing, "birthDate")
	}
	if m.Gender == "" {
		missing = append(missing, "gender")
	}
	if len(missing) > 0 {
		return ValidatedMember{}, &IncompleteMemberError{Index: index, Fields: missing}
	}

	return ValidatedMember{
		Name:      m.Name,
		BirthDate: m.BirthDate,
		Gender:    m.Gender,

		Phone:         optional(m.Phone),
		ServeInChurch: optional(m.ServeInChurch),
		MaritalStatus: optional(m.MaritalStatus),
		Community:     optional(m.Community),
		JobType:       optional(m.JobType),
		HasDisability: optional(m.HasDisability),

		EducationLevel:  optional(m.EducationLevel),
		SchoolName:      optional(m.SchoolName),
		StudyType:       optional(m.StudyType),
		StudyYear:       optional(m.StudyYear),
		DisabilityType:  optional(m.DisabilityType),
		OtherDisability: optional(m.OtherDisability),
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
