package job

import (
	"errors"
	"time"

	"job-portal/internal/domain"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "FULLTIME"
	EmploymentPartTime   EmploymentType = "PARTTIME"
	EmploymentContract   EmploymentType = "CONTRACT"
	EmploymentInternship EmploymentType = "INTERNSHIP"
	EmploymentTemporary  EmploymentType = "TEMPORARY"
)

var employmentTypes = map[string]EmploymentType{
	"fulltime":   EmploymentFullTime,
	"parttime":   EmploymentPartTime,
	"contract":   EmploymentContract,
	"internship": EmploymentInternship,
	"temporary":  EmploymentTemporary,
}

func (t EmploymentType) DisplayName() string {
	switch t {
	case EmploymentFullTime:
		return "Full-time"
	case EmploymentPartTime:
		return "Part-time"
	case EmploymentContract:
		return "Contract"
	case EmploymentInternship:
		return "Internship"
	case EmploymentTemporary:
		return "Temporary"
	default:
		return string(t)
	}
}

// ParseEmploymentType accepts either the code or the display name. Anything
// else resolves to full-time.
func ParseEmploymentType(raw string) (EmploymentType, bool) {
	return domain.ParseOrDefault(raw, EmploymentFullTime, employmentTypes)
}

type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "ENTRY"
	ExperienceMid    ExperienceLevel = "MID"
	ExperienceSenior ExperienceLevel = "SENIOR"
	ExperienceLead   ExperienceLevel = "LEAD"
)

var experienceLevels = map[string]ExperienceLevel{
	"entry":  ExperienceEntry,
	"mid":    ExperienceMid,
	"senior": ExperienceSenior,
	"lead":   ExperienceLead,
}

func (l ExperienceLevel) DisplayName() string {
	switch l {
	case ExperienceEntry:
		return "Entry"
	case ExperienceMid:
		return "Mid"
	case ExperienceSenior:
		return "Senior"
	case ExperienceLead:
		return "Lead"
	default:
		return string(l)
	}
}

func ParseExperienceLevel(raw string) (ExperienceLevel, bool) {
	return domain.ParseOrDefault(raw, ExperienceEntry, experienceLevels)
}

type Job struct {
	ID              uuid.UUID
	Title           string
	Description     string
	Skills          string
	Company         string
	Location        string
	Salary          *float64
	EmploymentType  EmploymentType
	ExperienceLevel ExperienceLevel
	PostedBy        uuid.UUID
	PostedByName    string
	PostedAt        time.Time
}
