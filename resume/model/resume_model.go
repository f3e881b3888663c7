package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ResumeData is the canonical résumé record rendered by every presentation.
// Slice order is presentation order.
type ResumeData struct {
	Personal               Personal        `json:"personal" yaml:"personal" validate:"required"`
	Summary                string          `json:"summary" yaml:"summary" validate:"required"`
	KeyResponsibilities    []CategoryList  `json:"keyResponsibilities" yaml:"keyResponsibilities" validate:"dive"`
	Experience             []Experience    `json:"experience" yaml:"experience" validate:"dive"`
	CoreCompetencies       []string        `json:"coreCompetencies" yaml:"coreCompetencies" validate:"dive,required"`
	TechnicalProficiencies []CategoryList  `json:"technicalProficiencies" yaml:"technicalProficiencies" validate:"dive"`
	Education              []Education     `json:"education" yaml:"education" validate:"dive"`
	Certifications         []Certification `json:"certifications" yaml:"certifications" validate:"dive"`
	Achievements           []Achievement   `json:"achievements" yaml:"achievements" validate:"dive"`
	Interests              []string        `json:"interests" yaml:"interests" validate:"dive,required"`
}

// Personal captures identity and contact details.
type Personal struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Designation string `json:"designation" yaml:"designation" validate:"required"`
	Location    string `json:"location" yaml:"location" validate:"required"`
	Phone       string `json:"phone" yaml:"phone" validate:"required"`
	Email       string `json:"email" yaml:"email" validate:"required,email"`
	LinkedIn    string `json:"linkedin" yaml:"linkedin" validate:"required"`
}

// CategoryList is a titled group of items, used for key responsibilities and
// technical proficiencies.
type CategoryList struct {
	Category string   `json:"category" yaml:"category" validate:"required"`
	Items    []string `json:"items" yaml:"items" validate:"dive,required"`
}

// Experience represents a work history entry.
type Experience struct {
	Title      string   `json:"title" yaml:"title" validate:"required"`
	Company    string   `json:"company" yaml:"company" validate:"required"`
	Location   string   `json:"location" yaml:"location"`
	Period     string   `json:"period" yaml:"period" validate:"required"`
	Highlights []string `json:"highlights" yaml:"highlights" validate:"dive,required"`
}

// Education represents an education entry. Details is optional.
type Education struct {
	Qualification string `json:"qualification" yaml:"qualification" validate:"required"`
	Institution   string `json:"institution" yaml:"institution" validate:"required"`
	Period        string `json:"period" yaml:"period"`
	Details       string `json:"details,omitempty" yaml:"details,omitempty"`
}

// Certification represents a certification entry.
type Certification struct {
	Name   string `json:"name" yaml:"name" validate:"required"`
	Issuer string `json:"issuer" yaml:"issuer" validate:"required"`
	Year   string `json:"year" yaml:"year"`
}

// Achievement represents a discrete achievement.
type Achievement struct {
	Title   string `json:"title" yaml:"title" validate:"required"`
	Details string `json:"details" yaml:"details" validate:"required"`
}

// HasDetails reports whether the entry carries a details paragraph.
func (e Education) HasDetails() bool {
	return strings.TrimSpace(e.Details) != ""
}

// Joined renders the group as "category: item1, item2".
func (c CategoryList) Joined() string {
	return c.Category + ": " + strings.Join(c.Items, ", ")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate enforces required fields and formatting rules for ResumeData.
func (d ResumeData) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", trimNamespace(fe.Namespace()), fe.Tag()))
	}
	return fmt.Errorf("invalid resume data: %s", strings.Join(fields, ", "))
}

func trimNamespace(ns string) string {
	return strings.TrimPrefix(ns, "ResumeData.")
}
