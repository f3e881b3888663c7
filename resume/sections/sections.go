// Package sections holds the one ordered list of résumé sections shared by
// every presentation. Formats differ only in how they draw a section.
package sections

import (
	"fmt"

	"resume-site/resume/model"
)

// Fixed section titles.
const (
	TitleSummary        = "Professional Summary"
	TitleExperience     = "Professional Experience"
	TitleCompetencies   = "Core Competencies"
	TitleProficiencies  = "Technical Proficiencies"
	TitleEducation      = "Education"
	TitleCertifications = "Certifications"
	TitleAchievements   = "Achievements"
	TitleInterests      = "Professional Interests"
)

// Kind identifies the structure of a section.
type Kind int

const (
	KindHeader Kind = iota
	KindSummary
	KindResponsibility
	KindExperience
	KindCompetencies
	KindProficiencies
	KindEducation
	KindCertifications
	KindAchievements
	KindInterests
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindSummary:
		return "summary"
	case KindResponsibility:
		return "responsibility"
	case KindExperience:
		return "experience"
	case KindCompetencies:
		return "competencies"
	case KindProficiencies:
		return "proficiencies"
	case KindEducation:
		return "education"
	case KindCertifications:
		return "certifications"
	case KindAchievements:
		return "achievements"
	case KindInterests:
		return "interests"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Renderer draws each kind of section in one output format.
type Renderer interface {
	Header(p model.Personal) error
	Summary(title, text string) error
	Responsibility(group model.CategoryList) error
	Experience(title string, roles []model.Experience) error
	Competencies(title string, items []string) error
	Proficiencies(title string, groups []model.CategoryList) error
	Education(title string, items []model.Education) error
	Certifications(title string, items []model.Certification) error
	Achievements(title string, items []model.Achievement) error
	Interests(title string, items []string) error
}

// Section is one entry of the plan. Title is empty for the header.
type Section struct {
	Kind   Kind
	Title  string
	render func(Renderer) error
}

// Render draws the section with r.
func (s Section) Render(r Renderer) error {
	return s.render(r)
}

// Plan returns the sections of data in presentation order.
func Plan(data model.ResumeData) []Section {
	out := make([]Section, 0, 9+len(data.KeyResponsibilities))
	out = append(out,
		Section{Kind: KindHeader, render: func(r Renderer) error {
			return r.Header(data.Personal)
		}},
		Section{Kind: KindSummary, Title: TitleSummary, render: func(r Renderer) error {
			return r.Summary(TitleSummary, data.Summary)
		}},
	)
	for _, group := range data.KeyResponsibilities {
		group := group
		out = append(out, Section{Kind: KindResponsibility, Title: group.Category, render: func(r Renderer) error {
			return r.Responsibility(group)
		}})
	}
	out = append(out,
		Section{Kind: KindExperience, Title: TitleExperience, render: func(r Renderer) error {
			return r.Experience(TitleExperience, data.Experience)
		}},
		Section{Kind: KindCompetencies, Title: TitleCompetencies, render: func(r Renderer) error {
			return r.Competencies(TitleCompetencies, data.CoreCompetencies)
		}},
		Section{Kind: KindProficiencies, Title: TitleProficiencies, render: func(r Renderer) error {
			return r.Proficiencies(TitleProficiencies, data.TechnicalProficiencies)
		}},
		Section{Kind: KindEducation, Title: TitleEducation, render: func(r Renderer) error {
			return r.Education(TitleEducation, data.Education)
		}},
		Section{Kind: KindCertifications, Title: TitleCertifications, render: func(r Renderer) error {
			return r.Certifications(TitleCertifications, data.Certifications)
		}},
		Section{Kind: KindAchievements, Title: TitleAchievements, render: func(r Renderer) error {
			return r.Achievements(TitleAchievements, data.Achievements)
		}},
		Section{Kind: KindInterests, Title: TitleInterests, render: func(r Renderer) error {
			return r.Interests(TitleInterests, data.Interests)
		}},
	)
	return out
}

// Render walks the plan of data and stops at the first error.
func Render(data model.ResumeData, r Renderer) error {
	for _, section := range Plan(data) {
		if err := section.Render(r); err != nil {
			return fmt.Errorf("render %s section: %w", section.Kind, err)
		}
	}
	return nil
}

// Titles lists the titled sections of data in presentation order.
func Titles(data model.ResumeData) []string {
	plan := Plan(data)
	out := make([]string, 0, len(plan))
	for _, section := range plan {
		if section.Title != "" {
			out = append(out, section.Title)
		}
	}
	return out
}
