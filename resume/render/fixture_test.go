package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"resume-site/resume/model"
)

// recordingCanvas measures every rune as half the font size and records draws.
type recordingCanvas struct {
	width, height float64
	pages         int
	draws         []drawCall
}

type drawCall struct {
	Page  int
	Text  string
	X, Y  float64
	Style TextStyle
}

func newRecordingCanvas() *recordingCanvas {
	return &recordingCanvas{width: 595.28, height: 841.89}
}

func (c *recordingCanvas) PageSize() (float64, float64) { return c.width, c.height }

func (c *recordingCanvas) AddPage() { c.pages++ }

func (c *recordingCanvas) Measure(text string, _ Font, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * size / 2
}

func (c *recordingCanvas) DrawText(text string, x, y float64, style TextStyle) {
	c.draws = append(c.draws, drawCall{Page: c.pages, Text: text, X: x, Y: y, Style: style})
}

func (c *recordingCanvas) Err() error { return nil }

func (c *recordingCanvas) Finish() ([]byte, error) { return nil, nil }

func (c *recordingCanvas) texts() []string {
	out := make([]string, 0, len(c.draws))
	for _, d := range c.draws {
		out = append(out, d.Text)
	}
	return out
}

func (c *recordingCanvas) indexOf(text string) int {
	for i, d := range c.draws {
		if d.Text == text {
			return i
		}
	}
	return -1
}

func janeDoe() model.ResumeData {
	return model.ResumeData{
		Personal: model.Personal{Name: "Jane Doe"},
		Summary:  "Experienced administrator.",
		Education: []model.Education{
			{Qualification: "B.Sc.", Institution: "State University", Period: "2010-2014"},
		},
	}
}

func longItems(n int) []string {
	items := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, fmt.Sprintf("Item %02d %s", i, strings.Repeat("maintained server racks and patched endpoints across branch offices ", 3)))
	}
	return items
}

func sampleResume() model.ResumeData {
	return model.ResumeData{
		Personal: model.Personal{
			Name:        "Jane Doe",
			Designation: "Systems Administrator",
			Location:    "Pune, India",
			Phone:       "+91 98765 43210",
			Email:       "jane@example.com",
			LinkedIn:    "linkedin.com/in/janedoe",
		},
		Summary: "Administrator with a decade of experience keeping office networks, servers and endpoints healthy.",
		KeyResponsibilities: []model.CategoryList{
			{Category: "Network Operations", Items: []string{"Configured VLANs and firewall rules.", "Monitored WAN links."}},
			{Category: "Hardware Lifecycle", Items: []string{"Tracked asset inventory."}},
		},
		Experience: []model.Experience{
			{
				Title:      "System Administrator",
				Company:    "Acme Corp",
				Location:   "Pune",
				Period:     "2018 - Present",
				Highlights: []string{"Migrated 200 mailboxes.", "Cut ticket backlog by half."},
			},
		},
		CoreCompetencies: []string{"Active Directory", "Backup and Recovery"},
		TechnicalProficiencies: []model.CategoryList{
			{Category: "Operating Systems", Items: []string{"Windows Server", "Ubuntu"}},
		},
		Education: []model.Education{
			{Qualification: "B.Sc. Computer Science", Institution: "State University", Period: "2010-2014", Details: "First class with distinction."},
		},
		Certifications: []model.Certification{
			{Name: "CCNA", Issuer: "Cisco", Year: "2019"},
		},
		Achievements: []model.Achievement{
			{Title: "Zero downtime", Details: "Completed the data centre move without an outage."},
		},
		Interests: []string{"Home labs", "Open source"},
	}
}
