package render

import (
	"strings"

	"resume-site/resume/model"
	"resume-site/resume/sections"
)

// BlockStyle is the semantic paragraph style of a DOCX block.
type BlockStyle int

const (
	StyleBody BlockStyle = iota
	StyleTitle
	StyleHeading2
	StyleHeading3
	StyleBullet
)

const (
	styleIDTitle    = "Title"
	styleIDHeading2 = "Heading2"
	styleIDHeading3 = "Heading3"
	styleIDNormal   = "Normal"
	styleIDList     = "ListParagraph"
)

func (s BlockStyle) styleID() string {
	switch s {
	case StyleTitle:
		return styleIDTitle
	case StyleHeading2:
		return styleIDHeading2
	case StyleHeading3:
		return styleIDHeading3
	case StyleBullet:
		return styleIDList
	default:
		return styleIDNormal
	}
}

// Align is the horizontal alignment of a block.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Run is an inline span with its own formatting. Break puts a line break
// ahead of the text.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Break  bool
}

// Block is one paragraph of the document. Spacing is in twips.
type Block struct {
	Style         BlockStyle
	Align         Align
	SpacingBefore int
	SpacingAfter  int
	Runs          []Run
}

// Text concatenates the runs of the block.
func (b Block) Text() string {
	var sb strings.Builder
	for _, run := range b.Runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

func plain(text string) []Run {
	return []Run{{Text: text}}
}

// Paragraph spacing, in twips.
const (
	spaceDesignationAfter = 120
	spaceContactAfter     = 200
	spaceSummaryBefore    = 200
	spaceHeadingBefore    = 220
	spaceHeadingAfter     = 80
	spaceSummaryAfter     = 160
	spaceGroupBefore      = 120
	spaceGroupAfter       = 40
	spaceItemAfter        = 40
	spaceRoleAfter        = 20
	spaceRoleMetaAfter    = 60
	spaceRoleGap          = 60
)

// BuildBlocks lays data out as the flat block list of the document body.
func BuildBlocks(data model.ResumeData) ([]Block, error) {
	r := &docxSectionRenderer{}
	if err := sections.Render(data, r); err != nil {
		return nil, err
	}
	return r.blocks, nil
}

type docxSectionRenderer struct {
	blocks []Block
}

func (r *docxSectionRenderer) push(blocks ...Block) {
	r.blocks = append(r.blocks, blocks...)
}

func (r *docxSectionRenderer) heading(title string, before int) {
	r.push(Block{Style: StyleHeading2, SpacingBefore: before, SpacingAfter: spaceHeadingAfter, Runs: plain(title)})
}

func (r *docxSectionRenderer) bullet(runs ...Run) {
	r.push(Block{Style: StyleBullet, SpacingAfter: spaceItemAfter, Runs: runs})
}

func (r *docxSectionRenderer) Header(p model.Personal) error {
	r.push(
		Block{Style: StyleTitle, Align: AlignCenter, Runs: plain(p.Name)},
		Block{Align: AlignCenter, SpacingAfter: spaceDesignationAfter, Runs: plain(strings.ToUpper(p.Designation))},
		Block{Align: AlignCenter, SpacingAfter: spaceContactAfter, Runs: plain(joinNonEmpty(titleSeparator, p.Location, p.Phone, p.Email, p.LinkedIn))},
	)
	return nil
}

func (r *docxSectionRenderer) Summary(title, text string) error {
	r.heading(title, spaceSummaryBefore)
	r.push(Block{SpacingAfter: spaceSummaryAfter, Runs: plain(text)})
	return nil
}

func (r *docxSectionRenderer) Responsibility(group model.CategoryList) error {
	r.push(Block{Style: StyleHeading3, SpacingBefore: spaceGroupBefore, SpacingAfter: spaceGroupAfter, Runs: plain(group.Category)})
	for _, item := range group.Items {
		r.bullet(Run{Text: item})
	}
	return nil
}

func (r *docxSectionRenderer) Experience(title string, roles []model.Experience) error {
	r.heading(title, spaceHeadingBefore)
	for _, role := range roles {
		r.push(
			Block{SpacingAfter: spaceRoleAfter, Runs: []Run{{Text: joinNonEmpty(titleSeparator, role.Title, role.Company), Bold: true}}},
			Block{SpacingAfter: spaceRoleMetaAfter, Runs: []Run{{Text: joinNonEmpty(metaSeparator, role.Location, role.Period), Italic: true}}},
		)
		for _, highlight := range role.Highlights {
			r.bullet(Run{Text: highlight})
		}
		r.push(Block{SpacingAfter: spaceRoleGap})
	}
	return nil
}

func (r *docxSectionRenderer) Competencies(title string, items []string) error {
	r.heading(title, spaceHeadingBefore)
	for _, item := range items {
		r.bullet(Run{Text: item})
	}
	return nil
}

func (r *docxSectionRenderer) Proficiencies(title string, groups []model.CategoryList) error {
	r.heading(title, spaceHeadingBefore)
	for _, group := range groups {
		r.push(Block{SpacingAfter: spaceItemAfter, Runs: []Run{
			{Text: group.Category + ": ", Bold: true},
			{Text: strings.Join(group.Items, ", ")},
		}})
	}
	return nil
}

func (r *docxSectionRenderer) Education(title string, items []model.Education) error {
	r.heading(title, spaceHeadingBefore)
	for _, item := range items {
		r.push(
			Block{SpacingAfter: spaceRoleAfter, Runs: []Run{{Text: item.Qualification, Bold: true}}},
			Block{SpacingAfter: spaceItemAfter, Runs: plain(joinNonEmpty(metaSeparator, item.Institution, item.Period))},
		)
		if item.HasDetails() {
			r.push(Block{SpacingAfter: spaceItemAfter, Runs: plain(item.Details)})
		}
	}
	return nil
}

func (r *docxSectionRenderer) Certifications(title string, items []model.Certification) error {
	r.heading(title, spaceHeadingBefore)
	for _, item := range items {
		runs := []Run{{Text: item.Name, Bold: true}}
		if tail := joinNonEmpty(", ", item.Issuer, item.Year); tail != "" {
			runs = append(runs, Run{Text: certSeparator + tail, Break: true})
		}
		r.push(Block{SpacingAfter: spaceItemAfter, Runs: runs})
	}
	return nil
}

func (r *docxSectionRenderer) Achievements(title string, items []model.Achievement) error {
	r.heading(title, spaceHeadingBefore)
	for _, item := range items {
		r.bullet(Run{Text: item.Title + ": ", Bold: true}, Run{Text: item.Details})
	}
	return nil
}

func (r *docxSectionRenderer) Interests(title string, items []string) error {
	r.heading(title, spaceHeadingBefore)
	for _, item := range items {
		r.bullet(Run{Text: item})
	}
	return nil
}
