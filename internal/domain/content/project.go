package content

import "time"

type ProjectTechnology struct {
	TechName string
	TechIcon string
}

type ProjectImage struct {
	ID        uint
	ProjectID uint
	URL       string
	Caption   string
	SortOrder int
	CreatedAt time.Time
}

type Project struct {
	ID            uint
	Title         string
	TitleEn       string
	Slug          string
	Summary       string
	SummaryEn     string
	Description   string
	DescriptionEn string
	ClientName    string
	URL           string
	CoverImage    string
	Date          *time.Time
	IsPublished   bool
	IsFeatured    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Technologies  []ProjectTechnology
	Images        []ProjectImage
}

// Validate normalises the slug and drops blank or duplicate technologies.
func (p *Project) Validate() error {
	if err := required("title", p.Title); err != nil {
		return err
	}
	slug, err := normalizeSlug(p.Slug, p.Title)
	if err != nil {
		return err
	}
	p.Slug = slug

	seen := make(map[string]bool, len(p.Technologies))
	techs := p.Technologies[:0]
	for _, t := range p.Technologies {
		if t.TechName == "" || seen[t.TechName] {
			continue
		}
		seen[t.TechName] = true
		techs = append(techs, t)
	}
	p.Technologies = techs
	return nil
}

type Technology struct {
	ID            uint
	Name          string
	Category      string
	IconURL       string
	Description   string
	DescriptionEn string
	SortOrder     int
	IsActive      bool
	CreatedAt     time.Time
}

func (t *Technology) Validate() error {
	if err := required("name", t.Name); err != nil {
		return err
	}
	if t.Category == "" {
		t.Category = "other"
	}
	return nil
}
