package dto

import (
	"time"

	"github.com/cerberus-dev/cerberus/internal/domain/content"
	"github.com/cerberus-dev/cerberus/internal/shared/i18n"
)

// Translations carries the English variants on admin responses only.
type Translations struct {
	TitleEn       string `json:"titleEn,omitempty"`
	ExcerptEn     string `json:"excerptEn,omitempty"`
	ContentEn     string `json:"contentEn,omitempty"`
	SummaryEn     string `json:"summaryEn,omitempty"`
	DescriptionEn string `json:"descriptionEn,omitempty"`
	QuestionEn    string `json:"questionEn,omitempty"`
	AnswerEn      string `json:"answerEn,omitempty"`
	NameEn        string `json:"nameEn,omitempty"`
}

// ---- blog ----

type PostDTO struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Excerpt      string     `json:"excerpt"`
	Content      string     `json:"content,omitempty"`
	ContentHTML  string     `json:"contentHtml,omitempty"`
	CoverImage   string     `json:"coverImage,omitempty"`
	CategoryID   *uint      `json:"categoryId,omitempty"`
	CategoryName string     `json:"categoryName,omitempty"`
	CategorySlug string     `json:"categorySlug,omitempty"`
	IsPublished  bool       `json:"isPublished"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	*Translations
}

type PostRequest struct {
	Title       string `json:"title" binding:"required"`
	TitleEn     string `json:"title_en"`
	Slug        string `json:"slug"`
	Excerpt     string `json:"excerpt"`
	ExcerptEn   string `json:"excerpt_en"`
	Content     string `json:"content" binding:"required"`
	ContentEn   string `json:"content_en"`
	CoverImage  string `json:"cover_image"`
	CategoryID  *uint  `json:"category_id"`
	IsPublished bool   `json:"is_published"`
}

type CategoryDTO struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PostCount int64  `json:"postCount"`
}

type CategoryRequest struct {
	Name   string `json:"name" binding:"required"`
	NameEn string `json:"name_en"`
	Slug   string `json:"slug"`
}

type CommentDTO struct {
	ID         uint      `json:"id"`
	PostID     uint      `json:"postId"`
	AuthorName string    `json:"authorName"`
	Comment    string    `json:"comment"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CommentRequest struct {
	AuthorName string `json:"author_name"`
	Comment    string `json:"comment"`
}

// ToPostDTO localises a post. withBody adds the body and its rendered HTML,
// admin adds the raw English fields.
func ToPostDTO(p *content.BlogPost, lang i18n.Lang, withBody, admin bool) *PostDTO {
	out := &PostDTO{
		ID:           p.ID,
		Title:        i18n.Text(lang, p.Title, p.TitleEn),
		Slug:         p.Slug,
		Excerpt:      i18n.Text(lang, p.Excerpt, p.ExcerptEn),
		CoverImage:   p.CoverImage,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		CategorySlug: p.CategorySlug,
		IsPublished:  p.IsPublished,
		PublishedAt:  p.PublishedAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if withBody {
		out.Content = i18n.Text(lang, p.Content, p.ContentEn)
	}
	if admin {
		out.Title, out.Excerpt, out.Content = p.Title, p.Excerpt, p.Content
		out.Translations = &Translations{TitleEn: p.TitleEn, ExcerptEn: p.ExcerptEn, ContentEn: p.ContentEn}
	}
	return out
}

func ToCategoryDTO(c *content.BlogCategory, lang i18n.Lang) *CategoryDTO {
	return &CategoryDTO{
		ID:        c.ID,
		Name:      i18n.Text(lang, c.Name, c.NameEn),
		Slug:      c.Slug,
		PostCount: c.PostCount,
	}
}

func ToCommentDTO(c *content.BlogComment) *CommentDTO {
	return &CommentDTO{
		ID:         c.ID,
		PostID:     c.PostID,
		AuthorName: c.AuthorName,
		Comment:    c.Comment,
		IsApproved: c.IsApproved,
		CreatedAt:  c.CreatedAt,
	}
}

func ToCommentDTOs(cs []*content.BlogComment) []*CommentDTO {
	out := make([]*CommentDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToCommentDTO(c))
	}
	return out
}

// ---- projects and technologies ----

type TechnologyRef struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

type ProjectImageDTO struct {
	ID        uint   `json:"id"`
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
	SortOrder int    `json:"sortOrder"`
}

type ProjectDTO struct {
	ID           uint               `json:"id"`
	Title        string             `json:"title"`
	Slug         string             `json:"slug"`
	Summary      string             `json:"summary"`
	Description  string             `json:"description,omitempty"`
	ClientName   string             `json:"clientName,omitempty"`
	URL          string             `json:"url,omitempty"`
	CoverImage   string             `json:"coverImage,omitempty"`
	Date         *time.Time         `json:"date,omitempty"`
	IsPublished  bool               `json:"isPublished"`
	IsFeatured   bool               `json:"isFeatured"`
	Technologies []TechnologyRef    `json:"technologies"`
	Images       []*ProjectImageDTO `json:"images"`
	CreatedAt    time.Time          `json:"createdAt"`
	*Translations
}

type ProjectRequest struct {
	Title         string          `json:"title" binding:"required"`
	TitleEn       string          `json:"title_en"`
	Slug          string          `json:"slug"`
	Summary       string          `json:"summary"`
	SummaryEn     string          `json:"summary_en"`
	Description   string          `json:"description"`
	DescriptionEn string          `json:"description_en"`
	ClientName    string          `json:"client_name"`
	URL           string          `json:"url"`
	CoverImage    string          `json:"cover_image"`
	Date          *time.Time      `json:"date"`
	IsPublished   bool            `json:"is_published"`
	IsFeatured    bool            `json:"is_featured"`
	Technologies  []TechnologyRef `json:"technologies"`
}

func ToProjectImageDTO(img *content.ProjectImage) *ProjectImageDTO {
	return &ProjectImageDTO{ID: img.ID, URL: img.URL, Caption: img.Caption, SortOrder: img.SortOrder}
}

func ToProjectDTO(p *content.Project, lang i18n.Lang, admin bool) *ProjectDTO {
	out := &ProjectDTO{
		ID:           p.ID,
		Title:        i18n.Text(lang, p.Title, p.TitleEn),
		Slug:         p.Slug,
		Summary:      i18n.Text(lang, p.Summary, p.SummaryEn),
		Description:  i18n.Text(lang, p.Description, p.DescriptionEn),
		ClientName:   p.ClientName,
		URL:          p.URL,
		CoverImage:   p.CoverImage,
		Date:         p.Date,
		IsPublished:  p.IsPublished,
		IsFeatured:   p.IsFeatured,
		Technologies: make([]TechnologyRef, 0, len(p.Technologies)),
		Images:       make([]*ProjectImageDTO, 0, len(p.Images)),
		CreatedAt:    p.CreatedAt,
	}
	for _, t := range p.Technologies {
		out.Technologies = append(out.Technologies, TechnologyRef{Name: t.TechName, Icon: t.TechIcon})
	}
	for i := range p.Images {
		out.Images = append(out.Images, ToProjectImageDTO(&p.Images[i]))
	}
	if admin {
		out.Title, out.Summary, out.Description = p.Title, p.Summary, p.Description
		out.Translations = &Translations{TitleEn: p.TitleEn, SummaryEn: p.SummaryEn, DescriptionEn: p.DescriptionEn}
	}
	return out
}

type TechnologyDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	IconURL     string `json:"iconUrl,omitempty"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sortOrder"`
	IsActive    bool   `json:"isActive"`
	*Translations
}

type TechnologyRequest struct {
	Name          string `json:"name" binding:"required"`
	Category      string `json:"category"`
	IconURL       string `json:"icon_url"`
	Description   string `json:"description"`
	DescriptionEn string `json:"description_en"`
	SortOrder     int    `json:"sort_order"`
	IsActive      *bool  `json:"is_active"`
}

func ToTechnologyDTO(t *content.Technology, lang i18n.Lang, admin bool) *TechnologyDTO {
	out := &TechnologyDTO{
		ID:          t.ID,
		Name:        t.Name,
		Category:    t.Category,
		IconURL:     t.IconURL,
		Description: i18n.Text(lang, t.Description, t.DescriptionEn),
		SortOrder:   t.SortOrder,
		IsActive:    t.IsActive,
	}
	if admin {
		out.Description = t.Description
		out.Translations = &Translations{DescriptionEn: t.DescriptionEn}
	}
	return out
}

// ---- maintenance ----

type MaintenanceDTO struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	StartAt     time.Time  `json:"startAt"`
	EndAt       *time.Time `json:"endAt,omitempty"`
	IsActive    bool       `json:"isActive"`
	CreatedBy   uint       `json:"createdBy"`
	CreatorName string     `json:"creatorName,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type MaintenanceRequest struct {
	Title     string     `json:"title" binding:"required"`
	Message   string     `json:"message" binding:"required"`
	StartAt   *time.Time `json:"start_at"`
	EndAt     *time.Time `json:"end_at"`
	IsActive  *bool      `json:"is_active"`
	SendEmail bool       `json:"send_email"`
}

type MaintenanceCreatedDTO struct {
	Notice *MaintenanceDTO `json:"notice"`
	// EmailRecipients is how many clients the notice was queued for.
	EmailRecipients int `json:"emailRecipients"`
}

func ToMaintenanceDTO(n *content.MaintenanceNotice) *MaintenanceDTO {
	return &MaintenanceDTO{
		ID:          n.ID,
		Title:       n.Title,
		Message:     n.Message,
		StartAt:     n.StartAt,
		EndAt:       n.EndAt,
		IsActive:    n.IsActive,
		CreatedBy:   n.CreatedBy,
		CreatorName: n.CreatorName,
		CreatedAt:   n.CreatedAt,
	}
}

func ToMaintenanceDTOs(ns []*content.MaintenanceNotice) []*MaintenanceDTO {
	out := make([]*MaintenanceDTO, 0, len(ns))
	for _, n := range ns {
		out = append(out, ToMaintenanceDTO(n))
	}
	return out
}

// ---- faq ----

type FaqDTO struct {
	ID          uint   `json:"id"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	AnswerHTML  string `json:"answer_html"`
	Category    string `json:"category"`
	SortOrder   int    `json:"sortOrder"`
	IsPublished bool   `json:"isPublished"`
	*Translations
}

type FaqRequest struct {
	Question    string `json:"question" binding:"required"`
	QuestionEn  string `json:"question_en"`
	Answer      string `json:"answer" binding:"required"`
	AnswerEn    string `json:"answer_en"`
	Category    string `json:"category"`
	SortOrder   int    `json:"sort_order"`
	IsPublished *bool  `json:"is_published"`
}

// ---- requirements ----

type RequirementDTO struct {
	ID                  uint      `json:"id"`
	ClientID            *uint     `json:"clientId,omitempty"`
	ClientName          string    `json:"clientName,omitempty"`
	ContactName         string    `json:"contactName"`
	ContactEmail        string    `json:"contactEmail"`
	ContactPhone        string    `json:"contactPhone,omitempty"`
	CompanyName         string    `json:"companyName,omitempty"`
	BusinessType        string    `json:"businessType"`
	BusinessDesc        string    `json:"businessDesc,omitempty"`
	ProjectType         string    `json:"projectType"`
	ProjectObjective    string    `json:"projectObjective,omitempty"`
	Sections            []string  `json:"sections"`
	Branding            string    `json:"branding,omitempty"`
	Technologies        []string  `json:"technologies"`
	BudgetRange         string    `json:"budgetRange,omitempty"`
	Timeline            string    `json:"timeline,omitempty"`
	Comments            string    `json:"comments,omitempty"`
	InternalNotes       string    `json:"internalNotes,omitempty"`
	Status              string    `json:"status"`
	CreatedBy           uint      `json:"createdBy"`
	CreatorName         string    `json:"creatorName,omitempty"`
	ConvertedToClientID *uint     `json:"convertedToClientId,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type RequirementRequest struct {
	ClientID         *uint    `json:"client_id"`
	ContactName      string   `json:"contact_name"`
	ContactEmail     string   `json:"contact_email"`
	ContactPhone     string   `json:"contact_phone"`
	CompanyName      string   `json:"company_name"`
	BusinessType     string   `json:"business_type"`
	BusinessDesc     string   `json:"business_desc"`
	ProjectType      string   `json:"project_type"`
	ProjectObjective string   `json:"project_objective"`
	Sections         []string `json:"sections"`
	Branding         string   `json:"branding"`
	Technologies     []string `json:"technologies"`
	BudgetRange      string   `json:"budget_range"`
	Timeline         string   `json:"timeline"`
	Comments         string   `json:"comments"`
	InternalNotes    string   `json:"internal_notes"`
	Status           string   `json:"status"`
}

type ConvertResultDTO struct {
	Requirement       *RequirementDTO `json:"requirement"`
	ClientID          uint            `json:"clientId"`
	Username          string          `json:"username"`
	TemporaryPassword string          `json:"temporaryPassword"`
}

func ToRequirementDTO(r *content.ProjectRequirement) *RequirementDTO {
	out := &RequirementDTO{
		ID:                  r.ID,
		ClientID:            r.ClientID,
		ClientName:          r.ClientName,
		ContactName:         r.ContactName,
		ContactEmail:        r.ContactEmail,
		ContactPhone:        r.ContactPhone,
		CompanyName:         r.CompanyName,
		BusinessType:        r.BusinessType,
		BusinessDesc:        r.BusinessDesc,
		ProjectType:         r.ProjectType,
		ProjectObjective:    r.ProjectObjective,
		Sections:            r.Sections,
		Branding:            r.Branding,
		Technologies:        r.Technologies,
		BudgetRange:         r.BudgetRange,
		Timeline:            r.Timeline,
		Comments:            r.Comments,
		InternalNotes:       r.InternalNotes,
		Status:              string(r.Status),
		CreatedBy:           r.CreatedBy,
		CreatorName:         r.CreatorName,
		ConvertedToClientID: r.ConvertedToClientID,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
	if out.Sections == nil {
		out.Sections = []string{}
	}
	if out.Technologies == nil {
		out.Technologies = []string{}
	}
	return out
}

func ToRequirementDTOs(rs []*content.ProjectRequirement) []*RequirementDTO {
	out := make([]*RequirementDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, ToRequirementDTO(r))
	}
	return out
}
