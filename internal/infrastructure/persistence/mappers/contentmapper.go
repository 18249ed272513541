package mappers

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/cerberus-dev/cerberus/internal/domain/content"
	"github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/models"
)

// Content entities are flat records, so these are plain conversion
// functions rather than mapper types.

func BlogPostToModel(p *content.BlogPost) *models.BlogPostModel {
	return &models.BlogPostModel{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Title:       p.Title,
		TitleEn:     p.TitleEn,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		ExcerptEn:   p.ExcerptEn,
		Content:     p.Content,
		ContentEn:   p.ContentEn,
		CoverImage:  p.CoverImage,
		AuthorID:    p.AuthorID,
		IsPublished: p.IsPublished,
		PublishedAt: p.PublishedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func BlogPostToDomain(m *models.BlogPostModel) *content.BlogPost {
	return &content.BlogPost{
		ID:          m.ID,
		CategoryID:  m.CategoryID,
		Title:       m.Title,
		TitleEn:     m.TitleEn,
		Slug:        m.Slug,
		Excerpt:     m.Excerpt,
		ExcerptEn:   m.ExcerptEn,
		Content:     m.Content,
		ContentEn:   m.ContentEn,
		CoverImage:  m.CoverImage,
		AuthorID:    m.AuthorID,
		IsPublished: m.IsPublished,
		PublishedAt: m.PublishedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func BlogCommentToDomain(m *models.BlogCommentModel) *content.BlogComment {
	return &content.BlogComment{
		ID:         m.ID,
		PostID:     m.PostID,
		AuthorName: m.AuthorName,
		Comment:    m.Comment,
		IsApproved: m.IsApproved,
		CreatedAt:  m.CreatedAt,
	}
}

func ProjectToModel(p *content.Project) *models.ProjectModel {
	return &models.ProjectModel{
		ID:            p.ID,
		Title:         p.Title,
		TitleEn:       p.TitleEn,
		Slug:          p.Slug,
		Summary:       p.Summary,
		SummaryEn:     p.SummaryEn,
		Description:   p.Description,
		DescriptionEn: p.DescriptionEn,
		ClientName:    p.ClientName,
		URL:           p.URL,
		CoverImage:    p.CoverImage,
		Date:          p.Date,
		IsPublished:   p.IsPublished,
		IsFeatured:    p.IsFeatured,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func ProjectToDomain(m *models.ProjectModel) *content.Project {
	return &content.Project{
		ID:            m.ID,
		Title:         m.Title,
		TitleEn:       m.TitleEn,
		Slug:          m.Slug,
		Summary:       m.Summary,
		SummaryEn:     m.SummaryEn,
		Description:   m.Description,
		DescriptionEn: m.DescriptionEn,
		ClientName:    m.ClientName,
		URL:           m.URL,
		CoverImage:    m.CoverImage,
		Date:          m.Date,
		IsPublished:   m.IsPublished,
		IsFeatured:    m.IsFeatured,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func TechnologyToModel(t *content.Technology) *models.TechnologyModel {
	return &models.TechnologyModel{
		ID:            t.ID,
		Name:          t.Name,
		Category:      t.Category,
		IconURL:       t.IconURL,
		Description:   t.Description,
		DescriptionEn: t.DescriptionEn,
		SortOrder:     t.SortOrder,
		IsActive:      t.IsActive,
		CreatedAt:     t.CreatedAt,
	}
}

func TechnologyToDomain(m *models.TechnologyModel) *content.Technology {
	return &content.Technology{
		ID:            m.ID,
		Name:          m.Name,
		Category:      m.Category,
		IconURL:       m.IconURL,
		Description:   m.Description,
		DescriptionEn: m.DescriptionEn,
		SortOrder:     m.SortOrder,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
	}
}

func MaintenanceToModel(n *content.MaintenanceNotice) *models.MaintenanceNoticeModel {
	return &models.MaintenanceNoticeModel{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		StartAt:   n.StartAt,
		EndAt:     n.EndAt,
		IsActive:  n.IsActive,
		CreatedBy: n.CreatedBy,
		CreatedAt: n.CreatedAt,
	}
}

func MaintenanceToDomain(m *models.MaintenanceNoticeModel) *content.MaintenanceNotice {
	return &content.MaintenanceNotice{
		ID:        m.ID,
		Title:     m.Title,
		Message:   m.Message,
		StartAt:   m.StartAt,
		EndAt:     m.EndAt,
		IsActive:  m.IsActive,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
	}
}

func FaqToModel(f *content.FaqItem) *models.FaqItemModel {
	return &models.FaqItemModel{
		ID:          f.ID,
		Question:    f.Question,
		QuestionEn:  f.QuestionEn,
		Answer:      f.Answer,
		AnswerEn:    f.AnswerEn,
		Category:    f.Category,
		SortOrder:   f.SortOrder,
		IsPublished: f.IsPublished,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func FaqToDomain(m *models.FaqItemModel) *content.FaqItem {
	return &content.FaqItem{
		ID:          m.ID,
		Question:    m.Question,
		QuestionEn:  m.QuestionEn,
		Answer:      m.Answer,
		AnswerEn:    m.AnswerEn,
		Category:    m.Category,
		SortOrder:   m.SortOrder,
		IsPublished: m.IsPublished,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func RequirementToModel(r *content.ProjectRequirement) (*models.ProjectRequirementModel, error) {
	sections, err := marshalStrings(r.Sections)
	if err != nil {
		return nil, err
	}
	techs, err := marshalStrings(r.Technologies)
	if err != nil {
		return nil, err
	}
	return &models.ProjectRequirementModel{
		ID:                  r.ID,
		ClientID:            r.ClientID,
		ContactName:         r.ContactName,
		ContactEmail:        r.ContactEmail,
		ContactPhone:        r.ContactPhone,
		CompanyName:         r.CompanyName,
		BusinessType:        r.BusinessType,
		BusinessDesc:        r.BusinessDesc,
		ProjectType:         r.ProjectType,
		ProjectObjective:    r.ProjectObjective,
		Sections:            sections,
		Branding:            r.Branding,
		Technologies:        techs,
		BudgetRange:         r.BudgetRange,
		Timeline:            r.Timeline,
		Comments:            r.Comments,
		InternalNotes:       r.InternalNotes,
		Status:              string(r.Status),
		CreatedBy:           r.CreatedBy,
		ConvertedToClientID: r.ConvertedToClientID,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}, nil
}

func RequirementToDomain(m *models.ProjectRequirementModel) (*content.ProjectRequirement, error) {
	sections, err := unmarshalStrings(m.Sections)
	if err != nil {
		return nil, err
	}
	techs, err := unmarshalStrings(m.Technologies)
	if err != nil {
		return nil, err
	}
	return &content.ProjectRequirement{
		ID:                  m.ID,
		ClientID:            m.ClientID,
		ContactName:         m.ContactName,
		ContactEmail:        m.ContactEmail,
		ContactPhone:        m.ContactPhone,
		CompanyName:         m.CompanyName,
		BusinessType:        m.BusinessType,
		BusinessDesc:        m.BusinessDesc,
		ProjectType:         m.ProjectType,
		ProjectObjective:    m.ProjectObjective,
		Sections:            sections,
		Branding:            m.Branding,
		Technologies:        techs,
		BudgetRange:         m.BudgetRange,
		Timeline:            m.Timeline,
		Comments:            m.Comments,
		InternalNotes:       m.InternalNotes,
		Status:              content.RequirementStatus(m.Status),
		CreatedBy:           m.CreatedBy,
		ConvertedToClientID: m.ConvertedToClientID,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}, nil
}

func EmailTemplateToDomain(m *models.EmailTemplateModel) *email.Template {
	return &email.Template{
		ID:          m.ID,
		Code:        m.Code,
		Name:        m.Name,
		Subject:     m.Subject,
		HTMLContent: m.HTMLContent,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func EmailLogToModel(l *email.Log) (*models.EmailLogModel, error) {
	model := &models.EmailLogModel{
		ID:           l.ID,
		TemplateCode: l.TemplateCode,
		ToEmail:      l.ToEmail,
		Subject:      l.Subject,
		Status:       string(l.Status),
		ErrorMsg:     l.ErrorMsg,
		SentAt:       l.SentAt,
		CreatedAt:    l.CreatedAt,
	}
	if len(l.Payload) > 0 {
		raw, err := json.Marshal(l.Payload)
		if err != nil {
			return nil, err
		}
		model.Payload = datatypes.JSON(raw)
	}
	return model, nil
}

func EmailLogToDomain(m *models.EmailLogModel) *email.Log {
	l := &email.Log{
		ID:           m.ID,
		TemplateCode: m.TemplateCode,
		ToEmail:      m.ToEmail,
		Subject:      m.Subject,
		Status:       email.LogStatus(m.Status),
		ErrorMsg:     m.ErrorMsg,
		SentAt:       m.SentAt,
		CreatedAt:    m.CreatedAt,
	}
	if len(m.Payload) > 0 {
		// a corrupt payload only loses the debug data
		_ = json.Unmarshal(m.Payload, &l.Payload)
	}
	return l
}

func marshalStrings(ss []string) (datatypes.JSON, error) {
	if ss == nil {
		ss = []string{}
	}
	raw, err := json.Marshal(ss)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func unmarshalStrings(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var ss []string
	if err := json.Unmarshal(raw, &ss); err != nil {
		return nil, err
	}
	return ss, nil
}
