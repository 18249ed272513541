package content

import (
	"context"
	"strings"

	"github.com/cerberus-dev/cerberus/internal/application/content/dto"
	"github.com/cerberus-dev/cerberus/internal/domain/content"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/i18n"
)

// ListPublishedFaq returns published entries with the answer rendered from
// markdown.
func (s *ServiceDDD) ListPublishedFaq(ctx context.Context, category string, lang i18n.Lang) ([]*dto.FaqDTO, error) {
	category = strings.TrimSpace(category)
	if category != "" && !s.catalog.IsFaqCategory(category) {
		return nil, errors.NewValidationError("bad_category")
	}
	items, err := s.faq.List(ctx, category, true)
	if err != nil {
		s.logger.Errorw("failed to list faq", "error", err)
		return nil, errors.NewInternalError("failed to list faq")
	}
	out := make([]*dto.FaqDTO, 0, len(items))
	for _, f := range items {
		out = append(out, s.toFaqDTO(f, lang, false))
	}
	return out, nil
}

func (s *ServiceDDD) FaqCategories() []content.FaqCategory {
	return s.catalog.FaqCategories()
}

func (s *ServiceDDD) ListAllFaq(ctx context.Context) ([]*dto.FaqDTO, error) {
	items, err := s.faq.List(ctx, "", false)
	if err != nil {
		s.logger.Errorw("failed to list faq", "error", err)
		return nil, errors.NewInternalError("failed to list faq")
	}
	out := make([]*dto.FaqDTO, 0, len(items))
	for _, f := range items {
		out = append(out, s.toFaqDTO(f, i18n.ES, true))
	}
	return out, nil
}

func (s *ServiceDDD) CreateFaq(ctx context.Context, req dto.FaqRequest) (*dto.FaqDTO, error) {
	f := &content.FaqItem{IsPublished: true}
	if err := s.applyFaq(f, req); err != nil {
		return nil, err
	}
	if err := s.faq.Create(ctx, f); err != nil {
		s.logger.Errorw("failed to create faq", "error", err)
		return nil, errors.NewInternalError("failed to create faq")
	}
	return s.toFaqDTO(f, i18n.ES, true), nil
}

func (s *ServiceDDD) UpdateFaq(ctx context.Context, id uint, req dto.FaqRequest) (*dto.FaqDTO, error) {
	f, err := s.faq.GetByID(ctx, id)
	if err != nil {
		s.logger.Errorw("failed to get faq", "faq_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get faq")
	}
	if f == nil {
		return nil, errors.NewNotFoundError("not_found")
	}
	if err := s.applyFaq(f, req); err != nil {
		return nil, err
	}
	if err := s.faq.Update(ctx, f); err != nil {
		s.logger.Errorw("failed to update faq", "faq_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update faq")
	}
	return s.toFaqDTO(f, i18n.ES, true), nil
}

func (s *ServiceDDD) DeleteFaq(ctx context.Context, id uint) error {
	if err := s.faq.Delete(ctx, id); err != nil {
		s.logger.Errorw("failed to delete faq", "faq_id", id, "error", err)
		return errors.NewInternalError("failed to delete faq")
	}
	return nil
}

func (s *ServiceDDD) applyFaq(f *content.FaqItem, req dto.FaqRequest) error {
	f.Question = strings.TrimSpace(req.Question)
	f.QuestionEn = strings.TrimSpace(req.QuestionEn)
	f.Answer = req.Answer
	f.AnswerEn = req.AnswerEn
	f.Category = strings.TrimSpace(req.Category)
	f.SortOrder = req.SortOrder
	if req.IsPublished != nil {
		f.IsPublished = *req.IsPublished
	}
	if err := f.Validate(); err != nil {
		return errors.NewValidationError("missing_fields", err.Error())
	}
	if !s.catalog.IsFaqCategory(f.Category) {
		return errors.NewValidationError("bad_category")
	}
	return nil
}

func (s *ServiceDDD) toFaqDTO(f *content.FaqItem, lang i18n.Lang, admin bool) *dto.FaqDTO {
	out := &dto.FaqDTO{
		ID:          f.ID,
		Question:    i18n.Text(lang, f.Question, f.QuestionEn),
		Answer:      i18n.Text(lang, f.Answer, f.AnswerEn),
		Category:    f.Category,
		SortOrder:   f.SortOrder,
		IsPublished: f.IsPublished,
	}
	if admin {
		out.Question, out.Answer = f.Question, f.Answer
		out.Translations = &dto.Translations{QuestionEn: f.QuestionEn, AnswerEn: f.AnswerEn}
	}
	html, err := s.markdown.Render(out.Answer)
	if err != nil {
		s.logger.Warnw("failed to render faq answer", "faq_id", f.ID, "error", err)
		return out
	}
	out.AnswerHTML = html
	return out
}
