package content

import "time"

const DefaultFaqCategory = "general"

type FaqItem struct {
	ID          uint
	Question    string
	QuestionEn  string
	Answer      string
	AnswerEn    string
	Category    string
	SortOrder   int
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (f *FaqItem) Validate() error {
	if err := required("question", f.Question); err != nil {
		return err
	}
	if err := required("answer", f.Answer); err != nil {
		return err
	}
	if f.Category == "" {
		f.Category = DefaultFaqCategory
	}
	return nil
}

// FaqCategory is one entry of the fixed category list.
type FaqCategory struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}
