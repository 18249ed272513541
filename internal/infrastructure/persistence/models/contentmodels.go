package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/cerberus-dev/cerberus/internal/shared/constants"
)

type BlogCategoryModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	NameEn    string `gorm:"size:100"`
	Slug      string `gorm:"uniqueIndex;size:120;not null"`
	CreatedAt time.Time
}

func (BlogCategoryModel) TableName() string { return constants.TableBlogCategories }

type BlogPostModel struct {
	ID          uint   `gorm:"primaryKey"`
	CategoryID  *uint  `gorm:"index"`
	Title       string `gorm:"size:255;not null"`
	TitleEn     string `gorm:"size:255"`
	Slug        string `gorm:"uniqueIndex;size:191;not null"`
	Excerpt     string `gorm:"type:text"`
	ExcerptEn   string `gorm:"type:text"`
	Content     string `gorm:"type:longtext;not null"`
	ContentEn   string `gorm:"type:longtext"`
	CoverImage  string `gorm:"size:500"`
	AuthorID    *uint
	IsPublished bool `gorm:"not null;default:false;index"`
	PublishedAt *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (BlogPostModel) TableName() string { return constants.TableBlogPosts }

type BlogCommentModel struct {
	ID         uint      `gorm:"primaryKey"`
	PostID     uint      `gorm:"not null;index"`
	AuthorName string    `gorm:"size:100;not null"`
	Comment    string    `gorm:"type:text;not null"`
	IsApproved bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (BlogCommentModel) TableName() string { return constants.TableBlogComments }

type ProjectModel struct {
	ID            uint   `gorm:"primaryKey"`
	Title         string `gorm:"size:255;not null"`
	TitleEn       string `gorm:"size:255"`
	Slug          string `gorm:"uniqueIndex;size:191;not null"`
	Summary       string `gorm:"type:text"`
	SummaryEn     string `gorm:"type:text"`
	Description   string `gorm:"type:longtext"`
	DescriptionEn string `gorm:"type:longtext"`
	ClientName    string `gorm:"size:150"`
	URL           string `gorm:"column:url;size:500"`
	CoverImage    string `gorm:"size:500"`
	Date          *time.Time
	IsPublished   bool      `gorm:"not null;default:false;index"`
	IsFeatured    bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (ProjectModel) TableName() string { return constants.TableProjects }

type ProjectTechnologyModel struct {
	ID        uint   `gorm:"primaryKey"`
	ProjectID uint   `gorm:"not null;index"`
	TechName  string `gorm:"size:100;not null"`
	TechIcon  string `gorm:"size:255"`
}

func (ProjectTechnologyModel) TableName() string { return constants.TableProjectTechnologies }

type ProjectImageModel struct {
	ID        uint   `gorm:"primaryKey"`
	ProjectID uint   `gorm:"not null;index"`
	URL       string `gorm:"column:url;size:500;not null"`
	Caption   string `gorm:"size:255"`
	SortOrder int    `gorm:"not null;default:0"`
	CreatedAt time.Time
}

func (ProjectImageModel) TableName() string { return constants.TableProjectImages }

type TechnologyModel struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:100;not null"`
	Category      string `gorm:"size:50;not null;default:other;index"`
	IconURL       string `gorm:"size:500"`
	Description   string `gorm:"type:text"`
	DescriptionEn string `gorm:"type:text"`
	SortOrder     int    `gorm:"not null;default:0"`
	IsActive      bool   `gorm:"not null;default:true"`
	CreatedAt     time.Time
}

func (TechnologyModel) TableName() string { return constants.TableTechnologies }

type MaintenanceNoticeModel struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"size:255;not null"`
	Message   string    `gorm:"type:text;not null"`
	StartAt   time.Time `gorm:"not null;index"`
	EndAt     *time.Time
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedBy uint      `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (MaintenanceNoticeModel) TableName() string { return constants.TableMaintenanceNotices }

type FaqItemModel struct {
	ID          uint   `gorm:"primaryKey"`
	Question    string `gorm:"size:500;not null"`
	QuestionEn  string `gorm:"size:500"`
	Answer      string `gorm:"type:text;not null"`
	AnswerEn    string `gorm:"type:text"`
	Category    string `gorm:"size:50;not null;default:general;index"`
	SortOrder   int    `gorm:"not null;default:0"`
	IsPublished bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (FaqItemModel) TableName() string { return constants.TableFaqItems }

type ProjectRequirementModel struct {
	ID                  uint   `gorm:"primaryKey"`
	ClientID            *uint  `gorm:"index"`
	ContactName         string `gorm:"size:150;not null"`
	ContactEmail        string `gorm:"size:191;not null"`
	ContactPhone        string `gorm:"size:50"`
	CompanyName         string `gorm:"size:150"`
	BusinessType        string `gorm:"size:100;not null"`
	BusinessDesc        string `gorm:"type:text"`
	ProjectType         string `gorm:"size:100;not null"`
	ProjectObjective    string `gorm:"type:text"`
	Sections            datatypes.JSON
	Branding            string `gorm:"type:text"`
	Technologies        datatypes.JSON
	BudgetRange         string `gorm:"size:100"`
	Timeline            string `gorm:"size:100"`
	Comments            string `gorm:"type:text"`
	InternalNotes       string `gorm:"type:text"`
	Status              string `gorm:"size:20;not null;default:draft;index"`
	CreatedBy           uint   `gorm:"not null"`
	ConvertedToClientID *uint
	CreatedAt           time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

func (ProjectRequirementModel) TableName() string { return constants.TableProjectRequirements }

type EmailTemplateModel struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"uniqueIndex;size:100;not null"`
	Name        string `gorm:"size:150;not null"`
	Subject     string `gorm:"size:255;not null"`
	HTMLContent string `gorm:"column:html_content;type:longtext"`
	IsActive    bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (EmailTemplateModel) TableName() string { return constants.TableEmailTemplates }

type EmailLogModel struct {
	ID           uint   `gorm:"primaryKey"`
	TemplateCode string `gorm:"size:100;not null;index"`
	ToEmail      string `gorm:"size:191;not null"`
	Subject      string `gorm:"size:255"`
	Status       string `gorm:"size:20;not null"`
	ErrorMsg     string `gorm:"type:text"`
	Payload      datatypes.JSON
	SentAt       *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
}

func (EmailLogModel) TableName() string { return constants.TableEmailLogs }

// All lists every model, for AutoMigrate in tests and the dev strategy.
func All() []any {
	return []any{
		&UserModel{}, &LeadModel{},
		&TicketModel{}, &TicketMessageModel{}, &TicketAttachmentModel{},
		&ClientServiceModel{}, &NotificationModel{},
		&BlogCategoryModel{}, &BlogPostModel{}, &BlogCommentModel{},
		&ProjectModel{}, &ProjectTechnologyModel{}, &ProjectImageModel{},
		&TechnologyModel{}, &MaintenanceNoticeModel{}, &FaqItemModel{},
		&ProjectRequirementModel{}, &EmailTemplateModel{}, &EmailLogModel{},
	}
}
