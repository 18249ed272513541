package content

import (
	"strings"
	"time"
)

type BlogCategory struct {
	ID        uint
	Name      string
	NameEn    string
	Slug      string
	PostCount int64
}

func (c *BlogCategory) Validate() error {
	if err := required("name", c.Name); err != nil {
		return err
	}
	slug, err := normalizeSlug(c.Slug, c.Name)
	if err != nil {
		return err
	}
	c.Slug = slug
	return nil
}

type BlogPost struct {
	ID           uint
	CategoryID   *uint
	Title        string
	TitleEn      string
	Slug         string
	Excerpt      string
	ExcerptEn    string
	Content      string
	ContentEn    string
	CoverImage   string
	AuthorID     *uint
	IsPublished  bool
	PublishedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CategoryName string
	CategorySlug string
}

// Validate normalises the slug and stamps PublishedAt the first time the post
// is published.
func (p *BlogPost) Validate(now time.Time) error {
	if err := required("title", p.Title); err != nil {
		return err
	}
	if err := required("content", p.Content); err != nil {
		return err
	}
	slug, err := normalizeSlug(p.Slug, p.Title)
	if err != nil {
		return err
	}
	p.Slug = slug
	if p.IsPublished && p.PublishedAt == nil {
		t := now.UTC()
		p.PublishedAt = &t
	}
	return nil
}

const (
	maxCommentAuthor = 100
	maxCommentBody   = 2000
)

type BlogComment struct {
	ID         uint
	PostID     uint
	AuthorName string
	Comment    string
	IsApproved bool
	CreatedAt  time.Time
}

// NewBlogComment builds a pending comment, truncating overlong input.
func NewBlogComment(postID uint, authorName, comment string) (*BlogComment, error) {
	authorName = strings.TrimSpace(authorName)
	comment = strings.TrimSpace(comment)
	if authorName == "" || comment == "" {
		return nil, errNameAndComment
	}
	return &BlogComment{
		PostID:     postID,
		AuthorName: truncate(authorName, maxCommentAuthor),
		Comment:    truncate(comment, maxCommentBody),
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
