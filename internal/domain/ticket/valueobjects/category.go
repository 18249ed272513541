package valueobjects

import "fmt"

type Category string

const (
	CategorySupport        Category = "support"
	CategoryImprovement    Category = "improvement"
	CategoryStorageRequest Category = "storage_request"
)

var validCategories = map[Category]bool{
	CategorySupport:        true,
	CategoryImprovement:    true,
	CategoryStorageRequest: true,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

// NewCategory defaults an empty value to support.
func NewCategory(s string) (Category, error) {
	if s == "" {
		return CategorySupport, nil
	}
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}

type ImprovementStatus string

const (
	ImprovementPending    ImprovementStatus = "pending"
	ImprovementInProgress ImprovementStatus = "in_progress"
	ImprovementCompleted  ImprovementStatus = "completed"
)

func (s ImprovementStatus) String() string {
	return string(s)
}

func (s ImprovementStatus) IsValid() bool {
	return s == ImprovementPending || s == ImprovementInProgress || s == ImprovementCompleted
}

func NewImprovementStatus(s string) (ImprovementStatus, error) {
	is := ImprovementStatus(s)
	if !is.IsValid() {
		return "", fmt.Errorf("invalid improvement status: %s", s)
	}
	return is, nil
}
