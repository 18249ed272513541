package valueobjects

import "fmt"

type LeadStatus string

const (
	StatusNew     LeadStatus = "new"
	StatusReplied LeadStatus = "replied"
	StatusClosed  LeadStatus = "closed"
)

var validLeadStatuses = map[LeadStatus]bool{
	StatusNew:     true,
	StatusReplied: true,
	StatusClosed:  true,
}

func (s LeadStatus) String() string {
	return string(s)
}

func (s LeadStatus) IsValid() bool {
	return validLeadStatuses[s]
}

func NewLeadStatus(s string) (LeadStatus, error) {
	ls := LeadStatus(s)
	if !ls.IsValid() {
		return "", fmt.Errorf("invalid lead status: %s", s)
	}
	return ls, nil
}
