package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusNew            TicketStatus = "new"
	StatusInProgress     TicketStatus = "in_progress"
	StatusWaitingClient  TicketStatus = "waiting_client"
	StatusWaitingSupport TicketStatus = "waiting_support"
	StatusClosed         TicketStatus = "closed"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusNew:            true,
	StatusInProgress:     true,
	StatusWaitingClient:  true,
	StatusWaitingSupport: true,
	StatusClosed:         true,
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) IsNew() bool {
	return ts == StatusNew
}

func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed
}

func AllStatuses() []TicketStatus {
	return []TicketStatus{StatusNew, StatusInProgress, StatusWaitingClient, StatusWaitingSupport, StatusClosed}
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
