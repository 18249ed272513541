package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/cerberus-dev/cerberus/internal/domain/ticket/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

// reconstructedTicket builds a persisted-style ticket in the given state.
func reconstructedTicket(t *testing.T, status vo.TicketStatus, assignedTo *uint) *Ticket {
	t.Helper()
	now := time.Now().UTC()
	var closedAt *time.Time
	if status.IsClosed() {
		closedAt = &now
	}
	tk, err := ReconstructTicket(1, "Sitio caído", status, vo.PriorityHigh, vo.CategorySupport, nil,
		10, assignedTo, nil, 10, closedAt, now, now)
	require.NoError(t, err)
	return tk
}

func uintPtr(v uint) *uint { return &v }

func TestNewTicket(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		cat     vo.Category
		client  uint
		wantErr bool
	}{
		{name: "support ticket", subject: "No carga", cat: vo.CategorySupport, client: 1},
		{name: "improvement ticket", subject: "Nuevo banner", cat: vo.CategoryImprovement, client: 1},
		{name: "blank subject", subject: "  ", cat: vo.CategorySupport, client: 1, wantErr: true},
		{name: "long subject", subject: strings.Repeat("x", 201), cat: vo.CategorySupport, client: 1, wantErr: true},
		{name: "no client", subject: "x", cat: vo.CategorySupport, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := NewTicket(tt.subject, tt.cat, vo.PriorityMedium, tt.client, tt.client, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, vo.StatusNew, tk.Status())
			if tt.cat == vo.CategoryImprovement {
				require.NotNil(t, tk.ImprovementStatus())
				assert.Equal(t, vo.ImprovementPending, *tk.ImprovementStatus())
			} else {
				assert.Nil(t, tk.ImprovementStatus())
			}
		})
	}
}

func TestTicket_RecordMessage_StatusFollowsAuthor(t *testing.T) {
	open := []vo.TicketStatus{vo.StatusNew, vo.StatusInProgress, vo.StatusWaitingClient, vo.StatusWaitingSupport}

	for _, start := range open {
		t.Run(string(start), func(t *testing.T) {
			tk := reconstructedTicket(t, start, uintPtr(5))
			tk.RecordMessage(10, authorization.RoleClient, false)
			assert.Equal(t, vo.StatusWaitingSupport, tk.Status())

			tk = reconstructedTicket(t, start, uintPtr(5))
			tk.RecordMessage(5, authorization.RoleSupport, false)
			assert.Equal(t, vo.StatusWaitingClient, tk.Status())

			tk = reconstructedTicket(t, start, uintPtr(5))
			out := tk.RecordMessage(5, authorization.RoleAdmin, true)
			assert.Equal(t, start, tk.Status())
			assert.False(t, out.StatusChanged)
		})
	}
}

func TestTicket_RecordMessage_ClosedStaysClosed(t *testing.T) {
	for _, role := range authorization.AllRoles() {
		tk := reconstructedTicket(t, vo.StatusClosed, uintPtr(5))
		out := tk.RecordMessage(10, role, false)
		assert.Equal(t, vo.StatusClosed, tk.Status(), role)
		assert.False(t, out.StatusChanged)
	}
}

func TestTicket_RecordMessage_AutoAssign(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusNew, nil)
	out := tk.RecordMessage(7, authorization.RoleSupport, true)
	assert.True(t, out.AutoAssigned)
	require.NotNil(t, tk.AssignedTo())
	assert.Equal(t, uint(7), *tk.AssignedTo())

	// an assigned ticket keeps its assignee
	out = tk.RecordMessage(8, authorization.RoleAdmin, false)
	assert.False(t, out.AutoAssigned)
	assert.Equal(t, uint(7), *tk.AssignedTo())

	// clients never take tickets
	tk = reconstructedTicket(t, vo.StatusNew, nil)
	out = tk.RecordMessage(10, authorization.RoleClient, false)
	assert.False(t, out.AutoAssigned)
	assert.Nil(t, tk.AssignedTo())
}

func TestTicket_Claim(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusNew, nil)
	require.NoError(t, tk.Claim(3))
	assert.Equal(t, vo.StatusInProgress, tk.Status())
	assert.True(t, tk.IsAssignedTo(3))

	// same staff member again is fine
	require.NoError(t, tk.Claim(3))

	err := tk.Claim(4)
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
	assert.True(t, tk.IsAssignedTo(3))

	// only new tickets move to in_progress
	tk = reconstructedTicket(t, vo.StatusWaitingClient, nil)
	require.NoError(t, tk.Claim(3))
	assert.Equal(t, vo.StatusWaitingClient, tk.Status())
}

func TestTicket_CloseAndSetStatus(t *testing.T) {
	now := time.Now().UTC()
	tk := reconstructedTicket(t, vo.StatusInProgress, nil)

	tk.Close(now)
	assert.Equal(t, vo.StatusClosed, tk.Status())
	require.NotNil(t, tk.ClosedAt())

	first := *tk.ClosedAt()
	tk.Close(now.Add(time.Hour))
	assert.Equal(t, first, *tk.ClosedAt())

	require.NoError(t, tk.SetStatus(vo.StatusInProgress, now))
	assert.Nil(t, tk.ClosedAt())

	assert.Error(t, tk.SetStatus("archived", now))
}

func TestTicket_Visibility(t *testing.T) {
	tk := reconstructedTicket(t, vo.StatusInProgress, uintPtr(5))
	assert.True(t, tk.VisibleTo(99, authorization.RoleAdmin))
	assert.True(t, tk.VisibleTo(6, authorization.RoleSupport))
	assert.True(t, tk.VisibleTo(10, authorization.RoleClient))
	assert.False(t, tk.VisibleTo(11, authorization.RoleClient))
}

func TestTicket_HiddenFromClientList(t *testing.T) {
	now := time.Now().UTC()
	old := now.Add(-8 * 24 * time.Hour)
	tk, err := ReconstructTicket(1, "x", vo.StatusClosed, vo.PriorityLow, vo.CategorySupport, nil,
		10, nil, nil, 10, &old, old, old)
	require.NoError(t, err)
	assert.True(t, tk.HiddenFromClientList(now))

	recent := now.Add(-2 * 24 * time.Hour)
	tk, err = ReconstructTicket(1, "x", vo.StatusClosed, vo.PriorityLow, vo.CategorySupport, nil,
		10, nil, nil, 10, &recent, old, old)
	require.NoError(t, err)
	assert.False(t, tk.HiddenFromClientList(now))
}

func TestNewMessage(t *testing.T) {
	_, err := NewMessage(1, 2, "   ", false)
	assert.Error(t, err)

	m, err := NewMessage(1, 2, " hola ", true)
	require.NoError(t, err)
	assert.Equal(t, "hola", m.Body())
	assert.True(t, m.IsInternal())
}
