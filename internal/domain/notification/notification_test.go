package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

func TestNewNotification(t *testing.T) {
	_, err := NewNotification("bogus", nil, nil, "t", "")
	assert.Error(t, err)

	_, err = NewNotification(TypeLead, nil, nil, "  ", "")
	assert.Error(t, err)

	zero := uint(0)
	n, err := NewNotification(TypeLead, &zero, nil, "Nuevo lead", "Ana")
	require.NoError(t, err)
	assert.True(t, n.IsBroadcast())
	assert.False(t, n.IsRead())
}

func TestNotification_VisibleTo(t *testing.T) {
	target := uint(7)
	direct, err := NewNotification(TypeTicketMessage, &target, nil, "Respuesta", "")
	require.NoError(t, err)
	broadcast, err := NewNotification(TypeTicket, nil, nil, "Nuevo ticket", "")
	require.NoError(t, err)

	client := Viewer{UserID: 7, Role: authorization.RoleClient}
	otherClient := Viewer{UserID: 8, Role: authorization.RoleClient}
	support := Viewer{UserID: 3, Role: authorization.RoleSupport}

	assert.True(t, direct.VisibleTo(client))
	assert.False(t, direct.VisibleTo(otherClient))
	assert.False(t, direct.VisibleTo(support))

	assert.False(t, broadcast.VisibleTo(client))
	assert.True(t, broadcast.VisibleTo(support))
}
