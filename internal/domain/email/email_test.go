package email

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	defs := Catalog()
	require.NotEmpty(t, defs)
	seen := map[string]bool{}
	for _, d := range defs {
		assert.False(t, seen[d.Code], "duplicate code %s", d.Code)
		seen[d.Code] = true
		got, ok := Lookup(d.Code)
		require.True(t, ok)
		assert.Equal(t, d.Subject, got.Subject)
	}
	_, ok := Lookup("nope")
	assert.False(t, ok)
}

func TestStorageCode(t *testing.T) {
	code, ok := StorageCode("danger")
	assert.True(t, ok)
	assert.Equal(t, CodeStorageDanger, code)
	_, ok = StorageCode("ok")
	assert.False(t, ok)
}

func TestNewTemplate(t *testing.T) {
	_, err := NewTemplate("bogus", "", "", "", true)
	assert.Error(t, err)

	tpl, err := NewTemplate(CodeTicketClosed, "", "", "<p>hola</p>", true)
	require.NoError(t, err)
	assert.Equal(t, "Ticket Cerrado", tpl.Name)
	assert.Equal(t, "Ticket #{{ticketId}} cerrado", tpl.Subject)
	assert.True(t, tpl.Overrides())

	tpl.IsActive = false
	assert.False(t, tpl.Overrides())
}

func TestMerge(t *testing.T) {
	def, _ := Lookup(CodeUserCreated)
	v := Merge(def, nil)
	assert.False(t, v.IsSaved)
	assert.True(t, v.IsActive)
	assert.Empty(t, v.HTMLContent)

	v = Merge(def, &Template{Code: def.Code, Subject: "Hola", HTMLContent: "<b>x</b>", IsActive: false})
	assert.True(t, v.IsSaved)
	assert.Equal(t, "Hola", v.Subject)
	assert.Equal(t, def.Name, v.Name)
	assert.False(t, v.IsActive)
}

func TestLogs(t *testing.T) {
	now := time.Now()
	l := NewFailedLog(CodeNotification, "a@b.mx", "", nil, errors.New("dial tcp: refused"), now)
	assert.Equal(t, LogFailed, l.Status)
	assert.Equal(t, CodeNotification, l.Subject)
	assert.Equal(t, "dial tcp: refused", l.ErrorMsg)
	assert.Nil(t, l.SentAt)

	s := NewSentLog(CodeNotification, "a@b.mx", "Hola", nil, now)
	assert.Equal(t, LogSent, s.Status)
	require.NotNil(t, s.SentAt)
}
