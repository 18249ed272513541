package clientservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/cerberus-dev/cerberus/internal/domain/clientservice/valueobjects"
)

func newService(t *testing.T, limit float64, threshold int) *ClientService {
	t.Helper()
	s, err := ReconstructClientService(State{
		ID:             1,
		ClientID:       2,
		Details:        Details{ServiceName: "Sitio", Status: vo.ServiceActive, StorageLimitMB: limit},
		AlertThreshold: threshold,
		FolderPath:     "/srv/sitio",
	})
	require.NoError(t, err)
	return s
}

func TestNewClientService_Defaults(t *testing.T) {
	s, err := NewClientService(4, Details{ServiceName: " Tienda "})
	require.NoError(t, err)
	assert.Equal(t, "Tienda", s.ServiceName())
	assert.Equal(t, "web", s.ServiceType())
	assert.Equal(t, vo.ServiceActive, s.Status())
	assert.Equal(t, float64(vo.DefaultLimitMB), s.StorageLimitMB())
	assert.Equal(t, vo.DefaultAlertThreshold, s.AlertThreshold())
	assert.False(t, s.IsScannable())

	_, err = NewClientService(0, Details{ServiceName: "x"})
	assert.Error(t, err)
	_, err = NewClientService(1, Details{ServiceName: " "})
	assert.Error(t, err)
}

func TestClientService_ApplyScan(t *testing.T) {
	tests := []struct {
		name   string
		bytes  int64
		limit  float64
		pct    float64
		status vo.StorageStatus
	}{
		{"850 of 1000", 850 * 1048576, 1000, 85, vo.StorageWarning},
		{"920 of 1000", 920 * 1048576, 1000, 92, vo.StorageDanger},
		{"960 of 1000", 960 * 1048576, 1000, 96, vo.StorageCritical},
		{"2 of default", 2 * 1048576, 0, 0.04, vo.StorageOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newService(t, tt.limit, 80)
			now := time.Now()
			res := s.ApplyScan(tt.bytes, 3, 1, 1500*time.Millisecond, now)

			assert.Equal(t, tt.pct, res.Percentage)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, int64(1500), res.ScanTimeMs)
			assert.Equal(t, res.TotalMB, s.StorageUsedMB())
			require.NotNil(t, s.LastScanAt())
			require.NotNil(t, s.LastScanResult())
		})
	}
}

func TestClientService_ShouldAlert(t *testing.T) {
	now := time.Now().UTC()
	s := newService(t, 1000, 80)
	s.ApplyScan(700*1048576, 1, 0, 0, now)
	assert.False(t, s.NeedsAlert())
	assert.False(t, s.ShouldAlert(now, 24*time.Hour))

	s.ApplyScan(850*1048576, 1, 0, 0, now)
	assert.True(t, s.ShouldAlert(now, 24*time.Hour))

	s.MarkAlertSent(now)
	assert.False(t, s.ShouldAlert(now.Add(23*time.Hour), 24*time.Hour))
	assert.True(t, s.ShouldAlert(now.Add(24*time.Hour), 24*time.Hour))
}

func TestClientService_ConfigureStorage(t *testing.T) {
	s := newService(t, 1000, 80)
	require.NoError(t, s.ConfigureStorage(" /srv/nuevo ", 0, 0))
	assert.Equal(t, "/srv/nuevo", s.FolderPath())
	assert.Equal(t, float64(vo.DefaultLimitMB), s.StorageLimitMB())
	assert.Equal(t, vo.DefaultAlertThreshold, s.AlertThreshold())

	assert.Error(t, s.ConfigureStorage("/x", 10, 150))

	require.NoError(t, s.ConfigureStorage("", 10, 50))
	assert.False(t, s.IsScannable())
}
