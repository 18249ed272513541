// Package clientservice models a client's hosted service and its storage
// quota.
package clientservice

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/cerberus-dev/cerberus/internal/domain/clientservice/valueobjects"
)

// ScanResult is the outcome of one storage walk, persisted as JSON on the
// service row.
type ScanResult struct {
	TotalMB       float64          `json:"totalMb"`
	TotalBytes    int64            `json:"totalBytes"`
	FileCount     int64            `json:"fileCount"`
	ExcludedCount int64            `json:"excludedCount"`
	Percentage    float64          `json:"percentage"`
	Status        vo.StorageStatus `json:"status"`
	ScanTimeMs    int64            `json:"scanTimeMs"`
}

type ClientService struct {
	id             uint
	clientID       uint
	serviceName    string
	domain         string
	description    string
	serviceType    string
	status         vo.ServiceStatus
	storageUsedMB  float64
	storageLimitMB float64
	alertThreshold int
	folderPath     string
	lastScanAt     *time.Time
	lastScanResult *ScanResult
	alertSentAt    *time.Time
	startDate      *time.Time
	endDate        *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// Details holds the editable descriptive fields of a service.
type Details struct {
	ServiceName    string
	Domain         string
	Description    string
	ServiceType    string
	Status         vo.ServiceStatus
	StorageLimitMB float64
	StartDate      *time.Time
	EndDate        *time.Time
}

func (d *Details) normalize() error {
	d.ServiceName = strings.TrimSpace(d.ServiceName)
	if d.ServiceName == "" {
		return fmt.Errorf("service name is required")
	}
	if d.ServiceType == "" {
		d.ServiceType = "web"
	}
	if d.Status == "" {
		d.Status = vo.ServiceActive
	}
	if !d.Status.IsValid() {
		return fmt.Errorf("invalid service status: %s", d.Status)
	}
	if d.StorageLimitMB <= 0 {
		d.StorageLimitMB = vo.DefaultLimitMB
	}
	return nil
}

func NewClientService(clientID uint, d Details) (*ClientService, error) {
	if clientID == 0 {
		return nil, fmt.Errorf("client ID is required")
	}
	if err := d.normalize(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	s := &ClientService{
		clientID:       clientID,
		alertThreshold: vo.DefaultAlertThreshold,
		createdAt:      now,
		updatedAt:      now,
	}
	s.applyDetails(d)
	return s, nil
}

// State carries every persisted field for ReconstructClientService.
type State struct {
	ID             uint
	ClientID       uint
	Details        Details
	StorageUsedMB  float64
	AlertThreshold int
	FolderPath     string
	LastScanAt     *time.Time
	LastScanResult *ScanResult
	AlertSentAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func ReconstructClientService(st State) (*ClientService, error) {
	if st.ID == 0 {
		return nil, fmt.Errorf("service ID cannot be zero")
	}
	s := &ClientService{
		id:             st.ID,
		clientID:       st.ClientID,
		storageUsedMB:  st.StorageUsedMB,
		alertThreshold: st.AlertThreshold,
		folderPath:     st.FolderPath,
		lastScanAt:     st.LastScanAt,
		lastScanResult: st.LastScanResult,
		alertSentAt:    st.AlertSentAt,
		createdAt:      st.CreatedAt,
		updatedAt:      st.UpdatedAt,
	}
	s.applyDetails(st.Details)
	if s.alertThreshold <= 0 {
		s.alertThreshold = vo.DefaultAlertThreshold
	}
	return s, nil
}

func (s *ClientService) applyDetails(d Details) {
	s.serviceName = d.ServiceName
	s.domain = d.Domain
	s.description = d.Description
	s.serviceType = d.ServiceType
	s.status = d.Status
	s.storageLimitMB = d.StorageLimitMB
	s.startDate = d.StartDate
	s.endDate = d.EndDate
}

func (s *ClientService) ID() uint                    { return s.id }
func (s *ClientService) ClientID() uint              { return s.clientID }
func (s *ClientService) ServiceName() string         { return s.serviceName }
func (s *ClientService) Domain() string              { return s.domain }
func (s *ClientService) Description() string         { return s.description }
func (s *ClientService) ServiceType() string         { return s.serviceType }
func (s *ClientService) Status() vo.ServiceStatus    { return s.status }
func (s *ClientService) StorageUsedMB() float64      { return s.storageUsedMB }
func (s *ClientService) AlertThreshold() int         { return s.alertThreshold }
func (s *ClientService) FolderPath() string          { return s.folderPath }
func (s *ClientService) LastScanAt() *time.Time      { return s.lastScanAt }
func (s *ClientService) LastScanResult() *ScanResult { return s.lastScanResult }
func (s *ClientService) AlertSentAt() *time.Time     { return s.alertSentAt }
func (s *ClientService) StartDate() *time.Time       { return s.startDate }
func (s *ClientService) EndDate() *time.Time         { return s.endDate }
func (s *ClientService) CreatedAt() time.Time        { return s.createdAt }
func (s *ClientService) UpdatedAt() time.Time        { return s.updatedAt }

// StorageLimitMB never returns a non-positive quota.
func (s *ClientService) StorageLimitMB() float64 {
	if s.storageLimitMB <= 0 {
		return vo.DefaultLimitMB
	}
	return s.storageLimitMB
}

func (s *ClientService) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("service ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("service ID cannot be zero")
	}
	s.id = id
	return nil
}

func (s *ClientService) Details() Details {
	return Details{
		ServiceName:    s.serviceName,
		Domain:         s.domain,
		Description:    s.description,
		ServiceType:    s.serviceType,
		Status:         s.status,
		StorageLimitMB: s.storageLimitMB,
		StartDate:      s.startDate,
		EndDate:        s.endDate,
	}
}

func (s *ClientService) UpdateDetails(d Details) error {
	if err := d.normalize(); err != nil {
		return err
	}
	s.applyDetails(d)
	s.updatedAt = time.Now().UTC()
	return nil
}

// ConfigureStorage sets the scanned folder and quota. Empty folderPath
// disables scanning; non-positive limit and threshold fall back to defaults.
func (s *ClientService) ConfigureStorage(folderPath string, limitMB float64, threshold int) error {
	if threshold > 100 {
		return fmt.Errorf("alert threshold must be between 1 and 100")
	}
	if limitMB <= 0 {
		limitMB = vo.DefaultLimitMB
	}
	if threshold <= 0 {
		threshold = vo.DefaultAlertThreshold
	}
	s.folderPath = strings.TrimSpace(folderPath)
	s.storageLimitMB = limitMB
	s.alertThreshold = threshold
	s.updatedAt = time.Now().UTC()
	return nil
}

// IsScannable reports whether the scheduled scan should include the service.
func (s *ClientService) IsScannable() bool {
	return s.status == vo.ServiceActive && s.folderPath != ""
}

func (s *ClientService) Percentage() float64 {
	return vo.Percentage(s.storageUsedMB, s.StorageLimitMB())
}

func (s *ClientService) StorageStatus() vo.StorageStatus {
	return vo.StatusForPercentage(s.Percentage())
}

// ApplyScan records a finished walk and returns the stored result.
func (s *ClientService) ApplyScan(totalBytes, fileCount, excludedCount int64, elapsed time.Duration, at time.Time) ScanResult {
	usedMB := vo.BytesToMB(totalBytes)
	pct := vo.Percentage(usedMB, s.StorageLimitMB())
	res := ScanResult{
		TotalMB:       usedMB,
		TotalBytes:    totalBytes,
		FileCount:     fileCount,
		ExcludedCount: excludedCount,
		Percentage:    pct,
		Status:        vo.StatusForPercentage(pct),
		ScanTimeMs:    elapsed.Milliseconds(),
	}
	scannedAt := at.UTC()
	s.storageUsedMB = usedMB
	s.lastScanAt = &scannedAt
	s.lastScanResult = &res
	s.updatedAt = scannedAt
	return res
}

// NeedsAlert reports whether usage reached the service's alert threshold.
func (s *ClientService) NeedsAlert() bool {
	return s.Percentage() >= float64(s.alertThreshold)
}

// ShouldAlert is NeedsAlert plus the resend cooldown: no second alert within
// cooldown of the previous one.
func (s *ClientService) ShouldAlert(now time.Time, cooldown time.Duration) bool {
	if !s.NeedsAlert() {
		return false
	}
	if s.alertSentAt == nil {
		return true
	}
	return now.Sub(*s.alertSentAt) >= cooldown
}

func (s *ClientService) MarkAlertSent(at time.Time) {
	t := at.UTC()
	s.alertSentAt = &t
}
