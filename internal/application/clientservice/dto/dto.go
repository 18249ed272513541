package dto

import (
	"time"

	"github.com/cerberus-dev/cerberus/internal/domain/clientservice"
)

type ServiceDTO struct {
	ID             uint                      `json:"id"`
	ClientID       uint                      `json:"clientId"`
	ServiceName    string                    `json:"serviceName"`
	Domain         string                    `json:"domain"`
	Description    string                    `json:"description"`
	ServiceType    string                    `json:"serviceType"`
	Status         string                    `json:"status"`
	StorageUsedMB  float64                   `json:"storageUsedMb"`
	StorageLimitMB float64                   `json:"storageLimitMb"`
	AlertThreshold int                       `json:"alertThreshold"`
	FolderPath     string                    `json:"folderPath"`
	Percentage     float64                   `json:"percentage"`
	StorageStatus  string                    `json:"storageStatus"`
	StorageColor   string                    `json:"storageColor"`
	LastScanAt     *time.Time                `json:"lastScanAt"`
	LastScanResult *clientservice.ScanResult `json:"lastScanResult"`
	AlertSentAt    *time.Time                `json:"alertSentAt"`
	StartDate      *time.Time                `json:"startDate"`
	EndDate        *time.Time                `json:"endDate"`
	CreatedAt      time.Time                 `json:"createdAt"`
	UpdatedAt      time.Time                 `json:"updatedAt"`

	ClientUsername string `json:"clientUsername,omitempty"`
	ClientName     string `json:"clientName,omitempty"`
	ClientEmail    string `json:"clientEmail,omitempty"`
	ClientCompany  string `json:"clientCompany,omitempty"`
}

// ScanDTO is the answer of a scan request.
type ScanDTO struct {
	ServiceID   uint                     `json:"serviceId"`
	ServiceName string                   `json:"serviceName"`
	Result      clientservice.ScanResult `json:"result"`
	AlertSent   bool                     `json:"alertSent"`
	ScannedAt   time.Time                `json:"scannedAt"`
}

// ScanAllDTO summarizes a pass over every scannable service.
type ScanAllDTO struct {
	Scanned int        `json:"scanned"`
	Failed  int        `json:"failed"`
	Alerts  int        `json:"alerts"`
	Results []*ScanDTO `json:"results"`
	Errors  []string   `json:"errors,omitempty"`
}

// OverviewDTO is the storage dashboard.
type OverviewDTO struct {
	Services     []*ServiceDTO  `json:"services"`
	TotalUsedMB  float64        `json:"totalUsedMb"`
	TotalLimitMB float64        `json:"totalLimitMb"`
	ByStatus     map[string]int `json:"byStatus"`
}

func ToServiceDTO(s *clientservice.ClientService) *ServiceDTO {
	if s == nil {
		return nil
	}
	st := s.StorageStatus()
	return &ServiceDTO{
		ID:             s.ID(),
		ClientID:       s.ClientID(),
		ServiceName:    s.ServiceName(),
		Domain:         s.Domain(),
		Description:    s.Description(),
		ServiceType:    s.ServiceType(),
		Status:         string(s.Status()),
		StorageUsedMB:  s.StorageUsedMB(),
		StorageLimitMB: s.StorageLimitMB(),
		AlertThreshold: s.AlertThreshold(),
		FolderPath:     s.FolderPath(),
		Percentage:     s.Percentage(),
		StorageStatus:  st.String(),
		StorageColor:   st.Color(),
		LastScanAt:     s.LastScanAt(),
		LastScanResult: s.LastScanResult(),
		AlertSentAt:    s.AlertSentAt(),
		StartDate:      s.StartDate(),
		EndDate:        s.EndDate(),
		CreatedAt:      s.CreatedAt(),
		UpdatedAt:      s.UpdatedAt(),
	}
}

func ToServiceViewDTO(v *clientservice.ServiceView) *ServiceDTO {
	d := ToServiceDTO(v.Service)
	d.ClientUsername = v.ClientUsername
	d.ClientName = v.ClientName
	d.ClientEmail = v.ClientEmail
	d.ClientCompany = v.ClientCompany
	return d
}

func ToServiceViewDTOs(views []*clientservice.ServiceView) []*ServiceDTO {
	out := make([]*ServiceDTO, 0, len(views))
	for _, v := range views {
		out = append(out, ToServiceViewDTO(v))
	}
	return out
}
