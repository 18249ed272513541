package valueobjects

import (
	"fmt"
	"math"
)

const (
	DefaultLimitMB        = 5000
	DefaultAlertThreshold = 80
	bytesPerMB            = 1024 * 1024
)

// StorageStatus is the usage tier of a service.
type StorageStatus string

const (
	StorageOK       StorageStatus = "ok"
	StorageWarning  StorageStatus = "warning"
	StorageDanger   StorageStatus = "danger"
	StorageCritical StorageStatus = "critical"
)

var storageColors = map[StorageStatus]string{
	StorageOK:       "#16a34a",
	StorageWarning:  "#ca8a04",
	StorageDanger:   "#ea580c",
	StorageCritical: "#dc2626",
}

func (s StorageStatus) String() string {
	return string(s)
}

// Color is the hex colour the panels use for the tier.
func (s StorageStatus) Color() string {
	if c, ok := storageColors[s]; ok {
		return c
	}
	return storageColors[StorageOK]
}

// IsAlerting reports whether the tier has an alert email of its own.
func (s StorageStatus) IsAlerting() bool {
	return s != StorageOK
}

// StatusForPercentage maps usage onto tiers: ok below 80, warning from 80,
// danger from 90, critical from 95.
func StatusForPercentage(percentage float64) StorageStatus {
	switch {
	case percentage >= 95:
		return StorageCritical
	case percentage >= 90:
		return StorageDanger
	case percentage >= 80:
		return StorageWarning
	default:
		return StorageOK
	}
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BytesToMB converts to megabytes rounded to two decimals.
func BytesToMB(bytes int64) float64 {
	return Round2(float64(bytes) / bytesPerMB)
}

// Percentage returns used/limit as a percentage rounded to two decimals. A
// non-positive limit is treated as the default quota.
func Percentage(usedMB, limitMB float64) float64 {
	if limitMB <= 0 {
		limitMB = DefaultLimitMB
	}
	return Round2(usedMB / limitMB * 100)
}

type ServiceStatus string

const (
	ServiceActive    ServiceStatus = "active"
	ServiceSuspended ServiceStatus = "suspended"
	ServiceCancelled ServiceStatus = "cancelled"
)

func (s ServiceStatus) IsValid() bool {
	return s == ServiceActive || s == ServiceSuspended || s == ServiceCancelled
}

// NewServiceStatus defaults an empty value to active.
func NewServiceStatus(s string) (ServiceStatus, error) {
	if s == "" {
		return ServiceActive, nil
	}
	st := ServiceStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid service status: %s", s)
	}
	return st, nil
}
