package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/cerberus-dev/cerberus/internal/application/clientservice/dto"
	"github.com/cerberus-dev/cerberus/internal/application/common"
	"github.com/cerberus-dev/cerberus/internal/domain/clientservice"
	domainEmail "github.com/cerberus-dev/cerberus/internal/domain/email"
	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/domain/user"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/storage"
	"github.com/cerberus-dev/cerberus/internal/shared/errors"
	"github.com/cerberus-dev/cerberus/internal/shared/logger"
	"github.com/cerberus-dev/cerberus/internal/shared/sideeffect"
)

// FolderMeasurer walks a folder tree and sums what counts against a quota.
type FolderMeasurer interface {
	Measure(ctx context.Context, root string) (*storage.Usage, error)
}

// AlertLock claims the right to send one service's alert across instances.
type AlertLock interface {
	TryAcquire(ctx context.Context, serviceID uint, ttl time.Duration) (bool, error)
}

// ScanStorageUseCase measures client folders and records the usage. It is
// the only place alerts are decided: a scan that crosses the threshold and
// is outside the cooldown stamps the service and dispatches the alert.
// Concurrent scans of the same service share one walk.
type ScanStorageUseCase struct {
	serviceRepo      clientservice.Repository
	userRepo         user.Repository
	notificationRepo notification.Repository
	measurer         FolderMeasurer
	emails           common.EmailSender
	effects          sideeffect.Runner
	cooldown         time.Duration
	portalURL        string
	logger           logger.Interface
	now              func() time.Time
	alertLock        AlertLock

	group singleflight.Group
}

func NewScanStorageUseCase(
	serviceRepo clientservice.Repository,
	userRepo user.Repository,
	notificationRepo notification.Repository,
	measurer FolderMeasurer,
	emails common.EmailSender,
	effects sideeffect.Runner,
	cooldown time.Duration,
	portalURL string,
	logger logger.Interface,
) *ScanStorageUseCase {
	if cooldown <= 0 {
		cooldown = 24 * time.Hour
	}
	return &ScanStorageUseCase{
		serviceRepo:      serviceRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		measurer:         measurer,
		emails:           emails,
		effects:          effects,
		cooldown:         cooldown,
		portalURL:        portalURL,
		logger:           logger,
		now:              time.Now,
	}
}

// WithAlertLock makes every instance sharing lock agree on who alerts.
func (uc *ScanStorageUseCase) WithAlertLock(lock AlertLock) *ScanStorageUseCase {
	uc.alertLock = lock
	return uc
}

// ScanService measures one service.
func (uc *ScanStorageUseCase) ScanService(ctx context.Context, serviceID uint) (*dto.ScanDTO, error) {
	v, err, shared := uc.group.Do(strconv.FormatUint(uint64(serviceID), 10), func() (any, error) {
		return uc.scan(ctx, serviceID)
	})
	if shared {
		uc.logger.Debugw("storage scan coalesced", "service_id", serviceID)
	}
	if err != nil {
		return nil, err
	}
	return v.(*dto.ScanDTO), nil
}

// ScanAll measures every scannable service. Failures of single services are
// collected, not returned.
func (uc *ScanStorageUseCase) ScanAll(ctx context.Context) (*dto.ScanAllDTO, error) {
	views, err := uc.serviceRepo.ListScannable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scannable services: %w", err)
	}

	out := &dto.ScanAllDTO{Results: make([]*dto.ScanDTO, 0, len(views))}
	for _, v := range views {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		id := v.Service.ID()
		res, err := uc.ScanService(ctx, id)
		if err != nil {
			out.Failed++
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %v", v.Service.ServiceName(), err))
			uc.logger.Warnw("storage scan failed", "service_id", id, "error", err)
			continue
		}
		out.Scanned++
		if res.AlertSent {
			out.Alerts++
		}
		out.Results = append(out.Results, res)
	}

	uc.logger.Infow("storage scan pass finished", "scanned", out.Scanned, "failed", out.Failed, "alerts", out.Alerts)
	return out, nil
}

// Execute lets the scheduler drive ScanAll.
func (uc *ScanStorageUseCase) Execute(ctx context.Context) (int, error) {
	res, err := uc.ScanAll(ctx)
	if res == nil {
		return 0, err
	}
	return res.Scanned, err
}

func (uc *ScanStorageUseCase) scan(ctx context.Context, serviceID uint) (*dto.ScanDTO, error) {
	s, err := loadService(ctx, uc.serviceRepo, serviceID)
	if err != nil {
		return nil, err
	}
	if s.FolderPath() == "" {
		return nil, errors.NewValidationError("no_folder_configured")
	}

	usage, err := uc.measurer.Measure(ctx, s.FolderPath())
	if err != nil {
		if stderrors.Is(err, storage.ErrFolderNotFound) {
			return nil, errors.NewValidationError("folder_not_found").WithExtra("folder", s.FolderPath())
		}
		return nil, fmt.Errorf("failed to measure %s: %w", s.FolderPath(), err)
	}

	now := uc.now().UTC()
	result := s.ApplyScan(usage.TotalBytes, usage.FileCount, usage.ExcludedCount, usage.Elapsed, now)

	alert := s.ShouldAlert(now, uc.cooldown)
	if alert && uc.alertLock != nil {
		acquired, err := uc.alertLock.TryAcquire(ctx, s.ID(), uc.cooldown)
		switch {
		case err != nil:
			// Redis down: the stamp in the database still applies.
			uc.logger.Warnw("storage alert lock unavailable", "service_id", s.ID(), "error", err)
		case !acquired:
			uc.logger.Infow("storage alert already claimed by another instance", "service_id", s.ID())
			alert = false
		}
	}
	if alert {
		s.MarkAlertSent(now)
	}
	if err := uc.serviceRepo.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save scan result: %w", err)
	}

	uc.logger.Infow("storage scanned",
		"service_id", s.ID(),
		"used_mb", result.TotalMB,
		"percentage", result.Percentage,
		"status", result.Status,
		"files", result.FileCount,
		"excluded", result.ExcludedCount,
		"elapsed_ms", result.ScanTimeMs,
		"alert", alert,
	)

	if alert {
		uc.dispatchAlert(ctx, s, result)
	}

	return &dto.ScanDTO{
		ServiceID:   s.ID(),
		ServiceName: s.ServiceName(),
		Result:      result,
		AlertSent:   alert,
		ScannedAt:   now,
	}, nil
}

func (uc *ScanStorageUseCase) dispatchAlert(ctx context.Context, s *clientservice.ClientService, result clientservice.ScanResult) {
	serviceID := s.ID()
	clientID := s.ClientID()
	serviceName := s.ServiceName()
	limitMB := s.StorageLimitMB()

	code, ok := domainEmail.StorageCode(result.Status.String())
	if !ok {
		// custom thresholds below the warning tier still warn
		code = domainEmail.CodeStorageWarning
	}

	uc.effects.Go(ctx, "storage.notification", func(ctx context.Context) error {
		n, err := notification.NewNotification(
			notification.TypeStorage,
			nil,
			&serviceID,
			fmt.Sprintf("Almacenamiento al %.2f%%: %s", result.Percentage, serviceName),
			fmt.Sprintf("%s usa %.2f MB de %.2f MB (%s)", serviceName, result.TotalMB, limitMB, result.Status),
		)
		if err != nil {
			return err
		}
		return uc.notificationRepo.Create(ctx, n)
	})

	uc.effects.Go(ctx, "storage.alert_email", func(ctx context.Context) error {
		client, err := uc.userRepo.GetByID(ctx, clientID)
		if err != nil {
			return err
		}
		if client == nil {
			return fmt.Errorf("client %d not found", clientID)
		}
		return uc.emails.Send(ctx, code, client.Email(), map[string]any{
			"clientName":  client.DisplayName(),
			"serviceName": serviceName,
			"percentage":  fmt.Sprintf("%.2f", result.Percentage),
			"usedMb":      fmt.Sprintf("%.2f", result.TotalMB),
			"limitMb":     fmt.Sprintf("%.2f", limitMB),
			"portalUrl":   uc.portalURL,
		}).Err()
	})
}
