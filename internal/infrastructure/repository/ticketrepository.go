package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/cerberus-dev/cerberus/internal/domain/notification"
	"github.com/cerberus-dev/cerberus/internal/domain/ticket"
	vo "github.com/cerberus-dev/cerberus/internal/domain/ticket/valueobjects"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/mappers"
	"github.com/cerberus-dev/cerberus/internal/infrastructure/persistence/models"
	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
	"github.com/cerberus-dev/cerberus/internal/shared/db"
)

// priorityRankSQL sorts urgent first. It mirrors vo.Priority.Rank.
const priorityRankSQL = `CASE t.priority
	WHEN 'urgent' THEN 0
	WHEN 'high' THEN 1
	WHEN 'medium' THEN 2
	WHEN 'low' THEN 3
	ELSE 4 END`

// ticketRow is a ticket joined with the names shown in lists.
type ticketRow struct {
	models.TicketModel `gorm:"embedded"`
	ClientUsername     *string
	ClientName         *string
	ClientEmail        *string
	ClientCompany      *string
	AssignedName       *string
	ServiceName        *string
	ServiceDomain      *string
	MessageCount       int64
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}
	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	if err := updateAll(db.GetTxFromContext(ctx, r.db), model, model.ID); err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	return nil
}

// GetByID returns nil, nil when no row matches.
func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

// GetByIDForUpdate returns nil, nil when no row matches. sqlite has no row
// locks; its single writer serializes transactions instead.
func (r *TicketRepository) GetByIDForUpdate(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := forUpdate(db.GetTxFromContext(ctx, r.db)).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock ticket: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) ClaimIfUnassigned(ctx context.Context, id, staffID uint) (bool, error) {
	res := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("id = ? AND (assigned_to IS NULL OR assigned_to = ?)", id, staffID).
		Updates(map[string]any{
			"assigned_to": staffID,
			"status": gorm.Expr("CASE WHEN status = ? THEN ? ELSE status END",
				vo.StatusNew.String(), vo.StatusInProgress.String()),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to claim ticket: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *TicketRepository) baseQuery(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db).
		Table(models.TicketModel{}.TableName() + " AS t").
		Select(`t.*,
			c.username AS client_username,
			` + displayNameExpr("c") + ` AS client_name,
			c.email AS client_email,
			c.company AS client_company,
			` + displayNameExpr("a") + ` AS assigned_name,
			s.service_name AS service_name,
			s.domain AS service_domain,
			(SELECT COUNT(*) FROM ticket_messages m WHERE m.ticket_id = t.id) AS message_count`).
		Joins("LEFT JOIN admin_users c ON c.id = t.client_id").
		Joins("LEFT JOIN admin_users a ON a.id = t.assigned_to").
		Joins("LEFT JOIN client_services s ON s.id = t.service_id")
}

// applyScope restricts q to the tickets scope may list: support sees the
// unassigned queue and its own tickets, clients their own minus tickets
// closed more than a week ago.
func applyScope(q *gorm.DB, scope ticket.Scope) *gorm.DB {
	switch {
	case scope.Role == authorization.RoleAdmin:
		return q
	case scope.Role == authorization.RoleSupport:
		return q.Where("(t.assigned_to IS NULL OR t.assigned_to = ?)", scope.UserID)
	default:
		cutoff := scope.Now.UTC().Add(-ticket.ClosedVisibleToClient)
		return q.Where("t.client_id = ?", scope.UserID).
			Where("(t.status <> ? OR t.closed_at IS NULL OR t.closed_at >= ?)", vo.StatusClosed.String(), cutoff)
	}
}

func (r *TicketRepository) GetDetails(ctx context.Context, id uint) (*ticket.TicketView, error) {
	var rows []ticketRow
	if err := r.baseQuery(ctx).Where("t.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load ticket details: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return r.toView(&rows[0])
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.ListFilter) ([]*ticket.TicketView, error) {
	q := applyScope(r.baseQuery(ctx), filter.Scope)
	if filter.Status != nil {
		q = q.Where("t.status = ?", filter.Status.String())
	}
	if filter.ClientID != nil {
		q = q.Where("t.client_id = ?", *filter.ClientID)
	}

	var rows []ticketRow
	err := q.Order(priorityRankSQL).
		Order("t.created_at DESC").
		Order("t.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	views := make([]*ticket.TicketView, 0, len(rows))
	for i := range rows {
		v, err := r.toView(&rows[i])
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (r *TicketRepository) Stats(ctx context.Context, scope ticket.Scope) (*ticket.Stats, error) {
	q := db.GetTxFromContext(ctx, r.db).Table(models.TicketModel{}.TableName() + " AS t")
	q = applyScope(q, scope)

	var rows []struct {
		Status string
		Count  int64
	}
	if err := q.Select("t.status AS status, COUNT(*) AS count").Group("t.status").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to compute ticket stats: %w", err)
	}

	stats := &ticket.Stats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch vo.TicketStatus(row.Status) {
		case vo.StatusNew:
			stats.New = row.Count
		case vo.StatusInProgress:
			stats.InProgress = row.Count
		case vo.StatusWaitingClient:
			stats.WaitingClient = row.Count
		case vo.StatusWaitingSupport:
			stats.WaitingSupport = row.Count
		case vo.StatusClosed:
			stats.Closed = row.Count
		}
	}
	return stats, nil
}

// DeleteCascade removes children before the ticket row. Callers run it in a
// transaction so a failure leaves nothing half deleted. The removed
// attachments are returned so their files can be unlinked.
func (r *TicketRepository) DeleteCascade(ctx context.Context, id uint) ([]ticket.Attachment, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var atts []models.TicketAttachmentModel
	if err := tx.Where("ticket_id = ?", id).Find(&atts).Error; err != nil {
		return nil, fmt.Errorf("failed to load ticket attachments: %w", err)
	}
	if err := tx.Where("ticket_id = ?", id).Delete(&models.TicketAttachmentModel{}).Error; err != nil {
		return nil, fmt.Errorf("failed to delete ticket attachments: %w", err)
	}
	if err := tx.Where("ticket_id = ?", id).Delete(&models.TicketMessageModel{}).Error; err != nil {
		return nil, fmt.Errorf("failed to delete ticket messages: %w", err)
	}
	err := tx.Where("reference_id = ? AND type IN ?", id,
		[]string{string(notification.TypeTicket), string(notification.TypeTicketMessage)}).
		Delete(&models.NotificationModel{}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to delete ticket notifications: %w", err)
	}
	result := tx.Delete(&models.TicketModel{}, id)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to delete ticket: %w", result.Error)
	}

	out := make([]ticket.Attachment, 0, len(atts))
	for i := range atts {
		out = append(out, r.mapper.AttachmentToDomain(&atts[i]))
	}
	return out, nil
}

func (r *TicketRepository) toView(row *ticketRow) (*ticket.TicketView, error) {
	t, err := r.mapper.ToDomain(&row.TicketModel)
	if err != nil {
		return nil, err
	}
	return &ticket.TicketView{
		Ticket:         t,
		ClientUsername: deref(row.ClientUsername),
		ClientName:     deref(row.ClientName),
		ClientEmail:    deref(row.ClientEmail),
		ClientCompany:  deref(row.ClientCompany),
		AssignedName:   deref(row.AssignedName),
		ServiceName:    deref(row.ServiceName),
		ServiceDomain:  deref(row.ServiceDomain),
		MessageCount:   row.MessageCount,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type TicketMessageRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketMessageRepository(db *gorm.DB) *TicketMessageRepository {
	return &TicketMessageRepository{db: db, mapper: mappers.NewTicketMapper()}
}

func (r *TicketMessageRepository) Create(ctx context.Context, msg *ticket.Message) error {
	model := r.mapper.MessageToModel(msg)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket message: %w", err)
	}
	return msg.SetID(model.ID)
}

func (r *TicketMessageRepository) ListByTicket(ctx context.Context, ticketID uint, includeInternal bool) ([]*ticket.MessageView, error) {
	q := db.GetTxFromContext(ctx, r.db).
		Table(models.TicketMessageModel{}.TableName()+" AS m").
		Select("m.*, u.username AS username, "+displayNameExpr("u")+" AS display_name, u.role AS role").
		Joins("LEFT JOIN admin_users u ON u.id = m.user_id").
		Where("m.ticket_id = ?", ticketID)
	if !includeInternal {
		q = q.Where("m.is_internal = ?", false)
	}

	var rows []struct {
		models.TicketMessageModel `gorm:"embedded"`
		Username                  *string
		DisplayName               *string
		Role                      *string
	}
	if err := q.Order("m.created_at ASC").Order("m.id ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list ticket messages: %w", err)
	}

	out := make([]*ticket.MessageView, 0, len(rows))
	for i := range rows {
		out = append(out, &ticket.MessageView{
			Message:     r.mapper.MessageToDomain(&rows[i].TicketMessageModel),
			Username:    deref(rows[i].Username),
			DisplayName: deref(rows[i].DisplayName),
			Role:        deref(rows[i].Role),
		})
	}
	return out, nil
}

type TicketAttachmentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketAttachmentRepository(db *gorm.DB) *TicketAttachmentRepository {
	return &TicketAttachmentRepository{db: db, mapper: mappers.NewTicketMapper()}
}

func (r *TicketAttachmentRepository) Create(ctx context.Context, a *ticket.Attachment) error {
	model := r.mapper.AttachmentToModel(a)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket attachment: %w", err)
	}
	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	return nil
}

func (r *TicketAttachmentRepository) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.AttachmentView, error) {
	var rows []struct {
		models.TicketAttachmentModel `gorm:"embedded"`
		Username                     *string
		DisplayName                  *string
	}
	err := db.GetTxFromContext(ctx, r.db).
		Table(models.TicketAttachmentModel{}.TableName()+" AS f").
		Select("f.*, u.username AS username, "+displayNameExpr("u")+" AS display_name").
		Joins("LEFT JOIN admin_users u ON u.id = f.uploaded_by").
		Where("f.ticket_id = ?", ticketID).
		Order("f.created_at ASC").
		Order("f.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket attachments: %w", err)
	}

	out := make([]*ticket.AttachmentView, 0, len(rows))
	for i := range rows {
		out = append(out, &ticket.AttachmentView{
			Attachment:  r.mapper.AttachmentToDomain(&rows[i].TicketAttachmentModel),
			Username:    deref(rows[i].Username),
			DisplayName: deref(rows[i].DisplayName),
		})
	}
	return out, nil
}
