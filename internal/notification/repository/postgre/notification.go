package postgres

import (
	"context"
	"fmt"

	"signage-hub/internal/model"
	"signage-hub/internal/notification/repository"
	postgresPkg "signage-hub/pkg/postgre"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/strmangle"
)

const notificationColumns = `id, recipient_id, sender_id, type, title, message, is_read, data, status, created_at`

func (r *implRepository) Create(ctx context.Context, opts repository.CreateOptions) (model.Notification, error) {
	n := opts.Notification
	if n.ID == "" {
		n.ID = postgresPkg.NewUUID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = r.clock()
	}
	if n.Status == "" {
		n.Status = model.NotificationStatusActive
	}

	row, err := newRow(n)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Create.newRow: %v", err)
		return model.Notification{}, err
	}

	query := fmt.Sprintf(`INSERT INTO notifications (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, notificationColumns)
	_, err = queries.Raw(query,
		row.ID,
		row.RecipientID,
		row.SenderID,
		row.Type,
		row.Title,
		row.Message,
		row.IsRead,
		row.Data,
		row.Status,
		row.CreatedAt,
	).ExecContext(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Create.Exec: %v", err)
		return model.Notification{}, err
	}

	return n, nil
}

func (r *implRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.Notification, error) {
	args := []interface{}{opts.RecipientID}
	query := fmt.Sprintf(`SELECT %s FROM notifications
		WHERE recipient_id = $1 AND status = 'active'`, notificationColumns)

	if len(opts.Types) > 0 {
		query += fmt.Sprintf(" AND type IN (%s)",
			strmangle.Placeholders(true, len(opts.Types), len(args)+1, 1))
		for _, t := range opts.Types {
			args = append(args, string(t))
		}
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args)+1)
	args = append(args, opts.Limit)

	var rows []*notificationRow
	if err := queries.Raw(query, args...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.List.Bind: %v", err)
		return nil, err
	}

	res := make([]model.Notification, 0, len(rows))
	for _, row := range rows {
		n, err := row.toModel()
		if err != nil {
			r.l.Errorf(ctx, "internal.notification.repository.postgres.List.toModel: %v", err)
			return nil, err
		}
		res = append(res, n)
	}

	return res, nil
}

func (r *implRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var result struct {
		Count int64 `boil:"count"`
	}
	err := queries.Raw(`SELECT COUNT(*) AS count FROM notifications
		WHERE recipient_id = $1 AND status = 'active' AND is_read = false`,
		recipientID,
	).Bind(ctx, r.db, &result)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.CountUnread.Bind: %v", err)
		return 0, err
	}
	return result.Count, nil
}

func (r *implRepository) MarkRead(ctx context.Context, opts repository.MarkReadOptions) error {
	if err := postgresPkg.IsUUID(opts.ID); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkRead.IsUUID: %v", err)
		return repository.ErrNotFound
	}

	// Matching already-read rows keeps the operation idempotent: the update
	// still reports the row as affected even when is_read does not change.
	result, err := queries.Raw(`UPDATE notifications SET is_read = true
		WHERE id = $1 AND recipient_id = $2 AND status = 'active'`,
		opts.ID, opts.RecipientID,
	).ExecContext(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkRead.Exec: %v", err)
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkRead.RowsAffected: %v", err)
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *implRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	_, err := queries.Raw(`UPDATE notifications SET is_read = true
		WHERE recipient_id = $1 AND status = 'active' AND is_read = false`,
		recipientID,
	).ExecContext(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkAllRead.Exec: %v", err)
		return err
	}
	return nil
}

func (r *implRepository) MarkReadByTypeAndSender(ctx context.Context, opts repository.ClearOptions) error {
	args := []interface{}{opts.RecipientID, string(opts.Type)}
	query := `UPDATE notifications SET is_read = true
		WHERE recipient_id = $1 AND type = $2 AND status = 'active' AND is_read = false`
	if opts.SenderID != "" {
		query += " AND sender_id = $3"
		args = append(args, opts.SenderID)
	}

	_, err := queries.Raw(query, args...).ExecContext(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkReadByTypeAndSender.Exec: %v", err)
		return err
	}
	return nil
}
