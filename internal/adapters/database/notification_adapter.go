package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/bookwell/backend/internal/domain/entities"
	"github.com/bookwell/backend/internal/domain/repositories"
	"github.com/bookwell/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/bookwell/backend/pkg/errors"
)

// NotificationAdapter implements the NotificationRepository interface
type NotificationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewNotificationAdapter creates a new notification adapter
func NewNotificationAdapter(client *postgres.Client) repositories.NotificationRepository {
	return &NotificationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create appends a notification
func (a *NotificationAdapter) Create(ctx context.Context, notification *entities.Notification) error {
	record := goqu.Record{
		"id":         notification.ID,
		"content":    notification.Content,
		"user_id":    notification.UserID,
		"read":       notification.Read,
		"created_at": notification.CreatedAt,
	}

	query, args, err := a.db.Insert("notifications").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewStoreUnavailableError("failed to create notification", err)
	}

	return nil
}
