package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/bookwell/backend/internal/domain/entities"
	"github.com/bookwell/backend/internal/domain/repositories"
	"github.com/bookwell/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/bookwell/backend/pkg/errors"
)

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// uniqueViolation is the PostgreSQL error code raised when an insert hits the
// partial unique index on (provider_id, date) WHERE canceled_at IS NULL.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// Create creates a new appointment. A concurrent booking that already took
// the slot surfaces as a slot-unavailable error, the same kind the service
// pre-check reports.
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	record := goqu.Record{
		"id":          appointment.ID,
		"user_id":     appointment.UserID,
		"provider_id": appointment.ProviderID,
		"date":        appointment.Date,
		"canceled_at": appointment.CanceledAt,
		"created_at":  appointment.CreatedAt,
		"updated_at":  appointment.UpdatedAt,
	}

	query, args, err := a.db.Insert("appointments").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return apperrors.NewSlotUnavailableError("appointment date is not available")
	}
	if err != nil {
		return apperrors.NewStoreUnavailableError("failed to create appointment", err)
	}

	return nil
}

var appointmentColumns = []any{
	"a.id", "a.user_id", "a.provider_id", "a.date", "a.canceled_at",
	"a.created_at", "a.updated_at",
	"c.name", "c.email",
	"p.name", "p.email",
}

// GetByID retrieves an appointment with its client and provider resolved
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	query, args, err := a.db.Select(appointmentColumns...).
		From(goqu.T("appointments").As("a")).
		Join(goqu.T("users").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("a.user_id")))).
		Join(goqu.T("users").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("a.provider_id")))).
		Where(goqu.Ex{"a.id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	appointment := &entities.Appointment{
		Client:   &entities.User{},
		Provider: &entities.User{},
	}
	var canceledAt sql.NullTime

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&appointment.UserID,
		&appointment.ProviderID,
		&appointment.Date,
		&canceledAt,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
		&appointment.Client.Name,
		&appointment.Client.Email,
		&appointment.Provider.Name,
		&appointment.Provider.Email,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to get appointment", err)
	}

	if canceledAt.Valid {
		appointment.CanceledAt = &canceledAt.Time
	}
	appointment.Client.ID = appointment.UserID
	appointment.Provider.ID = appointment.ProviderID

	return appointment, nil
}

// FindActiveSlot retrieves the non-canceled appointment occupying the slot,
// or nil when the slot is free
func (a *AppointmentAdapter) FindActiveSlot(ctx context.Context, providerID string, date time.Time) (*entities.Appointment, error) {
	query, args, err := a.db.Select("id", "user_id", "provider_id", "date", "created_at", "updated_at").
		From("appointments").
		Where(goqu.Ex{
			"provider_id": providerID,
			"date":        date,
			"canceled_at": nil,
		}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	appointment := &entities.Appointment{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&appointment.UserID,
		&appointment.ProviderID,
		&appointment.Date,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to check slot availability", err)
	}

	return appointment, nil
}

// Cancel sets canceled_at on an active appointment. The canceled_at IS NULL
// guard keeps the transition one-way even under concurrent cancels.
func (a *AppointmentAdapter) Cancel(ctx context.Context, id string, canceledAt time.Time) error {
	query, args, err := a.db.Update("appointments").
		Set(goqu.Record{
			"canceled_at": canceledAt,
			"updated_at":  canceledAt,
		}).
		Where(goqu.Ex{"id": id, "canceled_at": nil}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build cancel query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewStoreUnavailableError("failed to cancel appointment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStoreUnavailableError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		exists, err := a.exists(ctx, id)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.NewAlreadyCanceledError(fmt.Sprintf("appointment with id %s is already canceled", id))
		}
		return apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}

	return nil
}

func (a *AppointmentAdapter) exists(ctx context.Context, id string) (bool, error) {
	query, args, err := a.db.Select(goqu.COUNT("id")).
		From("appointments").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewStoreUnavailableError("failed to check appointment existence", err)
	}
	return count > 0, nil
}

// ListActiveByClient retrieves a page of the client's non-canceled
// appointments ordered by date, with providers and avatars resolved
func (a *AppointmentAdapter) ListActiveByClient(ctx context.Context, clientID string, page int) ([]*entities.Appointment, error) {
	if page < 1 {
		page = 1
	}

	query, args, err := a.db.Select(
		"a.id", "a.user_id", "a.provider_id", "a.date", "a.created_at", "a.updated_at",
		"p.name", "f.id", "f.name", "f.path",
	).
		From(goqu.T("appointments").As("a")).
		Join(goqu.T("users").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("a.provider_id")))).
		LeftJoin(goqu.T("files").As("f"), goqu.On(goqu.I("f.id").Eq(goqu.I("p.avatar_id")))).
		Where(goqu.Ex{"a.user_id": clientID, "a.canceled_at": nil}).
		Order(goqu.I("a.date").Asc()).
		Limit(uint(repositories.ClientPageSize)).
		Offset(uint((page - 1) * repositories.ClientPageSize)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to list appointments", err)
	}
	defer rows.Close()

	var appointments []*entities.Appointment
	for rows.Next() {
		appointment := &entities.Appointment{Provider: &entities.User{}}
		var avatarID, avatarName, avatarPath sql.NullString

		err := rows.Scan(
			&appointment.ID,
			&appointment.UserID,
			&appointment.ProviderID,
			&appointment.Date,
			&appointment.CreatedAt,
			&appointment.UpdatedAt,
			&appointment.Provider.Name,
			&avatarID,
			&avatarName,
			&avatarPath,
		)
		if err != nil {
			return nil, apperrors.NewStoreUnavailableError("failed to scan appointment", err)
		}

		appointment.Provider.ID = appointment.ProviderID
		if avatarID.Valid {
			appointment.Provider.Avatar = &entities.Avatar{
				ID:   avatarID.String,
				Name: avatarName.String,
				Path: avatarPath.String,
			}
		}

		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to list appointments", err)
	}

	return appointments, nil
}
