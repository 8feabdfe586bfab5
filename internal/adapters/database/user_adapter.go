package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/bookwell/backend/internal/domain/entities"
	"github.com/bookwell/backend/internal/domain/repositories"
	"github.com/bookwell/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/bookwell/backend/pkg/errors"
)

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a user by ID
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	query, args, err := a.db.Select(
		"id", "name", "email", "provider", "avatar_id", "created_at", "updated_at",
	).From("users").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	user := &entities.User{}
	var avatarID sql.NullString

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Provider,
		&avatarID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to get user", err)
	}

	if avatarID.Valid {
		user.AvatarID = &avatarID.String
	}

	return user, nil
}

// ListProviders retrieves all users with the provider capability, with
// avatars resolved
func (a *UserAdapter) ListProviders(ctx context.Context) ([]*entities.User, error) {
	query, args, err := a.db.Select(
		"u.id", "u.name", "u.email", "u.avatar_id",
		"f.id", "f.name", "f.path",
	).
		From(goqu.T("users").As("u")).
		LeftJoin(goqu.T("files").As("f"), goqu.On(goqu.I("f.id").Eq(goqu.I("u.avatar_id")))).
		Where(goqu.Ex{"u.provider": true}).
		Order(goqu.I("u.name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build providers query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to list providers", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		user := &entities.User{Provider: true}
		var avatarID, fileID, avatarName, avatarPath sql.NullString

		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&avatarID,
			&fileID,
			&avatarName,
			&avatarPath,
		)
		if err != nil {
			return nil, apperrors.NewStoreUnavailableError("failed to scan provider", err)
		}

		if avatarID.Valid {
			user.AvatarID = &avatarID.String
		}
		if fileID.Valid {
			user.Avatar = &entities.Avatar{
				ID:   fileID.String,
				Name: avatarName.String,
				Path: avatarPath.String,
			}
		}

		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to list providers", err)
	}

	return users, nil
}
