package repository

import (
	"context"
	"strings"

	"github.com/saeid-a/AtlasCoachBack/internal/models"
)

type RegistryRepository struct {
	db DBTX
}

func NewRegistryRepository(db DBTX) *RegistryRepository {
	return &RegistryRepository{db: db}
}

func (r *RegistryRepository) GetByPhone(ctx context.Context, phone string) (*models.RegisteredUser, error) {
	query := `
		SELECT phone, name, is_active, registration_date
		FROM registered_users
		WHERE phone = $1
	`
	var user models.RegisteredUser
	err := r.db.QueryRow(ctx, query, phone).Scan(&user.Phone, &user.Name, &user.IsActive, &user.RegistrationDate)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RegisterIfAbsent inserts an active entry unless the phone is already
// registered, and returns whichever entry is stored afterwards.
func (r *RegistryRepository) RegisterIfAbsent(ctx context.Context, phone, name string) (*models.RegisteredUser, error) {
	query := `
		INSERT INTO registered_users (phone, name, is_active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (phone) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, phone, name); err != nil {
		return nil, err
	}
	return r.GetByPhone(ctx, phone)
}

func (r *RegistryRepository) UpdateName(ctx context.Context, phone, name string) error {
	_, err := r.db.Exec(ctx, `UPDATE registered_users SET name = $1 WHERE phone = $2`, name, phone)
	return err
}

func (r *RegistryRepository) ToggleActive(ctx context.Context, phone string) (*models.RegisteredUser, error) {
	query := `
		UPDATE registered_users
		SET is_active = NOT is_active
		WHERE phone = $1
		RETURNING phone, name, is_active, registration_date
	`
	var user models.RegisteredUser
	err := r.db.QueryRow(ctx, query, phone).Scan(&user.Phone, &user.Name, &user.IsActive, &user.RegistrationDate)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns the registry newest first. A non-empty filter matches name or
// phone case-insensitively.
func (r *RegistryRepository) List(ctx context.Context, filter string) ([]models.RegisteredUser, error) {
	query := `
		SELECT phone, name, is_active, registration_date
		FROM registered_users
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%'
		ORDER BY registration_date DESC, phone
	`
	rows, err := r.db.Query(ctx, query, escapeLike(strings.TrimSpace(filter)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.RegisteredUser, 0)
	for rows.Next() {
		var user models.RegisteredUser
		if err := rows.Scan(&user.Phone, &user.Name, &user.IsActive, &user.RegistrationDate); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *RegistryRepository) ListStatuses(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.Query(ctx, `SELECT phone, is_active FROM registered_users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := make(map[string]bool)
	for rows.Next() {
		var phone string
		var active bool
		if err := rows.Scan(&phone, &active); err != nil {
			return nil, err
		}
		statuses[phone] = active
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return statuses, nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
