package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/northarcade/gameauth/internal/auth/domain"
	"github.com/northarcade/gameauth/internal/auth/store"
)

type accountsRepo struct {
	q querier
}

const accountColumns = `id, email, display_name, password_hash, status,
	image_bytes, image_type, image_updated_at, created_at, updated_at`

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) (int64, error) {
	now := time.Now().UTC()

	var imageType sql.NullString
	var imageUpdated sql.NullTime
	if len(a.ImageBytes) > 0 {
		imageType = sql.NullString{String: a.ImageType, Valid: true}
		imageUpdated = sql.NullTime{Time: now, Valid: true}
	}

	res, err := r.q.ExecContext(ctx, `
		INSERT INTO accounts (email, display_name, password_hash, status,
			image_bytes, image_type, image_updated_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Email, a.DisplayName, a.PasswordHash, uint8(a.Status),
		nullBytes(a.ImageBytes), imageType, imageUpdated, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, store.ErrAlreadyExists
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id int64) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *accountsRepo) ExistsEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM accounts WHERE email = ?`, email).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, email string, newHash string) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE accounts SET password_hash = ?, updated_at = ? WHERE email = ?`,
		newHash, time.Now().UTC(), email)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *accountsRepo) GetProfileImage(ctx context.Context, id int64) ([]byte, string, *time.Time, error) {
	var data []byte
	var contentType sql.NullString
	var updatedAt sql.NullTime

	err := r.q.QueryRowContext(ctx, `
		SELECT image_bytes, image_type, image_updated_at FROM accounts WHERE id = ?`, id).
		Scan(&data, &contentType, &updatedAt)
	if err != nil {
		return nil, "", nil, mapNotFound(err)
	}

	var at *time.Time
	if updatedAt.Valid {
		t := updatedAt.Time
		at = &t
	}
	return data, contentType.String, at, nil
}

func (r *accountsRepo) UpdateProfileImage(ctx context.Context, id int64, data []byte, contentType string) error {
	now := time.Now().UTC()
	res, err := r.q.ExecContext(ctx, `
		UPDATE accounts SET image_bytes = ?, image_type = ?, image_updated_at = ?, updated_at = ?
		WHERE id = ?`,
		nullBytes(data), contentType, now, now, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account
	var status uint8
	var imageType sql.NullString
	var imageUpdated sql.NullTime

	err := row.Scan(&a.ID, &a.Email, &a.DisplayName, &a.PasswordHash, &status,
		&a.ImageBytes, &imageType, &imageUpdated, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}

	a.Status = domain.AccountStatus(status)
	a.ImageType = imageType.String
	if imageUpdated.Valid {
		t := imageUpdated.Time
		a.ImageUpdatedAt = &t
	}
	return a, nil
}

func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func nullBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}
