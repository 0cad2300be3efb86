package sqlite

import (
	"context"
	"time"

	"github.com/northarcade/gameauth/internal/auth/domain"
)

type challengesRepo struct {
	q querier
}

func (r *challengesRepo) CreateChallenge(ctx context.Context, c domain.CodeChallenge) (int64, error) {
	// Retire any pending row for the same email+purpose first so only the
	// new row can complete. Both statements run on the same connection; the
	// caller wraps this in WithTx when it needs strict atomicity.
	_, err := r.q.ExecContext(ctx, `
		UPDATE code_challenges SET used = 1 WHERE email = ? AND purpose = ? AND used = 0`,
		c.Email, string(c.Purpose))
	if err != nil {
		return 0, err
	}

	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := r.q.ExecContext(ctx, `
		INSERT INTO code_challenges (email, purpose, code_hash, expires_at, used, attempts, created_at)
		VALUES (?, ?, ?, ?, 0, 0, ?)`,
		c.Email, string(c.Purpose), c.CodeHash, c.ExpiresAt.UTC(), createdAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *challengesRepo) LatestChallenge(ctx context.Context, email string, purpose domain.ChallengePurpose) (domain.CodeChallenge, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, email, purpose, code_hash, expires_at, used, attempts, created_at
		FROM code_challenges
		WHERE email = ? AND purpose = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		email, string(purpose))

	var c domain.CodeChallenge
	var purposeStr string
	var used int
	err := row.Scan(&c.ID, &c.Email, &purposeStr, &c.CodeHash, &c.ExpiresAt, &used, &c.Attempts, &c.CreatedAt)
	if err != nil {
		return domain.CodeChallenge{}, mapNotFound(err)
	}
	c.Purpose = domain.ChallengePurpose(purposeStr)
	c.Used = used != 0
	return c, nil
}

func (r *challengesRepo) MarkChallengeUsed(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE code_challenges SET used = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func (r *challengesRepo) IncrementAttempts(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE code_challenges SET attempts = attempts + 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}
