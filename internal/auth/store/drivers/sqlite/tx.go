package sqlite

import (
	"database/sql"

	"github.com/northarcade/gameauth/internal/auth/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Accounts() store.Accounts     { return &accountsRepo{q: t.tx} }
func (t *txStore) Challenges() store.Challenges { return &challengesRepo{q: t.tx} }
