package repos

import "github.com/jmoiron/sqlx"

type AdminKeyRepo struct{ db *sqlx.DB }

func NewAdminKeyRepo(db *sqlx.DB) *AdminKeyRepo { return &AdminKeyRepo{db: db} }

// KeyHashes returns all stored bcrypt hashes. The set is tiny (one per
// operator), so authz compares against each.
func (r *AdminKeyRepo) KeyHashes() ([]string, error) {
	var out []string
	err := r.db.Select(&out, `SELECT key_hash FROM admin_keys`)
	return out, err
}
