package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartItemRow keys a cart line back into the catalog; prices are not stored
// here. Lines are re-priced from the catalog snapshot whenever the cart is
// viewed or checked out, so totals stay reconstructable.
type CartItemRow struct {
	ProductID string `db:"product_id"`
	VariantID string `db:"variant_id"`
	Qty       int    `db:"qty"`
}

// EnsureCart returns the cart for a session, creating it on first use. The
// insert tolerates a concurrent first request for the same session; whoever
// loses the race reads the winner's row.
func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	_, err := r.db.Exec(`
		INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)
		ON CONFLICT(session_id) DO NOTHING
	`, sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	var cartID string
	err = r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID)
	return cartID, err
}

// UpsertItem adds qty to an existing line or inserts a new one. variantID is
// the empty string for flat-mode products.
func (r *CartRepo) UpsertItem(cartID, productID, variantID string, qty int) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(cart_id,product_id,variant_id,qty,created_at)
		VALUES(?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(cart_id,product_id,variant_id) DO UPDATE
		SET qty = cart_items.qty + excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, cartID, productID, variantID, qty)
	return err
}

func (r *CartRepo) Items(cartID string) ([]CartItemRow, error) {
	var out []CartItemRow
	err := r.db.Select(&out, `
	  SELECT product_id, variant_id, qty
	  FROM cart_items
	  WHERE cart_id = ?
	  ORDER BY product_id, variant_id
	`, cartID)
	return out, err
}

func (r *CartRepo) RemoveItem(cartID, productID, variantID string) error {
	_, err := r.db.Exec(`
	  DELETE FROM cart_items
	  WHERE cart_id = ? AND product_id = ? AND variant_id = ?
	`, cartID, productID, variantID)
	return err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}
