package repos

import (
	"github.com/jmoiron/sqlx"

	"sellnow/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT
	    id, name, has_variants, price, old_price, wholesale_price, wholesale_threshold,
	    stock_quantity, COALESCE(images_json,'[]') AS images_json, active,
	    created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE id = ?
	`, id)
	return p, err
}

func (r *ProductRepo) ListActive(limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT
	    id, name, has_variants, price, old_price, wholesale_price, wholesale_threshold,
	    stock_quantity, COALESCE(images_json,'[]') AS images_json, active,
	    created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE active = 1
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?
	`, limit, offset)
	return out, err
}

// Variants returns all variants of a product, active or not.
func (r *ProductRepo) Variants(productID string) ([]domain.Variant, error) {
	var out []domain.Variant
	err := r.db.Select(&out, `
	  SELECT
	    id, product_id, sku, price, old_price, wholesale_price, wholesale_threshold,
	    stock, is_active, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM variants
	  WHERE product_id = ?
	  ORDER BY sku
	`, productID)
	return out, err
}

func (r *ProductRepo) GetVariant(id string) (domain.Variant, error) {
	var v domain.Variant
	err := r.db.Get(&v, `
	  SELECT
	    id, product_id, sku, price, old_price, wholesale_price, wholesale_threshold,
	    stock, is_active, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM variants
	  WHERE id = ?
	`, id)
	return v, err
}

// Insert writes a product and its variants in one transaction. Callers
// validate first; this layer only persists.
func (r *ProductRepo) Insert(p domain.Product, variants []domain.Variant) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO products
	    (id, name, has_variants, price, old_price, wholesale_price, wholesale_threshold,
	     stock_quantity, images_json, active, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, p.ID, p.Name, p.HasVariants, p.Price, p.OldPrice, p.WholesalePrice, p.WholesaleThreshold,
		p.StockQuantity, p.ImagesJSON, p.Active); err != nil {
		return err
	}
	for _, v := range variants {
		if err := insertVariant(tx, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertVariant(tx *sqlx.Tx, v domain.Variant) error {
	_, err := tx.Exec(`
	  INSERT INTO variants
	    (id, product_id, sku, price, old_price, wholesale_price, wholesale_threshold,
	     stock, is_active, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, v.ID, v.ProductID, v.SKU, v.Price, v.OldPrice, v.WholesalePrice, v.WholesaleThreshold,
		v.Stock, v.IsActive)
	return err
}

// Update rewrites a product row and, when variants are given, replaces its
// variant set. Runs in one transaction so a rejected write leaves nothing
// half-saved.
func (r *ProductRepo) Update(p domain.Product, variants []domain.Variant) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  UPDATE products SET
	    name = ?, has_variants = ?, price = ?, old_price = ?, wholesale_price = ?,
	    wholesale_threshold = ?, stock_quantity = ?, images_json = ?, active = ?,
	    updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, p.Name, p.HasVariants, p.Price, p.OldPrice, p.WholesalePrice,
		p.WholesaleThreshold, p.StockQuantity, p.ImagesJSON, p.Active, p.ID); err != nil {
		return err
	}
	if variants != nil {
		if _, err := tx.Exec(`DELETE FROM variants WHERE product_id = ?`, p.ID); err != nil {
			return err
		}
		for _, v := range variants {
			if err := insertVariant(tx, v); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// SetStock overwrites flat-mode stock for a product.
func (r *ProductRepo) SetStock(productID string, qty int) error {
	_, err := r.db.Exec(`
	  UPDATE products SET stock_quantity = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, qty, productID)
	return err
}

// SetVariantStock overwrites stock for a variant.
func (r *ProductRepo) SetVariantStock(variantID string, qty int) error {
	_, err := r.db.Exec(`
	  UPDATE variants SET stock = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, qty, variantID)
	return err
}

// Admin inventory listing: one row per flat product or variant.
type InventoryRow struct {
	ProductID string `db:"product_id"`
	VariantID string `db:"variant_id"`
	Name      string `db:"name"`
	SKU       string `db:"sku"`
	Stock     int    `db:"stock"`
	IsActive  bool   `db:"is_active"`
}

func (r *ProductRepo) ListInventory() ([]InventoryRow, error) {
	var rows []InventoryRow
	err := r.db.Select(&rows, `
	  SELECT id AS product_id, '' AS variant_id, name, '' AS sku,
	         stock_quantity AS stock, active AS is_active
	  FROM products WHERE has_variants = 0
	  UNION ALL
	  SELECT v.product_id, v.id AS variant_id, p.name, v.sku, v.stock, v.is_active
	  FROM variants v JOIN products p ON p.id = v.product_id
	  ORDER BY name, sku
	`)
	return rows, err
}
