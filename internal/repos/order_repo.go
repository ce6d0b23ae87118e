package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"sellnow/internal/domain"
	"sellnow/internal/pricing"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// ---------- Admin list summary ----------
type OrderSummary struct {
	ID            string  `db:"id"`
	OrderNumber   string  `db:"order_number"`
	CustomerName  string  `db:"customer_name"`
	CustomerEmail string  `db:"customer_email"`
	Total         float64 `db:"total"`
	Status        string  `db:"status"`
	CreatedAt     string  `db:"created_at"`
}

// ---------- Order detail ----------
type OrderRow struct {
	ID           string  `db:"id"`
	OrderNumber  string  `db:"order_number"`
	SessionID    string  `db:"session_id"`
	Region       string  `db:"region_code"`
	Customer     string  `db:"customer_name"`
	Email        string  `db:"customer_email"`
	Subtotal     float64 `db:"subtotal"`
	TotalSavings float64 `db:"total_savings"`
	ShippingCost float64 `db:"shipping_cost"`
	Total        float64 `db:"total"`
	Status       string  `db:"status"`
	CreatedAt    string  `db:"created_at"`
}

type OrderItemRow struct {
	ProductID   string  `db:"product_id"`
	VariantID   string  `db:"variant_id"`
	Name        string  `db:"name"`
	SKU         string  `db:"sku"`
	Qty         int     `db:"qty"`
	UnitPrice   float64 `db:"unit_price"`
	IsWholesale bool    `db:"is_wholesale"`
	LineTotal   float64 `db:"line_total"`
}

type CreateOrderParams struct {
	ID          string
	OrderNumber string
	SessionID   string
	Region      string
	Name        string
	Email       string
	Breakdown   pricing.Breakdown
}

// Create persists an order: stock decrements, header, and line items all run
// in one transaction. Each decrement is conditional (stock >= qty); if any
// line cannot be satisfied the whole transaction rolls back and an
// OutOfStockError is returned, never a partial order.
func (r *OrderRepo) Create(p CreateOrderParams) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, ln := range p.Breakdown.Lines {
		if err := decrementStock(tx, ln); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
	  INSERT INTO orders
	    (id, order_number, session_id, region_code, customer_name, customer_email,
	     subtotal, total_savings, shipping_cost, total, status, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,'PLACED',CURRENT_TIMESTAMP)
	`, p.ID, p.OrderNumber, p.SessionID, p.Region, p.Name, p.Email,
		p.Breakdown.Subtotal, p.Breakdown.TotalSavings, p.Breakdown.ShippingCost, p.Breakdown.Total); err != nil {
		return err
	}

	for _, ln := range p.Breakdown.Lines {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, variant_id, sku, qty, unit_price, is_wholesale, line_total)
		  VALUES (?,?,?,?,?,?,?,?)
		`, p.ID, ln.ProductID, ln.VariantID, ln.SKU, ln.Quantity, ln.UnitPrice, ln.IsWholesale, ln.LineTotal); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func decrementStock(tx *sqlx.Tx, ln domain.PricedLine) error {
	var (
		res sql.Result
		err error
	)
	if ln.VariantID != "" {
		res, err = tx.Exec(`
		  UPDATE variants SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
		  WHERE id = ? AND stock >= ?
		`, ln.Quantity, ln.VariantID, ln.Quantity)
	} else {
		res, err = tx.Exec(`
		  UPDATE products SET stock_quantity = stock_quantity - ?, updated_at = CURRENT_TIMESTAMP
		  WHERE id = ? AND stock_quantity >= ?
		`, ln.Quantity, ln.ProductID, ln.Quantity)
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		id := ln.VariantID
		if id == "" {
			id = ln.ProductID
		}
		return &domain.OutOfStockError{ItemID: id, Requested: ln.Quantity}
	}
	return nil
}

func (r *OrderRepo) Get(orderID string) (OrderRow, []OrderItemRow, error) {
	var o OrderRow
	if err := r.db.Get(&o, `
		SELECT id, order_number, COALESCE(session_id,'') AS session_id, COALESCE(region_code,'') AS region_code,
		       COALESCE(customer_name,'') AS customer_name, COALESCE(customer_email,'') AS customer_email,
		       subtotal, total_savings, shipping_cost, total, status, created_at
		FROM orders
		WHERE id = ?
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	var items []OrderItemRow
	if err := r.db.Select(&items, `
		SELECT oi.product_id, oi.variant_id, p.name, COALESCE(oi.sku,'') AS sku,
		       oi.qty, oi.unit_price, oi.is_wholesale, oi.line_total
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ?
		ORDER BY p.name, oi.sku
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	return o, items, nil
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, order_number, COALESCE(customer_name,'') AS customer_name,
		       COALESCE(customer_email,'') AS customer_email, total, status, created_at
		FROM orders
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return err
}
