package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn, adminKey string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo catalog if DB is empty (products/variants)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure the admin key exists (idempotent; safe to run every start)
	if adminKey != "" {
		if err := seedAdminKey(db, adminKey); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func EnsureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products (flat mode carries its own price/stock; variant mode prices
-- through the variants table only)
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  has_variants INTEGER NOT NULL DEFAULT 0,
  price NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
  old_price NUMERIC,
  wholesale_price NUMERIC,
  wholesale_threshold INTEGER NOT NULL DEFAULT 0,
  stock_quantity INTEGER NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
  images_json TEXT,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Variants
CREATE TABLE IF NOT EXISTS variants(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  sku TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price > 0),
  old_price NUMERIC,
  wholesale_price NUMERIC,
  wholesale_threshold INTEGER NOT NULL DEFAULT 0,
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT,
  UNIQUE(product_id, sku)
);
CREATE INDEX IF NOT EXISTS idx_variants_product ON variants(product_id);

-- Carts
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  variant_id TEXT NOT NULL DEFAULT '',
  qty INTEGER NOT NULL CHECK (qty >= 1),
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id, variant_id)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  order_number TEXT UNIQUE NOT NULL,
  session_id TEXT,
  region_code TEXT,
  customer_name TEXT,
  customer_email TEXT,
  subtotal NUMERIC NOT NULL,
  total_savings NUMERIC NOT NULL DEFAULT 0,
  shipping_cost NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'PLACED',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  variant_id TEXT NOT NULL DEFAULT '',
  sku TEXT,
  qty INTEGER NOT NULL,
  unit_price NUMERIC NOT NULL,
  is_wholesale INTEGER NOT NULL DEFAULT 0,
  line_total NUMERIC NOT NULL,
  PRIMARY KEY (order_id, product_id, variant_id)
);

-- Per-day order number counter. Incremented and read in a single statement;
-- rows are never reused or reset, a new day gets a new key.
CREATE TABLE IF NOT EXISTS order_sequences(
  seq_date TEXT PRIMARY KEY,
  counter INTEGER NOT NULL
);

-- Admin API keys (bcrypt hashes)
CREATE TABLE IF NOT EXISTS admin_keys(
  id TEXT PRIMARY KEY,
  label TEXT NOT NULL,
  key_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products/variants")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,has_variants,price,old_price,wholesale_price,wholesale_threshold,stock_quantity,images_json) VALUES
	  ('mug-classic','Classic Stoneware Mug',0,14.90,NULL,NULL,0,120,'["products/mug-classic/main.jpg"]'),
	  ('notebook-a5','A5 Dotted Notebook',0,8.50,9.90,6.00,20,340,'["products/notebook-a5/main.jpg"]'),
	  ('tee-logo','Logo T-Shirt',1,0,NULL,NULL,0,0,'["products/tee-logo/main.jpg"]')`)

	tx.MustExec(`INSERT INTO variants(id,product_id,sku,price,wholesale_price,wholesale_threshold,stock,is_active) VALUES
	  ('tee-logo-s','tee-logo','TEE-S',19.90,15.00,10,25,1),
	  ('tee-logo-m','tee-logo','TEE-M',19.90,15.00,10,40,1),
	  ('tee-logo-xl','tee-logo','TEE-XL',21.90,NULL,0,12,0)`)

	return tx.Commit()
}

// seedAdminKey stores a bcrypt hash of the configured admin key if no key
// with the default label exists yet.
func seedAdminKey(db *sqlx.DB, rawKey string) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM admin_keys WHERE label = 'default'`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(rawKey), 12)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO admin_keys(id,label,key_hash) VALUES('ak-default','default',?)`, string(h))
	return err
}
