package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// LoadFromDB loads the catalog from Postgres. It is called once at startup
// when DATABASE_URL is configured; the returned catalog is read-only from
// then on, same as the built-in one. The tax rate is not a database
// concern and is taken from the default catalog.
func LoadFromDB(ctx context.Context, databaseURL string) (*Catalog, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	c := &Catalog{TaxRate: Default().TaxRate}

	if err := loadProducts(ctx, pool, c); err != nil {
		return nil, err
	}
	if err := loadGrades(ctx, pool, c); err != nil {
		return nil, err
	}
	if err := loadCities(ctx, pool, c); err != nil {
		return nil, err
	}
	if err := loadTiers(ctx, pool, c); err != nil {
		return nil, err
	}

	if len(c.Products) == 0 {
		return nil, fmt.Errorf("catalog database has no products")
	}
	return c, nil
}

func loadProducts(ctx context.Context, pool *pgxpool.Pool, c *Catalog) error {
	rows, err := pool.Query(ctx, `
		SELECT key, name, assay_unit, aliases
		FROM products
		ORDER BY key`)
	if err != nil {
		return fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.Key, &p.Name, &p.AssayUnit, &p.Aliases); err != nil {
			return fmt.Errorf("scan product row: %w", err)
		}
		c.Products = append(c.Products, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate product rows: %w", err)
	}

	specs, err := pool.Query(ctx, `
		SELECT product_key, label, base_price_per_kg::text, min_order_kg
		FROM product_specs
		ORDER BY product_key, base_price_per_kg`)
	if err != nil {
		return fmt.Errorf("query product specs: %w", err)
	}
	defer specs.Close()

	for specs.Next() {
		var productKey, label, price string
		var moq int
		if err := specs.Scan(&productKey, &label, &price, &moq); err != nil {
			return fmt.Errorf("scan spec row: %w", err)
		}
		basePrice, err := decimal.NewFromString(price)
		if err != nil {
			return fmt.Errorf("parse base price %q: %w", price, err)
		}
		p, ok := c.Product(productKey)
		if !ok {
			return fmt.Errorf("spec %s references unknown product %q", label, productKey)
		}
		p.Specs = append(p.Specs, Spec{Label: label, BasePrice: basePrice, MinOrderKg: moq})
	}
	return specs.Err()
}

func loadGrades(ctx context.Context, pool *pgxpool.Pool, c *Catalog) error {
	rows, err := pool.Query(ctx, `
		SELECT key, premium_pct, aliases
		FROM grades
		ORDER BY premium_pct DESC`)
	if err != nil {
		return fmt.Errorf("query grades: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g Grade
		if err := rows.Scan(&g.Key, &g.PremiumPct, &g.Aliases); err != nil {
			return fmt.Errorf("scan grade row: %w", err)
		}
		c.Grades = append(c.Grades, g)
	}
	return rows.Err()
}

func loadCities(ctx context.Context, pool *pgxpool.Pool, c *Catalog) error {
	rows, err := pool.Query(ctx, `
		SELECT key, delivery_cost::text, aliases
		FROM cities
		ORDER BY key`)
	if err != nil {
		return fmt.Errorf("query cities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ct City
		var cost string
		if err := rows.Scan(&ct.Key, &cost, &ct.Aliases); err != nil {
			return fmt.Errorf("scan city row: %w", err)
		}
		deliveryCost, err := decimal.NewFromString(cost)
		if err != nil {
			return fmt.Errorf("parse delivery cost %q: %w", cost, err)
		}
		ct.DeliveryCost = deliveryCost
		c.Cities = append(c.Cities, ct)
	}
	return rows.Err()
}

func loadTiers(ctx context.Context, pool *pgxpool.Pool, c *Catalog) error {
	rows, err := pool.Query(ctx, `
		SELECT min_kg, max_kg, discount_pct
		FROM volume_discounts
		ORDER BY min_kg`)
	if err != nil {
		return fmt.Errorf("query volume discounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t DiscountTier
		if err := rows.Scan(&t.MinKg, &t.MaxKg, &t.DiscountPct); err != nil {
			return fmt.Errorf("scan discount row: %w", err)
		}
		c.Tiers = append(c.Tiers, t)
	}
	return rows.Err()
}
