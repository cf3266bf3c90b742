// Command seed wipes the sales history and repopulates the database with
// synthetic demo data. It is an out-of-band utility, not part of the running
// application, and refuses to run when the database file does not exist yet.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/Adriel-M-A/desktop-sales-control/internal/platform/db"
)

type seedProduct struct {
	Code  string
	Name  string
	Price float64
}

var products = []seedProduct{
	{"PROD001", "Café Espresso", 1500},
	{"PROD002", "Café con Leche", 1800},
	{"PROD003", "Medialuna de Manteca", 600},
	{"PROD004", "Tostado Jamón y Queso", 3500},
	{"PROD005", "Jugo de Naranja", 2000},
	{"PROD006", "Agua Mineral", 1200},
	{"PROD007", "Gaseosa Cola", 1500},
	{"PROD008", "Alfajor de Chocolate", 1000},
	{"PROD009", "Brownie con Nuez", 2200},
	{"PROD010", "Té Clásico", 1200},
}

var paymentMethods = []string{"Efectivo", "Tarjeta", "Transferencia"}

func main() {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("resolve working directory: %v", err)
	}
	dbPath := flag.String("db", filepath.Join(wd, "sales-system.db"), "database file")
	saleCount := flag.Int("sales", 1000, "number of synthetic sales to generate")
	year := flag.Int("year", 2025, "calendar year the sales are spread across")
	flag.Parse()

	if _, err := os.Stat(*dbPath); err != nil {
		log.Fatalf("database file not found at %s, run the app first to create it", *dbPath)
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer conn.Close()

	if err := db.Init(ctx, conn); err != nil {
		log.Fatalf("init schema: %v", err)
	}

	if err := seed(ctx, conn, *saleCount, *year); err != nil {
		log.Fatalf("seed: %v", err)
	}

	fmt.Printf("seeded %d products and %d sales for %d\n", len(products), *saleCount, *year)
}

func seed(ctx context.Context, conn *sql.DB, saleCount, year int) error {
	return db.WithTx(ctx, conn, func(tx *sql.Tx) error {
		fmt.Println("→ Clearing sales history...")
		for _, stmt := range []string{
			`DELETE FROM sale_items`,
			`DELETE FROM sales`,
			`DELETE FROM sqlite_sequence WHERE name = 'sales' OR name = 'sale_items'`,
		} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
		}

		fmt.Println("→ Upserting products...")
		for _, p := range products {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO products (code, name, price, created_at)
				VALUES (?, ?, ?, datetime('now','localtime'))
				ON CONFLICT(code) DO UPDATE SET price = excluded.price`,
				p.Code, p.Name, p.Price)
			if err != nil {
				return fmt.Errorf("upsert product %s: %w", p.Code, err)
			}
		}

		rows, err := tx.QueryContext(ctx, `SELECT id, name, price FROM products WHERE is_active = 1`)
		if err != nil {
			return fmt.Errorf("load products: %w", err)
		}
		type catalogRow struct {
			id    int64
			name  string
			price float64
		}
		var catalog []catalogRow
		for rows.Next() {
			var row catalogRow
			if err := rows.Scan(&row.id, &row.name, &row.price); err != nil {
				rows.Close()
				return fmt.Errorf("scan product: %w", err)
			}
			catalog = append(catalog, row)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		fmt.Printf("→ Generating %d sales...\n", saleCount)
		for i := 0; i < saleCount; i++ {
			createdAt := randomBusinessTime(year)

			itemCount := rand.Intn(4) + 1
			var total float64
			type line struct {
				product  catalogRow
				quantity int64
			}
			lines := make([]line, 0, itemCount)
			for j := 0; j < itemCount; j++ {
				p := catalog[rand.Intn(len(catalog))]
				qty := int64(rand.Intn(3) + 1)
				total += p.price * float64(qty)
				lines = append(lines, line{product: p, quantity: qty})
			}

			method := paymentMethods[rand.Intn(len(paymentMethods))]
			result, err := tx.ExecContext(ctx, `
				INSERT INTO sales (total_amount, payment_method, created_at)
				VALUES (?, ?, ?)`,
				total, method, createdAt)
			if err != nil {
				return fmt.Errorf("insert sale: %w", err)
			}
			saleID, err := result.LastInsertId()
			if err != nil {
				return fmt.Errorf("sale id: %w", err)
			}

			for _, l := range lines {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO sale_items (sale_id, product_id, product_name, quantity, unit_price, subtotal)
					VALUES (?, ?, ?, ?, ?, ?)`,
					saleID, l.product.id, l.product.name, l.quantity, l.product.price,
					l.product.price*float64(l.quantity))
				if err != nil {
					return fmt.Errorf("insert sale item: %w", err)
				}
			}

			if i%100 == 0 {
				fmt.Print(".")
			}
		}
		fmt.Println()
		return nil
	})
}

// randomBusinessTime picks a moment inside the given year during shop hours
// (08:00 to 21:59), formatted the way the application stores timestamps.
func randomBusinessTime(year int) string {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local)
	t := start.Add(time.Duration(rand.Int63n(int64(end.Sub(start)))))
	t = time.Date(t.Year(), t.Month(), t.Day(),
		8+rand.Intn(14), rand.Intn(60), rand.Intn(60), 0, time.Local)
	return t.Format("2006-01-02 15:04:05")
}
