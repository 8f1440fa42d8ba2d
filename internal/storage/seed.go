package storage

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/kahvecikaan/salona-bot/internal/config"
	"github.com/kahvecikaan/salona-bot/internal/domain"
	"math/rand"
)

const (
	minSeedPrice = 2_000_000
	maxSeedPrice = 80_000_000
)

var seedNames = []string{
	"گوشی سامسونگ", "گوشی شیائومی", "گوشی اپل", "تبلت لنوو", "لپ‌تاپ ایسوس",
	"لپ‌تاپ لنوو", "تلویزیون ال‌جی", "تلویزیون سونی", "هدفون بی‌سیم", "ساعت هوشمند",
	"پاوربانک", "اسپیکر بلوتوثی", "کیبورد مکانیکی", "موس بی‌سیم", "هارد اکسترنال",
	"کارت حافظه", "دوربین دیجیتال", "مانیتور گیمینگ", "مودم همراه", "پروژکتور",
}

var seedDescriptions = []string{
	"دارای باتری قوی و صفحه‌نمایش AMOLED",
	"پشتیبانی از شارژ سریع ۶۵ وات",
	"حافظه داخلی بالا و دوربین باکیفیت",
	"مناسب برای کارهای روزمره و بازی‌های سبک",
	"دارای پردازنده پرقدرت و بدنه فلزی",
	"کیفیت صدای عالی و طراحی مدرن",
	"نمایشگر با رزولوشن بالا و رنگ‌های زنده",
	"سبک و قابل حمل با عمر باتری طولانی",
	"دارای گارانتی رسمی و خدمات پس از فروش",
}

// RandomProducts returns n products built from the sample names and descriptions
func RandomProducts(n int, rng *rand.Rand) []*domain.Product {
	products := make([]*domain.Product, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, &domain.Product{
			Name:        fmt.Sprintf("%s مدل %d", seedNames[rng.Intn(len(seedNames))], 100+rng.Intn(900)),
			Description: seedDescriptions[rng.Intn(len(seedDescriptions))],
			Price:       minSeedPrice + rng.Int63n(maxSeedPrice-minSeedPrice+1),
		})
	}
	return products
}

// Seed inserts products in a single transaction and sets their IDs
func Seed(ctx context.Context, db *sql.DB, driver string, products []*domain.Product) error {
	query := "INSERT INTO products (name, description, price) VALUES (?, ?, ?)"
	if driver == config.DriverPostgres {
		query = "INSERT INTO products (name, description, price) VALUES ($1, $2, $3) RETURNING id"
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		if driver == config.DriverPostgres {
			if err := stmt.QueryRowContext(ctx, p.Name, p.Description, p.Price).Scan(&p.ID); err != nil {
				return fmt.Errorf("insert %q: %w", p.Name, err)
			}
			continue
		}

		res, err := stmt.ExecContext(ctx, p.Name, p.Description, p.Price)
		if err != nil {
			return fmt.Errorf("insert %q: %w", p.Name, err)
		}
		if p.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("insert %q: %w", p.Name, err)
		}
	}

	return tx.Commit()
}
