package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCatalog создаёт категории и стартовое оборудование. Уже существующие категории пропускаются.
func SeedCatalog(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Наполнение каталога оборудования...")
	if err := seedCatalog(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения каталога: %v", err)
	}
	log.Println("✅ Каталог оборудования готов")
}

func seedCatalog(ctx context.Context, db *pgxpool.Pool) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	names := make([]string, 0, len(catalogSeed))
	for name := range catalogSeed {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		var existing uuid.UUID
		err := tx.QueryRow(ctx, "SELECT id FROM equipment_categories WHERE name = $1", name).Scan(&existing)
		if err == nil {
			log.Printf("  - Категория %q уже существует. Пропускаем.", name)
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("ошибка проверки категории %q: %w", name, err)
		}

		categoryID := uuid.New()
		if _, err := tx.Exec(ctx, "INSERT INTO equipment_categories (id, name) VALUES ($1, $2)", categoryID, name); err != nil {
			return fmt.Errorf("не удалось создать категорию %q: %w", name, err)
		}

		batch := &pgx.Batch{}
		for _, item := range catalogSeed[name] {
			batch.Queue(
				"INSERT INTO equipment (id, name, quantity, status, category_id) VALUES ($1, $2, $3, $4, $5)",
				uuid.New(), item.Name, item.Quantity, string(item.Status), categoryID,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("не удалось добавить оборудование категории %q: %w", name, err)
		}
		log.Printf("  - Категория %q: добавлено позиций %d", name, len(catalogSeed[name]))
	}

	return tx.Commit(ctx)
}
