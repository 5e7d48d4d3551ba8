// Файл: seeders/admin_user_seeder.go
package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin создаёт администратора или повышает существующего пользователя до admin.
func SeedAdmin(db *pgxpool.Pool, email, password string) {
	ctx := context.Background()
	log.Println("▶️  Создание администратора...")
	if err := seedAdmin(ctx, db, strings.ToLower(strings.TrimSpace(email)), password); err != nil {
		log.Fatalf("❌ Ошибка создания администратора: %v", err)
	}
	log.Println("✅ Администратор готов")
}

func seedAdmin(ctx context.Context, db *pgxpool.Pool, email, password string) error {
	if email == "" || len(password) < 6 {
		return fmt.Errorf("нужны email и пароль не короче 6 символов")
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var userID uuid.UUID
	err = tx.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	switch {
	case err == nil:
		log.Println("  - Пользователь уже существует, выдаём роль admin")
	case errors.Is(err, pgx.ErrNoRows):
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("не удалось захешировать пароль: %w", err)
		}
		userID = uuid.New()
		if _, err := tx.Exec(ctx, "INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)", userID, email, string(hash)); err != nil {
			return fmt.Errorf("не удалось создать пользователя: %w", err)
		}
	default:
		return fmt.Errorf("ошибка при проверке существования пользователя: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO profiles (id, role) VALUES ($1, 'admin')
		ON CONFLICT (id) DO UPDATE SET role = 'admin', updated_at = NOW()`, userID)
	if err != nil {
		return fmt.Errorf("не удалось выдать роль admin: %w", err)
	}
	return tx.Commit(ctx)
}
