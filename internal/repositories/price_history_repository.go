package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sport-inventory/internal/entities"
)

const priceHistoryTable = "price_history"

type PriceHistoryRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, ph *entities.PriceHistory) error
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]entities.PriceHistory, error)
}

type PriceHistoryRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewPriceHistoryRepository(storage *pgxpool.Pool, logger *zap.Logger) PriceHistoryRepositoryInterface {
	return &PriceHistoryRepository{storage: storage, logger: logger}
}

func (r *PriceHistoryRepository) CreateInTx(ctx context.Context, tx pgx.Tx, ph *entities.PriceHistory) error {
	if ph.ID == uuid.Nil {
		ph.ID = uuid.New()
	}
	b := psql.Insert(priceHistoryTable).
		Columns("id", "request_id", "price", "seller", "recorded_at").
		Values(ph.ID, ph.RequestID, ph.Price, ph.Seller, ph.RecordedAt)
	if _, err := exec(ctx, tx, b); err != nil {
		return fmt.Errorf("не удалось записать историю цен: %w", err)
	}
	return nil
}

func (r *PriceHistoryRepository) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]entities.PriceHistory, error) {
	b := psql.Select("id", "request_id", "price", "seller", "recorded_at").
		From(priceHistoryTable).
		Where("request_id = ?", requestID).
		OrderBy("recorded_at ASC")
	return selectMany[entities.PriceHistory](ctx, r.storage, b)
}
