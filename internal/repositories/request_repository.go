package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sport-inventory/internal/entities"
	"sport-inventory/pkg/constants"
	"sport-inventory/pkg/types"
)

const requestsTable = "requests"

var (
	requestColumns = []string{
		"r.id", "r.type", "r.name", "r.description", "r.quantity", "r.category_id", "r.equipment_id",
		"r.status", "r.user_id", "r.best_price", "r.seller", "r.purchase_url", "r.bought",
		"r.created_at", "r.updated_at",
	}
	requestReturning = "RETURNING id, type, name, description, quantity, category_id, equipment_id, " +
		"status, user_id, best_price, seller, purchase_url, bought, created_at, updated_at"
	requestAllowedFilter = map[string]string{"status": "r.status", "type": "r.type", "user_id": "r.user_id"}
	requestAllowedSort   = map[string]string{"created_at": "r.created_at", "updated_at": "r.updated_at", "name": "r.name"}
	resolvedStatuses     = []constants.RequestStatus{constants.RequestStatusApproved, constants.RequestStatusRejected}
)

type RequestRepositoryInterface interface {
	Create(ctx context.Context, req *entities.Request) (*entities.Request, error)
	List(ctx context.Context, filter types.Filter) ([]entities.RequestDetails, uint64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.RequestDetails, error)
	Find(ctx context.Context, id uuid.UUID) (*entities.Request, error)
	FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Request, error)
	// ResolveInTx переводит заявку из pending в status; false, если заявка уже не в pending.
	ResolveInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status constants.RequestStatus, at time.Time) (bool, error)
	ClearCategoryInTx(ctx context.Context, tx pgx.Tx, categoryID uuid.UUID) (int64, error)
	DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	ListResolvedSince(ctx context.Context, since time.Time) ([]entities.Request, error)
	ListApprovedPurchases(ctx context.Context, limit uint64) ([]entities.RequestDetails, error)
	SetBought(ctx context.Context, id uuid.UUID, bought bool) (*entities.Request, error)
}

type RequestRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) RequestRepositoryInterface {
	return &RequestRepository{storage: storage, logger: logger}
}

func (r *RequestRepository) detailsSelect() sq.SelectBuilder {
	columns := make([]string, 0, len(requestColumns)+3)
	columns = append(columns, requestColumns...)
	columns = append(columns, "c.name AS category_name", "e.name AS equipment_name", "e.quantity AS equipment_quantity")
	return psql.Select(columns...).
		From(requestsTable + " r").
		LeftJoin(categoriesTable + " c ON c.id = r.category_id").
		LeftJoin(equipmentTable + " e ON e.id = r.equipment_id")
}

func (r *RequestRepository) Create(ctx context.Context, req *entities.Request) (*entities.Request, error) {
	now := time.Now()
	b := psql.Insert(requestsTable).
		Columns("id", "type", "name", "description", "quantity", "category_id", "equipment_id",
			"status", "user_id", "best_price", "seller", "purchase_url", "bought", "created_at", "updated_at").
		Values(req.ID, req.Type, req.Name, req.Description, req.Quantity, req.CategoryID, req.EquipmentID,
			req.Status, req.UserID, req.BestPrice, req.Seller, req.PurchaseURL, req.Bought, now, now).
		Suffix(requestReturning)
	created, err := selectOne[entities.Request](ctx, r.storage, b)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать заявку: %w", err)
	}
	return created, nil
}

func applyRequestFilter(b sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	if filter.Search != "" {
		b = b.Where(sq.ILike{"r.name": searchPattern(filter.Search)})
	}
	for key, value := range filter.Filter {
		if column, ok := requestAllowedFilter[key]; ok {
			b = b.Where(sq.Eq{column: value})
		}
	}
	return b
}

func (r *RequestRepository) List(ctx context.Context, filter types.Filter) ([]entities.RequestDetails, uint64, error) {
	total, err := count(ctx, r.storage, applyRequestFilter(psql.Select("COUNT(*)").From(requestsTable+" r"), filter))
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.RequestDetails{}, 0, nil
	}

	b := applySort(applyRequestFilter(r.detailsSelect(), filter), filter, requestAllowedSort, "r.created_at DESC")
	items, err := selectMany[entities.RequestDetails](ctx, r.storage, applyPagination(b, filter))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *RequestRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.RequestDetails, error) {
	b := r.detailsSelect().Where("r.user_id = ?", userID).OrderBy("r.created_at DESC")
	return selectMany[entities.RequestDetails](ctx, r.storage, b)
}

func (r *RequestRepository) Find(ctx context.Context, id uuid.UUID) (*entities.Request, error) {
	b := psql.Select(requestColumns...).From(requestsTable + " r").Where("r.id = ?", id)
	return selectOne[entities.Request](ctx, r.storage, b)
}

func (r *RequestRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Request, error) {
	b := psql.Select(requestColumns...).From(requestsTable + " r").Where("r.id = ?", id).Suffix("FOR UPDATE")
	return selectOne[entities.Request](ctx, tx, b)
}

func (r *RequestRepository) ResolveInTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status constants.RequestStatus, at time.Time) (bool, error) {
	b := psql.Update(requestsTable).
		Set("status", status).
		Set("updated_at", at).
		Where(sq.Eq{"id": id, "status": constants.RequestStatusPending})
	affected, err := exec(ctx, tx, b)
	if err != nil {
		return false, fmt.Errorf("не удалось обновить статус заявки: %w", err)
	}
	return affected == 1, nil
}

func (r *RequestRepository) ClearCategoryInTx(ctx context.Context, tx pgx.Tx, categoryID uuid.UUID) (int64, error) {
	return exec(ctx, tx, psql.Update(requestsTable).
		Set("category_id", nil).
		Where("category_id = ?", categoryID))
}

// DeleteResolvedBefore удаляет обработанные заявки, изменённые не позже cutoff.
// Заявки в pending не удаляются никогда.
func (r *RequestRepository) DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	b := psql.Delete(requestsTable).
		Where(sq.Eq{"status": resolvedStatuses}).
		Where(sq.LtOrEq{"updated_at": cutoff})
	affected, err := exec(ctx, r.storage, b)
	if err != nil {
		return 0, fmt.Errorf("не удалось удалить обработанные заявки: %w", err)
	}
	return affected, nil
}

func (r *RequestRepository) ListResolvedSince(ctx context.Context, since time.Time) ([]entities.Request, error) {
	b := psql.Select(requestColumns...).
		From(requestsTable + " r").
		Where(sq.Eq{"r.status": resolvedStatuses}).
		Where(sq.Gt{"r.updated_at": since}).
		OrderBy("r.updated_at ASC")
	return selectMany[entities.Request](ctx, r.storage, b)
}

// ListApprovedPurchases возвращает одобренные закупки, новые сверху; при limit 0 без ограничения.
func (r *RequestRepository) ListApprovedPurchases(ctx context.Context, limit uint64) ([]entities.RequestDetails, error) {
	b := r.detailsSelect().
		Where(sq.Eq{"r.type": constants.RequestTypePurchase, "r.status": constants.RequestStatusApproved}).
		OrderBy("r.created_at DESC")
	if limit > 0 {
		b = b.Limit(limit)
	}
	return selectMany[entities.RequestDetails](ctx, r.storage, b)
}

func (r *RequestRepository) SetBought(ctx context.Context, id uuid.UUID, bought bool) (*entities.Request, error) {
	b := psql.Update(requestsTable).
		Set("bought", bought).
		Where(sq.Eq{"id": id, "type": constants.RequestTypePurchase}).
		Suffix(requestReturning)
	return selectOne[entities.Request](ctx, r.storage, b)
}
