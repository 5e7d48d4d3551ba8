package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"sport-inventory/internal/entities"
	"sport-inventory/internal/testutil/repomock"
	"sport-inventory/pkg/constants"
	apperrors "sport-inventory/pkg/errors"
)

func purchase(name string, price float64, quantity null.Int) entities.RequestDetails {
	return entities.RequestDetails{Request: entities.Request{
		ID:        uuid.New(),
		Type:      constants.RequestTypePurchase,
		Name:      name,
		Status:    constants.RequestStatusApproved,
		BestPrice: null.Float64From(price),
		Seller:    null.StringFrom("Ozon"),
		Quantity:  quantity,
	}}
}

func TestTotalCost(t *testing.T) {
	purchases := []entities.RequestDetails{
		purchase("Мяч", 1000, null.IntFrom(2)),
		purchase("Сетка", 500, null.IntFrom(1)),
	}
	assert.Equal(t, 2500.0, TotalCost(purchases))

	purchases = append(purchases, purchase("Свисток", 300, null.Int{}))
	assert.Equal(t, 2800.0, TotalCost(purchases))
	assert.Zero(t, TotalCost(nil))
}

func TestPurchaseChart(t *testing.T) {
	chart := PurchaseChart([]entities.RequestDetails{
		purchase("Мяч", 1000, null.IntFrom(2)),
		purchase("Свисток", 300, null.Int{}),
	})

	require.Len(t, chart, 2)
	assert.Equal(t, "Мяч", chart[0].Name)
	assert.Equal(t, 2000.0, chart[0].Total)
	assert.Equal(t, 1000.0, chart[0].UnitPrice)
	assert.Equal(t, 2, chart[0].Quantity)
	assert.Equal(t, 1, chart[1].Quantity)
	assert.Equal(t, 300.0, chart[1].Total)
}

func TestMarketplaceLinks(t *testing.T) {
	links, err := MarketplaceLinks("  мяч для футбола ")
	require.NoError(t, err)
	require.Len(t, links, 4)

	q := "%D0%BC%D1%8F%D1%87%20%D0%B4%D0%BB%D1%8F%20%D1%84%D1%83%D1%82%D0%B1%D0%BE%D0%BB%D0%B0"
	assert.Equal(t, constants.MarketplaceYandex, links[0].Name)
	assert.Equal(t, "https://market.yandex.ru/search?text="+q, links[0].URL)
	assert.Equal(t, "https://www.ozon.ru/search/?text="+q, links[1].URL)
	assert.Equal(t, "https://www.wildberries.ru/catalog/0/search.aspx?search="+q, links[2].URL)
	assert.Equal(t, "https://www.avito.ru/all?q="+q, links[3].URL)

	_, err = MarketplaceLinks("   ")
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestPurchaseService_SummaryIsCachedUntilBoughtChanges(t *testing.T) {
	calls := 0
	requests := &repomock.RequestRepo{
		ListApprovedPurchasesFn: func(ctx context.Context, limit uint64) ([]entities.RequestDetails, error) {
			calls++
			return []entities.RequestDetails{purchase("Мяч", 1000, null.IntFrom(2))}, nil
		},
		SetBoughtFn: func(ctx context.Context, id uuid.UUID, bought bool) (*entities.Request, error) {
			return &entities.Request{ID: id, Bought: bought}, nil
		},
	}
	views, _ := newTestViews()
	service := NewPurchaseService(requests, &repomock.PriceHistoryRepo{}, views, zap.NewNop())
	ctx := context.Background()

	first, err := service.Summary(ctx)
	require.NoError(t, err)
	second, err := service.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2000.0, first.TotalCost)
	assert.Equal(t, first.TotalCost, second.TotalCost)

	_, err = service.SetBought(ctx, uuid.New(), true)
	require.NoError(t, err)
	_, err = service.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestPurchaseService_ExportXLSX(t *testing.T) {
	row := purchase("Мяч", 1000, null.IntFrom(2))
	row.Bought = true
	row.CategoryName = null.StringFrom("Мячи")
	requests := &repomock.RequestRepo{
		ListApprovedPurchasesFn: func(ctx context.Context, limit uint64) ([]entities.RequestDetails, error) {
			return []entities.RequestDetails{row}, nil
		},
	}
	views, _ := newTestViews()
	service := NewPurchaseService(requests, &repomock.PriceHistoryRepo{}, views, zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, service.ExportXLSX(context.Background(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Закупки")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Название", rows[0][0])
	assert.Equal(t, "Мяч", rows[1][0])
	assert.Equal(t, "Мячи", rows[1][1])
	assert.Equal(t, "Да", rows[1][6])
	assert.Equal(t, "Итого", rows[2][4])
	assert.Equal(t, "2000", rows[2][5])
}
