package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"sport-inventory/internal/dto"
	"sport-inventory/internal/entities"
	"sport-inventory/internal/repositories"
	"sport-inventory/pkg/constants"
	apperrors "sport-inventory/pkg/errors"
)

type PurchaseServiceInterface interface {
	Summary(ctx context.Context) (*dto.PurchaseSummaryDTO, error)
	SetBought(ctx context.Context, id uuid.UUID, bought bool) (*entities.Request, error)
	ExportXLSX(ctx context.Context, w io.Writer) error
	PriceHistory(ctx context.Context, requestID uuid.UUID) ([]entities.PriceHistory, error)
}

type PurchaseService struct {
	requestRepo      repositories.RequestRepositoryInterface
	priceHistoryRepo repositories.PriceHistoryRepositoryInterface
	views            *ViewCache
	logger           *zap.Logger
}

func NewPurchaseService(
	requestRepo repositories.RequestRepositoryInterface,
	priceHistoryRepo repositories.PriceHistoryRepositoryInterface,
	views *ViewCache,
	logger *zap.Logger,
) PurchaseServiceInterface {
	return &PurchaseService{requestRepo: requestRepo, priceHistoryRepo: priceHistoryRepo, views: views, logger: logger}
}

func (s *PurchaseService) Summary(ctx context.Context) (*dto.PurchaseSummaryDTO, error) {
	var cached dto.PurchaseSummaryDTO
	if s.views.Load(ctx, constants.CacheKeyApprovedPurchase, &cached) {
		return &cached, nil
	}
	purchases, err := s.requestRepo.ListApprovedPurchases(ctx, 0)
	if err != nil {
		return nil, err
	}
	summary := &dto.PurchaseSummaryDTO{
		Purchases: purchases,
		TotalCost: TotalCost(purchases),
		Chart:     PurchaseChart(purchases),
	}
	s.views.Store(ctx, constants.CacheKeyApprovedPurchase, summary)
	return summary, nil
}

// TotalCost: сумма цена × количество по всем закупкам; без количества считается 1.
func TotalCost(purchases []entities.RequestDetails) float64 {
	var total float64
	for i := range purchases {
		total += purchases[i].LineTotal()
	}
	return total
}

func PurchaseChart(purchases []entities.RequestDetails) []dto.PurchaseChartRowDTO {
	rows := make([]dto.PurchaseChartRowDTO, 0, len(purchases))
	for i := range purchases {
		p := &purchases[i]
		quantity := 1
		if p.Quantity.Valid && p.Quantity.Int > 0 {
			quantity = p.Quantity.Int
		}
		rows = append(rows, dto.PurchaseChartRowDTO{
			Name:      p.Name,
			Total:     p.LineTotal(),
			UnitPrice: p.BestPrice.Float64,
			Quantity:  quantity,
		})
	}
	return rows
}

// SetBought меняет отметку о покупке; статус заявки при этом не меняется.
func (s *PurchaseService) SetBought(ctx context.Context, id uuid.UUID, bought bool) (*entities.Request, error) {
	req, err := s.requestRepo.SetBought(ctx, id, bought)
	if err != nil {
		return nil, err
	}
	s.views.Invalidate(ctx)
	return req, nil
}

func (s *PurchaseService) PriceHistory(ctx context.Context, requestID uuid.UUID) ([]entities.PriceHistory, error) {
	return s.priceHistoryRepo.ListByRequest(ctx, requestID)
}

var purchaseHeaders = []interface{}{"Название", "Категория", "Продавец", "Цена за единицу", "Количество", "Сумма", "Куплено", "Ссылка"}

func (s *PurchaseService) ExportXLSX(ctx context.Context, w io.Writer) error {
	purchases, err := s.requestRepo.ListApprovedPurchases(ctx, 0)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Закупки"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &purchaseHeaders); err != nil {
		return err
	}
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellStyle(sheet, "A1", "H1", style)

	chart := PurchaseChart(purchases)
	for i, p := range purchases {
		bought := "Нет"
		if p.Bought {
			bought = "Да"
		}
		row := []interface{}{
			p.Name, p.CategoryName.String, p.Seller.String, chart[i].UnitPrice,
			chart[i].Quantity, chart[i].Total, bought, p.PurchaseURL.String,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	totalCell, _ := excelize.CoordinatesToCellName(5, len(purchases)+2)
	_ = f.SetSheetRow(sheet, totalCell, &[]interface{}{"Итого", TotalCost(purchases)})
	_ = f.SetColWidth(sheet, "A", "C", 25)
	_ = f.SetColWidth(sheet, "H", "H", 50)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("не удалось сформировать xlsx: %w", err)
	}
	return nil
}

// MarketplaceLinks возвращает ссылки поиска товара на четырёх площадках.
func MarketplaceLinks(query string) ([]dto.MarketplaceLinkDTO, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewInvalidInputError("Укажите название товара")
	}
	q := strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
	return []dto.MarketplaceLinkDTO{
		{Name: constants.MarketplaceYandex, URL: "https://market.yandex.ru/search?text=" + q},
		{Name: constants.MarketplaceOzon, URL: "https://www.ozon.ru/search/?text=" + q},
		{Name: constants.MarketplaceWildberries, URL: "https://www.wildberries.ru/catalog/0/search.aspx?search=" + q},
		{Name: constants.MarketplaceAvito, URL: "https://www.avito.ru/all?q=" + q},
	}, nil
}
