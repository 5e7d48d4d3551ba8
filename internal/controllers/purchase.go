package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sport-inventory/internal/dto"
	"sport-inventory/internal/services"
	apperrors "sport-inventory/pkg/errors"
	"sport-inventory/pkg/utils"
)

type PurchaseController struct {
	purchaseService services.PurchaseServiceInterface
	logger          *zap.Logger
}

func NewPurchaseController(purchaseService services.PurchaseServiceInterface, logger *zap.Logger) *PurchaseController {
	return &PurchaseController{purchaseService: purchaseService, logger: logger}
}

// Summary отдаёт одобренные закупки с общей суммой; ?format=xlsx выгружает их файлом.
func (c *PurchaseController) Summary(ctx echo.Context) error {
	if ctx.QueryParam("format") == "xlsx" {
		return c.export(ctx)
	}
	res, err := c.purchaseService.Summary(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Закупки получены", http.StatusOK)
}

func (c *PurchaseController) export(ctx echo.Context) error {
	fileName := fmt.Sprintf("purchases_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	if err := c.purchaseService.ExportXLSX(ctx.Request().Context(), ctx.Response()); err != nil {
		c.logger.Error("Ошибка выгрузки закупок", zap.Error(err))
		return err
	}
	return nil
}

func (c *PurchaseController) SetBought(ctx echo.Context) error {
	id, err := utils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.SetBoughtDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.purchaseService.SetBought(ctx.Request().Context(), id, *payload.Bought)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Отметка о покупке обновлена", http.StatusOK)
}

func (c *PurchaseController) PriceHistory(ctx echo.Context) error {
	id, err := utils.ParseUUIDParam(ctx, "request_id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.purchaseService.PriceHistory(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "История цен получена", http.StatusOK)
}
