package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sport-inventory/internal/dto"
	"sport-inventory/internal/services"
	"sport-inventory/pkg/constants"
	apperrors "sport-inventory/pkg/errors"
	"sport-inventory/pkg/utils"
)

type RequestController struct {
	requestService  services.RequestServiceInterface
	approvalService services.ApprovalServiceInterface
	logger          *zap.Logger
}

func NewRequestController(
	requestService services.RequestServiceInterface,
	approvalService services.ApprovalServiceInterface,
	logger *zap.Logger,
) *RequestController {
	return &RequestController{requestService: requestService, approvalService: approvalService, logger: logger}
}

func (c *RequestController) Create(ctx echo.Context) error {
	session, err := utils.GetSessionFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.CreateRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.requestService.Submit(ctx.Request().Context(), session, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заявка отправлена", http.StatusCreated)
}

func (c *RequestController) ListMine(ctx echo.Context) error {
	session, err := utils.GetSessionFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.requestService.ListMine(ctx.Request().Context(), session)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заявки получены", http.StatusOK)
}

func (c *RequestController) ListAll(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	res, total, err := c.requestService.ListAll(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заявки получены", http.StatusOK, total)
}

func (c *RequestController) UpdateStatus(ctx echo.Context) error {
	id, err := utils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Неверное тело запроса", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.approvalService.Resolve(ctx.Request().Context(), id, constants.RequestStatus(payload.Status))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	message := "Заявка отклонена"
	if res.Status == constants.RequestStatusApproved {
		message = "Заявка одобрена"
	}
	return utils.SuccessResponse(ctx, res, message, http.StatusOK)
}

func (c *RequestController) Marketplaces(ctx echo.Context) error {
	links, err := services.MarketplaceLinks(ctx.QueryParam("name"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, links, "Ссылки сформированы", http.StatusOK)
}
