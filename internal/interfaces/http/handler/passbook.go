package handler

import (
	"context"

	passbookapp "github.com/erp/passbook/internal/application/passbook"
	appdto "github.com/erp/passbook/internal/application/passbook/dto"
	"github.com/erp/passbook/internal/infrastructure/logger"
	"github.com/erp/passbook/internal/interfaces/http/dto"
	"github.com/erp/passbook/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PassbookHandler serves an account's passbook and records the entries behind it
type PassbookHandler struct {
	BaseHandler
	passbookService *passbookapp.PassbookService
	entryService    *passbookapp.EntryService
}

// NewPassbookHandler creates a new PassbookHandler
func NewPassbookHandler(passbookService *passbookapp.PassbookService, entryService *passbookapp.EntryService) *PassbookHandler {
	return &PassbookHandler{
		passbookService: passbookService,
		entryService:    entryService,
	}
}

// accountContext parses :id and scopes the request logger to the account.
// It writes the 400 itself and reports false when the id is malformed.
func (h *PassbookHandler) accountContext(c *gin.Context) (context.Context, uuid.UUID, bool) {
	id, ok := accountIDParam(c)
	if !ok {
		h.InvalidAccountID(c)
		return nil, uuid.Nil, false
	}
	ctx, _ := logger.WithAccountID(c.Request.Context(), logger.GetGinLogger(c), id.String())
	return ctx, id, true
}

// GetPassbook godoc
// @ID           getLedgerPassbook
// @Summary      Get an account passbook
// @Description  Entries newest first with running balance, plus totals over the whole ledger
// @Tags         passbook
// @Produce      json
// @Param        id         path  string true  "Account ID" format(uuid)
// @Param        page       query int    false "Page number" default(1)
// @Param        page_size  query int    false "Page size"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Failure      503 {object} dto.Response
// @Router       /ledger-accounts/{id}/passbook [get]
func (h *PassbookHandler) GetPassbook(c *gin.Context) {
	ctx, id, ok := h.accountContext(c)
	if !ok {
		return
	}

	var query dto.PassbookQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}

	passbook, err := h.passbookService.GetPassbook(ctx, id, query.Page, query.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, passbook, passbook.Total, passbook.Page, passbook.PageSize)
}

// GetSummary godoc
// @ID           getLedgerSummary
// @Summary      Get account totals
// @Tags         passbook
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      503 {object} dto.Response
// @Router       /ledger-accounts/{id}/summary [get]
func (h *PassbookHandler) GetSummary(c *gin.Context) {
	ctx, id, ok := h.accountContext(c)
	if !ok {
		return
	}

	summary, err := h.passbookService.GetSummary(ctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// ListVouchers godoc
// @ID           listLedgerVouchers
// @Summary      List vouchers with reference codes
// @Tags         vouchers
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Success      200 {object} dto.Response
// @Router       /ledger-accounts/{id}/vouchers [get]
func (h *PassbookHandler) ListVouchers(c *gin.Context) {
	ctx, id, ok := h.accountContext(c)
	if !ok {
		return
	}

	vouchers, err := h.passbookService.ListVouchers(ctx, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, vouchers)
}

// RecordVoucher godoc
// @ID           recordLedgerVoucher
// @Summary      Record a payment voucher
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        id              path   string                       true  "Account ID" format(uuid)
// @Param        Idempotency-Key header string                       false "Retry key"
// @Param        request         body   appdto.RecordVoucherRequest  true  "Voucher"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Router       /ledger-accounts/{id}/vouchers [post]
func (h *PassbookHandler) RecordVoucher(c *gin.Context) {
	ctx, id, ok := h.accountContext(c)
	if !ok {
		return
	}

	var req appdto.RecordVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	voucher, err := h.entryService.RecordVoucher(ctx, id, c.GetHeader(middleware.IdempotencyKeyHeader), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, voucher)
}

// RecordChallan godoc
// @ID           recordLedgerChallan
// @Summary      Record a production challan
// @Tags         challans
// @Accept       json
// @Produce      json
// @Param        id      path string                      true "Account ID" format(uuid)
// @Param        request body appdto.RecordChallanRequest true "Challan"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /ledger-accounts/{id}/challans [post]
func (h *PassbookHandler) RecordChallan(c *gin.Context) {
	ctx, id, ok := h.accountContext(c)
	if !ok {
		return
	}

	var req appdto.RecordChallanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	challan, err := h.entryService.RecordChallan(ctx, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, challan)
}
