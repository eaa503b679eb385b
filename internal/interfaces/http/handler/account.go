package handler

import (
	passbookapp "github.com/erp/passbook/internal/application/passbook"
	appdto "github.com/erp/passbook/internal/application/passbook/dto"
	"github.com/erp/passbook/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles ledger account endpoints
type AccountHandler struct {
	BaseHandler
	accountService *passbookapp.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *passbookapp.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// List godoc
// @ID           listLedgerAccounts
// @Summary      List ledger accounts
// @Tags         ledger-accounts
// @Produce      json
// @Param        page       query int    false "Page number" default(1)
// @Param        page_size  query int    false "Page size"   default(20)
// @Param        search     query string false "Name contains"
// @Success      200 {object} dto.Response
// @Router       /ledger-accounts [get]
func (h *AccountHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := req.ToFilter()
	accounts, total, err := h.accountService.ListAccounts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, accounts, total, filter.Page, filter.PageSize)
}

// Create godoc
// @ID           createLedgerAccount
// @Summary      Register a ledger account
// @Tags         ledger-accounts
// @Accept       json
// @Produce      json
// @Param        request body appdto.CreateAccountRequest true "Account"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Router       /ledger-accounts [post]
func (h *AccountHandler) Create(c *gin.Context) {
	var req appdto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, account)
}

// Get godoc
// @ID           getLedgerAccount
// @Summary      Get a ledger account
// @Tags         ledger-accounts
// @Produce      json
// @Param        id path string true "Account ID" format(uuid)
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /ledger-accounts/{id} [get]
func (h *AccountHandler) Get(c *gin.Context) {
	id, ok := accountIDParam(c)
	if !ok {
		h.InvalidAccountID(c)
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, account)
}
