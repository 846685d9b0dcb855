package http

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"

	fundrouter "github.com/hxuan190/fund-router/internal"
	"github.com/hxuan190/fund-router/internal/common"
	"github.com/hxuan190/fund-router/internal/domain"
	"github.com/hxuan190/fund-router/internal/http/httputil"
	"github.com/hxuan190/fund-router/internal/http/middlewares"
	"github.com/hxuan190/fund-router/internal/ledger"
)

type LedgerHandler struct {
	fundRouterSvc *fundrouter.Service
}

func NewLedgerHandler(fundRouterSvc *fundrouter.Service) *LedgerHandler {
	return &LedgerHandler{fundRouterSvc: fundRouterSvc}
}

func (h *LedgerHandler) Root() string {
	return "/ledger"
}

func (h *LedgerHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.POST("/initialize", h.initialize)
	pub.POST("/deposit", h.deposit)
	pub.POST("/withdraw", h.withdraw)
	pub.GET("/config", h.getConfiguration)
	pub.GET("/epoch-state", h.getEpochState)
	pub.GET("/balance", h.getBalance)

	admin.POST("/send-to-wallet", h.sendToWallet)
	admin.POST("/owner", h.setOwner)
	admin.POST("/split", h.changeSplit)
	admin.POST("/destination", h.setDestination)
	admin.POST("/denom", h.changeDenom)
}

// toHTTPError maps ledger failures onto transport errors.
func toHTTPError(err error) *common.HttpError {
	switch {
	case errors.Is(err, fundrouter.ErrUnauthorized):
		return common.HTTPErrorUnauthorized(err.Error())
	case errors.Is(err, fundrouter.ErrNotInitialized):
		return common.HTTPErrorNotFound(err.Error())
	case errors.Is(err, fundrouter.ErrAlreadyInitialized):
		return common.HTTPErrorResourceConflict(err.Error())
	case errors.Is(err, fundrouter.ErrInvalidPortions),
		errors.Is(err, fundrouter.ErrInsufficientFunds),
		errors.Is(err, fundrouter.ErrInvalidAddress),
		errors.Is(err, fundrouter.ErrInvalidRatio),
		errors.Is(err, fundrouter.ErrInvalidDenom),
		errors.Is(err, fundrouter.ErrOverflow):
		return common.HTTPErrorBadRequest(err.Error())
	case errors.Is(err, fundrouter.ErrQueryUnavailable):
		return common.HTTPErrorServiceUnavailable(err.Error())
	default:
		return common.HTTPErrorInternalError("")
	}
}

func (h *LedgerHandler) execute(c *gin.Context, funds []domain.Coin, req ledger.Request) {
	call := ledger.Call{Caller: middlewares.Caller(c), Funds: funds}
	res, err := h.fundRouterSvc.Execute(c.Request.Context(), call, req)
	if err != nil {
		httpErr := toHTTPError(err)
		if httpErr.StatusCode >= 500 {
			log.Error().Err(err).Str("requestId", middlewares.RequestID(c)).Str("action", req.Action()).Msg("[ledgerHandler] invocation failed")
		}
		httputil.HandleError(c, httpErr)
		return
	}
	httputil.Success(c, toExecuteResponse(res))
}

// @Summary Initialize the ledger
// @Description Creates the configuration record. Fails if one already exists.
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body InitializeRequest true "Initial configuration"
// @Success 200 {object} httputil.Response{data=ExecuteResponse}
// @Failure 400 {object} httputil.Response
// @Failure 409 {object} httputil.Response
// @Router /api/v1/ledger/initialize [post]
func (h *LedgerHandler) initialize(c *gin.Context) {
	var req InitializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	initReq := ledger.Initialize{
		Owner:        req.Owner,
		Denom:        req.Denom,
		DestinationA: req.DestinationA,
		DestinationB: req.DestinationB,
		WrappedAsset: req.WrappedAsset,
	}
	if req.RatioA != nil {
		ratio, err := domain.ParseRatio(*req.RatioA)
		if err != nil {
			httputil.BadRequest(c, err.Error())
			return
		}
		initReq.RatioA = &ratio
	}
	if req.RatioB != nil {
		ratio, err := domain.ParseRatio(*req.RatioB)
		if err != nil {
			httputil.BadRequest(c, err.Error())
			return
		}
		initReq.RatioB = &ratio
	}

	h.execute(c, nil, initReq)
}

// @Summary Deposit funds
// @Description Splits the attached funds of the tracked denomination between destination A and destination B.
// @Description Funds of other denominations are ignored. Rounding dust stays with the ledger and is reported in split.remainder.
// @Tags ledger
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string false "Depositor identity"
// @Param request body DepositRequest true "Attached funds"
// @Success 200 {object} httputil.Response{data=ExecuteResponse}
// @Failure 400 {object} httputil.Response
// @Failure 404 {object} httputil.Response
// @Router /api/v1/ledger/deposit [post]
func (h *LedgerHandler) deposit(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	funds, err := parseCoins(req.Funds)
	if err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	h.execute(c, funds, ledger.Deposit{})
}

// @Summary Withdraw from destination A
// @Description Redeems the given amount of the wrapped asset, crediting the ledger itself.
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body AmountRequest true "Wrapped asset amount"
// @Success 200 {object} httputil.Response{data=ExecuteResponse}
// @Failure 400 {object} httputil.Response
// @Failure 404 {object} httputil.Response
// @Router /api/v1/ledger/withdraw [post]
func (h *LedgerHandler) withdraw(c *gin.Context) {
	amount, ok := bindAmount(c)
	if !ok {
		return
	}
	h.execute(c, nil, ledger.Withdraw{Amount: amount})
}

// @Summary Send funds to the owner
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "Owner identity"
// @Param request body AmountRequest true "Amount of the tracked denomination"
// @Success 200 {object} httputil.Response{data=ExecuteResponse}
// @Failure 401 {object} httputil.Response
// @Router /api/v1/admin/ledger/send-to-wallet [post]
func (h *LedgerHandler) sendToWallet(c *gin.Context) {
	amount, ok := bindAmount(c)
	if !ok {
		return
	}
	h.execute(c, nil, ledger.SendToWallet{Amount: amount})
}

// @Summary Transfer ownership
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "Owner identity"
// @Param request body SetOwnerRequest true "New owner"
// @Success 200 {object} httputil.Response{data=ExecuteResponse}
// @Failure 401 {object} httputil.Response
// @Router /api/v1/admin/ledger/owner [post]
func (h *LedgerHandler) setOwner(c *gin.Context) {
	var req SetOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	h.execute(c, nil, ledger.SetOwner{Address: req.Address})
}

// @Summary Change the split portions
// @Description Both portions must sum to exactly 1.
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "Owner identity"
// @Param request body ChangeSplitRequest true "New portions"
// @Success 200 {object} httputil.Response{data=ExecuteResponse}
// @Failure 400 {object} httputil.Response
// @Failure 401 {object} httputil.Response
// @Router /api/v1/admin/ledger/split [post]
func (h *LedgerHandler) changeSplit(c *gin.Context) {
	var req ChangeSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ratioA, err := domain.ParseRatio(req.RatioA)
	if err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	ratioB, err := domain.ParseRatio(req.RatioB)
	if err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	h.execute(c, nil, ledger.ChangeSplit{RatioA: ratioA, RatioB: ratioB})
}

// @Summary Repoint a destination
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "Owner identity"
// @Param request body SetDestinationRequest true "Slot and address"
// @Success 200 {object} httputil.Response{data=ExecuteResponse}
// @Failure 400 {object} httputil.Response
// @Failure 401 {object} httputil.Response
// @Router /api/v1/admin/ledger/destination [post]
func (h *LedgerHandler) setDestination(c *gin.Context) {
	var req SetDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	slot, err := domain.ParseSlot(req.Slot)
	if err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	h.execute(c, nil, ledger.SetDestination{Slot: slot, Address: req.Address})
}

// @Summary Change the tracked denomination
// @Tags admin
// @Accept json
// @Produce json
// @Param X-Wallet-Address header string true "Owner identity"
// @Param request body ChangeDenomRequest true "New denomination"
// @Success 200 {object} httputil.Response{data=ExecuteResponse}
// @Failure 400 {object} httputil.Response
// @Failure 401 {object} httputil.Response
// @Router /api/v1/admin/ledger/denom [post]
func (h *LedgerHandler) changeDenom(c *gin.Context) {
	var req ChangeDenomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	h.execute(c, nil, ledger.ChangeDenom{Denom: req.Denom})
}

// @Summary Get the configuration
// @Tags ledger
// @Produce json
// @Success 200 {object} httputil.Response{data=ConfigurationResponse}
// @Failure 404 {object} httputil.Response
// @Router /api/v1/ledger/config [get]
func (h *LedgerHandler) getConfiguration(c *gin.Context) {
	cfg, err := h.fundRouterSvc.Configuration(c.Request.Context())
	if err != nil {
		httputil.HandleError(c, toHTTPError(err))
		return
	}
	httputil.Success(c, toConfigurationResponse(cfg))
}

// @Summary Get destination A epoch state
// @Tags ledger
// @Produce json
// @Success 200 {object} httputil.Response{data=EpochStateResponse}
// @Failure 404 {object} httputil.Response
// @Failure 503 {object} httputil.Response
// @Router /api/v1/ledger/epoch-state [get]
func (h *LedgerHandler) getEpochState(c *gin.Context) {
	state, err := h.fundRouterSvc.EpochState(c.Request.Context())
	if err != nil {
		httputil.HandleError(c, toHTTPError(err))
		return
	}
	httputil.Success(c, &EpochStateResponse{
		ExchangeRate:  state.ExchangeRate.String(),
		WrappedSupply: state.WrappedSupply.Dec(),
	})
}

// @Summary Get the ledger's wrapped asset balance
// @Tags ledger
// @Produce json
// @Success 200 {object} httputil.Response{data=BalanceResponse}
// @Failure 400 {object} httputil.Response
// @Failure 404 {object} httputil.Response
// @Failure 503 {object} httputil.Response
// @Router /api/v1/ledger/balance [get]
func (h *LedgerHandler) getBalance(c *gin.Context) {
	ctx := c.Request.Context()
	amount, err := h.fundRouterSvc.Balance(ctx)
	if err != nil {
		httputil.HandleError(c, toHTTPError(err))
		return
	}

	cfg, err := h.fundRouterSvc.Configuration(ctx)
	if err != nil {
		httputil.HandleError(c, toHTTPError(err))
		return
	}

	httputil.Success(c, &BalanceResponse{
		Asset:  cfg.WrappedAsset,
		Holder: h.fundRouterSvc.Self(),
		Amount: amount.Dec(),
	})
}

func bindAmount(c *gin.Context) (*uint256.Int, bool) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body: "+err.Error())
		return nil, false
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		httputil.BadRequest(c, err.Error())
		return nil, false
	}
	return amount, true
}
