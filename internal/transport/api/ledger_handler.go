package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-pay/internal/domain"
)

type LedgerHandler struct {
	ledgerService  LedgerServicer
	accountService AccountServicer
}

func NewLedgerHandler(ledgerService LedgerServicer, accountService AccountServicer) *LedgerHandler {
	return &LedgerHandler{
		ledgerService:  ledgerService,
		accountService: accountService,
	}
}

// Balance GET BalanceRoute. Баланс и имя текущего юзера.
func (h *LedgerHandler) Balance(c *gin.Context) {
	claims := getClaimsFromContext(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, err := h.accountService.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": user.Balance.InexactFloat64(), "name": user.Name})
}

// Transactions GET TransactionsRoute. История текущего юзера, не более 10 записей.
func (h *LedgerHandler) Transactions(c *gin.Context) {
	claims := getClaimsFromContext(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	transactions, err := h.ledgerService.Transactions(ctx, claims.UserID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]TransactionResponse, len(transactions))
	for i, trans := range transactions {
		response[i] = newTransactionResponse(trans)
	}
	c.JSON(http.StatusOK, response)
}

// CashInRequests GET CashInRequestsRoute.
func (h *LedgerHandler) CashInRequests(c *gin.Context) {
	h.cashRequests(c, domain.RequestKindCashIn)
}

// CashOutRequests GET CashOutRequestsRoute.
func (h *LedgerHandler) CashOutRequests(c *gin.Context) {
	h.cashRequests(c, domain.RequestKindCashOut)
}

func (h *LedgerHandler) cashRequests(c *gin.Context, kind domain.RequestKindType) {
	claims := getClaimsFromContext(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	requests, err := h.ledgerService.CashRequests(ctx, kind, claims.UserID, claims.Role)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]CashRequestResponse, len(requests))
	for i, req := range requests {
		response[i] = newCashRequestResponse(req)
	}
	c.JSON(http.StatusOK, response)
}
