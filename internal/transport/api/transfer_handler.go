package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/service"
)

type TransferHandler struct {
	transferService TransferServicer
}

func NewTransferHandler(transferService TransferServicer) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
	}
}

type SendParams struct {
	RecipientMobile string  `binding:"required,msisdn" json:"recipientMobile"`
	Amount          float64 `binding:"required,gt=0"   json:"amount"`
	Pin             string  `binding:"required"        json:"pin"`
}

// Send POST SendRoute (только роль user). Одношаговый перевод юзер-юзер.
func (h *TransferHandler) Send(c *gin.Context) {
	claims := getClaimsFromContext(c)

	var params SendParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	_, err := h.transferService.Send(ctx, service.SendArgs{
		SenderID:        claims.UserID,
		RecipientMobile: params.RecipientMobile,
		Amount:          decimalFromFloat(params.Amount),
		Pin:             params.Pin,
	})
	if err != nil {
		h.abortWithTransferError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction successful"})
}

type CashRequestParams struct {
	AgentMobile string  `binding:"required,msisdn" json:"agentMobile"`
	Amount      float64 `binding:"required,gt=0"   json:"amount"`
}

// CreateCashInRequest POST CashInRequestRoute. Заявка агенту на пополнение, деньги не двигаются.
func (h *TransferHandler) CreateCashInRequest(c *gin.Context) {
	h.createRequest(c, domain.RequestKindCashIn, "Cash-in request sent successfully")
}

// CreateCashOutRequest POST CashOutRequestRoute. Заявка агенту на снятие, деньги не двигаются.
func (h *TransferHandler) CreateCashOutRequest(c *gin.Context) {
	h.createRequest(c, domain.RequestKindCashOut, "Cash-out request sent successfully")
}

func (h *TransferHandler) createRequest(c *gin.Context, kind domain.RequestKindType, successMsg string) {
	claims := getClaimsFromContext(c)

	var params CashRequestParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	_, err := h.transferService.CreateRequest(ctx, service.CreateRequestArgs{
		Kind:        kind,
		UserID:      claims.UserID,
		AgentMobile: params.AgentMobile,
		Amount:      decimalFromFloat(params.Amount),
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Agent not found"})
			return
		}
		h.abortWithTransferError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": successMsg})
}

type ApproveParams struct {
	RequestID int64 `binding:"required" json:"requestId"`
}

// ApproveCashIn POST CashInApproveRoute (только роль agent).
func (h *TransferHandler) ApproveCashIn(c *gin.Context) {
	h.approve(c, domain.RequestKindCashIn, "Cash-in approved successfully")
}

// ApproveCashOut POST CashOutApproveRoute (только роль agent).
func (h *TransferHandler) ApproveCashOut(c *gin.Context) {
	h.approve(c, domain.RequestKindCashOut, "Cash-Out approved successfully")
}

func (h *TransferHandler) approve(c *gin.Context, kind domain.RequestKindType, successMsg string) {
	var params ApproveParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if _, err := h.transferService.Approve(ctx, kind, params.RequestID); err != nil {
		if errors.Is(err, domain.ErrRequestProcessed) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid or already processed request"})
			return
		}
		h.abortWithTransferError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": successMsg})
}

// abortWithTransferError единый маппинг ошибок денежных операций в HTTP-ответ.
// Все бизнес-отказы отвечают 400 с человекочитаемым сообщением.
func (h *TransferHandler) abortWithTransferError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrBelowMinimum):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Minimum transaction amount is 50 Taka"})
	case errors.Is(err, domain.ErrPinMismatch):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid PIN"})
	case errors.Is(err, domain.ErrInsufficientBalance):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Insufficient balance"})
	case errors.Is(err, domain.ErrSameAccount):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Cannot transact with your own account"})
	case errors.Is(err, domain.ErrRecordNotFound):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "User not found"})
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	}
}
