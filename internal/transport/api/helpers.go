package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/transport/api/middlewares"
	"github.com/fsdevblog/groph-pay/internal/transport/api/tokens"
)

// getClaimsFromContext клеймы сессии, положенные middleware AuthRequired.
// Вызывается только из хендлеров за этим middleware.
func getClaimsFromContext(c *gin.Context) *tokens.SessionClaims {
	claims, _ := c.MustGet(middlewares.CurrentClaimsKey).(*tokens.SessionClaims)
	return claims
}

// UserResponse юзер без ПИН-хеша. Хеш не сериализуется ни в одном ответе.
type UserResponse struct {
	ID           int64                 `json:"id"`
	Name         string                `json:"name"`
	MobileNumber string                `json:"mobileNumber"`
	Email        string                `json:"email"`
	Role         domain.RoleType       `json:"role"`
	Status       domain.UserStatusType `json:"status"`
	Balance      float64               `json:"balance"`
	CreatedAt    time.Time             `json:"createdAt"`
}

func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		MobileNumber: user.MobileNumber,
		Email:        user.Email,
		Role:         user.Role,
		Status:       user.Status,
		Balance:      user.Balance.InexactFloat64(),
		CreatedAt:    user.CreatedAt,
	}
}

type TransactionResponse struct {
	ID          int64                  `json:"id"`
	Type        domain.TransactionType `json:"type"`
	Amount      float64                `json:"amount"`
	Fee         float64                `json:"fee"`
	SenderID    *int64                 `json:"senderId,omitempty"`
	RecipientID *int64                 `json:"recipientId,omitempty"`
	UserID      *int64                 `json:"userId,omitempty"`
	AgentID     *int64                 `json:"agentId,omitempty"`
	Timestamp   time.Time              `json:"timestamp"`
}

func newTransactionResponse(trans domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          trans.ID,
		Type:        trans.Type,
		Amount:      trans.Amount.InexactFloat64(),
		Fee:         trans.Fee.InexactFloat64(),
		SenderID:    trans.SenderID,
		RecipientID: trans.RecipientID,
		UserID:      trans.UserID,
		AgentID:     trans.AgentID,
		Timestamp:   trans.CreatedAt,
	}
}

type CashRequestResponse struct {
	ID              int64                    `json:"id"`
	Kind            domain.RequestKindType   `json:"kind"`
	UserID          int64                    `json:"userId"`
	RequesterMobile string                   `json:"requesterMobile"`
	AgentID         int64                    `json:"agentId"`
	AgentMobile     string                   `json:"agentMobile"`
	Amount          float64                  `json:"amount"`
	Status          domain.RequestStatusType `json:"status"`
	Timestamp       time.Time                `json:"timestamp"`
}

func newCashRequestResponse(req domain.CashRequest) CashRequestResponse {
	return CashRequestResponse{
		ID:              req.ID,
		Kind:            req.Kind,
		UserID:          req.UserID,
		RequesterMobile: req.RequesterMobile,
		AgentID:         req.AgentID,
		AgentMobile:     req.AgentMobile,
		Amount:          req.Amount.InexactFloat64(),
		Status:          req.Status,
		Timestamp:       req.CreatedAt,
	}
}

// decimalFromFloat единообразная конвертация сумм из JSON. Суммы в запросах принимаются
// числом и сразу приводятся к decimal, вся арифметика дальше точная.
func decimalFromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}
