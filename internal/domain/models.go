package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Name         string
	PinHash      string
	MobileNumber string
	Email        string
	Role         RoleType
	Status       UserStatusType
	Balance      decimal.Decimal
}

// CashRequest заявка на внесение (cashin) или снятие (cashout) средств через агента.
// Создается юзером, меняется ровно один раз - агентом при одобрении (pending -> approved).
type CashRequest struct {
	ID              int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Kind            RequestKindType
	UserID          int64
	RequesterMobile string
	AgentID         int64
	AgentMobile     string
	Amount          decimal.Decimal
	Status          RequestStatusType
}

// Transaction запись о движении средств. После создания не изменяется.
// Поля участников заполняются в зависимости от типа: send - SenderID/RecipientID,
// cashin/cashout - UserID/AgentID, bonus - только UserID.
type Transaction struct {
	ID          int64
	CreatedAt   time.Time
	Type        TransactionType
	Amount      decimal.Decimal
	Fee         decimal.Decimal
	SenderID    *int64
	RecipientID *int64
	UserID      *int64
	AgentID     *int64
}
