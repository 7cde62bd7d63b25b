package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=repository.go -destination=mocks/mocks.go -package=mocks

const (
	UserRepoName        = "user"
	CashRequestRepoName = "cash_request"
	TransactionRepoName = "transaction"
)

type CreateUserArgs struct {
	Name         string
	PinHash      string
	MobileNumber string
	Email        string
	Role         RoleType
}

type CreateCashRequestArgs struct {
	Kind            RequestKindType
	UserID          int64
	RequesterMobile string
	AgentID         int64
	AgentMobile     string
	Amount          decimal.Decimal
}

type CreateTransactionArgs struct {
	Type        TransactionType
	Amount      decimal.Decimal
	Fee         decimal.Decimal
	SenderID    *int64
	RecipientID *int64
	UserID      *int64
	AgentID     *int64
}

type UserRepository interface {
	Create(ctx context.Context, args CreateUserArgs) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	// FindByIDForUpdate блокирует строку юзера до конца текущей транзакции (SELECT FOR UPDATE).
	// Вызывать только внутри uow.Do.
	FindByIDForUpdate(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByMobile(ctx context.Context, mobile string) (*User, error)
	GetAll(ctx context.Context) ([]User, error)
	UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) error
	SetStatusAndBalance(ctx context.Context, id int64, status UserStatusType, balance decimal.Decimal) error
	SetRole(ctx context.Context, id int64, role RoleType) error
	Delete(ctx context.Context, id int64) error
}

type CashRequestRepository interface {
	Create(ctx context.Context, args CreateCashRequestArgs) (*CashRequest, error)
	// FindByIDForUpdate блокирует заявку до конца текущей транзакции, защищая от
	// параллельного двойного одобрения.
	FindByIDForUpdate(ctx context.Context, kind RequestKindType, id int64) (*CashRequest, error)
	MarkApproved(ctx context.Context, id int64) error
	GetByUserID(ctx context.Context, kind RequestKindType, userID int64) ([]CashRequest, error)
	GetByAgentID(ctx context.Context, kind RequestKindType, agentID int64) ([]CashRequest, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, args CreateTransactionArgs) (*Transaction, error)
	// GetRecentForUser возвращает не более limit последних транзакций, где юзер выступает
	// любой из сторон. Заявки cashin, инициированные самим юзером, в выборку не входят.
	GetRecentForUser(ctx context.Context, userID int64, limit uint) ([]Transaction, error)
}
