package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/service"
)

// AccountServicer интерфейс исключительно для моков.
type AccountServicer interface {
	Register(ctx context.Context, args service.RegisterArgs) (*domain.User, error)
	Login(ctx context.Context, args service.LoginArgs) (*domain.User, string, error)
	ApproveRegistration(ctx context.Context, requestID int64) (*domain.User, error)
	Activate(ctx context.Context, userID int64) error
	SetRole(ctx context.Context, userID int64, role domain.RoleType) error
	Delete(ctx context.Context, userID int64) error
	GetByID(ctx context.Context, userID int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type TransferServicer interface {
	Send(ctx context.Context, args service.SendArgs) (*domain.Transaction, error)
	CreateRequest(ctx context.Context, args service.CreateRequestArgs) (*domain.CashRequest, error)
	Approve(ctx context.Context, kind domain.RequestKindType, requestID int64) (*domain.Transaction, error)
}

type LedgerServicer interface {
	Transactions(ctx context.Context, userID int64) ([]domain.Transaction, error)
	CashRequests(
		ctx context.Context,
		kind domain.RequestKindType,
		userID int64,
		role domain.RoleType,
	) ([]domain.CashRequest, error)
}
