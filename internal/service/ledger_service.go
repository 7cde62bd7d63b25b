package service

import (
	"context"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/pkg/uow"
)

// transactionsPageSize размер страницы истории транзакций.
const transactionsPageSize = 10

type LedgerService struct {
	uow       uow.UOW
	transRepo domain.TransactionRepository
	cashRepo  domain.CashRequestRepository
}

func NewLedgerService(u uow.UOW) (*LedgerService, error) {
	transRepo, transRepoErr := uow.GetRepositoryAs[domain.TransactionRepository](
		u, uow.RepositoryName(domain.TransactionRepoName))
	if transRepoErr != nil {
		return nil, transRepoErr
	}
	cashRepo, cashRepoErr := uow.GetRepositoryAs[domain.CashRequestRepository](
		u, uow.RepositoryName(domain.CashRequestRepoName))
	if cashRepoErr != nil {
		return nil, cashRepoErr
	}
	return &LedgerService{
		uow:       u,
		transRepo: transRepo,
		cashRepo:  cashRepo,
	}, nil
}

// Transactions история движений юзера: не более transactionsPageSize записей,
// свежие первыми.
func (s *LedgerService) Transactions(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	transactions, err := s.transRepo.GetRecentForUser(ctx, userID, transactionsPageSize)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return transactions, nil
}

// CashRequests заявки, в которых участвует юзер: агент видит адресованные ему,
// остальные - созданные ими. Свежие первыми.
func (s *LedgerService) CashRequests(
	ctx context.Context,
	kind domain.RequestKindType,
	userID int64,
	role domain.RoleType,
) ([]domain.CashRequest, error) {
	var requests []domain.CashRequest
	var err error
	if role == domain.RoleAgent {
		requests, err = s.cashRepo.GetByAgentID(ctx, kind, userID)
	} else {
		requests, err = s.cashRepo.GetByUserID(ctx, kind, userID)
	}
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return requests, nil
}
