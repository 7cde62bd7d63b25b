package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/pkg/uow"
)

var (
	// minTransferAmount минимальная сумма любой денежной операции.
	minTransferAmount = decimal.NewFromInt(50)
	// sendFeeThreshold порог, выше которого перевод облагается фиксированной комиссией.
	sendFeeThreshold = decimal.NewFromInt(100)
	// sendFlatFee комиссия за перевод суммы выше sendFeeThreshold. Комиссия удерживается,
	// получателю уходит ровно сумма перевода.
	sendFlatFee = decimal.NewFromInt(5)
	// cashOutFeeRate комиссия за снятие - 1.5% от суммы. Платит юзер, агент получает
	// сумму вместе с комиссией.
	cashOutFeeRate = decimal.NewFromFloat(0.015)
)

// TransferService ядро системы: прямые переводы и двухфазные заявки
// на внесение/снятие средств через агента. Каждое движение денег выполняется
// в одной транзакции базы с блокировкой строк участников, поэтому конкурентные
// операции над одним счетом не теряют обновлений.
type TransferService struct {
	uow    uow.UOW
	repos  transferRepos
	hasher PasswordHasher
}

type transferRepos struct {
	users        domain.UserRepository
	cashRequests domain.CashRequestRepository
}

func NewTransferService(u uow.UOW, hasher PasswordHasher) (*TransferService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[domain.UserRepository](u, uow.RepositoryName(domain.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	cashRepo, cashRepoErr := uow.GetRepositoryAs[domain.CashRequestRepository](
		u, uow.RepositoryName(domain.CashRequestRepoName))
	if cashRepoErr != nil {
		return nil, cashRepoErr
	}
	return &TransferService{
		uow: u,
		repos: transferRepos{
			users:        userRepo,
			cashRequests: cashRepo,
		},
		hasher: hasher,
	}, nil
}

type SendArgs struct {
	SenderID        int64
	RecipientMobile string
	Amount          decimal.Decimal
	Pin             string
}

// Send одношаговый перевод юзер-юзер. Валидация: минимальная сумма, существование
// сторон, ПИН отправителя, достаточность баланса. С отправителя списывается
// сумма плюс комиссия, получателю зачисляется ровно сумма.
func (s *TransferService) Send(ctx context.Context, args SendArgs) (*domain.Transaction, error) {
	if args.Amount.LessThan(minTransferAmount) {
		return nil, fmt.Errorf("sending money: %w", domain.ErrBelowMinimum)
	}

	var trans *domain.Transaction
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, transRepo, reposErr := moneyRepos(tx)
		if reposErr != nil {
			return reposErr
		}

		recipientRef, recipientErr := userRepo.FindByMobile(c, args.RecipientMobile)
		if recipientErr != nil {
			return fmt.Errorf("resolving recipient: %w", recipientErr)
		}
		if recipientRef.ID == args.SenderID {
			return domain.ErrSameAccount
		}

		sender, recipient, lockErr := lockPair(c, userRepo, args.SenderID, recipientRef.ID)
		if lockErr != nil {
			return lockErr
		}

		if !s.hasher.ComparePassword(args.Pin, sender.PinHash) {
			return domain.ErrPinMismatch
		}

		fee := decimal.Zero
		if args.Amount.GreaterThan(sendFeeThreshold) {
			fee = sendFlatFee
		}
		total := args.Amount.Add(fee)

		if sender.Balance.LessThan(total) {
			return domain.ErrInsufficientBalance
		}

		if err := userRepo.UpdateBalance(c, sender.ID, sender.Balance.Sub(total)); err != nil {
			return err //nolint:wrapcheck
		}
		if err := userRepo.UpdateBalance(c, recipient.ID, recipient.Balance.Add(args.Amount)); err != nil {
			return err //nolint:wrapcheck
		}

		var transErr error
		trans, transErr = transRepo.Create(c, domain.CreateTransactionArgs{
			Type:        domain.TransactionSend,
			Amount:      args.Amount,
			Fee:         fee,
			SenderID:    &sender.ID,
			RecipientID: &recipient.ID,
		})
		return transErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("sending money: %w", txErr)
	}
	return trans, nil
}

type CreateRequestArgs struct {
	Kind        domain.RequestKindType
	UserID      int64
	AgentMobile string
	Amount      decimal.Decimal
}

// CreateRequest первая фаза cashin/cashout: юзер оставляет заявку на агента,
// деньги при этом не двигаются.
func (s *TransferService) CreateRequest(ctx context.Context, args CreateRequestArgs) (*domain.CashRequest, error) {
	if args.Amount.LessThan(minTransferAmount) {
		return nil, fmt.Errorf("creating %s request: %w", args.Kind, domain.ErrBelowMinimum)
	}

	user, userErr := s.repos.users.FindByID(ctx, args.UserID)
	if userErr != nil {
		return nil, fmt.Errorf("creating %s request: resolving user: %w", args.Kind, userErr)
	}

	agent, agentErr := s.repos.users.FindByMobile(ctx, args.AgentMobile)
	if agentErr != nil {
		return nil, fmt.Errorf("creating %s request: resolving agent: %w", args.Kind, agentErr)
	}
	if agent.ID == user.ID {
		return nil, fmt.Errorf("creating %s request: %w", args.Kind, domain.ErrSameAccount)
	}

	request, createErr := s.repos.cashRequests.Create(ctx, domain.CreateCashRequestArgs{
		Kind:            args.Kind,
		UserID:          user.ID,
		RequesterMobile: user.MobileNumber,
		AgentID:         agent.ID,
		AgentMobile:     args.AgentMobile,
		Amount:          args.Amount,
	})
	if createErr != nil {
		return nil, fmt.Errorf("creating %s request: %w", args.Kind, createErr)
	}
	return request, nil
}

// Approve вторая фаза cashin/cashout. Заявка блокируется, балансы сторон перечитываются
// свежими (не из снимка заявки), применяется тарифная сетка, заявка помечается approved
// и пишется одна транзакция. Несуществующая либо уже одобренная заявка всегда получает
// domain.ErrRequestProcessed.
func (s *TransferService) Approve(
	ctx context.Context,
	kind domain.RequestKindType,
	requestID int64,
) (*domain.Transaction, error) {
	var trans *domain.Transaction
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		cashRepo, cashRepoErr := uow.GetAs[domain.CashRequestRepository](
			tx, uow.RepositoryName(domain.CashRequestRepoName))
		if cashRepoErr != nil {
			return cashRepoErr //nolint:wrapcheck
		}
		userRepo, transRepo, reposErr := moneyRepos(tx)
		if reposErr != nil {
			return reposErr
		}

		request, findErr := cashRepo.FindByIDForUpdate(c, kind, requestID)
		if findErr != nil {
			if errors.Is(findErr, domain.ErrRecordNotFound) {
				return domain.ErrRequestProcessed
			}
			return findErr //nolint:wrapcheck
		}
		if request.Status != domain.RequestStatusPending {
			return domain.ErrRequestProcessed
		}
		// Заявки, созданные до запрета агент-сам-себе, тоже не должны проходить.
		if request.UserID == request.AgentID {
			return domain.ErrSameAccount
		}

		user, agent, lockErr := lockPair(c, userRepo, request.UserID, request.AgentID)
		if lockErr != nil {
			return lockErr
		}

		var transArgs domain.CreateTransactionArgs
		switch kind {
		case domain.RequestKindCashOut:
			// Снятие: юзер платит сумму плюс 1.5%, агент получает сумму вместе с комиссией.
			fee := request.Amount.Mul(cashOutFeeRate).Round(2)
			total := request.Amount.Add(fee)
			if user.Balance.LessThan(total) {
				return domain.ErrInsufficientBalance
			}
			if err := userRepo.UpdateBalance(c, user.ID, user.Balance.Sub(total)); err != nil {
				return err //nolint:wrapcheck
			}
			if err := userRepo.UpdateBalance(c, agent.ID, agent.Balance.Add(total)); err != nil {
				return err //nolint:wrapcheck
			}
			transArgs = domain.CreateTransactionArgs{
				Type:    domain.TransactionCashOut,
				Amount:  request.Amount,
				Fee:     fee,
				UserID:  &user.ID,
				AgentID: &agent.ID,
			}
		case domain.RequestKindCashIn:
			// Пополнение: агент отдает сумму со своего баланса, комиссии нет.
			if agent.Balance.LessThan(request.Amount) {
				return domain.ErrInsufficientBalance
			}
			if err := userRepo.UpdateBalance(c, agent.ID, agent.Balance.Sub(request.Amount)); err != nil {
				return err //nolint:wrapcheck
			}
			if err := userRepo.UpdateBalance(c, user.ID, user.Balance.Add(request.Amount)); err != nil {
				return err //nolint:wrapcheck
			}
			transArgs = domain.CreateTransactionArgs{
				Type:    domain.TransactionCashIn,
				Amount:  request.Amount,
				UserID:  &user.ID,
				AgentID: &agent.ID,
			}
		default:
			return fmt.Errorf("unknown request kind %q: %w", kind, domain.ErrUnknown)
		}

		if approveErr := cashRepo.MarkApproved(c, request.ID); approveErr != nil {
			return approveErr //nolint:wrapcheck
		}

		var transErr error
		trans, transErr = transRepo.Create(c, transArgs)
		return transErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("approving %s request %d: %w", kind, requestID, txErr)
	}
	return trans, nil
}

func moneyRepos(tx uow.TX) (domain.UserRepository, domain.TransactionRepository, error) {
	userRepo, userRepoErr := uow.GetAs[domain.UserRepository](tx, uow.RepositoryName(domain.UserRepoName))
	if userRepoErr != nil {
		return nil, nil, userRepoErr //nolint:wrapcheck
	}
	transRepo, transRepoErr := uow.GetAs[domain.TransactionRepository](
		tx, uow.RepositoryName(domain.TransactionRepoName))
	if transRepoErr != nil {
		return nil, nil, transRepoErr //nolint:wrapcheck
	}
	return userRepo, transRepo, nil
}

// lockPair блокирует обе стороны операции в порядке возрастания id, чтобы встречные
// операции над одной парой счетов не зашли во взаимную блокировку. Стороны обязаны
// быть разными счетами: одинаковая пара отклоняется с ErrSameAccount до вызова.
func lockPair(
	ctx context.Context,
	userRepo domain.UserRepository,
	firstID, secondID int64,
) (*domain.User, *domain.User, error) {
	lowID, highID := firstID, secondID
	if lowID > highID {
		lowID, highID = highID, lowID
	}

	low, lowErr := userRepo.FindByIDForUpdate(ctx, lowID)
	if lowErr != nil {
		return nil, nil, fmt.Errorf("locking user %d: %w", lowID, lowErr)
	}
	high, highErr := userRepo.FindByIDForUpdate(ctx, highID)
	if highErr != nil {
		return nil, nil, fmt.Errorf("locking user %d: %w", highID, highErr)
	}

	if firstID == lowID {
		return low, high, nil
	}
	return high, low, nil
}
