package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-pay/internal/domain"
	repomocks "github.com/fsdevblog/groph-pay/internal/domain/mocks"
	"github.com/fsdevblog/groph-pay/internal/service/mocks"
	"github.com/fsdevblog/groph-pay/pkg/uow"
	uowmocks "github.com/fsdevblog/groph-pay/pkg/uow/mocks"
)

// decimalMatcher сравнивает decimal через Equal, а не через DeepEqual:
// одно и то же число может иметь разные внутренние представления.
type decimalMatcher struct {
	want decimal.Decimal
}

func (m decimalMatcher) Matches(x interface{}) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalMatcher) String() string {
	return "decimal " + m.want.String()
}

func decimalEq(v string) gomock.Matcher {
	return decimalMatcher{want: decimal.RequireFromString(v)}
}

type TransferServiceTestSuite struct {
	suite.Suite
	mockUOW         *uowmocks.MockUOW
	mockTX          *uowmocks.MockTX
	mockUserRepo    *repomocks.MockUserRepository
	mockCashRepo    *repomocks.MockCashRequestRepository
	mockTransRepo   *repomocks.MockTransactionRepository
	mockPsswd       *mocks.MockPasswordHasher
	transferService *TransferService
}

func TestTransferServiceSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}

func (s *TransferServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockTX = uowmocks.NewMockTX(mockCtrl)
	s.mockUserRepo = repomocks.NewMockUserRepository(mockCtrl)
	s.mockCashRepo = repomocks.NewMockCashRequestRepository(mockCtrl)
	s.mockTransRepo = repomocks.NewMockTransactionRepository(mockCtrl)
	s.mockPsswd = mocks.NewMockPasswordHasher(mockCtrl)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(domain.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(domain.CashRequestRepoName)).
		Return(s.mockCashRepo, nil).AnyTimes()

	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		}).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(domain.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(domain.CashRequestRepoName)).
		Return(s.mockCashRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(domain.TransactionRepoName)).
		Return(s.mockTransRepo, nil).AnyTimes()

	transferService, servErr := NewTransferService(s.mockUOW, s.mockPsswd)
	s.Require().NoError(servErr)
	s.transferService = transferService
}

// expectLockPair настраивает FindByIDForUpdate для пары счетов: лок должен идти
// в порядке возрастания id независимо от direction операции.
func (s *TransferServiceTestSuite) expectLockPair(first, second domain.User) {
	lo, hi := first, second
	if lo.ID > hi.ID {
		lo, hi = hi, lo
	}
	firstLock := s.mockUserRepo.EXPECT().FindByIDForUpdate(gomock.Any(), lo.ID).
		DoAndReturn(func(_ context.Context, _ int64) (*domain.User, error) {
			u := lo
			return &u, nil
		})
	s.mockUserRepo.EXPECT().FindByIDForUpdate(gomock.Any(), hi.ID).
		DoAndReturn(func(_ context.Context, _ int64) (*domain.User, error) {
			u := hi
			return &u, nil
		}).After(firstLock)
}

func (s *TransferServiceTestSuite) TestSendBelowMinimum() {
	_, err := s.transferService.Send(s.T().Context(), SendArgs{
		SenderID:        1,
		RecipientMobile: "01712345678",
		Amount:          decimal.RequireFromString("49.99"),
		Pin:             "12345",
	})
	s.Require().ErrorIs(err, domain.ErrBelowMinimum)
}

func (s *TransferServiceTestSuite) TestSendAtMinimum() {
	// 50 ровно - минимально допустимая сумма, проходит без комиссии.
	sender := domain.User{ID: 1, PinHash: "hash", Balance: decimal.NewFromInt(100)}
	recipient := domain.User{ID: 2, MobileNumber: "01712345678", Balance: decimal.Zero}

	s.mockUserRepo.EXPECT().FindByMobile(gomock.Any(), recipient.MobileNumber).
		Return(&recipient, nil)
	s.expectLockPair(sender, recipient)
	s.mockPsswd.EXPECT().ComparePassword("12345", sender.PinHash).Return(true)

	s.mockUserRepo.EXPECT().UpdateBalance(gomock.Any(), sender.ID, decimalEq("50")).Return(nil)
	s.mockUserRepo.EXPECT().UpdateBalance(gomock.Any(), recipient.ID, decimalEq("50")).Return(nil)

	s.mockTransRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args domain.CreateTransactionArgs) (*domain.Transaction, error) {
			s.True(args.Amount.Equal(decimal.NewFromInt(50)))
			s.True(args.Fee.IsZero(), "fee %s", args.Fee)
			return &domain.Transaction{ID: 1, Type: args.Type, Amount: args.Amount, Fee: args.Fee}, nil
		})

	trans, err := s.transferService.Send(s.T().Context(), SendArgs{
		SenderID:        sender.ID,
		RecipientMobile: recipient.MobileNumber,
		Amount:          decimal.NewFromInt(50),
		Pin:             "12345",
	})
	s.Require().NoError(err)
	s.True(trans.Fee.IsZero())
}

func (s *TransferServiceTestSuite) TestSendToSelf() {
	// Перевод на собственный номер отклоняется до каких-либо списаний: обе дельты
	// считались бы от одного снимка баланса и перевод печатал бы деньги.
	sender := domain.User{ID: 1, PinHash: "hash", MobileNumber: "01712345678", Balance: decimal.NewFromInt(100)}

	s.mockUserRepo.EXPECT().FindByMobile(gomock.Any(), sender.MobileNumber).
		Return(&sender, nil)
	s.mockUserRepo.EXPECT().UpdateBalance(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := s.transferService.Send(s.T().Context(), SendArgs{
		SenderID:        sender.ID,
		RecipientMobile: sender.MobileNumber,
		Amount:          decimal.NewFromInt(100),
		Pin:             "12345",
	})
	s.Require().ErrorIs(err, domain.ErrSameAccount)
}

func (s *TransferServiceTestSuite) TestSendNoFeeAtThreshold() {
	// 100 ровно - комиссии еще нет, порог не превышен.
	sender := domain.User{ID: 1, PinHash: "hash", Balance: decimal.NewFromInt(200)}
	recipient := domain.User{ID: 2, MobileNumber: "01712345678", Balance: decimal.NewFromInt(10)}

	s.mockUserRepo.EXPECT().FindByMobile(gomock.Any(), recipient.MobileNumber).
		Return(&recipient, nil)
	s.expectLockPair(sender, recipient)
	s.mockPsswd.EXPECT().ComparePassword("12345", sender.PinHash).Return(true)

	s.mockUserRepo.EXPECT().UpdateBalance(gomock.Any(), sender.ID, decimalEq("100")).Return(nil)
	s.mockUserRepo.EXPECT().UpdateBalance(gomock.Any(), recipient.ID, decimalEq("110")).Return(nil)

	s.mockTransRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args domain.CreateTransactionArgs) (*domain.Transaction, error) {
			s.Equal(domain.TransactionSend, args.Type)
			s.True(args.Fee.IsZero(), "fee %s", args.Fee)
			return &domain.Transaction{ID: 1, Type: args.Type, Amount: args.Amount, Fee: args.Fee}, nil
		})

	trans, err := s.transferService.Send(s.T().Context(), SendArgs{
		SenderID:        sender.ID,
		RecipientMobile: recipient.MobileNumber,
		Amount:          decimal.NewFromInt(100),
		Pin:             "12345",
	})
	s.Require().NoError(err)
	s.True(trans.Fee.IsZero())
}

func (s *TransferServiceTestSuite) TestSendFlatFeeAboveThreshold() {
	// Баланс 200, перевод 150: комиссия 5, списывается 155, остаток 45.
	// Получателю уходит ровно 150.
	sender := domain.User{ID: 1, PinHash: "hash", Balance: decimal.NewFromInt(200)}
	recipient := domain.User{ID: 2, MobileNumber: "01712345678", Balance: decimal.Zero}

	s.mockUserRepo.EXPECT().FindByMobile(gomock.Any(), recipient.MobileNumber).
		Return(&recipient, nil)
	s.expectLockPair(sender, recipient)
	s.mockPsswd.EXPECT().ComparePassword("12345", sender.PinHash).Return(true)

	s.mockUserRepo.EXPECT().UpdateBalance(gomock.Any(), sender.ID, decimalEq("45")).Return(nil)
	s.mockUserRepo.EXPECT().UpdateBalance(gomock.Any(), recipient.ID, decimalEq("150")).Return(nil)

	s.mockTransRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args domain.CreateTransactionArgs) (*domain.Transaction, error) {
			s.True(args.Amount.Equal(decimal.NewFromInt(150)))
			s.True(args.Fee.Equal(decimal.NewFromInt(5)))
			s.Equal(sender.ID, *args.SenderID)
			s.Equal(recipient.ID, *args.RecipientID)
			return &domain.Transaction{ID: 1, Type: args.Type, Amount: args.Amount, Fee: args.Fee}, nil
		})

	_, err := s.transferService.Send(s.T().Context(), SendArgs{
		SenderID:        sender.ID,
		RecipientMobile: recipient.MobileNumber,
		Amount:          decimal.NewFromInt(150),
		Pin:             "12345",
	})
	s.Require().NoError(err)
}

func (s *TransferServiceTestSuite) TestSendInsufficientBalance() {
	// Баланс 105 не покрывает перевод 101 с комиссией 5: сама сумма прошла бы.
	sender := domain.User{ID: 1, PinHash: "hash", Balance: decimal.NewFromInt(105)}
	recipient := domain.User{ID: 2, MobileNumber: "01712345678", Balance: decimal.Zero}

	s.mockUserRepo.EXPECT().FindByMobile(gomock.Any(), recipient.MobileNumber).
		Return(&recipient, nil)
	s.expectLockPair(sender, recipient)
	s.mockPsswd.EXPECT().ComparePassword("12345", sender.PinHash).Return(true)

	_, err := s.transferService.Send(s.T().Context(), SendArgs{
		SenderID:        sender.ID,
		RecipientMobile: recipient.MobileNumber,
		Amount:          decimal.RequireFromString("101"),
		Pin:             "12345",
	})
	s.Require().ErrorIs(err, domain.ErrInsufficientBalance)
}

func (s *TransferServiceTestSuite) TestSendWrongPin() {
	sender := domain.User{ID: 1, PinHash: "hash", Balance: decimal.NewFromInt(500)}
	recipient := domain.User{ID: 2, MobileNumber: "01712345678"}

	s.mockUserRepo.EXPECT().FindByMobile(gomock.Any(), recipient.MobileNumber).
		Return(&recipient, nil)
	s.expectLockPair(sender, recipient)
	s.mockPsswd.EXPECT().ComparePassword("00000", sender.PinHash).Return(false)

	_, err := s.transferService.Send(s.T().Context(), SendArgs{
		SenderID:        sender.ID,
		RecipientMobile: recipient.MobileNumber,
		Amount:          decimal.NewFromInt(60),
		Pin:             "00000",
	})
	s.Require().ErrorIs(err, domain.ErrPinMismatch)
}

func (s *TransferServiceTestSuite) TestSendUnknownRecipient() {
	s.mockUserRepo.EXPECT().FindByMobile(gomock.Any(), "01700000000").
		Return(nil, domain.ErrRecordNotFound)

	_, err := s.transferService.Send(s.T().Context(), SendArgs{
		SenderID:        1,
		RecipientMobile: "01700000000",
		Amount:          decimal.NewFromInt(60),
		Pin:             "12345",
	})
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *TransferServiceTestSuite) TestCreateRequest() {
	user := domain.User{ID: 3, MobileNumber: "01711111111"}
	agent := domain.User{ID: 4, MobileNumber: "01822222222", Role: domain.RoleAgent}

	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), user.ID).Return(&user, nil)
	s.mockUserRepo.EXPECT().FindByMobile(gomock.Any(), agent.MobileNumber).Return(&agent, nil)

	s.mockCashRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args domain.CreateCashRequestArgs) (*domain.CashRequest, error) {
			s.Equal(domain.RequestKindCashIn, args.Kind)
			s.Equal(user.ID, args.UserID)
			s.Equal(user.MobileNumber, args.RequesterMobile)
			s.Equal(agent.ID, args.AgentID)
			s.True(args.Amount.Equal(decimal.NewFromInt(500)))
			return &domain.CashRequest{
				ID:     1,
				Kind:   args.Kind,
				UserID: args.UserID,
				Amount: args.Amount,
				Status: domain.RequestStatusPending,
			}, nil
		})

	request, err := s.transferService.CreateRequest(s.T().Context(), CreateRequestArgs{
		Kind:        domain.RequestKindCashIn,
		UserID:      user.ID,
		AgentMobile: agent.MobileNumber,
		Amount:      decimal.NewFromInt(500),
	})
	s.Require().NoError(err)
	s.Equal(domain.RequestStatusPending, request.Status)
}

func (s *TransferServiceTestSuite) TestCreateRequestBelowMinimum() {
	_, err := s.transferService.CreateRequest(s.T().Context(), CreateRequestArgs{
		Kind:        domain.RequestKindCashOut,
		UserID:      3,
		AgentMobile: "01822222222",
		Amount:      decimal.NewFromInt(49),
	})
	s.Require().ErrorIs(err, domain.ErrBelowMinimum)
}

func (s *TransferServiceTestSuite) TestCreateRequestSelfAgent() {
	// Юзер не может назвать агентом собственный счет.
	user := domain.User{ID: 3, MobileNumber: "01711111111"}

	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), user.ID).Return(&user, nil)
	s.mockUserRepo.EXPECT().FindByMobile(gomock.Any(), user.MobileNumber).Return(&user, nil)
	s.mockCashRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.transferService.CreateRequest(s.T().Context(), CreateRequestArgs{
		Kind:        domain.RequestKindCashOut,
		UserID:      user.ID,
		AgentMobile: user.MobileNumber,
		Amount:      decimal.NewFromInt(100),
	})
	s.Require().ErrorIs(err, domain.ErrSameAccount)
}

func (s *TransferServiceTestSuite) TestCreateRequestUnknownAgent() {
	user := domain.User{ID: 3, MobileNumber: "01711111111"}

	s.mockUserRepo.EXPECT().FindByID(gomock.Any(), user.ID).Return(&user, nil)
	s.mockUserRepo.EXPECT().FindByMobile(gomock.Any(), "01800000000").
		Return(nil, domain.ErrRecordNotFound)

	_, err := s.transferService.CreateRequest(s.T().Context(), CreateRequestArgs{
		Kind:        domain.RequestKindCashOut,
		UserID:      user.ID,
		AgentMobile: "01800000000",
		Amount:      decimal.NewFromInt(100),
	})
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *TransferServiceTestSuite) TestApproveCashOut() {
	// Снятие 1000: комиссия 15 (1.5%), юзер платит 1015, агент получает 1015.
	user := domain.User{ID: 3, Balance: decimal.NewFromInt(2000)}
	agent := domain.User{ID: 4, Role: domain.RoleAgent, Balance: decimal.NewFromInt(500)}
	request := domain.CashRequest{
		ID:      9,
		Kind:    domain.RequestKindCashOut,
		UserID:  user.ID,
		AgentID: agent.ID,
		Amount:  decimal.NewFromInt(1000),
		Status:  domain.RequestStatusPending,
	}

	s.mockCashRepo.EXPECT().
		FindByIDForUpdate(gomock.Any(), domain.RequestKindCashOut, request.ID).
		Return(&request, nil)
	s.expectLockPair(user, agent)

	s.mockUserRepo.EXPECT().UpdateBalance(gomock.Any(), user.ID, decimalEq("985")).Return(nil)
	s.mockUserRepo.EXPECT().UpdateBalance(gomock.Any(), agent.ID, decimalEq("1515")).Return(nil)

	s.mockCashRepo.EXPECT().MarkApproved(gomock.Any(), request.ID).Return(nil)

	s.mockTransRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args domain.CreateTransactionArgs) (*domain.Transaction, error) {
			s.Equal(domain.TransactionCashOut, args.Type)
			s.True(args.Amount.Equal(decimal.NewFromInt(1000)))
			s.True(args.Fee.Equal(decimal.NewFromInt(15)), "fee %s", args.Fee)
			s.Equal(user.ID, *args.UserID)
			s.Equal(agent.ID, *args.AgentID)
			return &domain.Transaction{ID: 1, Type: args.Type, Amount: args.Amount, Fee: args.Fee}, nil
		})

	_, err := s.transferService.Approve(s.T().Context(), domain.RequestKindCashOut, request.ID)
	s.Require().NoError(err)
}

func (s *TransferServiceTestSuite) TestApproveCashOutFeeRounding() {
	// 66.66 * 0.015 = 0.9999, после округления до копеек - ровно 1.
	user := domain.User{ID: 3, Balance: decimal.NewFromInt(100)}
	agent := domain.User{ID: 4, Role: domain.RoleAgent, Balance: decimal.Zero}
	request := domain.CashRequest{
		ID:      9,
		Kind:    domain.RequestKindCashOut,
		UserID:  user.ID,
		AgentID: agent.ID,
		Amount:  decimal.RequireFromString("66.66"),
		Status:  domain.RequestStatusPending,
	}

	s.mockCashRepo.EXPECT().
		FindByIDForUpdate(gomock.Any(), domain.RequestKindCashOut, request.ID).
		Return(&request, nil)
	s.expectLockPair(user, agent)

	s.mockUserRepo.EXPECT().UpdateBalance(gomock.Any(), user.ID, decimalEq("32.34")).Return(nil)
	s.mockUserRepo.EXPECT().UpdateBalance(gomock.Any(), agent.ID, decimalEq("67.66")).Return(nil)

	s.mockCashRepo.EXPECT().MarkApproved(gomock.Any(), request.ID).Return(nil)
	s.mockTransRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args domain.CreateTransactionArgs) (*domain.Transaction, error) {
			s.True(args.Fee.Equal(decimal.NewFromInt(1)), "fee %s", args.Fee)
			return &domain.Transaction{ID: 1, Type: args.Type, Amount: args.Amount, Fee: args.Fee}, nil
		})

	_, err := s.transferService.Approve(s.T().Context(), domain.RequestKindCashOut, request.ID)
	s.Require().NoError(err)
}

func (s *TransferServiceTestSuite) TestApproveCashIn() {
	// Пополнение 1000: агент отдает ровно 1000 со своего баланса, комиссии нет.
	user := domain.User{ID: 3, Balance: decimal.Zero}
	agent := domain.User{ID: 4, Role: domain.RoleAgent, Balance: decimal.NewFromInt(5000)}
	request := domain.CashRequest{
		ID:      10,
		Kind:    domain.RequestKindCashIn,
		UserID:  user.ID,
		AgentID: agent.ID,
		Amount:  decimal.NewFromInt(1000),
		Status:  domain.RequestStatusPending,
	}

	s.mockCashRepo.EXPECT().
		FindByIDForUpdate(gomock.Any(), domain.RequestKindCashIn, request.ID).
		Return(&request, nil)
	s.expectLockPair(user, agent)

	s.mockUserRepo.EXPECT().UpdateBalance(gomock.Any(), agent.ID, decimalEq("4000")).Return(nil)
	s.mockUserRepo.EXPECT().UpdateBalance(gomock.Any(), user.ID, decimalEq("1000")).Return(nil)

	s.mockCashRepo.EXPECT().MarkApproved(gomock.Any(), request.ID).Return(nil)
	s.mockTransRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args domain.CreateTransactionArgs) (*domain.Transaction, error) {
			s.Equal(domain.TransactionCashIn, args.Type)
			s.True(args.Fee.IsZero())
			return &domain.Transaction{ID: 1, Type: args.Type, Amount: args.Amount}, nil
		})

	_, err := s.transferService.Approve(s.T().Context(), domain.RequestKindCashIn, request.ID)
	s.Require().NoError(err)
}

func (s *TransferServiceTestSuite) TestApproveCashInAgentShort() {
	user := domain.User{ID: 3, Balance: decimal.Zero}
	agent := domain.User{ID: 4, Role: domain.RoleAgent, Balance: decimal.NewFromInt(100)}
	request := domain.CashRequest{
		ID:      10,
		Kind:    domain.RequestKindCashIn,
		UserID:  user.ID,
		AgentID: agent.ID,
		Amount:  decimal.NewFromInt(1000),
		Status:  domain.RequestStatusPending,
	}

	s.mockCashRepo.EXPECT().
		FindByIDForUpdate(gomock.Any(), domain.RequestKindCashIn, request.ID).
		Return(&request, nil)
	s.expectLockPair(user, agent)

	_, err := s.transferService.Approve(s.T().Context(), domain.RequestKindCashIn, request.ID)
	s.Require().ErrorIs(err, domain.ErrInsufficientBalance)
}

func (s *TransferServiceTestSuite) TestApproveSelfAgentRequest() {
	// Заявка, где заявитель и агент - один счет, не одобряется и ничего не двигает.
	request := domain.CashRequest{
		ID:      12,
		Kind:    domain.RequestKindCashOut,
		UserID:  4,
		AgentID: 4,
		Amount:  decimal.NewFromInt(1000),
		Status:  domain.RequestStatusPending,
	}

	s.mockCashRepo.EXPECT().
		FindByIDForUpdate(gomock.Any(), domain.RequestKindCashOut, request.ID).
		Return(&request, nil)
	s.mockUserRepo.EXPECT().UpdateBalance(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	s.mockCashRepo.EXPECT().MarkApproved(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.transferService.Approve(s.T().Context(), domain.RequestKindCashOut, request.ID)
	s.Require().ErrorIs(err, domain.ErrSameAccount)
}

func (s *TransferServiceTestSuite) TestApproveProcessedRequest() {
	approved := domain.CashRequest{
		ID:     11,
		Kind:   domain.RequestKindCashOut,
		Status: domain.RequestStatusApproved,
	}

	s.mockCashRepo.EXPECT().
		FindByIDForUpdate(gomock.Any(), domain.RequestKindCashOut, approved.ID).
		Return(&approved, nil)
	s.mockCashRepo.EXPECT().
		FindByIDForUpdate(gomock.Any(), domain.RequestKindCashOut, int64(404)).
		Return(nil, domain.ErrRecordNotFound)

	_, secondErr := s.transferService.Approve(s.T().Context(), domain.RequestKindCashOut, approved.ID)
	s.Require().ErrorIs(secondErr, domain.ErrRequestProcessed)

	_, missingErr := s.transferService.Approve(s.T().Context(), domain.RequestKindCashOut, 404)
	s.Require().ErrorIs(missingErr, domain.ErrRequestProcessed)
}
