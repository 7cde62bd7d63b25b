package api

import (
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/logger"
	"github.com/fsdevblog/groph-pay/internal/transport/api/mocks"
	"github.com/fsdevblog/groph-pay/internal/transport/api/testutils"
	"github.com/fsdevblog/groph-pay/internal/transport/api/tokens"
)

type LedgerHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *mocks.MockAccountServicer
	mockLedgerService  *mocks.MockLedgerServicer
	jwtSecret          []byte
}

func TestLedgerHandlerSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}

func (s *LedgerHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockAccountService = mocks.NewMockAccountServicer(mockCtrl)
	s.mockLedgerService = mocks.NewMockLedgerServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:          logger.New(os.Stdout),
		AccountService:  s.mockAccountService,
		TransferService: mocks.NewMockTransferServicer(mockCtrl),
		LedgerService:   s.mockLedgerService,
		JWTSecretKey:    s.jwtSecret,
	})
}

func (s *LedgerHandlerTestSuite) get(url, token string) *http.Response {
	reqOpts := []func(*testutils.RequestOptions){}
	if token != "" {
		reqOpts = append(reqOpts, testutils.WithBearerToken(token))
	}

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    url,
	}, reqOpts...)
	s.Require().NoError(err)
	return res
}

func (s *LedgerHandlerTestSuite) TestBalance() {
	token, tokenErr := tokens.GenerateSessionJWT(7, "user@example.com", domain.RoleUser, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)

	s.mockAccountService.EXPECT().
		GetByID(gomock.Any(), int64(7)).
		Return(&domain.User{
			ID:      7,
			Name:    "Test User",
			Balance: decimal.RequireFromString("123.45"),
		}, nil)

	res := s.get(BalanceRoute, token)
	defer func() {
		s.Require().NoError(res.Body.Close())
	}()

	s.Require().Equal(http.StatusOK, res.StatusCode)

	var body struct {
		Balance float64 `json:"balance"`
		Name    string  `json:"name"`
	}
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
	s.InDelta(123.45, body.Balance, 0.001)
	s.Equal("Test User", body.Name)
}

func (s *LedgerHandlerTestSuite) TestTransactions() {
	token, tokenErr := tokens.GenerateSessionJWT(7, "user@example.com", domain.RoleUser, time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)

	s.mockLedgerService.EXPECT().
		Transactions(gomock.Any(), int64(7)).
		Return([]domain.Transaction{
			{ID: 2, Type: domain.TransactionSend, Amount: decimal.NewFromInt(150), Fee: decimal.NewFromInt(5)},
			{ID: 1, Type: domain.TransactionBonus, Amount: decimal.NewFromInt(40)},
		}, nil)

	res := s.get(TransactionsRoute, token)
	defer func() {
		s.Require().NoError(res.Body.Close())
	}()

	s.Require().Equal(http.StatusOK, res.StatusCode)

	var body []TransactionResponse
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
	s.Require().Len(body, 2)
	s.Equal(domain.TransactionSend, body[0].Type)
}

func (s *LedgerHandlerTestSuite) TestCashRequestsByRole() {
	// Роль в клеймах определяет выборку: агент видит адресованные ему заявки.
	agentToken, agentTokenErr := tokens.GenerateSessionJWT(
		4, "agent@example.com", domain.RoleAgent, time.Hour, s.jwtSecret)
	s.Require().NoError(agentTokenErr)

	s.mockLedgerService.EXPECT().
		CashRequests(gomock.Any(), domain.RequestKindCashOut, int64(4), domain.RoleAgent).
		Return([]domain.CashRequest{
			{ID: 1, Kind: domain.RequestKindCashOut, AgentID: 4, Amount: decimal.NewFromInt(500)},
		}, nil)

	res := s.get(CashOutRequestsRoute, agentToken)
	defer func() {
		s.Require().NoError(res.Body.Close())
	}()

	s.Require().Equal(http.StatusOK, res.StatusCode)

	var body []CashRequestResponse
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
	s.Require().Len(body, 1)
}
