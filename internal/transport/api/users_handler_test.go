package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/logger"
	"github.com/fsdevblog/groph-pay/internal/transport/api/mocks"
	"github.com/fsdevblog/groph-pay/internal/transport/api/testutils"
	"github.com/fsdevblog/groph-pay/internal/transport/api/tokens"
)

type UsersHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *mocks.MockAccountServicer
	jwtSecret          []byte
}

func TestUsersHandlerSuite(t *testing.T) {
	suite.Run(t, new(UsersHandlerTestSuite))
}

func (s *UsersHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())

	s.mockAccountService = mocks.NewMockAccountServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:          logger.New(os.Stdout),
		AccountService:  s.mockAccountService,
		TransferService: mocks.NewMockTransferServicer(mockCtrl),
		LedgerService:   mocks.NewMockLedgerServicer(mockCtrl),
		JWTSecretKey:    s.jwtSecret,
	})
}

func (s *UsersHandlerTestSuite) sessionToken(userID int64, email string, role domain.RoleType) string {
	token, err := tokens.GenerateSessionJWT(userID, email, role, time.Hour, s.jwtSecret)
	s.Require().NoError(err)

	s.mockAccountService.EXPECT().
		GetByEmail(gomock.Any(), email).
		Return(&domain.User{ID: userID, Email: email, Role: role}, nil).
		AnyTimes()
	return token
}

func (s *UsersHandlerTestSuite) request(method, url, token string, payload any) *http.Response {
	var body *bytes.Reader
	if payload != nil {
		raw, marshalErr := json.Marshal(payload)
		s.Require().NoError(marshalErr)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	reqOpts := []func(*testutils.RequestOptions){
		testutils.WithHeader("Content-Type", "application/json"),
	}
	if token != "" {
		reqOpts = append(reqOpts, testutils.WithBearerToken(token))
	}

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: method,
		URL:    url,
		Body:   body,
	}, reqOpts...)
	s.Require().NoError(err)
	return res
}

func (s *UsersHandlerTestSuite) TestCurrent() {
	userToken := s.sessionToken(7, "user@example.com", domain.RoleUser)

	s.mockAccountService.EXPECT().
		GetByID(gomock.Any(), int64(7)).
		Return(&domain.User{ID: 7, Email: "user@example.com", PinHash: "secret hash"}, nil)

	res := s.request(http.MethodGet, CurrentUserRoute, userToken, nil)
	defer func() {
		s.Require().NoError(res.Body.Close())
	}()

	s.Require().Equal(http.StatusOK, res.StatusCode)

	// ПИН-хеш не должен утекать в ответ.
	var body map[string]json.RawMessage
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
	s.NotContains(string(body["user"]), "secret hash")
}

func (s *UsersHandlerTestSuite) TestIsAdminForeignEmail() {
	userToken := s.sessionToken(7, "user@example.com", domain.RoleUser)

	res := s.request(http.MethodGet, "/users/admin/other@example.com", userToken, nil)
	defer func() {
		s.Require().NoError(res.Body.Close())
	}()

	s.Equal(http.StatusForbidden, res.StatusCode)
}

func (s *UsersHandlerTestSuite) TestApprove() {
	adminToken := s.sessionToken(1, "admin@example.com", domain.RoleAdmin)
	userToken := s.sessionToken(7, "user@example.com", domain.RoleUser)

	s.mockAccountService.EXPECT().
		ApproveRegistration(gomock.Any(), int64(10)).
		Return(&domain.User{ID: 10, Status: domain.UserStatusActive}, nil)
	s.mockAccountService.EXPECT().
		ApproveRegistration(gomock.Any(), int64(11)).
		Return(nil, domain.ErrRequestProcessed)

	cases := []struct {
		name       string
		payload    gin.H
		token      string
		wantStatus int
	}{
		{name: "all ok", payload: gin.H{"requestId": 10}, token: adminToken, wantStatus: http.StatusOK},
		{name: "already processed", payload: gin.H{"requestId": 11}, token: adminToken, wantStatus: http.StatusBadRequest},
		{name: "non-admin rejected", payload: gin.H{"requestId": 10}, token: userToken, wantStatus: http.StatusForbidden},
		{name: "not authorized", payload: gin.H{"requestId": 10}, wantStatus: http.StatusUnauthorized},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.request(http.MethodPost, ApproveUserRoute, t.token, t.payload)
			defer func() {
				s.Require().NoError(res.Body.Close())
			}()

			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *UsersHandlerTestSuite) TestAdminMutations() {
	adminToken := s.sessionToken(1, "admin@example.com", domain.RoleAdmin)

	s.mockAccountService.EXPECT().Activate(gomock.Any(), int64(5)).Return(nil)
	s.mockAccountService.EXPECT().SetRole(gomock.Any(), int64(5), domain.RoleAgent).Return(nil)
	s.mockAccountService.EXPECT().SetRole(gomock.Any(), int64(5), domain.RoleAdmin).Return(nil)
	s.mockAccountService.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil)
	s.mockAccountService.EXPECT().Activate(gomock.Any(), int64(404)).Return(domain.ErrRecordNotFound)

	cases := []struct {
		name       string
		method     string
		url        string
		wantStatus int
	}{
		{name: "activate", method: http.MethodPatch, url: "/users/activate/5", wantStatus: http.StatusOK},
		{name: "make agent", method: http.MethodPatch, url: "/users/agent/5", wantStatus: http.StatusOK},
		{name: "make admin", method: http.MethodPatch, url: "/users/admin/5", wantStatus: http.StatusOK},
		{name: "delete", method: http.MethodDelete, url: "/users/5", wantStatus: http.StatusOK},
		{name: "activate unknown", method: http.MethodPatch, url: "/users/activate/404", wantStatus: http.StatusNotFound},
		{name: "bad id", method: http.MethodPatch, url: "/users/activate/abc", wantStatus: http.StatusBadRequest},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.request(t.method, t.url, adminToken, nil)
			defer func() {
				s.Require().NoError(res.Body.Close())
			}()

			s.Equal(t.wantStatus, res.StatusCode)

			if t.wantStatus == http.StatusOK {
				var body struct {
					ModifiedCount int `json:"modifiedCount"`
				}
				s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
				s.Equal(1, body.ModifiedCount)
			}
		})
	}
}
