package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	StatusRoute          = "/"
	MetricsRoute         = "/metrics"
	RegisterRoute        = "/register"
	LoginRoute           = "/login"
	TokenRoute           = "/jwt"
	CurrentUserRoute     = "/user"
	RoleRoute            = "/users/role/:email"
	IsAdminRoute         = "/users/admin/:email"
	AllUsersRoute        = "/all-user"
	UsersRoute           = "/users"
	ApproveUserRoute     = "/user/approve"
	ActivateUserRoute    = "/users/activate/:id"
	MakeAdminRoute       = "/users/admin/:id"
	MakeAgentRoute       = "/users/agent/:id"
	DeleteUserRoute      = "/users/:id"
	SendRoute            = "/send"
	CashInRequestRoute   = "/cashin-request"
	CashOutRequestRoute  = "/cashout-request"
	CashInRequestsRoute  = "/cashin-requests"
	CashOutRequestsRoute = "/cashout-requests"
	CashInApproveRoute   = "/cashin/approve"
	CashOutApproveRoute  = "/cashout/approve"
	BalanceRoute         = "/balance"
	TransactionsRoute    = "/transactions"
)

var registerValidatorsOnce sync.Once

type RouterArgs struct {
	Logger          *logrus.Logger
	AccountService  AccountServicer
	TransferService TransferServicer
	LedgerService   LedgerServicer
	JWTSecretKey    []byte
}

func New(args RouterArgs) *gin.Engine {
	registerValidatorsOnce.Do(func() {
		if err := registerValidators(); err != nil {
			panic(err)
		}
	})

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())
	r.Use(middlewares.Metrics())
	r.Use(cors.Default())

	authHandler := NewAuthHandler(args.AccountService, args.JWTSecretKey)
	usersHandler := NewUsersHandler(args.AccountService)
	transferHandler := NewTransferHandler(args.TransferService)
	ledgerHandler := NewLedgerHandler(args.LedgerService, args.AccountService)

	r.GET(StatusRoute, func(c *gin.Context) {
		c.String(http.StatusOK, "MFS server is running")
	})
	r.GET(MetricsRoute, gin.WrapH(promhttp.Handler()))

	r.POST(RegisterRoute, authHandler.Register)
	r.POST(LoginRoute, authHandler.Login)
	r.POST(TokenRoute, authHandler.IssueToken)

	// ниже все роуты требуют авторизованного юзера.
	auth := r.Group("", middlewares.AuthRequired(args.JWTSecretKey))

	auth.GET(CurrentUserRoute, usersHandler.Current)
	auth.GET(RoleRoute, usersHandler.Role)
	auth.GET(IsAdminRoute, usersHandler.IsAdmin)
	auth.GET(BalanceRoute, ledgerHandler.Balance)
	auth.GET(TransactionsRoute, ledgerHandler.Transactions)
	auth.POST(CashInRequestRoute, transferHandler.CreateCashInRequest)
	auth.POST(CashOutRequestRoute, transferHandler.CreateCashOutRequest)
	auth.GET(CashInRequestsRoute, ledgerHandler.CashInRequests)
	auth.GET(CashOutRequestsRoute, ledgerHandler.CashOutRequests)

	admin := auth.Group("", middlewares.RoleRequired(domain.RoleAdmin, args.AccountService))
	admin.GET(AllUsersRoute, usersHandler.Index)
	admin.GET(UsersRoute, usersHandler.Index)
	admin.POST(ApproveUserRoute, usersHandler.Approve)
	admin.PATCH(ActivateUserRoute, usersHandler.Activate)
	admin.PATCH(MakeAdminRoute, usersHandler.MakeAdmin)
	admin.PATCH(MakeAgentRoute, usersHandler.MakeAgent)
	admin.DELETE(DeleteUserRoute, usersHandler.Delete)

	user := auth.Group("", middlewares.RoleRequired(domain.RoleUser, args.AccountService))
	user.POST(SendRoute, transferHandler.Send)

	agent := auth.Group("", middlewares.RoleRequired(domain.RoleAgent, args.AccountService))
	agent.POST(CashInApproveRoute, transferHandler.ApproveCashIn)
	agent.POST(CashOutApproveRoute, transferHandler.ApproveCashOut)

	return r
}
