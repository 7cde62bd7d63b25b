package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/service"
	"github.com/fsdevblog/groph-pay/internal/transport/api/tokens"
)

type AuthHandler struct {
	accountService AccountServicer
	jwtSecretKey   []byte
}

func NewAuthHandler(accountService AccountServicer, jwtSecretKey []byte) *AuthHandler {
	return &AuthHandler{
		accountService: accountService,
		jwtSecretKey:   jwtSecretKey,
	}
}

type RegisterParams struct {
	Name         string          `binding:"required,min=1,max=100"       json:"name"`
	Pin          string          `binding:"required,numeric,len=5"       json:"pin"`
	MobileNumber string          `binding:"required,msisdn"              json:"mobileNumber"`
	Email        string          `binding:"required,email"               json:"email"`
	Role         domain.RoleType `binding:"omitempty,oneof=user agent"   json:"role"`
}

// Register POST RegisterRoute. Создает аккаунт со статусом pending; роль admin
// через регистрацию получить нельзя.
func (h *AuthHandler) Register(c *gin.Context) {
	var params RegisterParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		var valErrs validator.ValidationErrors
		if errors.As(bindErr, &valErrs) {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
			return
		}
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, createErr := h.accountService.Register(ctx, service.RegisterArgs{
		Name:         params.Name,
		Pin:          params.Pin,
		MobileNumber: params.MobileNumber,
		Email:        params.Email,
		Role:         params.Role,
	})
	if createErr != nil {
		if errors.Is(createErr, domain.ErrDuplicateKey) {
			_ = c.AbortWithError(http.StatusConflict, errors.New("user with this email or mobile number already exists")).
				SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, createErr).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"insertedId": user.ID})
}

type LoginParams struct {
	EmailOrPhone string `binding:"required" json:"emailOrPhone"`
	Pin          string `binding:"required" json:"pin"`
}

// Login POST LoginRoute. Аутентификация по email либо номеру телефона и ПИН-коду.
// Несуществующий юзер и неверный ПИН неразличимы в ответе.
func (h *AuthHandler) Login(c *gin.Context) {
	var params LoginParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, token, err := h.accountService.Login(ctx, service.LoginArgs{
		EmailOrPhone: params.EmailOrPhone,
		Pin:          params.Pin,
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) || errors.Is(err, domain.ErrPinMismatch) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": newUserResponse(user)})
}

type TokenParams struct {
	UserID int64           `json:"userId"`
	Email  string          `json:"email"`
	Role   domain.RoleType `json:"role"`
}

// IssueToken POST TokenRoute. Подписывает переданные клеймы как сессионный токен.
// Роль здесь ничего не дает: все ролевые проверки перечитывают ее из базы.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var params TokenParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	token, err := tokens.GenerateSessionJWT(
		params.UserID, params.Email, params.Role, service.SessionTokenExpire, h.jwtSecretKey)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
