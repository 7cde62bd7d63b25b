package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-pay/internal/domain"
)

type UsersHandler struct {
	accountService AccountServicer
}

func NewUsersHandler(accountService AccountServicer) *UsersHandler {
	return &UsersHandler{
		accountService: accountService,
	}
}

// Current GET CurrentUserRoute. Юзер по токену, ПИН-хеш в ответ не попадает.
func (h *UsersHandler) Current(c *gin.Context) {
	claims := getClaimsFromContext(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, err := h.accountService.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

// Role GET RoleRoute. Роль юзера по email.
func (h *UsersHandler) Role(c *gin.Context) {
	email := c.Param("email")

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, err := h.accountService.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": user.Role})
}

// IsAdmin GET IsAdminRoute. Проверка собственной роли: чужой email запрещен.
func (h *UsersHandler) IsAdmin(c *gin.Context) {
	claims := getClaimsFromContext(c)
	email := c.Param("email")

	if email != claims.Email {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "unauthorized access"})
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, err := h.accountService.GetByEmail(ctx, email)
	isAdmin := err == nil && user.Role == domain.RoleAdmin
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"admin": isAdmin})
}

// Index GET UsersRoute / AllUsersRoute (admin). Все юзеры, свежие регистрации первыми.
func (h *UsersHandler) Index(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	users, err := h.accountService.ListUsers(ctx)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]UserResponse, len(users))
	for i := range users {
		response[i] = newUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, response)
}

type ApproveRegistrationParams struct {
	RequestID int64 `binding:"required" json:"requestId"`
}

// Approve POST ApproveUserRoute (admin). Одобрение заявки на регистрацию с начислением бонуса.
func (h *UsersHandler) Approve(c *gin.Context) {
	var params ApproveRegistrationParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if _, err := h.accountService.ApproveRegistration(ctx, params.RequestID); err != nil {
		if errors.Is(err, domain.ErrRequestProcessed) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid or already processed request"})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User approved successfully"})
}

// Activate PATCH ActivateUserRoute (admin). Статус active и баланс ровно 40.
func (h *UsersHandler) Activate(c *gin.Context) {
	h.mutateByID(c, func(ctx context.Context, id int64) error {
		return h.accountService.Activate(ctx, id)
	})
}

// MakeAdmin PATCH MakeAdminRoute (admin).
func (h *UsersHandler) MakeAdmin(c *gin.Context) {
	h.mutateByID(c, func(ctx context.Context, id int64) error {
		return h.accountService.SetRole(ctx, id, domain.RoleAdmin)
	})
}

// MakeAgent PATCH MakeAgentRoute (admin).
func (h *UsersHandler) MakeAgent(c *gin.Context) {
	h.mutateByID(c, func(ctx context.Context, id int64) error {
		return h.accountService.SetRole(ctx, id, domain.RoleAgent)
	})
}

// Delete DELETE DeleteUserRoute (admin).
func (h *UsersHandler) Delete(c *gin.Context) {
	h.mutateByID(c, func(ctx context.Context, id int64) error {
		return h.accountService.Delete(ctx, id)
	})
}

// mutateByID общий каркас админских мутаций по /users/.../:id - парсинг id,
// маппинг ошибок, ответ с единичным счетчиком измененных записей.
func (h *UsersHandler) mutateByID(c *gin.Context, fn func(context.Context, int64) error) {
	id, parseErr := strconv.ParseInt(c.Param("id"), 10, 64)
	if parseErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, parseErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if err := fn(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{"modifiedCount": 1})
}
