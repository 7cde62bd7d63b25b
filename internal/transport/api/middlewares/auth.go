package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-pay/internal/domain"
	"github.com/fsdevblog/groph-pay/internal/transport/api/tokens"
)

var ErrTokenNotExist = errors.New("token not exist")

const CurrentClaimsKey = "currentClaims"

const roleLookupTimeout = 3 * time.Second

// checkAuthorization извлекает токен из заголовка Authorization и проверяет его.
// Если токен не передан, вернется ошибка ErrTokenNotExist.
func checkAuthorization(c *gin.Context, jwtTokenSecret []byte) (*tokens.SessionClaims, error) {
	tokenHeader := c.GetHeader("Authorization")
	bearer := "Bearer "

	if len(tokenHeader) < len(bearer) || tokenHeader[:len(bearer)] != bearer {
		return nil, ErrTokenNotExist
	}

	claims, err := tokens.ValidateSessionJWT(tokenHeader[len(bearer):], jwtTokenSecret)
	if err != nil {
		return nil, fmt.Errorf("check authorization: %w", err)
	}
	return claims, nil
}

// AuthRequired проверяет, что запрос авторизован, и кладет клеймы сессии в контекст
// (поле CurrentClaimsKey).
func AuthRequired(jwtTokenSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := checkAuthorization(c, jwtTokenSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			if !errors.Is(err, ErrTokenNotExist) {
				_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			}
			return
		}
		c.Set(CurrentClaimsKey, claims)
		c.Next()
	}
}

// UserRoleResolver отдает юзера по email. Нужен ровно для перечитывания роли из базы.
type UserRoleResolver interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// RoleRequired пускает дальше только запросы юзеров с ролью role. Роль перечитывается
// из базы на каждый запрос: роль в токене могла устареть (например, после админской
// смены роли), кешировать ее нельзя.
func RoleRequired(role domain.RoleType, resolver UserRoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsVal, ok := c.Get(CurrentClaimsKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		claims, castOk := claimsVal.(*tokens.SessionClaims)
		if !castOk {
			_ = c.AbortWithError(http.StatusInternalServerError, errors.New("invalid claims type in context")).
				SetType(gin.ErrorTypePrivate)
			return
		}

		ctx, cancel := context.WithTimeout(c, roleLookupTimeout)
		defer cancel()

		user, err := resolver.GetByEmail(ctx, claims.Email)
		if err != nil || user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
				_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			}
			return
		}
		c.Next()
	}
}
