package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenNotFound = apperror.New(apperror.CodeUnauthorized, "Token not found", http.StatusUnauthorized)
	ErrInvalidToken  = apperror.New("INVALID_TOKEN", "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired  = apperror.New("TOKEN_EXPIRED", "Token has expired", http.StatusUnauthorized)

	ErrUnknownEmployee = apperror.New(apperror.CodeUnauthorized, "Employee no longer exists", http.StatusUnauthorized)
)

func abortWith(c *gin.Context, err *apperror.AppError, details any) {
	response.Error(c, err.Status(), err.Code, err.Message, details)
	c.Abort()
}

// AuthMiddleware validates an HS256 bearer token (or access_token cookie)
// whose sub claim is the employee's uuid, and exposes that employee's current
// numeric id and role on the gin context.
func AuthMiddleware(secret string, actors ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, ErrTokenNotFound, nil)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWith(c, ErrTokenExpired, nil)
				return
			}
			abortWith(c, ErrInvalidToken, nil)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, ErrInvalidToken, "Invalid token claims")
			return
		}

		sub, _ := claims["sub"].(string)
		employeeID, err := uuid.Parse(sub)
		if err != nil {
			abortWith(c, ErrInvalidToken, "Employee not found in token")
			return
		}

		// Numeric ids shift when employees are deleted, so they are never taken from the token.
		actor, err := actors.ResolveActor(c.Request.Context(), employeeID)
		if err != nil {
			if apperror.IsStoreUnavailable(err) {
				abortWith(c, apperror.ErrStoreUnavailable, nil)
				return
			}
			abortWith(c, ErrUnknownEmployee, nil)
			return
		}

		c.Set(ContextEmployeeID, actor.NumericID)
		c.Set(ContextRole, actor.Role)

		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(ContextRole)

		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		abortWith(c, apperror.ErrForbidden, nil)
	}
}
