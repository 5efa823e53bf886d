package middlewares

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/techshop/techshop-api/initializers"
	"github.com/techshop/techshop-api/models"
)

// CurrentUser resolves the customer from a bearer token when one is
// present but lets anonymous requests through, so cart routes can fall
// back to a session cart.
func CurrentUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.Next()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			ctx.Next()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			ctx.Next()
			return
		}
		ctx.Set("user", claims)

		if userId, ok := claims["user_id"].(float64); ok {
			if customer, err := models.CustomerByUserID(initializers.DB, uint(userId)); err == nil {
				ctx.Set("customer", customer)
			}
		}

		ctx.Next()
	}
}
