package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/ink-point/api-go/utils"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

func parseClaims(c *gin.Context) (*utils.UserClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errors.New("authorization header is required")
	}

	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 {
		return nil, errors.New("invalid token format")
	}

	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(bearerToken[1], claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return &utils.UserClaims{
		UserID:   uint(userID),
		Username: username,
		Role:     role,
	}, nil
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userClaims, err := parseClaims(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(string(utils.UserContextKey), userClaims)
		c.Next()
	}
}

// OptionalAuthMiddleware sets claims when a valid token is present but
// lets anonymous requests through. The index and profile routes use it.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userClaims, err := parseClaims(c); err == nil {
			c.Set(string(utils.UserContextKey), userClaims)
		}
		c.Next()
	}
}
