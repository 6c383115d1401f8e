package utils

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"careops-backend/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Generate JWT token carrying the acting user and its workspace
func GenerateToken(userID, workspaceID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":         userID,
		"workspaceId": workspaceID,
		"exp":         time.Now().Add(time.Duration(config.C.JWTExpiryHours) * time.Hour).Unix(),
		"iat":         time.Now().Unix(),
	})

	if config.C.JWTSecret == "" {
		return "", errors.New("JWT_SECRET not set")
	}

	return token.SignedString([]byte(config.C.JWTSecret))
}

// Auth middleware
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "Authorization header required"})
			return
		}

		if len(tokenString) > 7 && strings.ToUpper(tokenString[0:6]) == "BEARER" {
			tokenString = tokenString[7:]
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(config.C.JWTSecret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid token"})
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			c.Set("userId", claims["sub"])
			c.Set("workspaceId", claims["workspaceId"])
		} else {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid token claims"})
			return
		}

		c.Next()
	}
}

func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// WorkspaceID pulls the acting workspace out of the request context set by
// AuthMiddleware.
func WorkspaceID(c *gin.Context) (string, bool) {
	v, exists := c.Get("workspaceId")
	if !exists {
		RespondWithError(c, http.StatusUnauthorized, "Workspace ID not found in context")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		RespondWithError(c, http.StatusUnauthorized, "Workspace ID not found in context")
		return "", false
	}
	return s, true
}
