package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/railway_station/configs"
	"github.com/railway_station/internal/models"
)

const (
	tokenIssuer          = "railway_station"
	defaultSessionCookie = "railway_token"
)

// ErrTokenRevoked Token 已登出
var ErrTokenRevoked = errors.New("token has been revoked")

// Claims 定义了JWT中存储的自定义声明。
// JTI (ID) 会通过内嵌的 jwt.RegisteredClaims 提供
type Claims struct {
	UserID   int64       `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(configs.AppConfig.JWTSecret)
}

func tokenTTL() time.Duration {
	if h := configs.AppConfig.JWTExpiresHours; h > 0 {
		return time.Duration(h) * time.Hour
	}
	return 24 * time.Hour
}

// SessionCookieName 网页会话 Cookie 名
func SessionCookieName() string {
	if name := configs.AppConfig.SessionCookie; name != "" {
		return name
	}
	return defaultSessionCookie
}

// GenerateToken 为用户签发 HS256 Token
func GenerateToken(creds *models.UserCredentials) (string, *Claims, error) {
	expirationTime := time.Now().Add(tokenTTL())
	claims := &Claims{
		UserID:   creds.ID,
		Username: creds.Username,
		Role:     creds.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   creds.Username,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret())
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return tokenString, claims, nil
}

// ParseToken 校验签名、有效期、JTI 和拒绝列表
func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// 确保token的签名方法是我们期望的 HMAC
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret(), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	// 检查JTI是否存在
	if claims.ID == "" {
		return nil, errors.New("token missing JTI (JWT ID)")
	}
	if IsTokenDenylisted(claims.ID) {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// SetSessionCookie 网页登录后写入 HttpOnly Cookie
func SetSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName(), token, maxAge, "/", "", configs.AppConfig.Env == "prod", true)
}

// ClearSessionCookie 删除网页会话 Cookie
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName(), "", -1, "/", "", configs.AppConfig.Env == "prod", true)
}
