package auth

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/railway_station/pkg/utils"
)

var (
	// tokenDenylist 存储已登出Token的JTI及其原始过期时间。
	// key: JTI (JWT ID), value: 该JTI的原始过期时间点。
	// 注意: 这是一个内存列表，服务重启会丢失。
	tokenDenylist = make(map[string]time.Time)
	denylistMutex = &sync.RWMutex{}
)

// 上下文中保存认证信息的键
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRole     = "role"
	ContextJTI      = "jti"
	ContextExpires  = "exp"
)

var errNoToken = errors.New("authorization header or session cookie is required")

// AddToDenylist 将JTI添加到拒绝列表，并清理已过期的条目。
func AddToDenylist(jti string, expiresAt time.Time) {
	denylistMutex.Lock()
	defer denylistMutex.Unlock()

	tokenDenylist[jti] = expiresAt

	// 清理拒绝列表中其他已完全过期的JTI
	now := time.Now()
	for id, exp := range tokenDenylist {
		if now.After(exp) {
			delete(tokenDenylist, id)
		}
	}
}

// IsTokenDenylisted 检查JTI是否在拒绝列表中且尚未过期。
func IsTokenDenylisted(jti string) bool {
	denylistMutex.RLock()
	defer denylistMutex.RUnlock()

	expTime, found := tokenDenylist[jti]
	if !found {
		return false
	}
	return time.Now().Before(expTime)
}

// tokenFromRequest 优先读取 Authorization: Bearer，其次读取网页会话 Cookie
func tokenFromRequest(c *gin.Context) (string, error) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", errors.New("Authorization header format must be Bearer {token}")
		}
		return parts[1], nil
	}
	if cookie, err := c.Cookie(SessionCookieName()); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", errNoToken
}

// describeTokenError 使用 errors.Is 来判断特定的JWT错误类型
func describeTokenError(err error) string {
	switch {
	case errors.Is(err, errNoToken):
		return err.Error()
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "Token is malformed"
	case errors.Is(err, jwt.ErrTokenExpired) || errors.Is(err, jwt.ErrTokenNotValidYet):
		return "Token is expired or not valid yet"
	case errors.Is(err, jwt.ErrSignatureInvalid):
		return "Invalid token signature"
	case errors.Is(err, ErrTokenRevoked):
		return "Token has been invalidated (logged out)"
	default:
		return "Invalid token: " + err.Error()
	}
}

// authenticate 解析请求中的 Token 并将声明写入上下文
func authenticate(c *gin.Context) error {
	tokenString, err := tokenFromRequest(c)
	if err != nil {
		return err
	}
	claims, err := ParseToken(tokenString)
	if err != nil {
		return err
	}

	// 将声明和关键信息存储在Gin上下文中，以便后续处理程序使用
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUsername, claims.Username)
	c.Set(ContextRole, claims.Role)
	c.Set(ContextJTI, claims.ID)
	if claims.ExpiresAt != nil {
		c.Set(ContextExpires, claims.ExpiresAt.Time)
	}
	return nil
}

// JWTMiddleware 用于 JSON API：认证失败返回 401
func JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authenticate(c); err != nil {
			utils.RespondUnauthorizedError(c, describeTokenError(err))
			return
		}
		c.Next()
	}
}

// SessionMiddleware 用于网页：认证失败清除 Cookie 并跳转到登录页
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authenticate(c); err != nil {
			ClearSessionCookie(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
