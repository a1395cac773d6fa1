package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/railway_station/internal/auth"
	"github.com/railway_station/internal/models"
	"github.com/railway_station/internal/services"
	"github.com/railway_station/pkg/utils"
)

var errInvalidCredentials = errors.New("Invalid username or password")

// RegistrationNotifier 注册成功后的通知（例如邮件）
type RegistrationNotifier interface {
	SendRegistrationEmail(toEmail, username string) error
}

// AuthHandler 处理登录、注册和登出
type AuthHandler struct {
	users    services.UserService
	notifier RegistrationNotifier
}

// NewAuthHandler notifier 可以为 nil
func NewAuthHandler(users services.UserService, notifier RegistrationNotifier) *AuthHandler {
	return &AuthHandler{users: users, notifier: notifier}
}

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserInfo  `json:"user"`
}

type UserInfo struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// authenticate 查找用户并比较密码，成功后签发 Token
func (h *AuthHandler) authenticate(ctx context.Context, req LoginRequest) (string, *auth.Claims, *models.UserCredentials, error) {
	creds, err := h.users.AuthenticateLookup(ctx, req.Username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return "", nil, nil, errInvalidCredentials
		}
		return "", nil, nil, err
	}
	if err := auth.CheckPassword(creds.PasswordHash, req.Password); err != nil {
		return "", nil, nil, errInvalidCredentials
	}
	token, claims, err := auth.GenerateToken(creds)
	if err != nil {
		return "", nil, nil, err
	}
	return token, claims, creds, nil
}

func (h *AuthHandler) notifyRegistered(user *models.User) {
	if h.notifier == nil {
		return
	}
	go func(email, username string) {
		if err := h.notifier.SendRegistrationEmail(email, username); err != nil {
			slog.Warn("registration email not sent", "username", username, "error", err)
		}
	}(user.Email, user.Username)
}

// Login godoc
// @Summary 登录
// @Description 验证用户凭证并返回 JWT
// @Tags auth
// @Accept  json
// @Produce  json
// @Param credentials body LoginRequest true "登录凭证"
// @Success 200 {object} utils.SuccessResponse{data=LoginResponse} "登录成功，返回 Token 和用户信息"
// @Failure 400 {object} utils.APIErrorResponse "请求参数错误"
// @Failure 401 {object} utils.APIErrorResponse "无效的用户名或密码"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, utils.BindingErrorDetails(err))
		return
	}

	token, claims, creds, err := h.authenticate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			utils.RespondUnauthorizedError(c, err.Error())
			return
		}
		utils.RespondInternalServerError(c, "Could not sign in", err.Error())
		return
	}

	utils.RespondSuccess(c, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      UserInfo{ID: creds.ID, Username: creds.Username, Role: creds.Role},
	}, "Login successful")
}

// Register godoc
// @Summary 注册
// @Description 新用户角色固定为 ROLE_USER
// @Tags auth
// @Accept  json
// @Produce  json
// @Param user body models.RegistrationInput true "注册信息"
// @Success 201 {object} utils.SuccessResponse{data=models.User} "注册成功"
// @Failure 400 {object} utils.APIErrorResponse "数据校验失败"
// @Failure 409 {object} utils.APIErrorResponse "用户名、邮箱或手机号已存在"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondValidationError(c, utils.BindingErrorDetails(err))
		return
	}
	user, err := h.users.Register(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.notifyRegistered(user)
	utils.RespondSuccess(c, http.StatusCreated, user, "Registration successful")
}

// LogoutHandler godoc
// @Summary User logout
// @Description Logs out the current user by invalidating their token.
// @Tags auth
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} utils.SuccessResponse "成功登出"
// @Failure 400 {object} utils.APIErrorResponse "上下文中缺少JTI或EXP"
// @Router /auth/logout [post]
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	jti := c.GetString(auth.ContextJTI)
	expVal, expExists := c.Get(auth.ContextExpires)
	exp, okEXP := expVal.(time.Time)
	if jti == "" || !expExists || !okEXP {
		utils.RespondAPIError(c, http.StatusBadRequest, "Logout context error: JTI or EXP not found in context", nil)
		return
	}

	auth.AddToDenylist(jti, exp)
	auth.ClearSessionCookie(c)
	utils.RespondSuccess(c, http.StatusOK, nil, "Logged out")
}

// LoginPage 渲染登录页
func (h *AuthHandler) LoginPage(c *gin.Context) {
	data := gin.H{"Title": "Sign in", "LoginUsername": ""}
	if c.Query("logout") == "true" {
		data["Info"] = "You have been signed out."
	}
	if c.Query("registered") == "true" {
		data["Info"] = "Registration successful, please sign in."
	}
	c.HTML(http.StatusOK, "login.html", data)
}

// LoginSubmit 处理登录表单，成功后写入会话 Cookie
func (h *AuthHandler) LoginSubmit(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Title": "Sign in", "Error": "Username and password are required", "LoginUsername": req.Username})
		return
	}

	token, claims, _, err := h.authenticate(c.Request.Context(), req)
	if err != nil {
		status := http.StatusUnauthorized
		message := errInvalidCredentials.Error()
		if !errors.Is(err, errInvalidCredentials) {
			slog.ErrorContext(c.Request.Context(), "login failed", "error", err)
			status, message = http.StatusInternalServerError, "Could not sign in"
		}
		c.HTML(status, "login.html", gin.H{"Title": "Sign in", "Error": message, "LoginUsername": req.Username})
		return
	}

	auth.SetSessionCookie(c, token, claims.ExpiresAt.Time)
	c.Redirect(http.StatusFound, "/")
}

// RegisterPage 渲染注册页
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Title": "Register", "Form": models.RegistrationInput{}})
}

// RegisterSubmit 处理注册表单，失败时保留已填写的内容
func (h *AuthHandler) RegisterSubmit(c *gin.Context) {
	var input models.RegistrationInput
	if err := c.ShouldBind(&input); err != nil {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{"Title": "Register", "Error": err.Error(), "Form": input})
		return
	}
	user, err := h.users.Register(c.Request.Context(), input)
	if err != nil {
		status, message := errorStatus(err)
		input.Password = ""
		c.HTML(status, "register.html", gin.H{"Title": "Register", "Error": message, "Form": input})
		return
	}
	h.notifyRegistered(user)
	c.Redirect(http.StatusFound, "/login?registered=true")
}

// LogoutSubmit 网页登出：作废 Token 并清除 Cookie
func (h *AuthHandler) LogoutSubmit(c *gin.Context) {
	if token, err := c.Cookie(auth.SessionCookieName()); err == nil && token != "" {
		if claims, err := auth.ParseToken(token); err == nil && claims.ExpiresAt != nil {
			auth.AddToDenylist(claims.ID, claims.ExpiresAt.Time)
		}
	}
	auth.ClearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login?logout=true")
}
