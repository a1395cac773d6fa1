package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/railway_station/internal/auth"
	"github.com/railway_station/internal/models"
	"github.com/railway_station/internal/services"
	"github.com/railway_station/pkg/utils"
)

// AdminHandler 用户列表和角色管理
type AdminHandler struct {
	users services.UserService
}

// NewAdminHandler 创建一个新的 AdminHandler 实例
func NewAdminHandler(users services.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// UpdateRolePayload 修改角色的请求体
type UpdateRolePayload struct {
	Role models.Role `json:"role" binding:"required"`
}

// RoleForm 管理页修改角色的表单
type RoleForm struct {
	UserID  int64       `form:"userId" binding:"required,gt=0"`
	NewRole models.Role `form:"newRole" binding:"required"`
}

// ListUsers godoc
// @Summary 用户列表
// @Description 按 ID 升序返回全部用户，仅管理员可用
// @Tags Users
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]models.User}
// @Failure 403 {object} utils.APIErrorResponse "需要管理员权限"
// @Router /users [get]
// @Security BearerAuth
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, users, "")
}

// UpdateUserRole godoc
// @Summary 修改用户角色
// @Description 管理员不能修改自己的角色
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "用户ID"
// @Param payload body UpdateRolePayload true "新角色 (ROLE_USER 或 ROLE_ADMIN)"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.APIErrorResponse "未知角色"
// @Failure 403 {object} utils.APIErrorResponse "不能修改自己的角色"
// @Failure 404 {object} utils.APIErrorResponse "用户不存在"
// @Router /users/{id}/role [patch]
// @Security BearerAuth
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var payload UpdateRolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationError(c, utils.BindingErrorDetails(err))
		return
	}

	if err := h.users.UpdateRole(c.Request.Context(), id, payload.Role, auth.CurrentUsername(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, nil, "Role updated")
}

// AdminPage 管理页：用户列表和角色下拉框
func (h *AdminHandler) AdminPage(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		status, message := errorStatus(err)
		c.HTML(status, "error.html", viewData(c, gin.H{"Title": "Error", "Message": message}))
		return
	}
	data := gin.H{
		"Title": "Administration",
		"Users": users,
		"Roles": []models.Role{models.RoleUser, models.RoleAdmin},
	}
	if msg := c.Query("error"); msg != "" {
		data["Error"] = msg
	}
	if c.Query("updated") == "true" {
		data["Success"] = "Role updated"
	}
	c.HTML(http.StatusOK, "admin.html", viewData(c, data))
}

// UpdateRoleSubmit 管理页提交角色修改，结果通过重定向参数带回
func (h *AdminHandler) UpdateRoleSubmit(c *gin.Context) {
	var form RoleForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusFound, "/admin?error="+url.QueryEscape("User and role are required"))
		return
	}
	if err := h.users.UpdateRole(c.Request.Context(), form.UserID, form.NewRole, auth.CurrentUsername(c)); err != nil {
		_, message := errorStatus(err)
		c.Redirect(http.StatusFound, "/admin?error="+url.QueryEscape(message))
		return
	}
	c.Redirect(http.StatusFound, "/admin?updated=true")
}
