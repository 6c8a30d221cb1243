package handler

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/user/movieapi/internal/middleware"
	"github.com/user/movieapi/internal/model"
	"github.com/user/movieapi/internal/utils"
)

// RegisterRequest 注册请求体
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
}

// LoginRequest 登录请求体
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 认证响应（Token + 用户信息）
type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数有误")
		return
	}

	existing, err := h.Repos.User.FindByEmail(req.Email)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if existing != nil {
		utils.BadRequest(c, "邮箱已被注册")
		return
	}

	user, err := h.Repos.User.Create(req.Email, req.Password, req.FirstName, req.LastName, "user")
	if err != nil {
		log.Printf("[Auth] 创建用户失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	h.issueToken(c, user)
}

// RegisterAdmin 注册管理员（仅当系统尚无管理员时允许）
func (h *Handler) RegisterAdmin(c *gin.Context) {
	exists, err := h.Repos.User.AdminExists()
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if exists {
		utils.Forbidden(c, "管理员已存在")
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数有误")
		return
	}

	user, err := h.Repos.User.Create(req.Email, req.Password, req.FirstName, req.LastName, "admin")
	if err != nil {
		log.Printf("[Auth] 创建管理员失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	h.issueToken(c, user)
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数有误")
		return
	}

	user, err := h.Repos.User.FindByEmail(req.Email)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}
	if user == nil || !h.Repos.User.VerifyPassword(user, req.Password) {
		utils.Unauthorized(c, "邮箱或密码错误")
		return
	}

	h.issueToken(c, user)
}

// Validate 校验当前 Token 是否有效
func (h *Handler) Validate(c *gin.Context) {
	utils.Success(c, gin.H{
		"user_id": middleware.GetUserID(c),
		"email":   c.GetString("email"),
		"role":    c.GetString("role"),
	})
}

// Me 当前登录用户信息
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Repos.User.FindByID(middleware.GetUserID(c))
	if err != nil || user == nil {
		utils.Unauthorized(c, "")
		return
	}

	utils.Success(c, user)
}

// issueToken 签发 Token 并写入 Cookie
func (h *Handler) issueToken(c *gin.Context, user *model.User) {
	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		log.Printf("[Auth] 签发 Token 失败 user=%d: %v", user.ID, err)
		utils.InternalServerError(c, "")
		return
	}

	c.SetCookie("token", token, int(h.Config.JWTExpiry.Seconds()), "/", "", false, true)
	utils.Success(c, AuthResponse{Token: token, User: user})
}
