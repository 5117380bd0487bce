package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-service/internal/service"
	"github.com/d60-Lab/blog-service/pkg/response"
)

// 头像上限 4MB，超出直接拒收，不往上传服务送
const maxAvatarBytes = 4 << 20

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register 用户注册（multipart：name/email/password + avatar_url 文件）
// @Summary 注册账号
// @Tags 用户
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "昵称"
// @Param email formData string true "邮箱"
// @Param password formData string true "密码"
// @Param avatar_url formData file true "头像文件"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /register [post]
func (h *Handler) Register(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")
	if name == "" || email == "" || password == "" {
		response.BadRequest(c, "name, email and password are required")
		return
	}
	fileHeader, err := c.FormFile("avatar_url")
	if err != nil {
		response.BadRequest(c, "avatar file is required")
		return
	}
	if fileHeader.Size > maxAvatarBytes {
		response.BadRequest(c, "avatar file too large (max 4MB)")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "avatar file is unreadable")
		return
	}
	defer file.Close()

	in := service.RegisterInput{
		Name:       name,
		Email:      email,
		Password:   password,
		Avatar:     file,
		AvatarName: fileHeader.Filename,
	}
	if err := h.authService.Register(c.Request.Context(), in); err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, "Account created", nil)
}

// Login 登录并签发 token
// @Summary 登录
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录凭证"
// @Success 200 {object} response.Response{data=service.LoginResult}
// @Failure 400 {object} response.Response
// @Router /login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// Logout 无状态登出（token 不做服务端吊销）
// @Summary 登出
// @Tags 用户
// @Produce json
// @Success 200 {object} response.Response
// @Router /logout [post]
func (h *Handler) Logout(c *gin.Context) {
	response.Success(c, gin.H{"message": "Logged Out"})
}
