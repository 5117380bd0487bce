package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-service/internal/api/middleware"
	"github.com/d60-Lab/blog-service/internal/service"
	"github.com/d60-Lab/blog-service/pkg/response"
)

type publishRequest struct {
	Title    string `json:"title" binding:"required"`
	Category string `json:"category" binding:"required,category"`
	Summary  string `json:"summary" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Cover    string `json:"cover" binding:"required"`
}

type updatePostRequest struct {
	Title    *string `json:"title"`
	Category *string `json:"category" binding:"omitempty,category"`
	Summary  *string `json:"summary"`
	Content  *string `json:"content"`
	Cover    *string `json:"cover"`
}

// Publish 发布文章，作者取 token 身份
// @Summary 发布文章
// @Tags 文章
// @Accept json
// @Produce json
// @Param request body publishRequest true "文章内容"
// @Success 201 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Security ApiKeyAuth
// @Router /posts [post]
func (h *Handler) Publish(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.postService.Publish(c.Request.Context(), middleware.UserID(c), service.PublishInput{
		Title:    req.Title,
		Category: req.Category,
		Summary:  req.Summary,
		Content:  req.Content,
		Cover:    req.Cover,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, "Post published", post)
}

// GetPost 文章详情（编辑页回填用）
// @Summary 文章详情
// @Tags 文章
// @Param id path string true "文章ID"
// @Produce json
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 404 {object} response.Response
// @Router /posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.postService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// ListPosts 文章列表
// @Summary 文章列表
// @Tags 文章
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Param category query string false "按分类过滤"
// @Produce json
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	category := c.Query("category")
	list, err := h.postService.List(c.Request.Context(), category, page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// UpdatePost 部分更新；非作者返回 403
// @Summary 更新文章
// @Tags 文章
// @Accept json
// @Produce json
// @Param id path string true "文章ID"
// @Param request body updatePostRequest true "补丁字段"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Security ApiKeyAuth
// @Router /posts/update/{id} [patch]
func (h *Handler) UpdatePost(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.postService.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), service.UpdateInput{
		Title:    req.Title,
		Category: req.Category,
		Summary:  req.Summary,
		Content:  req.Content,
		Cover:    req.Cover,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, post)
}

// Categories 分类及文章计数
// @Summary 分类统计
// @Tags 文章
// @Produce json
// @Success 200 {object} response.Response{data=[]model.CategoryStat}
// @Router /categories [get]
func (h *Handler) Categories(c *gin.Context) {
	stats, err := h.postService.CategoryStats(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, stats)
}
