package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-service/internal/api/middleware"
	"github.com/d60-Lab/blog-service/pkg/response"
)

// savedRequest 收藏目标；操作者身份来自 token，不信任请求体
type savedRequest struct {
	PostID string `json:"post_id" binding:"required"`
}

// SavedAdd 收藏文章
// @Summary 添加收藏
// @Tags 收藏
// @Accept json
// @Produce json
// @Param request body savedRequest true "文章ID"
// @Success 200 {object} response.Response{data=[]string}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Security ApiKeyAuth
// @Router /saved/add [patch]
func (h *Handler) SavedAdd(c *gin.Context) {
	var req savedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	list, err := h.savedService.Add(c.Request.Context(), middleware.UserID(c), req.PostID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, list)
}

// SavedRemove 取消收藏
// @Summary 移除收藏
// @Tags 收藏
// @Accept json
// @Produce json
// @Param request body savedRequest true "文章ID"
// @Success 200 {object} response.Response{data=[]string}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Security ApiKeyAuth
// @Router /saved/remove [patch]
func (h *Handler) SavedRemove(c *gin.Context) {
	var req savedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	list, err := h.savedService.Remove(c.Request.Context(), middleware.UserID(c), req.PostID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, list)
}
