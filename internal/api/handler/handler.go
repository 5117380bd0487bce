package handler

import (
	"github.com/d60-Lab/blog-service/internal/service"
)

// Handler 聚合各业务 service，供路由注册使用
type Handler struct {
	authService  service.AuthService
	postService  service.PostService
	savedService service.SavedService
}

func New(authService service.AuthService, postService service.PostService, savedService service.SavedService) *Handler {
	return &Handler{
		authService:  authService,
		postService:  postService,
		savedService: savedService,
	}
}
