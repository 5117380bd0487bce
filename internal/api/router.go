package api

import (
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "github.com/d60-Lab/blog-service/docs"
	"github.com/d60-Lab/blog-service/internal/api/handler"
	"github.com/d60-Lab/blog-service/internal/api/middleware"
	"github.com/d60-Lab/blog-service/internal/auth"
	"github.com/d60-Lab/blog-service/internal/config"
	"github.com/d60-Lab/blog-service/internal/model"
	"github.com/d60-Lab/blog-service/pkg/response"
)

// RegisterValidators 注册自定义校验规则（category 枚举）
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			return model.ValidCategory(fl.Field().String())
		})
	}
}

type HealthChecker func() error

// NewRouter 组装全部中间件与路由
func NewRouter(cfg *config.Config, h *handler.Handler, tokens *auth.TokenManager, health HealthChecker) *gin.Engine {
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	RegisterValidators()

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, err interface{}) {
		sentry.CurrentHub().Recover(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Code:    http.StatusInternalServerError,
			Message: "internal server error",
		})
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	if cfg.Trace.Enabled {
		r.Use(otelgin.Middleware("blog-service"))
	}

	limited := middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	r.POST("/register", limited, h.Register)
	r.POST("/login", limited, h.Login)
	r.POST("/logout", h.Logout)

	r.GET("/posts", h.ListPosts)
	r.GET("/posts/:id", h.GetPost)
	r.GET("/categories", h.Categories)

	authed := r.Group("/")
	authed.Use(middleware.Auth(tokens))
	{
		authed.PATCH("/saved/add", h.SavedAdd)
		authed.PATCH("/saved/remove", h.SavedRemove)
		authed.POST("/posts", h.Publish)
		authed.PATCH("/posts/update/:id", h.UpdatePost)
	}

	r.GET("/healthz", func(c *gin.Context) {
		if health != nil {
			if err := health(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": fmt.Sprintf("unhealthy: %v", err)})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
