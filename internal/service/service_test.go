package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-service/internal/auth"
	"github.com/d60-Lab/blog-service/internal/model"
	"github.com/d60-Lab/blog-service/internal/repository"
	"github.com/d60-Lab/blog-service/internal/upload"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.SavedPost{}, &model.CategoryStat{}))
	return db
}

// fakeImageHost 模拟图床：POST 上传返回 secure_url
func fakeImageHost(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://res.example/avatar.png"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newUploader(t *testing.T) *upload.Client {
	t.Helper()
	c := upload.NewClient("test-cloud", "test-preset")
	c.BaseURL = fakeImageHost(t).URL
	return c
}

func newAuthService(t *testing.T, db *gorm.DB) (AuthService, *auth.TokenManager) {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	svc := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewSavedPostRepository(db),
		tokens,
		newUploader(t),
	)
	return svc, tokens
}

func registerInput(email string) RegisterInput {
	return RegisterInput{
		Name:       "tester",
		Email:      email,
		Password:   "s3cret",
		Avatar:     strings.NewReader("fake-image-bytes"),
		AvatarName: "avatar.png",
	}
}
