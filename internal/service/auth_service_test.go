package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/blog-service/internal/auth"
	"github.com/d60-Lab/blog-service/internal/model"
	"github.com/d60-Lab/blog-service/internal/repository"
	"github.com/d60-Lab/blog-service/internal/upload"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc, tokens := newAuthService(t, db)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, registerInput("alice@example.com")))

	var u model.User
	require.NoError(t, db.First(&u, "email = ?", "alice@example.com").Error)
	assert.Equal(t, "https://res.example/avatar.png", u.AvatarURL)
	// 密码只存哈希
	assert.NotEqual(t, "s3cret", u.Password)

	result, err := svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, result.ID)
	assert.Equal(t, "alice@example.com", result.Email)
	assert.NotEmpty(t, result.Token)
	assert.Empty(t, result.SavedPosts)

	// 登录签发的 token 必须能过 gate 校验
	userID, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAuthService(t, db)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, registerInput("dup@example.com")))
	err := svc.Register(ctx, registerInput("dup@example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	// 第二次尝试不得新增记录
	var cnt int64
	require.NoError(t, db.Model(&model.User{}).Where("email = ?", "dup@example.com").Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)
}

func TestAuthService_RegisterUploadFailure(t *testing.T) {
	db := setupTestDB(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	uploader := upload.NewClient("test-cloud", "test-preset")
	uploader.BaseURL = srv.URL

	svc := NewAuthService(
		repository.NewUserRepository(db),
		repository.NewSavedPostRepository(db),
		auth.NewTokenManager("test-secret", time.Hour),
		uploader,
	)

	err := svc.Register(context.Background(), registerInput("fail@example.com"))
	assert.ErrorIs(t, err, upload.ErrUploadFailed)

	// 上传失败不得落任何用户记录
	var cnt int64
	require.NoError(t, db.Model(&model.User{}).Count(&cnt).Error)
	assert.Equal(t, int64(0), cnt)
}

func TestAuthService_LoginUnifiedCredentialError(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAuthService(t, db)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, registerInput("bob@example.com")))

	_, errWrongPassword := svc.Login(ctx, "bob@example.com", "wrong")
	_, errUnknownEmail := svc.Login(ctx, "ghost@example.com", "whatever")

	// 未注册邮箱与密码错误必须不可区分
	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestAuthService_LoginReturnsSavedPosts(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newAuthService(t, db)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, registerInput("saved@example.com")))
	var u model.User
	require.NoError(t, db.First(&u, "email = ?", "saved@example.com").Error)

	savedRepo := repository.NewSavedPostRepository(db)
	require.NoError(t, savedRepo.Add(ctx, u.ID, "post-1"))
	require.NoError(t, savedRepo.Add(ctx, u.ID, "post-2"))

	result, err := svc.Login(ctx, "saved@example.com", "s3cret")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"post-1", "post-2"}, result.SavedPosts)
}
