package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-service/internal/auth"
	"github.com/d60-Lab/blog-service/internal/model"
	"github.com/d60-Lab/blog-service/internal/repository"
	"github.com/d60-Lab/blog-service/internal/upload"
	"github.com/d60-Lab/blog-service/pkg/logger"
)

var (
	ErrEmailTaken = errors.New("email already exists")
	// 统一的凭证错误：不区分邮箱不存在与密码错误，避免账号枚举
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Avatar     io.Reader
	AvatarName string
}

type LoginResult struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	AvatarURL  string   `json:"avatar_url"`
	Email      string   `json:"email"`
	Token      string   `json:"token"`
	SavedPosts []string `json:"saved_posts"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type authService struct {
	userRepo  repository.UserRepository
	savedRepo repository.SavedPostRepository
	tokens    *auth.TokenManager
	uploader  *upload.Client
}

func NewAuthService(userRepo repository.UserRepository, savedRepo repository.SavedPostRepository, tokens *auth.TokenManager, uploader *upload.Client) AuthService {
	return &authService{userRepo: userRepo, savedRepo: savedRepo, tokens: tokens, uploader: uploader}
}

// Register 注册流程：查重 → 上传头像 → 哈希密码 → 落库。
// 用户记录只在上传与哈希都成功后写入，失败不留半成品。
func (s *authService) Register(ctx context.Context, in RegisterInput) error {
	exists, err := s.userRepo.EmailExists(ctx, in.Email)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailTaken
	}

	avatarURL, err := s.uploader.Upload(ctx, in.AvatarName, in.Avatar)
	if err != nil {
		logger.Warn("avatar upload failed", zap.String("email", in.Email), zap.Error(err))
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  string(hash),
		AvatarURL: avatarURL,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// 与查重之间存在并发窗口，唯一索引兜底
		if isDuplicateKey(err) {
			return ErrEmailTaken
		}
		return err
	}
	logger.Info("user registered", zap.String("user", user.ID))
	return nil
}

// Login 凭证核对后签发 token，同时带回收藏列表
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	saved, err := s.savedRepo.ListPostIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		ID:         user.ID,
		Name:       user.Name,
		AvatarURL:  user.AvatarURL,
		Email:      user.Email,
		Token:      token,
		SavedPosts: saved,
	}, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
