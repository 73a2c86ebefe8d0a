package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"yatube/internal/model"
	"yatube/internal/pkg"
	"yatube/internal/repository/mysql"
	"yatube/internal/repository/redis"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var usernameRe = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// ValidUsername 用户名只能包含字母、数字和 @ . + - _
func ValidUsername(username string) bool {
	return usernameRe.MatchString(username)
}

type SignupInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// Session 已认证的访问者; token 被轮换时 Pair 非空
type Session struct {
	UserID   uint64
	Username string
	Pair     *pkg.Pair
}

type UserService struct {
	repo     *mysql.UserRepository
	sessions *redis.SessionRepository
	tokens   *pkg.TokenManager
	emailSvc *EmailService
}

func NewUserService(db *gorm.DB, rdb *goredis.Client, tokens *pkg.TokenManager, emailSvc *EmailService) *UserService {
	return &UserService{
		repo:     &mysql.UserRepository{DB: db},
		sessions: &redis.SessionRepository{Client: rdb, TTL: tokens.RefreshTTL},
		tokens:   tokens,
		emailSvc: emailSvc,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *UserService) issue(ctx context.Context, user *model.User) (*pkg.Pair, error) {
	pair, err := s.tokens.GeneratePair(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	// 将token写入redis, 旧会话失效
	if err = s.sessions.Save(ctx, user.ID, pair.AccessToken, pair.RefreshToken); err != nil {
		return nil, err
	}
	return pair, nil
}

// duplicateError 唯一索引冲突时区分是邮箱还是用户名
func (s *UserService) duplicateError(ctx context.Context, email string) error {
	taken, err := s.repo.ExistsEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}

// Signup 注册并直接登录
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*model.User, *pkg.Pair, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if !ValidUsername(in.Username) {
		return nil, nil, ErrInvalidUsername
	}
	if in.Email == "" {
		return nil, nil, ErrEmailRequired
	}

	taken, err := s.repo.ExistsUsername(ctx, in.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, nil, ErrUsernameTaken
	}
	if taken, err = s.repo.ExistsEmail(ctx, in.Email); err != nil {
		return nil, nil, fmt.Errorf("check email: %w", err)
	} else if taken {
		return nil, nil, ErrEmailTaken
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}
	user := &model.User{
		Username:  in.Username,
		Password:  hash,
		Email:     in.Email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	}
	if err = s.repo.Create(ctx, user); err != nil {
		// 并发注册时唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, s.duplicateError(ctx, in.Email)
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}
	slog.InfoContext(ctx, "user signed up", "user_id", user.ID)

	pair, err := s.issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login 用户名或邮箱登录
func (s *UserService) Login(ctx context.Context, login, password string) (*model.User, *pkg.Pair, error) {
	user, err := s.repo.FindByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}
	pair, err := s.issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *UserService) Logout(ctx context.Context, usrID uint64) error {
	return s.sessions.Delete(ctx, usrID)
}

// Authenticate 校验 access; access 失效时用 refresh 换一组新 token
func (s *UserService) Authenticate(ctx context.Context, access, refresh string) (*Session, error) {
	if access != "" {
		claims, err := s.tokens.ParseAccess(access)
		if err == nil {
			stored, err := s.sessions.AccessToken(ctx, claims.UserID)
			if err != nil || stored != access {
				return nil, ErrSessionReplaced
			}
			// 校验通过后更新过期时间
			if err = s.sessions.Extend(ctx, claims.UserID); err != nil {
				return nil, err
			}
			return &Session{UserID: claims.UserID, Username: claims.Username}, nil
		}
	}
	if refresh == "" {
		return nil, ErrUnauthorized
	}

	claims, err := s.tokens.ParseRefresh(refresh)
	if err != nil {
		return nil, ErrUnauthorized
	}
	stored, err := s.sessions.RefreshToken(ctx, claims.UserID)
	if err != nil || stored != refresh {
		return nil, ErrSessionReplaced
	}
	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	pair, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	return &Session{UserID: user.ID, Username: user.Username, Pair: pair}, nil
}

func (s *UserService) GetUser(ctx context.Context, id uint64) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword 登录态修改密码, 成功后需要重新登录
func (s *UserService) ChangePassword(ctx context.Context, usrID uint64, oldPassword, newPassword string) error {
	user, err := s.GetUser(ctx, usrID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return ErrPasswordIncorrect
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err = s.repo.UpdatePassword(ctx, user, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return s.Logout(ctx, usrID)
}

// ResetPassword 邮件验证码重置密码
func (s *UserService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	ok, err := s.emailSvc.VerifyCode(ctx, redis.CodeResetScope, email, code)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCodeIncorrect
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCodeIncorrect
		}
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err = s.repo.UpdatePassword(ctx, user, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return s.Logout(ctx, user.ID)
}
