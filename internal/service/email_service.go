package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"yatube/internal/pkg"
	"yatube/internal/repository/mysql"
	"yatube/internal/repository/redis"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type EmailService struct {
	mailer pkg.Mailer
	codes  *redis.CodeRepository
	users  *mysql.UserRepository
}

func NewEmailService(db *gorm.DB, rdb *goredis.Client, mailer pkg.Mailer) *EmailService {
	return &EmailService{
		mailer: mailer,
		codes:  &redis.CodeRepository{Client: rdb},
		users:  &mysql.UserRepository{DB: db},
	}
}

// SendResetCode 发送重置密码验证码; 邮箱未注册时不报错, 避免暴露注册情况
func (s *EmailService) SendResetCode(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.InfoContext(ctx, "password reset for unknown email", "email", email)
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	code, err := pkg.RandomCode(pkg.CodeLength)
	if err != nil {
		return err
	}

	// 先写入pending键
	if err = s.codes.SavePending(ctx, redis.CodeResetScope, email, code); err != nil {
		return err
	}

	html := pkg.ResetCodeHTML(user.Username, code, redis.DefaultCodeTTL)
	if err = s.mailer.Send(ctx, email, "Сброс пароля на Yatube", html); err != nil {
		_ = s.codes.DeletePending(ctx, redis.CodeResetScope, email)
		return fmt.Errorf("send mail: %w", err)
	}

	// 邮件发送后再将pending转为confirmed
	if err = s.codes.Confirm(ctx, redis.CodeResetScope, email); err != nil {
		_ = s.codes.DeletePending(ctx, redis.CodeResetScope, email)
		return err
	}
	return s.codes.ResetAttempts(ctx, redis.CodeResetScope, email)
}

// VerifyCode 校验验证码, 通过后一次性删除
func (s *EmailService) VerifyCode(ctx context.Context, scope, email, code string) (bool, error) {
	val, err := s.codes.GetConfirmed(ctx, scope, email)
	if err != nil {
		if errors.Is(err, redis.ErrCodeNotFound) {
			return false, nil
		}
		return false, err
	}
	if val != code {
		n, err := s.codes.IncrAttempts(ctx, scope, email)
		if err != nil {
			return false, err
		}
		if n >= redis.MaxCodeAttempts {
			slog.WarnContext(ctx, "reset code attempts exhausted", "email", email)
			if err = s.codes.DeleteConfirmed(ctx, scope, email); err != nil {
				return false, err
			}
		}
		return false, nil
	}
	if err = s.codes.DeleteConfirmed(ctx, scope, email); err != nil {
		return false, err
	}
	return true, nil
}
