package service

import (
	"errors"

	"reddigo/internal/pkg"
	"reddigo/internal/repository/mysql"
	"reddigo/internal/repository/redis"

	"gorm.io/gorm"
)

var (
	ErrInvalidScope   = errors.New("invalid scope")
	ErrEmailTaken     = errors.New("email already registered")
	ErrEmailNotExists = errors.New("email not registered")
	ErrCodeMismatch   = errors.New("code mismatch")
)

type EmailService struct {
	cfg      pkg.SMTPConfig
	rEmail   *redis.EmailRepository
	userRepo *mysql.UserRepository
}

func NewEmailService(cfg pkg.SMTPConfig) *EmailService {
	return &EmailService{
		cfg:      cfg,
		rEmail:   &redis.EmailRepository{},
		userRepo: &mysql.UserRepository{DB: mysql.DB},
	}
}

// SendCode 发送验证码。register 要求邮箱未被占用，reset 要求邮箱已注册。
func (s *EmailService) SendCode(scope, email string) error {
	switch scope {
	case "register":
		if _, err := s.userRepo.FindByEmail(email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	case "reset":
		if _, err := s.userRepo.FindByEmail(email); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmailNotExists
			}
			return err
		}
	default:
		return ErrInvalidScope
	}

	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err := s.rEmail.SetCode(scope, email, code); err != nil {
		return err
	}

	subject := "邮箱验证"
	if scope == "reset" {
		subject = "重置密码"
	}
	return pkg.SendEmail(s.cfg, email, subject,
		pkg.EmailCodeHTML(subject, code, redis.DefaultEmailCodeTTL))
}

// VerifyCode 校验通过即销码，一码一用
func (s *EmailService) VerifyCode(scope, email, code string) (bool, error) {
	stored, err := s.rEmail.GetCode(scope, email)
	if err != nil {
		return false, err
	}
	if stored != code {
		return false, ErrCodeMismatch
	}
	_ = s.rEmail.DeleteCode(scope, email)
	return true, nil
}
