package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultEmailCodeTTL = 5 * time.Minute
	EmailCodePrefix     = "email:code"
)

var (
	ErrEmailCodeSetFailed = errors.New("email code set failed")
	ErrEmailCodeNotFound  = errors.New("email code not found")
	ErrEmailCodeDelFailed = errors.New("email code delete failed")
)

// EmailRepository scope 区分用途（register / reset），同一地址同一用途只留最新一枚码
type EmailRepository struct{}

func codeKey(scope, email string) string {
	return fmt.Sprintf("%s:%s:%s", EmailCodePrefix, scope, email)
}

func (e *EmailRepository) SetCode(scope, email, code string) error {
	if err := Client.Set(context.Background(), codeKey(scope, email), code, DefaultEmailCodeTTL).Err(); err != nil {
		return ErrEmailCodeSetFailed
	}
	return nil
}

func (e *EmailRepository) GetCode(scope, email string) (string, error) {
	val, err := Client.Get(context.Background(), codeKey(scope, email)).Result()
	if err != nil {
		return "", ErrEmailCodeNotFound
	}
	return val, nil
}

// DeleteCode 校验通过后销码，幂等
func (e *EmailRepository) DeleteCode(scope, email string) error {
	if err := Client.Del(context.Background(), codeKey(scope, email)).Err(); err != nil {
		return ErrEmailCodeDelFailed
	}
	return nil
}
