package redisstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/raushan165/Taskpilot/internal/domain/entity"
	"github.com/raushan165/Taskpilot/internal/domain/repository"
	"github.com/raushan165/Taskpilot/pkg/helpers"
)

// OTPStore keeps one code per email under otp:<email>, expiring after TTL.
type OTPStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewOTPStore(rdb redis.Cmdable, ttl time.Duration) *OTPStore {
	return &OTPStore{rdb: rdb, ttl: ttl}
}

func (s *OTPStore) Save(ctx context.Context, otp entity.OTP) error {
	otp.Email = strings.ToLower(strings.TrimSpace(otp.Email))
	if otp.CreatedAt.IsZero() {
		otp.CreatedAt = time.Now().UTC()
	}
	if err := helpers.RedisSetJSON(ctx, s.rdb, helpers.KeyOTP(otp.Email), otp, s.ttl); err != nil {
		return fmt.Errorf("save otp: %w", err)
	}
	return nil
}

func (s *OTPStore) Match(ctx context.Context, email, code string, purpose entity.OTPPurpose) (bool, error) {
	var stored entity.OTP
	ok, err := helpers.RedisGetJSON(ctx, s.rdb, helpers.KeyOTP(email), &stored)
	if err != nil {
		return false, fmt.Errorf("load otp: %w", err)
	}
	if !ok {
		return false, nil
	}
	if stored.Purpose != purpose {
		return false, nil
	}
	return helpers.OTPEqual(stored.Code, code), nil
}

func (s *OTPStore) DeleteAll(ctx context.Context, email string) error {
	if err := helpers.RedisDel(ctx, s.rdb, helpers.KeyOTP(email)); err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	return nil
}

var _ repository.OTPStore = (*OTPStore)(nil)
