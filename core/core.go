package core

import (
	"time"

	"go.uber.org/zap"
)

type Config struct {
	BaseURL string

	// Optional config
	HTTPClient Doer
	Session    SessionStore
	Logger     *zap.Logger
	UserAgent  string
	LookupTTL  time.Duration
}
