package detect

import (
	"context"
	"errors"
)

// ErrScanDisabled возвращается, когда провайдер сканирования не настроен.
var ErrScanDisabled = errors.New("subscription scan is not configured")

type Account struct {
	Email    string `json:"email"`
	Provider string `json:"provider,omitempty"`
}

type Client interface {
	Scan(ctx context.Context, account Account) ([]Item, []byte, error)
}

// DisabledClient подставляется вместо реального провайдера, когда
// сканирование выключено конфигурацией.
type DisabledClient struct{}

func (DisabledClient) Scan(ctx context.Context, account Account) ([]Item, []byte, error) {
	return nil, nil, ErrScanDisabled
}

func resolveMaxItems(value int) int {
	if value > 0 {
		return value
	}

	return defaultMaxItems
}
