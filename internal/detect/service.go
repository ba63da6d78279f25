package detect

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"example.com/subtracker/backend/internal/models"
)

const defaultMaxItems = 50

type Service struct {
	client   Client
	maxItems int
}

// NewService создает сервис сканирования подписок.
func NewService(client Client, maxItems int) *Service {
	return &Service{client: client, maxItems: resolveMaxItems(maxItems)}
}

// Scan запрашивает у провайдера найденные подписки и нормализует ответ.
// Вторым значением возвращается число элементов в ответе провайдера до
// нормализации.
func (s *Service) Scan(ctx context.Context, account Account) ([]models.Subscription, int, error) {
	items, _, err := s.client.Scan(ctx, account)
	if err != nil {
		return nil, 0, err
	}

	return normalizeItems(items, s.maxItems), len(items), nil
}

// normalizeItems отбрасывает мусорные элементы ответа и приводит категории
// и циклы оплаты к внутренним значениям. Дубликаты имен схлопываются,
// итоговый список ограничен maxItems.
func normalizeItems(items []Item, maxItems int) []models.Subscription {
	seen := make(map[string]bool, len(items))
	subs := make([]models.Subscription, 0, len(items))

	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" || len(name) > 200 {
			continue
		}

		key := strings.ToLower(name)
		if seen[key] {
			continue
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(item.Amount))
		if err != nil || amount.IsNegative() {
			continue
		}

		seen[key] = true
		subs = append(subs, models.Subscription{
			Name:         name,
			Amount:       amount,
			Category:     parseCategory(item.Category),
			BillingCycle: parseCycle(item.Cycle),
			NextChargeAt: parseNextCharge(item.NextCharge),
			Source:       models.SubscriptionSourceDetected,
			IsActive:     true,
		})

		if len(subs) == maxItems {
			break
		}
	}

	return subs
}

func parseCategory(value string) models.SubscriptionCategory {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "entertainment", "gaming":
		return models.SubscriptionCategoryEntertainment
	case "software", "saas":
		return models.SubscriptionCategorySoftware
	case "music", "audio":
		return models.SubscriptionCategoryMusic
	case "video", "streaming":
		return models.SubscriptionCategoryVideo
	case "news", "press":
		return models.SubscriptionCategoryNews
	default:
		return models.SubscriptionCategoryOther
	}
}

func parseCycle(value string) models.BillingCycle {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "weekly", "week":
		return models.BillingCycleWeekly
	case "quarterly", "quarter":
		return models.BillingCycleQuarterly
	case "yearly", "year", "annual", "annually":
		return models.BillingCycleYearly
	default:
		return models.BillingCycleMonthly
	}
}

func parseNextCharge(value string) *time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}

	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return &parsed
	}

	if parsed, err := time.Parse("2006-01-02", trimmed); err == nil {
		return &parsed
	}

	return nil
}
