package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/subtracker/backend/internal/auth"
	"example.com/subtracker/backend/internal/detect"
	"example.com/subtracker/backend/internal/models"
	"example.com/subtracker/backend/internal/notifications"
	"example.com/subtracker/backend/internal/repository"
)

type ScanHandler struct {
	Detector      *detect.Service
	Subscriptions *repository.SubscriptionRepository
	Scans         *repository.ScanRepository
	Users         *repository.UserRepository
	Notifier      *notifications.Hub
	Provider      string
}

// NewScanHandler создает обработчик сканирования подписок.
func NewScanHandler(detector *detect.Service, subscriptions *repository.SubscriptionRepository, scans *repository.ScanRepository, users *repository.UserRepository, notifier *notifications.Hub, provider string) *ScanHandler {
	return &ScanHandler{
		Detector:      detector,
		Subscriptions: subscriptions,
		Scans:         scans,
		Users:         users,
		Notifier:      notifier,
		Provider:      provider,
	}
}

type ScanRequest struct {
	Provider string `json:"provider"`
}

type ScanResponse struct {
	Status        models.ScanStatus `json:"status"`
	ItemsFound    int               `json:"items_found"`
	ItemsImported int               `json:"items_imported"`
}

type ScanRunResponse struct {
	ID            uuid.UUID         `json:"id"`
	Provider      string            `json:"provider"`
	Status        models.ScanStatus `json:"status"`
	ItemsFound    int               `json:"items_found"`
	ItemsImported int               `json:"items_imported"`
	ErrorMessage  *string           `json:"error_message,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

type ScanRunsResponse struct {
	Runs []ScanRunResponse `json:"runs"`
}

// Run запускает сканирование почты и импортирует найденные подписки.
func (h *ScanHandler) Run(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req ScanRequest
	if err := c.Bind(&req); err != nil && !errors.Is(err, io.EOF) {
		return badRequest(c, "invalid payload")
	}

	user, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return unauthorized(c)
		}
		return serverError(c)
	}

	account := detect.Account{
		Email:    user.Email,
		Provider: strings.TrimSpace(req.Provider),
	}

	subs, found, err := h.Detector.Scan(c.Request().Context(), account)
	if err != nil {
		h.logScanRun(c.Request().Context(), userID, 0, 0, err)

		if errors.Is(err, detect.ErrScanDisabled) {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "subscription scan is not configured"})
		}

		slog.Warn("subscription scan failed", slog.String("user_id", userID.String()), slog.String("error", err.Error()))
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "scan provider failed"})
	}

	imported, err := h.Subscriptions.ImportDetected(c.Request().Context(), userID, subs)
	if err != nil {
		h.logScanRun(c.Request().Context(), userID, found, 0, err)
		return serverError(c)
	}

	h.logScanRun(c.Request().Context(), userID, found, imported, nil)
	slog.Info("subscription scan completed",
		slog.String("user_id", userID.String()),
		slog.Int("items_found", found),
		slog.Int("items_imported", imported))

	if imported > 0 {
		publishSubscriptionsChanged(h.Notifier, userID, imported)
	}

	return c.JSON(http.StatusOK, ScanResponse{
		Status:        models.ScanStatusCompleted,
		ItemsFound:    found,
		ItemsImported: imported,
	})
}

// History возвращает последние запуски сканирования пользователя.
func (h *ScanHandler) History(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	limit := 20
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return badRequest(c, "invalid limit")
		}
		if parsed > 100 {
			parsed = 100
		}
		limit = parsed
	}

	runs, err := h.Scans.ListByUser(c.Request().Context(), userID, limit)
	if err != nil {
		return serverError(c)
	}

	response := make([]ScanRunResponse, 0, len(runs))
	for _, run := range runs {
		response = append(response, ScanRunResponse{
			ID:            run.ID,
			Provider:      run.Provider,
			Status:        run.Status,
			ItemsFound:    run.ItemsFound,
			ItemsImported: run.ItemsImported,
			ErrorMessage:  run.ErrorMessage,
			CreatedAt:     run.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, ScanRunsResponse{Runs: response})
}

func (h *ScanHandler) logScanRun(ctx context.Context, userID uuid.UUID, found, imported int, err error) {
	run := repository.ScanRunLog{
		UserID:        userID,
		Provider:      h.Provider,
		Status:        models.ScanStatusCompleted,
		ItemsFound:    found,
		ItemsImported: imported,
	}
	if err != nil {
		errMsg := err.Error()
		run.Status = models.ScanStatusFailed
		run.ErrorMessage = &errMsg
	}

	_ = h.Scans.LogRun(ctx, run)
}
