package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/subtracker/backend/internal/auth"
	"example.com/subtracker/backend/internal/budget"
	"example.com/subtracker/backend/internal/repository"
)

const (
	exportTypeSummary    = "summary"
	exportTypeCategories = "categories"
)

const timeLayout = time.RFC3339

// ExportJSON выгружает отчет по бюджету в JSON-файл.
func (h *BudgetHandler) ExportJSON(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	profile, err := h.Profiles.GetByUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "profile not found")
		}
		return serverError(c)
	}

	response := ProfileResponse{
		Profile: toProfileData(profile),
		Result:  budget.Evaluate(profileInput(profile)),
	}

	filename := "budget-report-" + profile.ID.String() + ".json"
	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, response)
}

// ExportCSV выгружает отчет по бюджету в CSV-файл.
func (h *BudgetHandler) ExportCSV(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	profile, err := h.Profiles.GetByUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "profile not found")
		}
		return serverError(c)
	}

	exportType := strings.ToLower(strings.TrimSpace(c.QueryParam("type")))
	if exportType == "" {
		exportType = exportTypeSummary
	}

	data := toProfileData(profile)
	result := budget.Evaluate(profileInput(profile))

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	switch exportType {
	case exportTypeCategories:
		if err := writeCategoriesCSV(writer, data, result); err != nil {
			return serverError(c)
		}
	case exportTypeSummary:
		if err := writeSummaryCSV(writer, data, result); err != nil {
			return serverError(c)
		}
	default:
		return badRequest(c, "invalid export type")
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "budget-report-" + profile.ID.String() + "-" + exportType + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func writeCategoriesCSV(writer *csv.Writer, data ProfileData, result budget.Result) error {
	header := []string{
		"category",
		"amount",
		"percent",
		"feedback",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, category := range budget.Categories() {
		amount, ok := data.Categories[string(category)]
		if !ok {
			continue
		}

		record := []string{
			string(category),
			result.Currency.Format(amount),
			formatInt(result.Percentages[category]),
			string(result.Feedback[category]),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeSummaryCSV(writer *csv.Writer, data ProfileData, result budget.Result) error {
	if err := writer.Write([]string{"metric", "value"}); err != nil {
		return err
	}

	months := "n/a"
	if result.EmergencyFund.MonthsToMinimum != nil {
		months = strconv.FormatInt(*result.EmergencyFund.MonthsToMinimum, 10)
	}

	records := [][]string{
		{"currency", string(result.Currency)},
		{"income", result.Currency.Format(data.Income)},
		{"total_expenses", result.Currency.Format(result.TotalExpenses)},
		{"remaining", result.Currency.Format(result.Remaining)},
		{"health_score", formatInt(result.HealthScore)},
		{"health_label", string(result.HealthLabel)},
		{"emergency_fund_minimum", result.Currency.Format(result.EmergencyFund.Minimum)},
		{"emergency_fund_ideal", result.Currency.Format(result.EmergencyFund.Ideal)},
		{"months_to_minimum", months},
		{"subscription_available", result.Currency.Format(result.SubscriptionBudget.Available)},
		{"subscription_recommended_limit", result.Currency.Format(result.SubscriptionBudget.RecommendedLimit)},
		{"warnings", strings.Join(result.Warnings, "; ")},
	}

	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func formatInt(value int) string {
	return strconv.Itoa(value)
}
