package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"moneta/internal/config"
	apperrors "moneta/internal/errors"
	"moneta/internal/logger"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	return userID.(string), nil
}

// parseFlexibleTime parses a timestamp that may be a bare calendar date
// (YYYY-MM-DD) or a full RFC3339 string. Bare dates are anchored at
// midnight UTC so the same input always lands in the same day bucket.
func parseFlexibleTime(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.New("invalid date, use RFC3339 or YYYY-MM-DD")
	}
	return t.UTC(), nil
}

// parseDateRange reads the required from/to query parameters, clamps
// them to UTC day boundaries, and rejects inverted or oversized ranges.
// The maximum span is enforced here so the services below stay
// range-agnostic.
func parseDateRange(c *gin.Context) (from, to time.Time, err error) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return from, to, apperrors.WithMessage(apperrors.ErrInvalidInput, "from and to query parameters are required")
	}

	from, err = parseFlexibleTime(fromStr)
	if err != nil {
		return from, to, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from date, use RFC3339 or YYYY-MM-DD")
	}
	to, err = parseFlexibleTime(toStr)
	if err != nil {
		return from, to, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to date, use RFC3339 or YYYY-MM-DD")
	}

	from = startOfDayUTC(from)
	to = endOfDayUTC(to)

	if to.Before(from) {
		return from, to, apperrors.WithMessage(apperrors.ErrInvalidDateRange, "to must not be before from")
	}

	maxDays := config.Get().MaxDateRangeDays
	if to.Sub(from) > time.Duration(maxDays)*24*time.Hour {
		return from, to, apperrors.WithMessage(apperrors.ErrInvalidDateRange, "date range exceeds the maximum span")
	}

	return from, to, nil
}

func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, time.UTC)
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
