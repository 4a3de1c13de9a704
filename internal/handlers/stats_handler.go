package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/services"
)

// StatsHandler handles the read-only aggregation endpoints.
type StatsHandler struct {
	statsService services.StatsServicer
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService services.StatsServicer) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetBalanceStats handles the balance totals for a date range
// @Summary     Get balance stats
// @Description Get total income and expense over a date range
// @Tags        stats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       from query string true "Start date (RFC3339 or YYYY-MM-DD)"
// @Param       to   query string true "End date (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} services.BalanceStats "Totals by type"
// @Failure     400 {object} ErrorResponse "Invalid input or date range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/balance [get]
func (h *StatsHandler) GetBalanceStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.statsService.GetBalanceStats(userID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetCategoriesStats handles the per-category totals for a date range
// @Summary     Get category stats
// @Description Get transaction totals grouped by type and category snapshot over a date range, largest first
// @Tags        stats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       from query string true "Start date (RFC3339 or YYYY-MM-DD)"
// @Param       to   query string true "End date (RFC3339 or YYYY-MM-DD)"
// @Success     200 {array} services.CategoryStats "Totals by category"
// @Failure     400 {object} ErrorResponse "Invalid input or date range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/categories [get]
func (h *StatsHandler) GetCategoriesStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.statsService.GetCategoriesStats(userID, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetHistoryData handles the bucketed history for a period
// @Summary     Get history data
// @Description Get day-bucketed (timeFrame=month) or month-bucketed (timeFrame=year) income/expense history, zero-filled
// @Tags        stats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       timeFrame query string true  "Granularity (month or year)"
// @Param       month     query int    false "0-based month (required when timeFrame=month)"
// @Param       year      query int    true  "Year (2000-3000)"
// @Success     200 {array} services.HistoryPoint "Bucketed history"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /history-data [get]
func (h *StatsHandler) GetHistoryData(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	timeFrame := services.TimeFrame(c.Query("timeFrame"))
	if timeFrame != services.TimeFrameMonth && timeFrame != services.TimeFrameYear {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "timeFrame must be month or year"))
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 3000 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "year must be between 2000 and 3000"))
		return
	}

	month := 0
	if v := c.Query("month"); v != "" {
		month, err = strconv.Atoi(v)
		if err != nil || month < 0 || month > 11 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 0 and 11"))
			return
		}
	}

	history, err := h.statsService.GetHistoryData(userID, timeFrame, services.Period{Month: month, Year: year})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// GetHistoryPeriods handles the list of years with history
// @Summary     Get history periods
// @Description Get the years the user has transaction history for, ascending
// @Tags        stats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} int "Years with history"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /history-periods [get]
func (h *StatsHandler) GetHistoryPeriods(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	periods, err := h.statsService.GetHistoryPeriods(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, periods)
}
