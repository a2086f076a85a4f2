package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/bakery-api/schedule"
	"github.com/kendall-kelly/bakery-api/services"
)

// Blocked date actions accepted by POST /api/v1/blocked-dates
const (
	BlockedDatesToggle = "toggle"
	BlockedDatesSet    = "set"
)

// BlockedDatesRequest toggles one date or replaces the whole set
type BlockedDatesRequest struct {
	Action string   `json:"action" binding:"required,oneof=toggle set"`
	Date   string   `json:"date" binding:"required_if=Action toggle"`
	Dates  []string `json:"dates"`
}

// ListBlockedDates handles GET /api/v1/blocked-dates
func ListBlockedDates(c *gin.Context) {
	dates, err := services.GetPickupService().BlockedDates(c.Request.Context())
	if err != nil {
		respondPickupError(c, err)
		return
	}

	respondData(c, http.StatusOK, dates)
}

// UpdateBlockedDates handles POST /api/v1/blocked-dates (admin)
func UpdateBlockedDates(c *gin.Context) {
	var req BlockedDatesRequest
	if err := bindStrictJSON(c, &req); err != nil {
		respondInvalidRequest(c, err)
		return
	}

	pickup := services.GetPickupService()
	var (
		dates []string
		err   error
	)
	switch req.Action {
	case BlockedDatesToggle:
		dates, err = pickup.ToggleBlockedDate(c.Request.Context(), req.Date)
	default:
		if req.Dates == nil {
			req.Dates = []string{}
		}
		dates, err = pickup.SetBlockedDates(c.Request.Context(), req.Dates)
	}
	if err != nil {
		respondPickupError(c, err)
		return
	}

	respondData(c, http.StatusOK, dates)
}

// NextPickup is the earliest open pickup slot
type NextPickup struct {
	schedule.Slot
	DisplayDate string `json:"displayDate"`
}

// GetNextPickup handles GET /api/v1/pickup/next. data is null when no date
// in the scan window is open.
func GetNextPickup(c *gin.Context) {
	slot, err := services.GetPickupService().NextAvailable(c.Request.Context())
	if err != nil {
		respondPickupError(c, err)
		return
	}
	if slot == nil {
		respondData(c, http.StatusOK, nil)
		return
	}

	respondData(c, http.StatusOK, NextPickup{Slot: *slot, DisplayDate: schedule.DisplayDate(slot.Date)})
}

// ListPickupDates handles GET /api/v1/pickup/dates
func ListPickupDates(c *gin.Context) {
	dates, err := services.GetPickupService().AvailableDates(c.Request.Context())
	if err != nil {
		respondPickupError(c, err)
		return
	}

	respondData(c, http.StatusOK, dates)
}

// ListPickupTimes handles GET /api/v1/pickup/times?date=&selected= - the
// time options for date and, when selected is given, whether it survives
// the date change
func ListPickupTimes(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		respondError(c, http.StatusBadRequest, services.CodeValidation, "date query parameter is required")
		return
	}

	pickup := services.GetPickupService()
	times, err := pickup.TimeOptions(date)
	if err != nil {
		respondPickupError(c, err)
		return
	}

	data := gin.H{"date": date, "times": times}
	if selected, ok := c.GetQuery("selected"); ok {
		data["selected"] = pickup.ReconcileTime(date, selected)
	}
	respondData(c, http.StatusOK, data)
}

func respondPickupError(c *gin.Context, err error) {
	respondServiceError(c, err, "NOT_FOUND", "Not found")
}
