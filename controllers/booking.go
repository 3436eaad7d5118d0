// controllers/booking.go
package controllers

import (
	"net/http"
	"time"

	"petmarket-backend/config"
	"petmarket-backend/models"
	"petmarket-backend/services"
	"petmarket-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func bookingService() *services.BookingService {
	return services.NewBookingService(config.DB, services.NewNotificationService(config.DB))
}

type CreateBookingInput struct {
	ServiceID   uuid.UUID `json:"serviceId" binding:"required"`
	BookingTime time.Time `json:"bookingTime" binding:"required"`
	Notes       string    `json:"notes"`
}

func CreateBooking(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking := models.Booking{
		UserID:      userID,
		ServiceID:   input.ServiceID,
		BookingTime: input.BookingTime,
		Notes:       input.Notes,
	}
	saved, err := bookingService().CreateBooking(&booking)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// GetFullDates lists the dates in [start, end] where the service has no
// remaining capacity.
func GetFullDates(c *gin.Context) {
	serviceID, ok := parseIDParam(c, "serviceId")
	if !ok {
		return
	}

	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid start date, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid end date, expected YYYY-MM-DD")
		return
	}

	fullDates, err := bookingService().GetFullDates(serviceID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	dates := make([]string, 0, len(fullDates))
	for _, d := range fullDates {
		dates = append(dates, d.Format("2006-01-02"))
	}
	c.JSON(http.StatusOK, dates)
}

func GetBookingsByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	bookings, err := bookingService().GetBookingsByUser(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func GetBookingsByBusiness(c *gin.Context) {
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}

	bookings, err := bookingService().GetBookingsByBusiness(businessID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingsByStore lists a store's bookings, optionally narrowed to a
// single date (?date=) or a range (?start=&end=).
func GetBookingsByStore(c *gin.Context) {
	storeID, ok := parseIDParam(c, "storeId")
	if !ok {
		return
	}

	svc := bookingService()
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		bookings, err := svc.GetBookingsByBusinessAndDate(storeID, date)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}

	startStr, endStr := c.Query("start"), c.Query("end")
	if startStr != "" && endStr != "" {
		start, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid start date, expected YYYY-MM-DD")
			return
		}
		end, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid end date, expected YYYY-MM-DD")
			return
		}
		bookings, err := svc.GetBookingsByBusinessInRange(storeID, start, end)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookings)
		return
	}

	bookings, err := svc.GetBookingsByBusiness(storeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func UpdateBookingStatus(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	status := models.BookingStatus(c.Query("status"))
	if !status.Valid() {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking status")
		return
	}

	if err := bookingService().UpdateStatus(bookingID, status); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func DeleteBooking(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bookingService().DeleteBooking(bookingID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
