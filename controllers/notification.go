// controllers/notification.go
package controllers

import (
	"net/http"

	"petmarket-backend/config"
	"petmarket-backend/services"
	"petmarket-backend/utils"

	"github.com/gin-gonic/gin"
)

func GetMyNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	list, err := services.NewNotificationService(config.DB).GetByReceiver(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func DismissNotification(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	notificationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.NewNotificationService(config.DB).Dismiss(notificationID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
