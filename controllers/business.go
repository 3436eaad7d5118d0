// controllers/business.go
package controllers

import (
	"net/http"

	"petmarket-backend/config"
	"petmarket-backend/models"
	"petmarket-backend/services"
	"petmarket-backend/utils"

	"github.com/gin-gonic/gin"
)

func businessService() *services.BusinessService {
	return services.NewBusinessService(config.DB)
}

type CreateBusinessInput struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Address      string `json:"address"`
	ContactPhone string `json:"contactPhone"`
	ContactEmail string `json:"contactEmail"`
}

type UpdateBusinessInput struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	Address      *string `json:"address"`
	ContactPhone *string `json:"contactPhone"`
	ContactEmail *string `json:"contactEmail"`
}

func CreateBusiness(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input CreateBusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	business := models.Business{
		Name:         input.Name,
		Description:  input.Description,
		Category:     input.Category,
		Address:      input.Address,
		ContactPhone: input.ContactPhone,
		ContactEmail: input.ContactEmail,
		OwnerID:      &userID,
	}
	if err := businessService().Save(&business); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create business")
		return
	}

	c.JSON(http.StatusCreated, business)
}

// GetBusinesses lists businesses, optionally filtered by ?category= or
// searched by ?address= substring.
func GetBusinesses(c *gin.Context) {
	svc := businessService()

	if category := c.Query("category"); category != "" {
		businesses, err := svc.FindByCategory(category)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, businesses)
		return
	}
	if address := c.Query("address"); address != "" {
		businesses, err := svc.SearchByAddress(address)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, businesses)
		return
	}

	businesses, err := svc.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, businesses)
}

func GetBusiness(c *gin.Context) {
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}

	business, err := businessService().GetByID(businessID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, business)
}

func GetMyBusinesses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	businesses, err := businessService().GetByOwner(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, businesses)
}

func UpdateBusiness(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}

	var input UpdateBusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc := businessService()
	business, err := svc.GetByID(businessID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if business.OwnerID == nil || *business.OwnerID != userID {
		utils.RespondWithError(c, http.StatusForbidden, "Only the owner can update this business")
		return
	}

	if input.Name != nil {
		business.Name = *input.Name
	}
	if input.Description != nil {
		business.Description = *input.Description
	}
	if input.Category != nil {
		business.Category = *input.Category
	}
	if input.Address != nil {
		business.Address = *input.Address
	}
	if input.ContactPhone != nil {
		business.ContactPhone = *input.ContactPhone
	}
	if input.ContactEmail != nil {
		business.ContactEmail = *input.ContactEmail
	}

	if err := svc.Save(business); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update business")
		return
	}
	c.JSON(http.StatusOK, business)
}

func DeleteBusiness(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}

	svc := businessService()
	business, err := svc.GetByID(businessID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if business.OwnerID == nil || *business.OwnerID != userID {
		utils.RespondWithError(c, http.StatusForbidden, "Only the owner can delete this business")
		return
	}

	if err := svc.Delete(businessID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Business deleted successfully"})
}
