// controllers/order.go
package controllers

import (
	"net/http"

	"petmarket-backend/config"
	"petmarket-backend/services"
	"petmarket-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetOrdersByBusiness lists orders containing at least one product from the
// business. Owner only; each order carries the customer's contact details and
// only this store's items.
func GetOrdersByBusiness(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	businessID, ok := parseIDParam(c, "businessId")
	if !ok {
		return
	}

	business, err := services.NewBusinessService(config.DB).GetByID(businessID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if business.OwnerID == nil || *business.OwnerID != userID {
		utils.RespondWithError(c, http.StatusNotFound, "Business not found")
		return
	}

	orders, err := services.NewOrderService(config.DB).OrdersByBusiness(businessID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	summaries := make([]gin.H, 0, len(orders))
	for i := range orders {
		order := &orders[i]

		items := make([]gin.H, 0)
		for _, oi := range services.ItemsForBusiness(order, businessID) {
			items = append(items, gin.H{
				"productName":  oi.Product.Name,
				"quantity":     oi.Quantity,
				"priceAtOrder": oi.PriceAtOrder,
			})
		}

		user := gin.H{"fullName": "", "phoneNumber": "", "address": ""}
		if order.User != nil {
			user["fullName"] = order.User.FullName
			user["phoneNumber"] = order.User.PhoneNumber
			user["address"] = order.User.Address
		}

		summaries = append(summaries, gin.H{
			"orderId":   order.ID,
			"createdAt": order.CreatedAt,
			"user":      user,
			"items":     items,
		})
	}

	c.JSON(http.StatusOK, summaries)
}
