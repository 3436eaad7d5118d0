// controllers/cart.go
package controllers

import (
	"net/http"

	"petmarket-backend/config"
	"petmarket-backend/services"
	"petmarket-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func cartService() *services.CartService {
	return services.NewCartService(config.DB, services.NewNotificationService(config.DB))
}

type AddCartItemInput struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity" binding:"required"`
}

func GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	cart, err := cartService().GetOrCreateCart(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func GetCartItemCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	count, err := cartService().GetItemCount(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func AddCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	var input AddCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	cart, err := cartService().AddItem(userID, input.ProductID, input.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func UpdateCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	cartItemID, ok := parseIDParam(c, "cartItemId")
	if !ok {
		return
	}

	var input UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	cart, err := cartService().UpdateItemQuantity(userID, cartItemID, input.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func RemoveCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}
	cartItemID, ok := parseIDParam(c, "cartItemId")
	if !ok {
		return
	}

	if err := cartService().RemoveItem(userID, cartItemID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found in context")
		return
	}

	order, err := cartService().Checkout(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order confirmed", "orderId": order.ID})
}
