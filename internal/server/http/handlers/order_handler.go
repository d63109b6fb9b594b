package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ebiblio/storefront/internal/domain/errors"
	"github.com/ebiblio/storefront/internal/domain/model"
	"github.com/ebiblio/storefront/internal/server/http/dto"
)

// OrderHandler manages checkout and order history endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Checkout handles POST /api/user/orders.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	draft := model.CheckoutDraft{
		PaymentMethod: req.PaymentMethod,
		Shipping: model.Address{
			Name:       req.Shipping.Name,
			Line:       req.Shipping.Line,
			City:       req.Shipping.City,
			PostalCode: req.Shipping.PostalCode,
			Country:    req.Shipping.Country,
			Email:      req.Shipping.Email,
		},
	}
	for _, item := range req.Items {
		draft.Items = append(draft.Items, model.CheckoutItem{
			BookID:             item.BookID,
			Quantity:           item.Quantity,
			Type:               item.Type,
			RentalDurationDays: item.RentalDurationDays,
		})
	}

	order, err := h.facade.Checkout(c.Request.Context(), CurrentUserID(c), draft)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyOrder):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusCreated, dto.NewOrderResponse(*order))
}

// List handles GET /api/user/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, dto.NewOrderResponse(o))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/user/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(*order))
}

// Summary handles GET /api/user/orders/summary.
func (h *OrderHandler) Summary(c *gin.Context) {
	summary, err := h.facade.OrdersSummary(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.OrderSummaryResponse{
		TotalOrders: summary.TotalOrders,
		TotalAmount: summary.TotalAmount,
		BooksBought: summary.BooksBought,
		BooksRented: summary.BooksRented,
	})
}
