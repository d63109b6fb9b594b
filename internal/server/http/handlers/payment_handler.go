package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ebiblio/storefront/internal/domain/errors"
	"github.com/ebiblio/storefront/internal/domain/model"
	"github.com/ebiblio/storefront/internal/server/http/dto"
)

// PaymentHandler manages charges and stored cards.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// CreateIntent handles POST /api/user/payments/intents.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req dto.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	intent, clientSecret, err := h.facade.CreateIntent(c.Request.Context(), CurrentUserID(c), req.Amount, req.Currency, req.Description, req.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount), errors.Is(err, domainErrors.ErrInvalidCurrency):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusBadGateway)
		}
		return
	}
	c.JSON(http.StatusCreated, dto.NewIntentResponse(*intent, clientSecret))
}

// History handles GET /api/user/payments.
func (h *PaymentHandler) History(c *gin.Context) {
	intents, err := h.facade.PaymentHistory(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(intents) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.IntentResponse, 0, len(intents))
	for _, intent := range intents {
		resp = append(resp, dto.NewIntentResponse(intent, ""))
	}
	c.JSON(http.StatusOK, resp)
}

// AddMethod handles POST /api/user/payments/methods.
func (h *PaymentHandler) AddMethod(c *gin.Context) {
	var req dto.PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	method := &model.PaymentMethod{
		UserID:    CurrentUserID(c),
		Brand:     req.Brand,
		Last4:     req.Last4,
		ExpMonth:  req.ExpMonth,
		ExpYear:   req.ExpYear,
		Holder:    req.Holder,
		IsDefault: req.IsDefault,
	}

	stored, err := h.facade.AddPaymentMethod(c.Request.Context(), method)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidAmount) {
			c.Status(http.StatusUnprocessableEntity)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPaymentMethodResponse(*stored))
}

// ListMethods handles GET /api/user/payments/methods.
func (h *PaymentHandler) ListMethods(c *gin.Context) {
	methods, err := h.facade.PaymentMethods(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]dto.PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		resp = append(resp, dto.NewPaymentMethodResponse(m))
	}
	c.JSON(http.StatusOK, resp)
}

// SetDefaultMethod handles POST /api/user/payments/methods/:id/default.
func (h *PaymentHandler) SetDefaultMethod(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	method, err := h.facade.SetDefaultPaymentMethod(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewPaymentMethodResponse(*method))
}

// DeleteMethod handles DELETE /api/user/payments/methods/:id.
func (h *PaymentHandler) DeleteMethod(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.DeletePaymentMethod(c.Request.Context(), CurrentUserID(c), id); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}
