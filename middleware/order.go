package middleware

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Context keys for payloads that passed validation.
const (
	CreateOrderPayloadKey = "createOrderPayload"
	UpdateOrderPayloadKey = "updateOrderPayload"
)

type OrderItemPayload struct {
	Category string   `json:"category" validate:"required"`
	Name     string   `json:"name" validate:"required"`
	Quantity *int     `json:"quantity" validate:"required,min=1"`
	Price    *float64 `json:"price" validate:"required,gte=0"` // unit price
	Special  string   `json:"special"`
}

type CreateOrderPayload struct {
	CustomerName  string             `json:"customerName" validate:"required"`
	Contact       string             `json:"contact"`
	Items         []OrderItemPayload `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string             `json:"paymentMethod" validate:"omitempty,oneof=cash card online"`
	Notes         string             `json:"notes"`
	// Accepted but ignored. Totals are always recomputed from items.
	TotalAmount *float64 `json:"totalAmount"`
}

type UpdateOrderPayload struct {
	CustomerName  *string            `json:"customerName" validate:"omitempty,min=1"`
	Contact       *string            `json:"contact"`
	Items         []OrderItemPayload `json:"items" validate:"omitempty,min=1,dive"`
	PaymentMethod *string            `json:"paymentMethod" validate:"omitempty,oneof=cash card online"`
	Status        *string            `json:"status" validate:"omitempty,oneof=pending accepted preparing ready completed cancelled"`
	Notes         *string            `json:"notes"`
	TotalAmount   *float64           `json:"totalAmount"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report violations under the JSON field names the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessages flattens every violation into a client-facing message.
func validationMessages(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	var messages []string
	for _, e := range verrs {
		// Namespace starts with the payload struct name; drop it.
		field := e.Namespace()
		if idx := strings.Index(field, "."); idx >= 0 {
			field = field[idx+1:]
		}

		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "min":
			if e.Kind() == reflect.Slice {
				messages = append(messages, fmt.Sprintf("%s must contain at least %s item(s)", field, e.Param()))
			} else {
				messages = append(messages, fmt.Sprintf("%s must be at least %s", field, e.Param()))
			}
		case "gte":
			messages = append(messages, fmt.Sprintf("%s must be %s or greater", field, e.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of [%s]", field, e.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}
	return messages
}

// ValidateCreateOrder binds and validates the create-order payload,
// reporting every violation at once.
func ValidateCreateOrder(c *gin.Context) {
	var payload CreateOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": []string{"invalid JSON payload"}})
		c.Abort()
		return
	}

	if err := validate.Struct(payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": validationMessages(err)})
		c.Abort()
		return
	}

	c.Set(CreateOrderPayloadKey, payload)
	c.Next()
}

// ValidateUpdateOrder binds and validates the partial update payload.
func ValidateUpdateOrder(c *gin.Context) {
	var payload UpdateOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": []string{"invalid JSON payload"}})
		c.Abort()
		return
	}

	if err := validate.Struct(payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": validationMessages(err)})
		c.Abort()
		return
	}

	c.Set(UpdateOrderPayloadKey, payload)
	c.Next()
}

// ValidateUUID rejects malformed id path parameters before any DB lookup.
func ValidateUUID(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := uuid.Parse(c.Param(param)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "Invalid id parameter"})
			c.Abort()
			return
		}
		c.Next()
	}
}
