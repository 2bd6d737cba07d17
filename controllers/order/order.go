package orderControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/RajAryan1001/Flamius/middleware"
	"github.com/RajAryan1001/Flamius/models"
)

var errVersionConflict = errors.New("order version conflict")

// -------- Helpers --------

// computeTotalFromItems derives the order total from unit price * quantity.
// Client-supplied totals are never trusted.
func computeTotalFromItems(items []middleware.OrderItemPayload) float64 {
	var total float64
	for _, item := range items {
		if item.Quantity == nil || item.Price == nil {
			continue
		}
		total += float64(*item.Quantity) * *item.Price
	}
	return total
}

func buildOrderItems(orderID string, items []middleware.OrderItemPayload) []models.OrderItem {
	built := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		built = append(built, models.OrderItem{
			OrderID:  orderID,
			Category: item.Category,
			Name:     item.Name,
			Quantity: *item.Quantity,
			Price:    *item.Price,
			Special:  item.Special,
		})
	}
	return built
}

// -------- Handlers --------

// CreateOrderHandler persists a validated order with a recomputed total.
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := c.MustGet(middleware.CreateOrderPayloadKey).(middleware.CreateOrderPayload)

		paymentMethod := models.PaymentMethodCash
		if payload.PaymentMethod != "" {
			paymentMethod = models.PaymentMethod(payload.PaymentMethod)
		}

		order := models.Order{
			ID:            uuid.NewString(),
			CustomerName:  payload.CustomerName,
			Contact:       payload.Contact,
			TotalAmount:   computeTotalFromItems(payload.Items),
			PaymentMethod: paymentMethod,
			Status:        models.OrderStatusPending,
			Notes:         payload.Notes,
			Version:       1,
		}
		order.Items = buildOrderItems(order.ID, payload.Items)

		if err := db.Create(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Server error"})
			return
		}

		broadcastOrderEvent("order.created", order)
		c.JSON(http.StatusCreated, gin.H{"ok": true, "order": order})
	}
}

// GetOrdersHandler lists orders newest first with pagination and an
// optional status filter. Limit is clamped to [1,100].
func GetOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := strconv.Atoi(c.Query("page"))
		if err != nil || page < 1 {
			page = 1
		}
		limit, err := strconv.Atoi(c.Query("limit"))
		if err != nil || limit < 1 {
			limit = 20
		}
		if limit > 100 {
			limit = 100
		}

		status := c.Query("status")
		filtered := func() *gorm.DB {
			q := db.Model(&models.Order{})
			if status != "" {
				q = q.Where("status = ?", status)
			}
			return q
		}

		var total int64
		if err := filtered().Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Server error"})
			return
		}

		orders := []models.Order{}
		if err := filtered().
			Preload("Items").
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"ok":     true,
			"page":   page,
			"limit":  limit,
			"total":  total,
			"orders": orders,
		})
	}
}

func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "order": order})
	}
}

// UpdateOrderHandler merges a validated partial payload into an order.
// If items are present the total is recomputed and the item rows replaced.
// The write is conditional on the version read, so a concurrent update
// surfaces as 409 instead of silently losing data.
func UpdateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		payload := c.MustGet(middleware.UpdateOrderPayloadKey).(middleware.UpdateOrderPayload)

		var order models.Order
		if err := db.First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Server error"})
			return
		}

		updates := map[string]interface{}{"version": order.Version + 1}
		if payload.CustomerName != nil {
			updates["customer_name"] = *payload.CustomerName
		}
		if payload.Contact != nil {
			updates["contact"] = *payload.Contact
		}
		if payload.PaymentMethod != nil {
			updates["payment_method"] = *payload.PaymentMethod
		}
		if payload.Status != nil {
			updates["status"] = *payload.Status
		}
		if payload.Notes != nil {
			updates["notes"] = *payload.Notes
		}
		if payload.Items != nil {
			updates["total_amount"] = computeTotalFromItems(payload.Items)
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			res := tx.Model(&models.Order{}).
				Where("id = ? AND version = ?", id, order.Version).
				Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errVersionConflict
			}

			if payload.Items != nil {
				if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
					return err
				}
				items := buildOrderItems(id, payload.Items)
				if err := tx.Create(&items).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, errVersionConflict) {
				c.JSON(http.StatusConflict, gin.H{"ok": false, "message": "Order was modified concurrently, retry"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Server error"})
			return
		}

		var updated models.Order
		if err := db.Preload("Items").First(&updated, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Server error"})
			return
		}

		broadcastOrderEvent("order.updated", updated)
		c.JSON(http.StatusOK, gin.H{"ok": true, "order": updated})
	}
}

// DeleteOrderHandler removes an order and its items. Like updates, the
// delete is conditional on the version read, so an order touched in the
// meantime stays put and the client gets 409.
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var order models.Order
		if err := db.First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"ok": false, "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Server error"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			res := tx.Where("id = ? AND version = ?", id, order.Version).Delete(&models.Order{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errVersionConflict
			}
			return tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error
		})
		if err != nil {
			if errors.Is(err, errVersionConflict) {
				c.JSON(http.StatusConflict, gin.H{"ok": false, "message": "Order was modified concurrently, retry"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Order deleted"})
	}
}
