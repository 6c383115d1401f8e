package services

import (
	"errors"
	"fmt"

	"careops-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeductForBooking consumes each item's per-booking usage for the booked
// service. Quantities clamp at zero; crossing the low threshold raises an
// inventory_low alert (critical when the item is fully depleted) plus an
// automation log entry.
func DeductForBooking(db *gorm.DB, workspaceID, serviceID uuid.UUID) error {
	var items []models.InventoryItem
	if err := db.Where("workspace_id = ?", workspaceID).Find(&items).Error; err != nil {
		return err
	}

	for i := range items {
		item := &items[i]
		qty := item.UsagePerBooking[serviceID.String()]
		if qty <= 0 {
			continue
		}

		item.CurrentQuantity -= qty
		if item.CurrentQuantity < 0 {
			item.CurrentQuantity = 0
		}
		if err := db.Model(item).Update("current_quantity", item.CurrentQuantity).Error; err != nil {
			return err
		}

		if item.CurrentQuantity <= item.LowThreshold {
			severity := models.SeverityWarning
			if item.CurrentQuantity == 0 {
				severity = models.SeverityCritical
			}
			relatedID := item.ID
			_, err := CreateAlert(db, workspaceID, models.AlertInventoryLow,
				"Low stock: "+item.Name,
				fmt.Sprintf("%s has %d %s remaining", item.Name, item.CurrentQuantity, item.Unit),
				severity, "/dashboard/inventory", &relatedID)
			if err != nil {
				return err
			}
			if err := LogAutomation(db, workspaceID, "inventory_low", "create_alert",
				models.AutomationSuccess,
				map[string]interface{}{"item": item.Name, "qty": item.CurrentQuantity},
				nil, nil); err != nil {
				return err
			}
		}
	}

	return nil
}

// AdjustQuantity is the direct-edit path used by administration. It
// preserves non-negativity but does not re-evaluate alerts; those are only
// raised from booking-triggered deductions.
func AdjustQuantity(db *gorm.DB, workspaceID, itemID uuid.UUID, quantity int) (*models.InventoryItem, error) {
	if quantity < 0 {
		return nil, ErrInvalidInput
	}

	var item models.InventoryItem
	if err := db.Where("workspace_id = ? AND id = ?", workspaceID, itemID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := db.Model(&item).Update("current_quantity", quantity).Error; err != nil {
		return nil, err
	}
	item.CurrentQuantity = quantity
	return &item, nil
}
