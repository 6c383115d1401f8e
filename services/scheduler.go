package services

import (
	"log"
	"time"

	"careops-backend/config"
	"careops-backend/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartSweepScheduler runs the overdue-form sweep on a cron schedule. The
// sweep is also invoked opportunistically on dashboard access; it is safe
// to run redundantly.
func StartSweepScheduler(db *gorm.DB) *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc(config.C.SweepSchedule, func() {
		RunOverdueSweep(db)
	}); err != nil {
		log.Printf("Failed to schedule overdue sweep: %v", err)
		return c
	}

	c.Start()
	log.Println("Overdue sweep scheduler started")
	return c
}

// RunOverdueSweep sweeps every workspace.
func RunOverdueSweep(db *gorm.DB) {
	var workspaces []models.Workspace
	if err := db.Find(&workspaces).Error; err != nil {
		log.Printf("Failed to fetch workspaces for sweep: %v", err)
		return
	}

	now := time.Now()
	for _, ws := range workspaces {
		count, err := SweepOverdue(db, ws.ID, now)
		if err != nil {
			log.Printf("Workspace %s: overdue sweep failed: %v", ws.ID, err)
			continue
		}
		if count > 0 {
			log.Printf("Workspace %s: marked %d form(s) overdue", ws.ID, count)
		}
	}
}
