package utils

import (
	"finbook/database"
	"finbook/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// StartBudgetScheduler runs the nightly budget maintenance job.
func StartBudgetScheduler() {
	c := cron.New()

	// Midnight every day: retire custom budgets whose window has closed.
	_, err := c.AddFunc("0 0 * * *", deactivateExpiredBudgets)
	if err != nil {
		log.Printf("[BUDGET-SCHEDULER] Failed to register job: %v", err)
		return
	}

	c.Start()
	log.Println("[BUDGET-SCHEDULER] Started.")
}

// deactivateExpiredBudgets flips isActive off for custom-period budgets whose
// end date has passed, so a new budget can be created for the same category.
func deactivateExpiredBudgets() {
	db := database.Database.Db
	today := Today(time.Now())

	result := db.Model(&models.Budget{}).
		Where("period = ? AND is_active = ? AND end_date IS NOT NULL AND end_date < ?",
			models.BudgetPeriodCustom, true, today).
		Update("is_active", false)

	if result.Error != nil {
		log.Printf("[BUDGET-SCHEDULER] Error deactivating expired budgets: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("[BUDGET-SCHEDULER] Deactivated %d expired custom budget(s)", result.RowsAffected)
	}
}
