package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const trackingPrefix = "tracking:"

// registerTracking installs after-callbacks that log every committed
// create, update and delete.
func registerTracking(db *gorm.DB, log *logrus.Logger) error {
	cb := db.Callback()

	if err := cb.Create().After("gorm:create").Register(trackingPrefix+"create", track(log, "create")); err != nil {
		return fmt.Errorf("failed to register create tracking: %w", err)
	}
	if err := cb.Update().After("gorm:update").Register(trackingPrefix+"update", track(log, "update")); err != nil {
		return fmt.Errorf("failed to register update tracking: %w", err)
	}
	if err := cb.Delete().After("gorm:delete").Register(trackingPrefix+"delete", track(log, "delete")); err != nil {
		return fmt.Errorf("failed to register delete tracking: %w", err)
	}
	return nil
}

func track(log *logrus.Logger, op string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		if tx.Error != nil || tx.RowsAffected == 0 {
			return
		}
		log.WithFields(logrus.Fields{
			"op":    op,
			"table": tx.Statement.Table,
			"rows":  tx.RowsAffected,
		}).Info("model modified")
	}
}
