package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// RunMigrations auto-migrates each model in order.
func (o *ORM) RunMigrations(log *logrus.Logger, models ...any) error {
	db, err := o.DB()
	if err != nil {
		return err
	}

	for i, model := range models {
		log.Infof("Running migration %d/%d (%T)", i+1, len(models), model)
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Info("All migrations completed successfully")
	return nil
}
