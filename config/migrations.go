package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"dome.express/dispatch/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250812_create_workflow_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.PickupSession{}, &models.DraftOrder{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("draft_orders", "pickup_sessions")
			},
		},
		{
			ID: "20250825_index_draft_positions",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_draft_orders_session_position ON draft_orders (session_id, position)").Error
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("DROP INDEX IF EXISTS idx_draft_orders_session_position").Error
			},
		},
	})
	return m.Migrate()
}
