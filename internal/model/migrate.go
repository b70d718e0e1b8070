package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models and creates custom indexes.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Group{},
		&Member{},
		&Channel{},
		&Post{},
		&Like{},
		&Comment{},
		&Subscription{},
		&Affiliate{},
		&InviteCode{},
	); err != nil {
		return err
	}

	// Case-insensitive substring search on group names goes through this index.
	if err := db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_groups_name_lower " +
			"ON groups ((lower(name))) WHERE deleted_at IS NULL",
	).Error; err != nil {
		return err
	}

	// One active subscription tier per group, enforced on non-soft-deleted rows.
	return db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_subscriptions_one_active " +
			"ON subscriptions (group_id) WHERE active AND deleted_at IS NULL",
	).Error
}
