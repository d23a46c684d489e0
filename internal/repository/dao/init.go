package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Participant{},
		&AttendanceRecord{},
	)
}

// dropAllTables is used by tests to start from an empty schema.
func dropAllTables(db *gorm.DB) error {
	return db.Migrator().DropTable(&AttendanceRecord{}, &Participant{})
}
