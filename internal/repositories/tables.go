package repositories

import "gorm.io/gorm"

// tableName resolves the physical table for model under db's naming
// strategy, so raw joins honour the configured prefix.
func tableName(db *gorm.DB, model interface{}) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		panic(err)
	}
	return stmt.Schema.Table
}
