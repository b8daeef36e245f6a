package models

// All lists every persisted model in dependency order. Used by SQLite
// AutoMigrate in local mode and tests; Postgres is managed by goose.
func All() []any {
	return []any{
		&User{},
		&Warehouse{},
		&Zone{},
		&Location{},
		&WarehouseUser{},
		&Product{},
		&Inventory{},
		&Order{},
		&OrderItem{},
		&ActivityLog{},
	}
}
