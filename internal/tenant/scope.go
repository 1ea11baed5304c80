package tenant

import "gorm.io/gorm"

// Scope restricts a query to one organization.
func Scope(organizationID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", organizationID)
	}
}

// ScopeTable is Scope for joined queries where the column must be qualified.
func ScopeTable(table, organizationID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".organization_id = ?", organizationID)
	}
}
