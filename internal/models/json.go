package models

import (
	"database/sql/driver"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringList is a JSON encoded list of strings stored in a single column.
// It wraps gorm.io/datatypes.JSONType to allow for custom data type mapping.
type StringList struct {
	datatypes.JSONType[[]string]
}

// NewStringList copies values into a StringList, nil becomes an empty list
func NewStringList(values []string) StringList {
	if values == nil {
		values = []string{}
	}
	return StringList{datatypes.NewJSONType(values)}
}

// Strings returns the stored list, never nil
func (s StringList) Strings() []string {
	v := s.Data()
	if v == nil {
		return []string{}
	}
	return v
}

// Value promotes the embedded JSONType's Value method
func (s StringList) Value() (driver.Value, error) {
	return s.JSONType.Value()
}

// Scan promotes the embedded JSONType's Scan method
func (s *StringList) Scan(value interface{}) error {
	return s.JSONType.Scan(value)
}

// GormDBDataType ensures the correct data type is used for each database driver.
// MSSQL has no json type.
func (StringList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
