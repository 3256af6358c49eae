// connection.go
//
// Production scheduling and order file service for the metalworking shop floor
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of shopfloor.
// shopfloor is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// shopfloor is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with shopfloor.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/shopfloor/internal/config"
	"github.com/localnerve/shopfloor/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector builds the gorm dialector for the configured DB_TYPE.
// DATABASE_URL, when set, is handed to the driver as is.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBType {
	case "mysql", "mariadb":
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
				cfg.DBUser,
				cfg.DBPassword,
				cfg.DBHost,
				cfg.DBPort,
				cfg.DBDatabase,
			)
		}
		return mysql.Open(dsn), nil

	case "postgres", "postgresql":
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
				cfg.DBHost,
				cfg.DBUser,
				cfg.DBPassword,
				cfg.DBDatabase,
				cfg.DBPort,
			)
		}
		return postgres.Open(dsn), nil

	case "sqlite":
		// For SQLite the database is a file path or :memory:
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = cfg.DBDatabase
		}
		return sqlite.Open(dsn), nil

	case "sqlserver", "mssql":
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
				cfg.DBUser,
				cfg.DBPassword,
				cfg.DBHost,
				cfg.DBPort,
				cfg.DBDatabase,
			)
		}
		return sqlserver.Open(dsn), nil
	}

	return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
}

// NewLogger returns the gorm logger used by the service
func NewLogger(level logger.LogLevel) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)
}

// Connect establishes a database connection based on the configured DB_TYPE
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewLogger(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB for connection pool configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	limit := cfg.DBConnectionLimit
	if limit < 1 {
		limit = 1
	}
	sqlDB.SetMaxOpenConns(limit)
	sqlDB.SetMaxIdleConns(max(limit/2, 1))
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	log.Printf("Connected to %s database", cfg.DBType)

	return db, nil
}

// AutoMigrate runs automatic migrations for the tables this service owns.
// The orders table belongs to the order service. It is only created when missing
// and is never altered.
func AutoMigrate(db *gorm.DB) error {
	migrator := db.Migrator()
	if !migrator.HasTable(&models.Order{}) {
		if err := migrator.CreateTable(&models.Order{}); err != nil {
			return err
		}
	}

	if err := db.AutoMigrate(
		&models.ProductionSettings{},
		&models.ProductionTask{},
		&models.ProductionBlueprint{},
	); err != nil {
		return err
	}

	// AutoMigrate would follow the files -> orders reference and migrate orders too
	if !migrator.HasTable(&models.File{}) {
		return migrator.CreateTable(&models.File{})
	}
	return withoutRelationships(db).AutoMigrate(&models.File{})
}

// withoutRelationships returns a session whose migrator ignores associations
func withoutRelationships(db *gorm.DB) *gorm.DB {
	cfg := *db.Config
	cfg.IgnoreRelationshipsWhenMigrating = true

	tx := db.Session(&gorm.Session{NewDB: true})
	tx.Config = &cfg
	return tx
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
