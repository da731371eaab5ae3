package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"assethub/src/config"
	aws_handler "assethub/src/utils/aws"
)

// SetupDB opens the GORM connection every repository shares. When an AWS
// secret id is configured the database password comes from Secrets Manager
// instead of the settings file.
func SetupDB(cfg *config.Config) (*gorm.DB, error) {
	password := cfg.Databases.SQL.Password
	if cfg.AWS.DBPasswordSecretID != "" {
		handler, err := aws_handler.NewAWSHandler(cfg.AWS.Region)
		if err != nil {
			return nil, err
		}
		password, err = handler.SecretManager.GetSecretValue(cfg.AWS.DBPasswordSecretID)
		if err != nil {
			return nil, fmt.Errorf("failed to read db password secret: %w", err)
		}
	}

	dsn := cfg.Databases.SQL.ConnectionString
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.Databases.SQL.Host,
			cfg.Databases.SQL.Username,
			password,
			cfg.Databases.SQL.Database,
			cfg.Databases.SQL.Port)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetConnMaxLifetime(time.Minute * 3)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
