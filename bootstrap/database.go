package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"twogether/pkg/config"
	"twogether/pkg/database"
	"twogether/pkg/database/migrations"
	"twogether/pkg/logger"
)

// SetupDB 连接数据库，按配置自动迁移
func SetupDB() *gorm.DB {
	db := ConnectDB()
	if config.GetBool("database.auto_migrate", true) {
		if err := Migrate(db); err != nil {
			logger.ErrorString("Database", "AutoMigrate", err.Error())
			panic(err)
		}
	}
	return db
}

// ConnectDB 初始化数据库和 ORM
func ConnectDB() *gorm.DB {
	// 根据配置文件选择数据库类型
	var dbConfig gorm.Dialector
	switch config.Get("database.connection") {
	case "postgresql":
		dbConfig = setupPostgreSQL()
	case "sqlite":
		dbConfig = setupSQLite()
	default:
		panic(errors.New("unsupported database connection: " + config.Get("database.connection")))
	}

	// 连接数据库，并设置 GORM 的日志模式
	database.Connect(dbConfig, logger.NewGormLogger())

	// 设置连接池
	setupDBPool()

	return database.DB
}

// Migrate 自动迁移数据库结构
func Migrate(db *gorm.DB) error {
	if err := database.AutoMigrate(db, migrations.RegisterTables()); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logger.InfoString("Database", "AutoMigrate", "schema is up to date")
	return nil
}

// setupPostgreSQL 配置 PostgreSQL 连接，会话时区固定为 UTC
func setupPostgreSQL() gorm.Dialector {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		config.Get("database.postgresql.host"),
		config.Get("database.postgresql.port"),
		config.Get("database.postgresql.username"),
		config.Get("database.postgresql.password"),
		config.Get("database.postgresql.database"),
		config.Get("database.postgresql.sslmode", "disable"),
	)
	return postgres.New(postgres.Config{
		DSN: dsn,
	})
}

// setupSQLite 配置 SQLite 连接
func setupSQLite() gorm.Dialector {
	database := config.Get("database.sqlite.database")
	return sqlite.Open(database)
}

// setupDBPool 配置数据库连接池
func setupDBPool() {
	database.SQLDB.SetMaxOpenConns(config.GetInt("database.postgresql.max_open_connections"))
	database.SQLDB.SetMaxIdleConns(config.GetInt("database.postgresql.max_idle_connections"))
	database.SQLDB.SetConnMaxLifetime(time.Duration(config.GetInt("database.postgresql.max_life_seconds")) * time.Second)
}
