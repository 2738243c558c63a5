package mysql

import (
	"fmt"
	"time"

	"wallet-service/src/pkg/log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
)

type DBInterface interface {
	GetDB() (*sqlx.DB, error)
}

type connection struct {
	db *sqlx.DB
}

// InitConnection opens the pool from viper config. Credentials and pool
// bounds all come from config, nothing is hardcoded.
func InitConnection(v *viper.Viper, logger log.Log) (DBInterface, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		v.GetString("mysql.username"),
		v.GetString("mysql.password"),
		v.GetString("mysql.host"),
		v.GetInt("mysql.port"),
		v.GetString("mysql.database"),
	)

	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		logger.Error("mysql", fmt.Sprintf("failed to connect: %v", err), "InitConnection", "")
		return nil, err
	}

	maxOpen := v.GetInt("mysql.pool.max_open")
	if maxOpen == 0 {
		maxOpen = 20
	}
	maxIdle := v.GetInt("mysql.pool.max_idle")
	if maxIdle == 0 {
		maxIdle = 5
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(time.Hour)

	logger.Info("mysql", "database connection established", "InitConnection", v.GetString("mysql.database"))
	return &connection{db: db}, nil
}

func (c *connection) GetDB() (*sqlx.DB, error) {
	if c.db == nil {
		return nil, fmt.Errorf("mysql connection is not initialized")
	}
	return c.db, nil
}
