package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

type ConnectParams struct {
	Driver     string
	Host       string
	Port       string
	Database   string
	User       string
	Password   string
	SqlitePath string
	DebugMode  bool
	Migrate    bool
}

func Connect(params ConnectParams) (err error) {
	if DB != nil {
		return nil
	}
	dialector, err := getDialector(params)
	if err != nil {
		return err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gorm_logrus.New(),
	})
	if err != nil {
		return errors.Wrap(err, "Ошибка подключения к БД")
	}
	if params.Driver == DriverSqlite {
		// sqlite не поддерживает параллельную запись
		sqlDB, err := db.DB()
		if err != nil {
			return errors.Wrap(err, "Ошибка подключения к БД")
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if params.DebugMode {
		db.Logger = logger.Default.LogMode(logger.Info)
		DB = db.Debug()
	} else {
		DB = db
	}
	if params.Migrate {
		if err = AutoMigrateDB(DB); err != nil {
			return err
		}
	}
	log.WithField("driver", params.Driver).Info("Сервис успешно подключен к БД")
	return nil
}

func getDialector(params ConnectParams) (gorm.Dialector, error) {
	switch params.Driver {
	case DriverPostgres, "":
		dbConnString := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s",
			params.Host, params.Port, params.User, params.Database, params.Password)
		return postgres.Open(dbConnString), nil
	case DriverSqlite:
		return sqlite.Open(params.SqlitePath), nil
	}
	return nil, errors.Errorf("неподдерживаемый драйвер БД: %v", params.Driver)
}

func PingDB() error {
	db, err := DB.DB()
	if err != nil {
		return err
	}
	if err = db.Ping(); err != nil {
		return err
	}
	return nil
}
