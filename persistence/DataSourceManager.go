package persistence

import (
	"context"
	"os"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/sirupsen/logrus"
	otgorm "github.com/smacker/opentracing-gorm"
)

var ActiveDataSourceManager *DataSourceManager

type DataSourceManager struct {
	gormDB *gorm.DB

	DatabaseConfig *DatabaseConfig
}

func (m *DataSourceManager) Start() error {
	db, err := connect(m.DatabaseConfig)
	if err != nil {
		return err
	}
	if os.Getenv("GIN_MODE") != "release" {
		db.LogMode(true)
	}
	otgorm.AddGormCallbacks(db)
	m.gormDB = db
	return nil
}

func (m *DataSourceManager) Stop() {
	if m.gormDB != nil {
		if err := m.gormDB.Close(); err != nil {
			logrus.Warnf("failed to close DB: %v", err)
		}
		m.gormDB = nil
	}
}

// GormDB returns a fresh handle carrying the span found in ctx, so statements show up as child spans.
func (m *DataSourceManager) GormDB(ctx context.Context) *gorm.DB {
	if m.gormDB == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return otgorm.SetSpanToGorm(ctx, m.gormDB.New())
}

func connect(config *DatabaseConfig) (*gorm.DB, error) {
	args := config.DriverArgs
	if config.DriverType == DriverMysql {
		normalized, err := NormalizeMysqlArgs(args)
		if err != nil {
			return nil, err
		}
		args = normalized
	}
	db, err := gorm.Open(config.DriverType, args)
	if err != nil {
		return nil, err
	}
	err = db.DB().Ping()
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
