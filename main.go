package main

import (
	"context"
	"flag"
	"net/http"

	"launchmaster/client/es"
	"launchmaster/common"
	"launchmaster/config"
	"launchmaster/domain/launch"
	"launchmaster/domain/project"
	"launchmaster/indices"
	"launchmaster/infra/metrics"
	"launchmaster/infra/tracing"
	"launchmaster/notify"
	"launchmaster/persistence"
	"launchmaster/servehttp"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "path of the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("load configuration failed: %v", err)
	}
	common.SetupLogger(cfg.ServiceName, cfg.LogLevel, cfg.LogFormat)
	logrus.Info("service start")

	closer, err := tracing.InitGlobalTracer(cfg.ServiceName)
	if err != nil {
		logrus.Fatalf("init tracer failed: %v", err)
	}
	defer closer.Close()

	// create database (no conflict)
	if cfg.Database.DriverType == persistence.DriverMysql {
		if err := persistence.PrepareMysqlDatabase(cfg.Database.DriverArgs); err != nil {
			logrus.Fatalf("failed to prepare database %v", err)
		}
	}

	ds := &persistence.DataSourceManager{DatabaseConfig: &cfg.Database}
	if err := ds.Start(); err != nil {
		logrus.Fatalf("database connection failed %v", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration (race condition)
	if err := project.AutoMigrate(ds); err != nil {
		logrus.Fatalf("database migration failed %v", err)
	}

	feed := notify.NewFeed(cfg.NotificationTTL, notify.LogHandler)

	var indexer project.Indexer
	if len(cfg.ESAddresses) > 0 {
		if _, err := es.CreateClient(cfg.ESAddresses); err != nil {
			logrus.Fatalf("create elasticsearch client failed: %v", err)
		}
		indexer = indices.ProjectIndexer{}
	} else {
		logrus.Info("no elasticsearch address configured, search is disabled")
	}

	svc := project.NewService(project.NewStore(ds), feed, indexer)
	// a failed first load is notified, the service still starts with an empty list
	_ = svc.LoadProjects(context.Background())
	if indexer != nil {
		if _, err := indices.ScheduleNewSyncRun(svc.Projects()); err != nil {
			logrus.Warnf("schedule indices sync failed: %v", err)
		}
	}

	engine := servehttp.NewEngine()
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, cfg.ServiceName)
	})
	metrics.RegisterMetricsRestAPI(engine)
	launch.RegisterLaunchRestAPI(engine)
	project.RegisterProjectsRestAPI(engine, svc)
	notify.RegisterNotificationsRestAPI(engine, feed)
	indices.RegisterIndicesRestAPI(engine, svc)

	servehttp.StartHTTPServer(engine, cfg.HTTPAddr)
}
