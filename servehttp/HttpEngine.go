package servehttp

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"launchmaster/bizerror"
	"launchmaster/infra/metrics"
	"launchmaster/infra/tracing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var ShutdownTimeout = 3 * time.Second

// NewEngine builds the gin engine with the middlewares shared by every API.
func NewEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), tracing.TracingIngress(), metrics.Ingress(), bizerror.ErrorHandling())
	return engine
}

// StartHTTPServer serves engine on addr until SIGINT or SIGTERM, then shuts down gracefully.
func StartHTTPServer(engine *gin.Engine, addr string) {
	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	go func() {
		logrus.Infof("http server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			// will call os.Exit(1)
			logrus.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 send syscall.SIGINT
	// kill -9 send syscall.SIGKILL, can't be caught
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Infof("[QUIT] shutdown signal has been received, the service will exit in %v.", ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("[QUIT] http server shutdown failed: %v", err)
		return
	}
	logrus.Info("[QUIT] http server is shutdown gracefully, new request will be rejected.")
}
