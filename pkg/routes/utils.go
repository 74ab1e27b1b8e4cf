package routes

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/agrosense/agrosense/pkg/config"
	"github.com/agrosense/agrosense/pkg/controllers"
	"github.com/agrosense/agrosense/pkg/models"
	headerextractors "github.com/agrosense/agrosense/pkg/routes/middlewares/basic-header-extractors"
	identityextractors "github.com/agrosense/agrosense/pkg/routes/middlewares/identity-extractors"
	"github.com/agrosense/agrosense/pkg/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewGinEngine builds the base router with CORS, metadata extraction and
// request logging. When authSvc is not nil every request also gets its bearer
// token resolved into a caller identity.
func NewGinEngine(logger *logrus.Entry, authSvc services.AuthService) *gin.Engine {
	gin.ForceConsoleColor()
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
		logger.Debugf("Endpoint: %-6s %s", httpMethod, absolutePath)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"*"}

	router := gin.New()
	router.Use(
		cors.New(corsConfig),
		headerextractors.RequestMetadataToContextMiddleware(logger),
	)

	if authSvc != nil {
		router.Use(identityextractors.RequestMetadataToContextMiddleware(logger, authSvc))
	}

	router.Use(LogRequest(logger))

	return router
}

func RunHttpRouter(logger *logrus.Entry, routerEngine http.Handler, httpServerCfg config.HttpServer, apiInfo models.APIServiceInfo) (int, error) {
	hCheckRoute := controllers.NewHealthCheckRoute(apiInfo)
	mainLogger := logger
	if !httpServerCfg.HealthCheckLogging {
		nooutLogger := logrus.New()
		nooutLogger.Out = io.Discard

		mainLogger = nooutLogger.WithField("", "")
	}

	healthEngine := NewGinEngine(mainLogger, nil)
	healthEngine.GET("/health", hCheckRoute.HealthCheck)

	mainEngine := http.NewServeMux()
	mainEngine.Handle("/", routerEngine)
	mainEngine.Handle("/health", healthEngine)

	addr := fmt.Sprintf("%s:%d", httpServerCfg.ListenAddress, httpServerCfg.Port)

	t := time.Second * 10
	server := http.Server{
		Addr:         addr,
		Handler:      mainEngine,
		ReadTimeout:  t,
		WriteTimeout: t,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return -1, err
	}

	usedPort := listener.Addr().(*net.TCPAddr).Port

	wg := new(sync.WaitGroup)
	wg.Add(1)
	startLaunching := func() {
		wg.Done()
	}

	httpErrChan := make(chan error, 1)

	if strings.HasSuffix(addr, ":0") {
		addr = strings.ReplaceAll(addr, ":0", "")
	}

	go func() {
		if httpServerCfg.Protocol == config.HTTPS {
			logger.Infof("HTTPS server listening on %s:%d", addr, usedPort)
			startLaunching()
			err := server.ServeTLS(listener, httpServerCfg.CertFile, httpServerCfg.KeyFile)
			if err != nil {
				logger.Errorf("could not start http server: %s", err)
				httpErrChan <- err
			}
		} else {
			logger.Infof("HTTP server listening on %s:%d", addr, usedPort)
			startLaunching()
			err := server.Serve(listener)
			if err != nil {
				logger.Errorf("could not start http server: %s", err)
				httpErrChan <- err
			}
		}
	}()

	// If no error is received within 3 seconds of starting the HTTP server,
	// mark it as RUNNING
	ctxTimeout, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	wg.Wait()

	select {
	case <-ctxTimeout.Done():
		logger.Info("HTTP server ready to accept requests")
	case err := <-httpErrChan:
		return -1, err
	}

	return usedPort, nil
}

type respBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w respBodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func LogRequest(logger *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		rbw := &respBodyWriter{
			body:           bytes.NewBufferString(""),
			ResponseWriter: c.Writer,
		}
		c.Writer = rbw

		start := time.Now()

		c.Next()

		latency := time.Since(start)

		logger.Infof("[Request] %v |%3d| %13v | %15s |%-7s %s",
			start.Format("2006/01/02 - 15:04:05"),
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			c.Request.Method,
			c.Request.URL.Path,
		)
	}
}
