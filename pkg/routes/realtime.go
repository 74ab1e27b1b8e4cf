package routes

import (
	"net/http"

	"github.com/agrosense/agrosense/pkg/realtime"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// NewRealtimeHTTPLayer upgrades connecting clients to websocket and hands the
// connection to the sensor update hub.
func NewRealtimeHTTPLayer(router *gin.RouterGroup, hub *realtime.Hub, logger *logrus.Entry) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	rv1 := router.Group("/v1")

	rv1.GET("/realtime", func(ctx *gin.Context) {
		conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			logger.Warnf("websocket upgrade failed: %s", err)
			return
		}

		client := realtime.NewClient(hub, conn, logger)
		go client.Run()
	})
}
