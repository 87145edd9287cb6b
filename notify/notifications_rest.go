package notify

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var PathNotifications = "/v1/notifications"

func RegisterNotificationsRestAPI(r *gin.Engine, feed *Feed, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathNotifications, middleWares...)
	g.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, feed.Recent())
	})
}
