package project

import (
	"context"
	"errors"
	"launchmaster/bizerror"
	"launchmaster/misc"
	"net/http"
	"strconv"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathProjects  = "/v1/projects"
	PathDashboard = "/v1/dashboard"
	PathTimeline  = "/v1/timeline"

	nowFunc = time.Now
)

type ProjectService interface {
	Projects() []Project
	GetProject(id types.ID) (Project, bool)
	LoadProjects(ctx context.Context) error
	AddProject(ctx context.Context, c *ProjectCreating) (types.ID, error)
	Update(ctx context.Context, id types.ID, u *ProjectUpdating) error
	Delete(ctx context.Context, id types.ID) error
}

func RegisterProjectsRestAPI(r *gin.Engine, svc ProjectService, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathProjects, middleWares...)
	g.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Projects())
	})
	g.POST("", func(c *gin.Context) {
		creating := ProjectCreating{}
		if err := c.ShouldBindBodyWith(&creating, binding.JSON); err != nil {
			panic(&bizerror.ErrBadParam{Cause: err})
		}
		id, err := svc.AddProject(c.Request.Context(), &creating)
		if err != nil {
			panic(err)
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	})
	g.POST("/reload", func(c *gin.Context) {
		if err := svc.LoadProjects(c.Request.Context()); err != nil {
			panic(err)
		}
		c.JSON(http.StatusOK, svc.Projects())
	})
	g.GET("/:id", func(c *gin.Context) {
		id, err := misc.BindingPathID(c)
		if err != nil {
			panic(err)
		}
		p, ok := svc.GetProject(id)
		if !ok {
			panic(bizerror.ErrNotFound)
		}
		c.JSON(http.StatusOK, p)
	})
	g.PUT("/:id", func(c *gin.Context) {
		id, err := misc.BindingPathID(c)
		if err != nil {
			panic(err)
		}
		updating := ProjectUpdating{}
		if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
			panic(&bizerror.ErrBadParam{Cause: err})
		}
		if err := svc.Update(c.Request.Context(), id, &updating); err != nil {
			panic(err)
		}
		if p, ok := svc.GetProject(id); ok {
			c.JSON(http.StatusOK, p)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	g.DELETE("/:id", func(c *gin.Context) {
		id, err := misc.BindingPathID(c)
		if err != nil {
			panic(err)
		}
		if err := svc.Delete(c.Request.Context(), id); err != nil {
			panic(err)
		}
		c.Status(http.StatusNoContent)
	})

	v := r.Group("", middleWares...)
	v.GET(PathDashboard, func(c *gin.Context) {
		limit := DefaultUpcomingLimit
		if q := c.Query("upcoming"); q != "" {
			n, err := strconv.Atoi(q)
			if err != nil || n < 0 {
				panic(&bizerror.ErrBadParam{Cause: errors.New("invalid upcoming limit '" + q + "'")})
			}
			limit = n
		}
		c.JSON(http.StatusOK, BuildDashboard(svc.Projects(), nowFunc(), limit))
	})
	v.GET(PathTimeline, func(c *gin.Context) {
		c.JSON(http.StatusOK, BuildTimeline(svc.Projects()))
	})
}
