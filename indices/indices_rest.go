package indices

import (
	"launchmaster/domain/project"
	"launchmaster/misc"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	PathIndexRequests = "/v1/index-requests"
	PathProjectSearch = "/v1/project-search"
)

// ProjectSource gives the projects a full synchronization indexes.
type ProjectSource interface {
	Projects() []project.Project
}

func RegisterIndicesRestAPI(r *gin.Engine, source ProjectSource, middleWares ...gin.HandlerFunc) {
	g := r.Group("", middleWares...)
	g.POST(PathIndexRequests, func(c *gin.Context) {
		success, err := ScheduleNewSyncRunFunc(source.Projects())
		if err != nil {
			panic(err)
		}
		c.JSON(http.StatusOK, gin.H{"result": success})
	})
	g.GET(PathProjectSearch, handleSearchProjects)
	g.GET(PathProjectSearch+"/:id", handleGetIndexedProject)
}

func handleSearchProjects(c *gin.Context) {
	projects, err := SearchProjectsFunc(c.Request.Context(), c.Query("q"))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, projects)
}

func handleGetIndexedProject(c *gin.Context) {
	id, err := misc.BindingPathID(c)
	if err != nil {
		panic(err)
	}
	p, err := GetIndexedProjectFunc(c.Request.Context(), id)
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, p)
}
