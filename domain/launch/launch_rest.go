package launch

import (
	"launchmaster/bizerror"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathPhaseCalculations = "/v1/phase-calculations"
	PathDefaultTemplate   = "/v1/phase-templates/default"
	PathStatuses          = "/v1/statuses"
	PathPhaseColors       = "/v1/phase-colors"
)

type CalculationRequest struct {
	LaunchModel string          `json:"launchModel" binding:"lte=255"`
	EventDate   time.Time       `json:"eventDate" binding:"required"`
	Phases      []PhaseTemplate `json:"phases" binding:"omitempty,dive"`
}

type CalculationResult struct {
	LaunchModel string    `json:"launchModel"`
	EventDate   time.Time `json:"eventDate"`
	Phases      Phases    `json:"phases"`
}

func RegisterLaunchRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group("", middleWares...)
	g.POST(PathPhaseCalculations, handleCalculate)
	g.GET(PathDefaultTemplate, handleDefaultTemplate)
	g.GET(PathStatuses+"/:status", handleStatusInfo)
	g.GET(PathPhaseColors+"/:key", handlePhaseColor)
}

func handleCalculate(c *gin.Context) {
	req := CalculationRequest{}
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	templates := req.Phases
	if templates == nil {
		templates = DefaultTemplate()
	}
	phases, err := CalculatePhaseDates(req.EventDate, templates)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	c.JSON(http.StatusOK, &CalculationResult{LaunchModel: req.LaunchModel, EventDate: Day(req.EventDate), Phases: phases})
}

func handleDefaultTemplate(c *gin.Context) {
	c.JSON(http.StatusOK, DefaultTemplate())
}

func handleStatusInfo(c *gin.Context) {
	c.JSON(http.StatusOK, StatusInfo(c.Param("status")))
}

func handlePhaseColor(c *gin.Context) {
	key := c.Param("key")
	c.JSON(http.StatusOK, gin.H{"key": key, "name": PhaseName(key), "color": PhaseColor(key)})
}
