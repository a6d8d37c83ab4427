package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"govforms/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	log *zap.Logger
}

func NewDashboardHandler(log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{log: log}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := repository.CountUsers(ctx)
	if err != nil {
		h.log.Error("Failed to count users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	formsCount, err := repository.CountForms(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	interviews, err := repository.CountInterviews(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	completed, err := repository.CountCompletedInterviews(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalUsers":          users,
		"totalForms":          formsCount,
		"totalInterviews":     interviews,
		"completedInterviews": completed,
	})
}

// Charts returns echarts option payloads the dashboard renders
// client-side: interviews per day over the last 30 days and a
// per-status breakdown.
func (h *DashboardHandler) Charts(c *gin.Context) {
	ctx := c.Request.Context()
	since := time.Now().UTC().AddDate(0, 0, -30)

	timeline, err := repository.GetInterviewTimeline(ctx, since)
	if err != nil {
		h.log.Error("Failed to get interview timeline", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load timeline data"})
		return
	}
	statuses, err := repository.CountInterviewsByStatus(ctx)
	if err != nil {
		h.log.Error("Failed to get interview status counts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load status data"})
		return
	}

	timelineJSON, _ := json.Marshal(generateTimelineChart(timeline).JSON())
	statusJSON, _ := json.Marshal(generateStatusChart(statuses).JSON())

	c.JSON(http.StatusOK, gin.H{
		"timeline": json.RawMessage(timelineJSON),
		"statuses": json.RawMessage(statusJSON),
	})
}

func generateTimelineChart(data []repository.TimelineDataPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Interviews Over Time",
			Subtitle: "Last 30 days",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	items := make([]opts.LineData, 0)
	for _, point := range data {
		items = append(items, opts.LineData{Value: []interface{}{point.Date, point.Value}})
	}

	line.AddSeries("Interviews", items).SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}

func generateStatusChart(data []repository.StatusCount) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Interviews by Status",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	labels := make([]string, 0, len(data))
	items := make([]opts.BarData, 0, len(data))
	for _, point := range data {
		labels = append(labels, point.Status)
		items = append(items, opts.BarData{Value: point.Count})
	}

	bar.SetXAxis(labels).AddSeries("Interviews", items)
	return bar
}
