package handler

import (
	"context"
	"log"
	"math"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// ReportWorklogStore is the slice of the worklog repository reports read from.
type ReportWorklogStore interface {
	ListPage(ctx context.Context, filter bson.M, page, limit int) ([]*model.Worklog, int64, error)
	Summarize(ctx context.Context, filter bson.M) (dto.WorklogSummary, error)
	MostActiveUsers(ctx context.Context, filter bson.M, limit int) ([]repository.TopUser, error)
}

// ActivityLister pages through the audit trail.
type ActivityLister interface {
	List(ctx context.Context, filter bson.M, page, limit int) ([]*model.ActivityLog, int64, error)
}

type ReportHandler struct {
	WorklogReports ReportWorklogStore
	Activity ActivityLister
}

// Worklogs returns a filtered, paginated worklog report plus an aggregate
// summary over the whole filtered set (not just the page).
func (h *ReportHandler) Worklogs(c *gin.Context) {
	filter := bson.M{}
	if dateRange := dateRangeQuery(c, "start_date", "end_date"); dateRange != nil {
		filter["date"] = dateRange
	}
	if userID := c.Query("user_id"); userID != "" {
		filter["user_id"] = userID
	}
	if taskID := c.Query("task_id"); taskID != "" {
		filter["task_id"] = taskID
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	reports, total, err := h.WorklogReports.ListPage(c.Request.Context(), filter, page, limit)
	if err != nil {
		log.Printf("report query failed: %v", err)
		utils.InternalError(c, "Failed to fetch reports")
		return
	}
	if reports == nil {
		reports = []*model.Worklog{}
	}

	summary, err := h.WorklogReports.Summarize(c.Request.Context(), filter)
	if err != nil {
		log.Printf("report summary failed: %v", err)
		utils.InternalError(c, "Failed to fetch reports")
		return
	}

	utils.Success(c, dto.ReportResponse{
		Reports:     reports,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		CurrentPage: page,
		Total:       total,
		Summary:     summary,
	})
}

// ActivityLogs returns a filtered, paginated view of the audit trail.
func (h *ReportHandler) ActivityLogs(c *gin.Context) {
	filter := bson.M{}
	if userID := c.Query("user_id"); userID != "" {
		filter["user_id"] = userID
	}
	if action := c.Query("action"); action != "" {
		filter["action"] = action
	}
	if dateRange := dateRangeQuery(c, "start_date", "end_date"); dateRange != nil {
		filter["timestamp"] = dateRange
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	activities, total, err := h.Activity.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		log.Printf("activity query failed: %v", err)
		utils.InternalError(c, "Failed to fetch activity logs")
		return
	}
	if activities == nil {
		activities = []*model.ActivityLog{}
	}

	utils.Success(c, dto.ActivityListResponse{
		Activities:  activities,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		CurrentPage: page,
		Total:       total,
	})
}

// TopUsers ranks users by accumulated minutes over the filtered set.
func (h *ReportHandler) TopUsers(c *gin.Context) {
	filter := bson.M{}
	if dateRange := dateRangeQuery(c, "start_date", "end_date"); dateRange != nil {
		filter["date"] = dateRange
	}

	limit := queryInt(c, "limit", 5)

	users, err := h.WorklogReports.MostActiveUsers(c.Request.Context(), filter, limit)
	if err != nil {
		log.Printf("top users query failed: %v", err)
		utils.InternalError(c, "Failed to fetch top users")
		return
	}
	if users == nil {
		users = []repository.TopUser{}
	}

	utils.Success(c, users)
}

// dateRangeQuery builds a $gte/$lte range from two query params. Accepts
// RFC3339 timestamps or plain dates. Returns nil when neither param parses.
func dateRangeQuery(c *gin.Context, startKey, endKey string) bson.M {
	dateRange := bson.M{}
	if start, ok := parseDate(c.Query(startKey)); ok {
		dateRange["$gte"] = start
	}
	if end, ok := parseDate(c.Query(endKey)); ok {
		dateRange["$lte"] = end
	}
	if len(dateRange) == 0 {
		return nil
	}
	return dateRange
}

func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}
