package handler

import (
	"context"
	"log"

	"main/model"

	"github.com/gin-gonic/gin"
	"github.com/mileusna/useragent"
)

// ActivityRecorder appends audit entries. Failures are logged, never surfaced
// to the client; an audit miss should not fail the request that caused it.
type ActivityRecorder interface {
	Record(ctx context.Context, entry *model.ActivityLog) error
}

// recordActivity builds an audit entry from the request and appends it.
// The client's user agent is parsed into browser/os details.
func recordActivity(c *gin.Context, activity ActivityRecorder, userID, action, targetID, targetType string, details map[string]any) {
	if activity == nil {
		return
	}

	ua := useragent.Parse(c.Request.UserAgent())
	if details == nil {
		details = map[string]any{}
	}
	if ua.Name != "" {
		details["browser"] = ua.Name
		details["browser_version"] = ua.Version
	}
	if ua.OS != "" {
		details["os"] = ua.OS
	}

	entry := &model.ActivityLog{
		UserID:     userID,
		Action:     action,
		TargetID:   targetID,
		TargetType: targetType,
		Details:    details,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}

	if err := activity.Record(c.Request.Context(), entry); err != nil {
		log.Printf("failed to record %s activity: %v", action, err)
	}
}
