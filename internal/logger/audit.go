package logger

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// AuditAction mô tả một mutation đã ghi dữ liệu
type AuditAction struct {
	Action       string                 `json:"action"`        // Tên mutation (ví dụ: "createMap")
	ResourceID   string                 `json:"resource_id"`   // ID bản ghi được tạo
	ResourceType string                 `json:"resource_type"` // Loại tài nguyên (ví dụ: "map", "aisle")
	Details      map[string]interface{} `json:"details"`       // Chi tiết bổ sung
	Timestamp    time.Time              `json:"timestamp"`
}

// LogAction ghi audit log cho một mutation thành công
func LogAction(ctx context.Context, action, resourceType, resourceID string, details map[string]interface{}) {
	if details == nil {
		details = map[string]interface{}{}
	}
	audit := AuditAction{
		Action:       action,
		ResourceID:   resourceID,
		ResourceType: resourceType,
		Details:      details,
		Timestamp:    time.Now(),
	}
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		audit.Details["request_id"] = requestID
	}

	GetAuditLogger().WithFields(logrus.Fields{
		"action":        audit.Action,
		"resource_id":   audit.ResourceID,
		"resource_type": audit.ResourceType,
		"details":       audit.Details,
		"timestamp":     audit.Timestamp.Format(time.RFC3339),
	}).Info("Audit log")
}
