package worker

import (
	"github.com/architdhariwal/sms-backend/internal/service"
)

// StartAuditWorker subscribes the audit log to record change events.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
