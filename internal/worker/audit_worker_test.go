package worker

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/architdhariwal/sms-backend/internal/events"
	"github.com/architdhariwal/sms-backend/internal/service"
)

func TestStartAuditWorker(t *testing.T) {
	StartAuditWorker(nil)

	core, logs := observer.New(zap.InfoLevel)
	d := events.NewInMemoryDispatcher()
	StartAuditWorker(service.NewAuditService(d, zap.New(core)))

	if err := d.Publish(context.Background(), events.Event{Type: events.EventRecordDeleted, Collection: "books", Key: "1"}); err != nil {
		t.Fatal(err)
	}
	if logs.Len() != 1 {
		t.Fatalf("got %d audit entries, want 1", logs.Len())
	}
}
