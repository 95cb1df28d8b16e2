package worker

import (
	"github.com/BadhanCB/outfitex-backend/internal/events"
	"github.com/BadhanCB/outfitex-backend/internal/service"
)

// StartActivityLog registers the activity log subscriber.
func StartActivityLog(activity *service.ActivityLog, dispatcher events.Dispatcher) {
	if activity == nil {
		return
	}
	activity.RegisterHandlers(dispatcher)
}

// StartCacheInvalidation drops cached catalog lists on catalog changing events.
func StartCacheInvalidation(catalogService *service.CatalogService, dispatcher events.Dispatcher) {
	if catalogService == nil {
		return
	}
	catalogService.RegisterHandlers(dispatcher)
}
