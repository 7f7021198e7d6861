package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/audit"
)

// writeAudit records a staff change to the business configuration.
func writeAudit(
	d *audit.Dispatcher,
	c *gin.Context,
	action string,
	entity string,
	entityID *uint,
	meta any,
) {

	userID := userIDFrom(c)
	d.Dispatch(audit.Event{
		BusinessID: businessIDFrom(c),
		UserID:     &userID,
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		Metadata:   meta,
	})
}
