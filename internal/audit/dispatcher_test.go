package audit

import (
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/db/dbtest"
	"github.com/Artssj1234/reservaciones-alegres-sub000/internal/models"
)

func TestDispatcherPersistsQueuedEventsOnClose(t *testing.T) {
	gdb := dbtest.Open(t)
	d := NewDispatcher(New(gdb), zerolog.New(io.Discard))

	userID := uint(7)
	apID := uint(42)
	d.Dispatch(Event{
		BusinessID: 1,
		UserID:     &userID,
		Action:     "appointment_accepted",
		Entity:     "appointment",
		EntityID:   &apID,
		Metadata:   map[string]string{"from": "pending"},
	})
	d.Dispatch(Event{BusinessID: 1, Action: "service_created", Entity: "service"})
	d.Close()

	var rows []models.AuditLog
	require.NoError(t, gdb.Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "appointment_accepted", rows[0].Action)
	assert.JSONEq(t, `{"from":"pending"}`, rows[0].Metadata)
	assert.Equal(t, "", rows[1].Metadata)

	// Dispatch after Close is ignored.
	d.Dispatch(Event{BusinessID: 1, Action: "late"})
	d.Close()
}
