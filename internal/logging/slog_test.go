package logging

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/teemow/roomclerk/internal/interval"
)

func TestAnonymizeEmail(t *testing.T) {
	assert.Equal(t, "", AnonymizeEmail(""))

	hashed := AnonymizeEmail("alice@example.com")
	assert.Contains(t, hashed, "user:")
	assert.NotContains(t, hashed, "alice")

	// Deterministic, so log entries remain correlatable.
	assert.Equal(t, hashed, AnonymizeEmail("alice@example.com"))
	assert.NotEqual(t, hashed, AnonymizeEmail("bob@example.com"))
}

func TestErrNilIsOmittable(t *testing.T) {
	attr := Err(nil)
	assert.Equal(t, slog.KindGroup, attr.Value.Kind())
	assert.Empty(t, attr.Key)
}

func TestAttributeKeys(t *testing.T) {
	assert.Equal(t, KeyOperation, Operation("check").Key)
	assert.Equal(t, KeyDomain, Domain("corp").Key)
	assert.Equal(t, KeyRoom, Room("room-a").Key)
	assert.Equal(t, KeyStatus, Status(StatusSuccess).Key)
	assert.Equal(t, KeyUserHash, UserHash("alice@example.com").Key)
}

func TestWindowAttr(t *testing.T) {
	start := time.Date(2025, 7, 11, 14, 0, 0, 0, time.UTC)
	attr := Window(interval.TimeInterval{Start: start, End: start.Add(time.Hour)})
	assert.Equal(t, KeyWindow, attr.Key)
	assert.Contains(t, attr.Value.String(), "2025-07-11T14:00:00Z")
}

func TestWithOperation(t *testing.T) {
	logger := WithOperation(slog.New(slog.DiscardHandler), "freebusy_check")
	assert.NotNil(t, logger)
}
