package kafka

import (
	"testing"
	"time"
)

func TestMessageBuilder(t *testing.T) {
	payload := map[string]string{"recipientId": "abc", "type": "APPOINTMENT_CREATED"}

	msg := NewMessage().
		WithKey("abc").
		WithValue(payload).
		WithEventType("notification.created").
		WithSource("appointments").
		WithHeader(HeaderRecipientID, "abc").
		Build()

	if msg.Key != "abc" {
		t.Errorf("expected key abc, got %s", msg.Key)
	}
	if len(msg.Value) == 0 {
		t.Error("expected non-empty value")
	}
	if msg.GetEventType() != "notification.created" {
		t.Errorf("expected event type notification.created, got %s", msg.GetEventType())
	}
	if msg.GetEventID() == "" {
		t.Error("expected a generated event ID")
	}
	if ts, ok := msg.GetHeader(HeaderTimestamp); !ok || ts == "" {
		t.Error("expected a timestamp header")
	}

	var decoded map[string]string
	if err := msg.DecodeValue(&decoded); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if decoded["type"] != "APPOINTMENT_CREATED" {
		t.Errorf("expected decoded type APPOINTMENT_CREATED, got %s", decoded["type"])
	}
}

func TestMessageBuilderPreservesEventID(t *testing.T) {
	msg := NewMessage().
		WithKey("k").
		WithValue("v").
		WithHeader(HeaderEventID, "fixed-id").
		Build()

	if msg.GetEventID() != "fixed-id" {
		t.Errorf("expected fixed-id, got %s", msg.GetEventID())
	}
}

func TestRetryCount(t *testing.T) {
	msg := Message{Headers: map[string]string{}}

	if msg.GetRetryCount() != 0 {
		t.Errorf("expected retry count 0, got %d", msg.GetRetryCount())
	}

	msg.IncrementRetryCount()
	msg.IncrementRetryCount()
	if msg.GetRetryCount() != 2 {
		t.Errorf("expected retry count 2, got %d", msg.GetRetryCount())
	}

	msg.Headers[HeaderRetryCount] = "garbage"
	if msg.GetRetryCount() != 0 {
		t.Errorf("expected retry count 0 for unparseable header, got %d", msg.GetRetryCount())
	}
}

func TestMessageBuilderTimestamp(t *testing.T) {
	before := time.Now()
	msg := NewMessage().WithKey("k").WithValue("v").Build()
	if msg.Timestamp.Before(before.Add(-time.Second)) {
		t.Error("expected builder to stamp a recent timestamp")
	}
}
