package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twmb/franz-go/pkg/kgo"
)

func TestToRecord(t *testing.T) {
	rec := toRecord(Message{
		Topic:     "roast.created",
		Key:       []byte("r-1"),
		Value:     []byte(`{"roast_id":"r-1"}`),
		EventType: "ROAST_CREATED",
	})

	assert.Equal(t, "roast.created", rec.Topic)
	assert.Equal(t, []byte("r-1"), rec.Key)
	if assert.Len(t, rec.Headers, 1) {
		assert.Equal(t, EventTypeHeader, rec.Headers[0].Key)
		assert.Equal(t, "ROAST_CREATED", string(rec.Headers[0].Value))
	}

	assert.Empty(t, toRecord(Message{Topic: "t"}).Headers)
}

func TestEventType(t *testing.T) {
	headers := []kgo.RecordHeader{
		{Key: "traceparent", Value: []byte("00-abc")},
		{Key: EventTypeHeader, Value: []byte("ROAST_CREATED")},
	}
	assert.Equal(t, "ROAST_CREATED", eventType(headers))
	assert.Equal(t, "", eventType(nil))
}
