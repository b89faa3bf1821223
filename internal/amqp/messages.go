package amqp

import (
	"encoding/json"
	"time"
)

// DocumentChangedMessage announces that a planner document was saved.
// It carries only the key and save counter; consumers re-read the document
// from storage, so a lost message costs one reload, never data.
type DocumentChangedMessage struct {
	Key       string    `json:"key"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func NewDocumentChangedMessage(key string, version int64) *DocumentChangedMessage {
	return &DocumentChangedMessage{
		Key:       key,
		Version:   version,
		Timestamp: time.Now(),
	}
}

func (m *DocumentChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func DocumentChangedMessageFromJSON(data []byte) (*DocumentChangedMessage, error) {
	var msg DocumentChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Key == "" {
		return nil, errEmptyKey
	}
	return &msg, nil
}
