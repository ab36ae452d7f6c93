package repository

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type MessageBus interface {
	Publish(topic string, data []byte) error
}

// PublishEvent encodes event and publishes it on topic.
func PublishEvent(bus MessageBus, topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return bus.Publish(topic, data)
}

// DecodeEvent is the consumer side of PublishEvent.
func DecodeEvent(data []byte, event any) error {
	return json.Unmarshal(data, event)
}

// NopBus drops every event. Used when no bus is configured and in tests.
type NopBus struct{}

func (NopBus) Publish(string, []byte) error { return nil }
