package service

import (
	"time"

	"spark/pkg/helper"

	eventtypes "spark/pkg/types/eventtype"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func newPayload(eventType string, data interface{}, at time.Time) eventtypes.EventPayload {
	return eventtypes.EventPayload{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: at,
		Data:       helper.ToJSON(data),
	}
}

func datatypesSlice(items []string) datatypes.JSONSlice[string] {
	return datatypes.JSONSlice[string](items)
}
