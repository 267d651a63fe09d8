// Package events defines the notifications published when builder records change.
package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

// Topic carries every fluxo event.
const Topic = "fluxo.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	WorkflowSavedEvent   EventType = "workflow.saved"
	WorkflowDeletedEvent EventType = "workflow.deleted"
	FormSavedEvent       EventType = "form.saved"
	TemplateUsedEvent    EventType = "template.used"
	ProductSavedEvent    EventType = "product.saved"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	ActorID   string         `json:"actor_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewBaseEvent stamps a new event of the given type.
func NewBaseEvent(eventType EventType, actorID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		ActorID:   actorID,
	}
}

type WorkflowSaved struct {
	BaseEvent

	WorkflowID string `json:"workflow_id"`
	Name       string `json:"name"`
	Owner      string `json:"owner,omitempty"`
	Created    bool   `json:"created"`
	NodeCount  int    `json:"node_count"`
}

func (w WorkflowSaved) GetType() EventType {
	return WorkflowSavedEvent
}

type WorkflowDeleted struct {
	BaseEvent

	WorkflowID string `json:"workflow_id"`
	Name       string `json:"name"`
	Owner      string `json:"owner,omitempty"`
}

func (w WorkflowDeleted) GetType() EventType {
	return WorkflowDeletedEvent
}

type FormSaved struct {
	BaseEvent

	FormID    string `json:"form_id"`
	Title     string `json:"title"`
	Owner     string `json:"owner,omitempty"`
	Created   bool   `json:"created"`
	Published bool   `json:"published"`
}

func (f FormSaved) GetType() EventType {
	return FormSavedEvent
}

type TemplateUsed struct {
	BaseEvent

	TemplateID   string `json:"template_id"`
	TemplateName string `json:"template_name"`
	WorkflowID   string `json:"workflow_id"`
}

func (t TemplateUsed) GetType() EventType {
	return TemplateUsedEvent
}

type ProductSaved struct {
	BaseEvent

	ProductID string `json:"product_id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Created   bool   `json:"created"`
}

func (p ProductSaved) GetType() EventType {
	return ProductSavedEvent
}
