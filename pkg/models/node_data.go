package models

import (
	"encoding/json"
	"maps"
	"reflect"
	"strings"
	"sync"
)

// NodeData is the type-dependent attribute bag of a node. Each node type has
// exactly one variant; keys a variant does not know are kept in its extras so
// they survive a load/save cycle.
type NodeData interface {
	Kind() NodeType
	DisplayLabel() string

	extras() map[string]any
	setExtras(extra map[string]any)
}

// Extras carries attribute keys not modelled by a node data variant.
type Extras struct {
	Extra map[string]any `json:"-"`
}

func (e *Extras) extras() map[string]any          { return e.Extra }
func (e *Extras) setExtras(extra map[string]any) { e.Extra = extra }

// TriggerType selects what starts a workflow run.
type TriggerType string

const (
	TriggerManual         TriggerType = "manual"
	TriggerScheduled      TriggerType = "scheduled"
	TriggerFormSubmission TriggerType = "form_submission"
	TriggerWebhook        TriggerType = "webhook"
	TriggerRecordCreated  TriggerType = "record_created"
	TriggerRecordUpdated  TriggerType = "record_updated"
)

// Priority is shared by workflows and task nodes.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ApprovalFormat decides how many approvers must agree.
type ApprovalFormat string

const (
	ApprovalSingle ApprovalFormat = "single"
	ApprovalAny    ApprovalFormat = "any"
	ApprovalAll    ApprovalFormat = "all"
)

// DelayUnit is the unit of a delay node's duration.
type DelayUnit string

const (
	DelayMinutes DelayUnit = "minutes"
	DelayHours   DelayUnit = "hours"
	DelayDays    DelayUnit = "days"
)

type TriggerData struct {
	Extras

	Label       string      `json:"label,omitempty"`
	TriggerType TriggerType `json:"triggerType"`
	Schedule    string      `json:"schedule,omitempty"`
	Timezone    string      `json:"timezone,omitempty"`
	FormID      string      `json:"formId,omitempty"`
	WebhookPath string      `json:"webhookPath,omitempty"`
	Entity      string      `json:"entity,omitempty"`
}

func (d *TriggerData) Kind() NodeType       { return NodeTypeTrigger }
func (d *TriggerData) DisplayLabel() string { return d.Label }

type TaskData struct {
	Extras

	Label           string   `json:"label,omitempty"`
	TaskTitle       string   `json:"taskTitle"`
	TaskDescription string   `json:"taskDescription,omitempty"`
	AssignedTo      *string  `json:"assignedTo"`
	Priority        Priority `json:"priority,omitempty"`
	DueInDays       int      `json:"dueInDays,omitempty"`
}

func (d *TaskData) Kind() NodeType       { return NodeTypeTask }
func (d *TaskData) DisplayLabel() string { return firstNonBlank(d.Label, d.TaskTitle) }

type ConditionData struct {
	Extras

	Label    string `json:"label,omitempty"`
	Field    string `json:"field,omitempty"`
	Operator string `json:"operator,omitempty"`
	Value    any    `json:"value,omitempty"`
}

func (d *ConditionData) Kind() NodeType       { return NodeTypeCondition }
func (d *ConditionData) DisplayLabel() string { return d.Label }

type DelayData struct {
	Extras

	Label    string    `json:"label,omitempty"`
	Duration int       `json:"duration"`
	Unit     DelayUnit `json:"unit,omitempty"`
}

func (d *DelayData) Kind() NodeType       { return NodeTypeDelay }
func (d *DelayData) DisplayLabel() string { return d.Label }

type NotificationData struct {
	Extras

	Label               string   `json:"label,omitempty"`
	NotificationTitle   string   `json:"notificationTitle"`
	NotificationMessage string   `json:"notificationMessage"`
	Recipients          []string `json:"recipients,omitempty"`
	Channel             string   `json:"channel,omitempty"`
}

func (d *NotificationData) Kind() NodeType { return NodeTypeNotification }
func (d *NotificationData) DisplayLabel() string {
	return firstNonBlank(d.Label, d.NotificationTitle)
}

type ApprovalData struct {
	Extras

	Label            string         `json:"label,omitempty"`
	ApprovalTitle    string         `json:"approvalTitle,omitempty"`
	Approvers        []string       `json:"approvers,omitempty"`
	ApprovalFormat   ApprovalFormat `json:"approvalFormat"`
	ExpirationHours  int            `json:"expirationHours,omitempty"`
	ExpirationAction string         `json:"expirationAction,omitempty"`
	Instructions     string         `json:"instructions,omitempty"`
}

func (d *ApprovalData) Kind() NodeType       { return NodeTypeApproval }
func (d *ApprovalData) DisplayLabel() string { return firstNonBlank(d.Label, d.ApprovalTitle) }

type FormNodeData struct {
	Extras

	Label      string  `json:"label,omitempty"`
	FormID     string  `json:"formId,omitempty"`
	FormTitle  string  `json:"formTitle,omitempty"`
	AssignedTo *string `json:"assignedTo,omitempty"`
}

func (d *FormNodeData) Kind() NodeType       { return NodeTypeForm }
func (d *FormNodeData) DisplayLabel() string { return firstNonBlank(d.Label, d.FormTitle) }

type WebhookData struct {
	Extras

	Label   string            `json:"label,omitempty"`
	URL     string            `json:"url,omitempty"`
	Method  string            `json:"method,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    string            `json:"body,omitempty"`
}

func (d *WebhookData) Kind() NodeType       { return NodeTypeWebhook }
func (d *WebhookData) DisplayLabel() string { return d.Label }

type LoopData struct {
	Extras

	Label         string `json:"label,omitempty"`
	Collection    string `json:"collection,omitempty"`
	MaxIterations int    `json:"maxIterations,omitempty"`
}

func (d *LoopData) Kind() NodeType       { return NodeTypeLoop }
func (d *LoopData) DisplayLabel() string { return d.Label }

// UnknownData keeps the raw attributes of a node whose type is not in the
// built-in enumeration.
type UnknownData struct {
	NodeKind NodeType       `json:"-"`
	Values   map[string]any `json:"-"`
}

func (d *UnknownData) Kind() NodeType { return d.NodeKind }
func (d *UnknownData) DisplayLabel() string {
	label, _ := d.Values["label"].(string)

	return label
}
func (d *UnknownData) extras() map[string]any          { return d.Values }
func (d *UnknownData) setExtras(extra map[string]any) { d.Values = extra }

// NewNodeData returns the zero variant for a node type.
func NewNodeData(t NodeType) NodeData {
	switch t {
	case NodeTypeTrigger:
		return &TriggerData{}
	case NodeTypeTask:
		return &TaskData{}
	case NodeTypeCondition:
		return &ConditionData{}
	case NodeTypeDelay:
		return &DelayData{}
	case NodeTypeNotification:
		return &NotificationData{}
	case NodeTypeApproval:
		return &ApprovalData{}
	case NodeTypeForm:
		return &FormNodeData{}
	case NodeTypeWebhook:
		return &WebhookData{}
	case NodeTypeLoop:
		return &LoopData{}
	default:
		return &UnknownData{NodeKind: t}
	}
}

// DataToMap flattens a variant into a plain attribute map, merging extras
// underneath the modelled keys.
func DataToMap(d NodeData) (map[string]any, error) {
	out := map[string]any{}
	if d == nil || reflect.ValueOf(d).IsNil() {
		return out, nil
	}

	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}

	var zero map[string]any

	for k, v := range d.extras() {
		current, exists := out[k]
		if !exists {
			out[k] = v

			continue
		}

		// A modelled key only lands in extras when its stored value did not
		// fit; keep that value until the field is set.
		if zero == nil {
			if zero, err = zeroMap(d.Kind()); err != nil {
				return nil, err
			}
		}

		if reflect.DeepEqual(current, zero[k]) {
			out[k] = v
		}
	}

	return out, nil
}

func zeroMap(t NodeType) (map[string]any, error) {
	raw, err := json.Marshal(NewNodeData(t))
	if err != nil {
		return nil, err
	}

	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// DataFromMap decodes an attribute map into the variant for t. Values that do
// not fit the modelled field type are kept as extras instead of failing.
func DataFromMap(t NodeType, values map[string]any) (NodeData, error) {
	data := NewNodeData(t)

	if unknown, ok := data.(*UnknownData); ok {
		unknown.Values = maps.Clone(values)
		if unknown.Values == nil {
			unknown.Values = map[string]any{}
		}

		return unknown, nil
	}

	if len(values) == 0 {
		return data, nil
	}

	known := jsonKeys(data)
	extra := map[string]any{}

	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw, data); err != nil {
		// Decode key by key so a single mistyped legacy value does not lose the rest.
		// A failed decode may leave a field half written, so each key is tried
		// on a scratch variant first.
		data = NewNodeData(t)
		for k, v := range values {
			if _, ok := known[k]; !ok {
				continue
			}

			single, err := json.Marshal(map[string]any{k: v})
			if err != nil || json.Unmarshal(single, NewNodeData(t)) != nil {
				extra[k] = v

				continue
			}

			if err := json.Unmarshal(single, data); err != nil {
				extra[k] = v
			}
		}
	}

	for k, v := range values {
		if _, ok := known[k]; !ok {
			extra[k] = v
		}
	}

	if len(extra) > 0 {
		data.setExtras(extra)
	}

	return data, nil
}

var jsonKeyCache sync.Map

func jsonKeys(v any) map[string]struct{} {
	typ := reflect.TypeOf(v)
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if cached, ok := jsonKeyCache.Load(typ); ok {
		return cached.(map[string]struct{})
	}

	keys := map[string]struct{}{}

	for i := range typ.NumField() {
		field := typ.Field(i)
		if field.Anonymous {
			continue
		}

		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}

		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}

		keys[name] = struct{}{}
	}

	jsonKeyCache.Store(typ, keys)

	return keys
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}
