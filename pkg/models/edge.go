package models

// Named output handles. A node with several outcomes disambiguates its
// outgoing edges through the edge's SourceHandle.
const (
	HandleApproved        = "approved"
	HandleRejected        = "rejected"
	HandleNeedsCorrection = "needs_correction"
	HandleExpired         = "expired"

	HandleTrue  = "true"
	HandleFalse = "false"

	HandleContinue = "continue"
	HandleExit     = "exit"
)

// WorkflowEdge is a directed connection between two node ports.
type WorkflowEdge struct {
	ID           string `json:"id"                     validate:"required"`
	Source       string `json:"source"                 validate:"required"`
	Target       string `json:"target"                 validate:"required"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
	Label        string `json:"label,omitempty"`
}

// Touches reports whether the edge has nodeID as one of its endpoints.
func (e WorkflowEdge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}
