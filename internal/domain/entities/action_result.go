package entities

// FieldViolation is a single failed validation rule.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ActionResult is the outcome of an admin or public form action. Failures
// carry a human readable Error instead of a Go error value.
type ActionResult struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Error   string           `json:"error,omitempty"`
	Fields  []FieldViolation `json:"fields,omitempty"`
	Member  *TeamMember      `json:"member,omitempty"`
	Article *Article         `json:"article,omitempty"`
	Project *Project         `json:"project,omitempty"`

	// Kind classifies a failure for transport mapping.
	Kind FailureKind `json:"-"`
}

// FailureKind groups failed results by cause.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureInvalid
	FailureNotFound
	FailureUnavailable
	FailureUpload
	FailurePermission
	FailureStore
	FailureCancelled
)

// Succeeded builds a successful result.
func Succeeded(message string) *ActionResult {
	return &ActionResult{Success: true, Message: message}
}

// Failed builds a failed result.
func Failed(kind FailureKind, message string) *ActionResult {
	return &ActionResult{Success: false, Error: message, Kind: kind}
}
