package errors

import "fmt"

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation is returned when an inbound payload fails validation
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrRateLimited is returned when a draft order exceeded its processing attempt cap
type ErrRateLimited struct {
	OrderID  string
	Attempts int
}

func (e *ErrRateLimited) Error() string {
	return fmt.Sprintf("draft order %s exceeded %d processing attempts", e.OrderID, e.Attempts)
}

// ErrTransport is returned when an outbound email delivery fails
type ErrTransport struct {
	Op      string
	Status  int
	Message string
}

func (e *ErrTransport) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

// ErrConfiguration is returned when a required credential or setting is missing
type ErrConfiguration struct {
	Message string
}

func (e *ErrConfiguration) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "configuration error"
}
