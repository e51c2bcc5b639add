package entities

import "time"

// ContactMessageStatus tracks admin handling of a message.
type ContactMessageStatus string

const (
	ContactMessageNew  ContactMessageStatus = "new"
	ContactMessageRead ContactMessageStatus = "read"
)

// ContactMessage is a submission of the public contact form.
type ContactMessage struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Email       string               `json:"email"`
	Subject     string               `json:"subject"`
	Message     string               `json:"message"`
	Status      ContactMessageStatus `json:"status"`
	SubmittedAt time.Time            `json:"submittedAt"`
}
