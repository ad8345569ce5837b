package model

import "time"

// ContactStatus tracks staff handling of a contact message.
type ContactStatus string

const (
	ContactStatusNew      ContactStatus = "new"
	ContactStatusAnswered ContactStatus = "answered"
	ContactStatusRejected ContactStatus = "rejected"
)

// Contact is a message left through the public contact form.
type Contact struct {
	ID        int64
	Name      string
	Email     string
	Message   string
	Status    ContactStatus
	CreatedAt time.Time
}
