package models

import "strings"

// ContentStatus is the moderation state shared by requests and published items.
type ContentStatus string

const (
	StatusPending  ContentStatus = "pending"
	StatusApproved ContentStatus = "approved"
	StatusRejected ContentStatus = "rejected"
)

func (s ContentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// ContentKind names one of the three moderated content types.
type ContentKind string

const (
	KindEvent         ContentKind = "event"
	KindAccommodation ContentKind = "accommodation"
	KindRestaurant    ContentKind = "restaurant"
)

// Title returns the capitalized kind, e.g. "Event".
func (k ContentKind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

func (k ContentKind) Plural() string {
	return string(k) + "s"
}

// NotificationType returns the notification type emitted for a decision on k.
func (k ContentKind) NotificationType(accepted bool) NotificationType {
	if accepted {
		return NotificationType(string(k) + "_accepted")
	}
	return NotificationType(string(k) + "_rejected")
}

// Owned is implemented by everything a user creates.
type Owned interface {
	OwnerID() uint
}

// Submission is a pending request awaiting a moderation decision.
type Submission interface {
	Owned
	SubmissionID() uint
	Submitter() *User
	DisplayName() string
}

// Detail is one labelled line of the decision email.
type Detail struct {
	Label string
	Value string
}

// Summarizer is implemented by published items.
type Summarizer interface {
	Summary() []Detail
}

func location(city, country string) string {
	switch {
	case city == "":
		return country
	case country == "":
		return city
	default:
		return city + ", " + country
	}
}
