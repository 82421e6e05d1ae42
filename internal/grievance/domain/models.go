package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Status is the grievance workflow state. The set is closed and every
// directed transition between members is allowed, so a resolved grievance
// can be re-opened.
type Status string

const (
	StatusNew        Status = "New"
	StatusInProgress Status = "InProgress"
	StatusResolved   Status = "Resolved"
)

// ParseStatus validates a caller-supplied status against the closed set.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNew, StatusInProgress, StatusResolved:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// StatusFilter selects a workflow slice for the admin listing.
type StatusFilter string

const (
	FilterAll      StatusFilter = ""
	FilterActive   StatusFilter = "active"
	FilterResolved StatusFilter = "resolved"
)

// Statuses expands the filter into the matching status set. Empty means no
// restriction.
func (f StatusFilter) Statuses() ([]Status, error) {
	switch f {
	case FilterAll:
		return nil, nil
	case FilterActive:
		return []Status{StatusNew, StatusInProgress}, nil
	case FilterResolved:
		return []Status{StatusResolved}, nil
	}
	return nil, ErrInvalidStatusFilter
}

// Grievance is a citizen complaint tracked through the workflow. The tracking
// id is the only public handle; row ids stay internal to the admin API.
type Grievance struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	TrackingID  string       `gorm:"column:tracking_id;uniqueIndex;not null" json:"trackingId"`
	Subject     string       `gorm:"not null" json:"subject"`
	Content     string       `gorm:"not null" json:"content"`
	ContactInfo string       `gorm:"column:contact_info" json:"contactInfo,omitempty"`
	EvidenceURL string       `gorm:"column:evidence_url" json:"evidenceUrl,omitempty"`
	Status      Status       `gorm:"not null" json:"status"`
	Comments    []Comment    `gorm:"foreignKey:GrievanceID;references:ID" json:"comments"`
	CreatedAt   time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updatedAt"`
}

func (Grievance) TableName() string {
	return "grievances"
}

// Comment is one append-only admin note on a grievance.
type Comment struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	GrievanceID snowflake.ID `gorm:"column:grievance_id;not null;index" json:"-"`
	Content     string       `gorm:"not null" json:"content"`
	CreatedAt   time.Time    `gorm:"not null" json:"createdAt"`
}

func (Comment) TableName() string {
	return "grievance_comments"
}
