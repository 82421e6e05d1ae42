package domain

import (
	"regexp"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Family is the canonical identity for a household, keyed by contact number.
// One family per contact number; created on the first public submission and
// never deleted, since historical records reference it.
type Family struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	PublicCode    string       `gorm:"column:public_code;uniqueIndex;not null" json:"uniqueFamilyId"`
	HeadName      string       `gorm:"column:head_name;not null" json:"familyHeadName"`
	ContactNumber string       `gorm:"column:contact_number;uniqueIndex;not null" json:"contactNumber"`
	MemberCount   int          `gorm:"column:member_count;not null" json:"numMembers"`
	VillageName   string       `gorm:"column:village_name;not null" json:"villageName"`
	CreatedAt     time.Time    `gorm:"not null" json:"createdAt"`
}

func (Family) TableName() string {
	return "families"
}

var contactNumberPattern = regexp.MustCompile(`^\d{10}$`)

// ValidContactNumber reports whether s is a 10-digit contact number.
func ValidContactNumber(s string) bool {
	return contactNumberPattern.MatchString(s)
}
