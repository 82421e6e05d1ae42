package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	familydomain "github.com/smallbiznis/rationbook/internal/family/domain"
	"gorm.io/datatypes"
)

// Record is one rice hand-out to a family. Rows are append-only: entitlement
// and deficit are derived from the family's member count at submission time
// and never recomputed or edited afterwards.
type Record struct {
	ID               snowflake.ID         `gorm:"primaryKey" json:"id"`
	FamilyID         snowflake.ID         `gorm:"column:family_id;not null;index" json:"familyId"`
	Family           *familydomain.Family `gorm:"foreignKey:FamilyID;references:ID" json:"family,omitempty"`
	DistributionDate datatypes.Date       `gorm:"column:distribution_date;not null;index" json:"-"`
	RiceReceivedKg   decimal.Decimal      `gorm:"column:rice_received_kg;type:decimal(7,2);not null" json:"riceReceivedKg"`
	EntitlementKg    decimal.Decimal      `gorm:"column:entitlement_kg;type:decimal(7,2);not null" json:"entitlementKg"`
	DeficitKg        decimal.Decimal      `gorm:"column:deficit_kg;type:decimal(7,2);not null" json:"deficitKg"`
	CreatedAt        time.Time            `gorm:"not null" json:"createdAt"`
}

func (Record) TableName() string {
	return "distribution_records"
}

// RecordView is the API shape for a record, with the resolved family embedded
// and kilogram figures rendered as plain numbers.
type RecordView struct {
	ID               snowflake.ID        `json:"id"`
	Family           familydomain.Family `json:"family"`
	DistributionDate string              `json:"distributionDate"`
	RiceReceivedKg   float64             `json:"riceReceivedKg"`
	EntitlementKg    float64             `json:"entitlementKg"`
	DeficitKg        float64             `json:"deficitKg"`
	CreatedAt        time.Time           `json:"createdAt"`
}

// DateLayout is the wire format for distribution dates.
const DateLayout = "2006-01-02"

// View renders the record for API responses. The family must be loaded.
func (r Record) View() RecordView {
	view := RecordView{
		ID:               r.ID,
		DistributionDate: time.Time(r.DistributionDate).Format(DateLayout),
		RiceReceivedKg:   r.RiceReceivedKg.InexactFloat64(),
		EntitlementKg:    r.EntitlementKg.InexactFloat64(),
		DeficitKg:        r.DeficitKg.InexactFloat64(),
		CreatedAt:        r.CreatedAt,
	}
	if r.Family != nil {
		view.Family = *r.Family
	}
	return view
}
