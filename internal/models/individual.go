package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CaseReviewStatus is the staff-curated review state of an individual.
type CaseReviewStatus string

const (
	CaseReviewInReview       CaseReviewStatus = "I"
	CaseReviewUncertain      CaseReviewStatus = "U"
	CaseReviewAccepted       CaseReviewStatus = "A"
	CaseReviewNotAccepted    CaseReviewStatus = "R"
	CaseReviewMoreInfoNeeded CaseReviewStatus = "Q"
	CaseReviewPendingResults CaseReviewStatus = "P"
	CaseReviewWaitlist       CaseReviewStatus = "W"
)

const DefaultCaseReviewStatus = CaseReviewInReview

// CaseReviewStatuses lists the valid codes in display order.
var CaseReviewStatuses = []CaseReviewStatus{
	CaseReviewInReview,
	CaseReviewUncertain,
	CaseReviewAccepted,
	CaseReviewNotAccepted,
	CaseReviewMoreInfoNeeded,
	CaseReviewPendingResults,
	CaseReviewWaitlist,
}

var caseReviewStatusNames = map[CaseReviewStatus]string{
	CaseReviewInReview:       "In Review",
	CaseReviewUncertain:      "Uncertain",
	CaseReviewAccepted:       "Accepted",
	CaseReviewNotAccepted:    "Not Accepted",
	CaseReviewMoreInfoNeeded: "More Info Needed",
	CaseReviewPendingResults: "Pending Results and Records",
	CaseReviewWaitlist:       "Waitlist",
}

func (s CaseReviewStatus) Valid() bool {
	_, ok := caseReviewStatusNames[s]
	return ok
}

// Name returns the human readable label, or the raw code when unknown.
func (s CaseReviewStatus) Name() string {
	if name, ok := caseReviewStatusNames[s]; ok {
		return name
	}
	return string(s)
}

// RepairCaseReviewStatus maps an invalid stored value onto the enumeration:
// empty values become In Review, anything else unknown becomes Uncertain.
// Valid values are returned unchanged.
func RepairCaseReviewStatus(s CaseReviewStatus) CaseReviewStatus {
	switch {
	case s.Valid():
		return s
	case s == "":
		return CaseReviewInReview
	default:
		return CaseReviewUncertain
	}
}

const (
	SexMale    = "M"
	SexFemale  = "F"
	SexUnknown = "U"

	AffectedYes     = "A"
	AffectedNo      = "N"
	AffectedUnknown = "U"
)

type Individual struct {
	ID           uint   `gorm:"primaryKey"`
	GUID         string `gorm:"column:guid;size:30;not null;uniqueIndex"`
	FamilyID     uint   `gorm:"not null;index"`
	Family       Family
	IndividualID string `gorm:"column:individual_id;size:100;not null"`
	FatherID     *uint
	Father       *Individual
	MotherID     *uint
	Mother       *Individual
	Sex          string `gorm:"size:1;not null;default:U"`
	Affected     string `gorm:"size:1;not null;default:U"`
	DisplayName  string `gorm:"size:100"`
	Notes        string `gorm:"type:text"`

	CaseReviewStatus                 CaseReviewStatus `gorm:"size:2;default:I"`
	CaseReviewDiscussion             string           `gorm:"type:text"`
	CaseReviewStatusLastModifiedDate *time.Time
	CaseReviewStatusLastModifiedByID *uint
	CaseReviewStatusLastModifiedBy   *User

	PhenotipsPatientID string `gorm:"size:30"`
	PhenotipsData      datatypes.JSON
	CreatedDate        time.Time `gorm:"autoCreateTime"`
	LastModifiedDate   time.Time `gorm:"autoUpdateTime"`

	Samples []Sample
}

func (i *Individual) BeforeCreate(tx *gorm.DB) error {
	if i.GUID == "" {
		i.GUID = NewGUID("I", i.IndividualID)
	}
	return nil
}
