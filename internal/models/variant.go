package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SavedVariant struct {
	ID               uint   `gorm:"primaryKey"`
	GUID             string `gorm:"column:guid;size:30;not null;uniqueIndex"`
	FamilyID         uint   `gorm:"not null;index"`
	Family           Family
	XposStart        int64  `gorm:"not null;index"`
	XposEnd          int64  `gorm:"not null"`
	Ref              string `gorm:"type:text;not null"`
	Alt              string `gorm:"type:text;not null"`
	SavedVariantJSON datatypes.JSON
	CreatedDate      time.Time `gorm:"autoCreateTime"`
	LastModifiedDate time.Time `gorm:"autoUpdateTime"`

	Tags           []VariantTag
	FunctionalData []VariantFunctionalData
	Notes          []VariantNote
}

func (v *SavedVariant) BeforeCreate(tx *gorm.DB) error {
	if v.GUID == "" {
		v.GUID = NewGUID("SV", "")
	}
	if v.XposEnd == 0 {
		v.XposEnd = v.XposStart + int64(len(v.Ref)) - 1
	}
	return nil
}

// VariantTagType is a project-specific or global (nil ProjectID) tag label.
type VariantTagType struct {
	ID               uint   `gorm:"primaryKey"`
	GUID             string `gorm:"column:guid;size:30;not null;uniqueIndex"`
	ProjectID        *uint  `gorm:"index"`
	Name             string `gorm:"size:50;not null"`
	Category         string `gorm:"size:50"`
	Description      string `gorm:"type:text"`
	Color            string `gorm:"size:20;not null;default:#1f78b4"`
	SortOrder        *float64
	CreatedDate      time.Time `gorm:"autoCreateTime"`
	LastModifiedDate time.Time `gorm:"autoUpdateTime"`
}

func (t *VariantTagType) BeforeCreate(tx *gorm.DB) error {
	if t.GUID == "" {
		t.GUID = NewGUID("VTT", t.Name)
	}
	return nil
}

type VariantTag struct {
	ID               uint   `gorm:"primaryKey"`
	GUID             string `gorm:"column:guid;size:30;not null;uniqueIndex"`
	SavedVariantID   uint   `gorm:"not null;index"`
	VariantTagTypeID uint   `gorm:"not null"`
	VariantTagType   VariantTagType
	SearchParameters string `gorm:"type:text"`
	CreatedByID      *uint
	CreatedBy        *User
	CreatedDate      time.Time `gorm:"autoCreateTime"`
	LastModifiedDate time.Time `gorm:"autoUpdateTime"`
}

func (t *VariantTag) BeforeCreate(tx *gorm.DB) error {
	if t.GUID == "" {
		t.GUID = NewGUID("VT", "")
	}
	return nil
}

type VariantFunctionalData struct {
	ID                uint   `gorm:"primaryKey"`
	GUID              string `gorm:"column:guid;size:30;not null;uniqueIndex"`
	SavedVariantID    uint   `gorm:"not null;index"`
	FunctionalDataTag string `gorm:"size:50;not null"`
	Metadata          string `gorm:"type:text"`
	CreatedByID       *uint
	CreatedBy         *User
	CreatedDate       time.Time `gorm:"autoCreateTime"`
	LastModifiedDate  time.Time `gorm:"autoUpdateTime"`
}

func (VariantFunctionalData) TableName() string {
	return "variant_functional_data"
}

func (f *VariantFunctionalData) BeforeCreate(tx *gorm.DB) error {
	if f.GUID == "" {
		f.GUID = NewGUID("VFD", "")
	}
	return nil
}

type VariantNote struct {
	ID               uint   `gorm:"primaryKey"`
	GUID             string `gorm:"column:guid;size:30;not null;uniqueIndex"`
	SavedVariantID   uint   `gorm:"not null;index"`
	Note             string `gorm:"type:text;not null"`
	SubmitToClinvar  bool
	CreatedByID      *uint
	CreatedBy        *User
	CreatedDate      time.Time `gorm:"autoCreateTime"`
	LastModifiedDate time.Time `gorm:"autoUpdateTime"`
}

func (n *VariantNote) BeforeCreate(tx *gorm.DB) error {
	if n.GUID == "" {
		n.GUID = NewGUID("VN", "")
	}
	return nil
}

// FunctionalDataTag describes one of the fixed functional evidence labels.
type FunctionalDataTag struct {
	Name          string
	Category      string
	Color         string
	MetadataTitle string
}

var FunctionalDataTags = []FunctionalDataTag{
	{Name: "Biochemical Function", Category: "Functional Data", Color: "#311B92", MetadataTitle: "Notes"},
	{Name: "Protein Interaction", Category: "Functional Data", Color: "#4A148C", MetadataTitle: "Notes"},
	{Name: "Expression", Category: "Functional Data", Color: "#7C4DFF", MetadataTitle: "Notes"},
	{Name: "Patient Cells", Category: "Functional Data", Color: "#B388FF", MetadataTitle: "Notes"},
	{Name: "Non-patient cells", Category: "Functional Data", Color: "#9575CD", MetadataTitle: "Notes"},
	{Name: "Animal Model", Category: "Functional Data", Color: "#AA00FF", MetadataTitle: "Notes"},
	{Name: "Non-human cell culture model", Category: "Functional Data", Color: "#BA68C8", MetadataTitle: "Notes"},
	{Name: "Rescue", Category: "Functional Data", Color: "#E1BEE7", MetadataTitle: "Notes"},
	{Name: "Genome-wide Linkage", Category: "Functional Scores", Color: "#880E4F", MetadataTitle: "LOD Score"},
	{Name: "Bonferroni corrected p-value", Category: "Functional Scores", Color: "#E91E63", MetadataTitle: "P-value"},
	{Name: "Kindreds w/ Overlapping SV & Similar Phenotype", Category: "Functional Scores", Color: "#FF5252", MetadataTitle: "#"},
	{Name: "Additional Unrelated Kindreds w/ Same Phenotype", Category: "Additional Kindreds (Literature, MME)", Color: "#E64A19", MetadataTitle: "#"},
}

// LookupFunctionalDataTag finds the label definition by name.
func LookupFunctionalDataTag(name string) (FunctionalDataTag, bool) {
	for _, tag := range FunctionalDataTags {
		if tag.Name == name {
			return tag, true
		}
	}
	return FunctionalDataTag{}, false
}
