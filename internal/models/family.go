package models

import (
	"time"

	"gorm.io/gorm"
)

type Family struct {
	ID                        uint   `gorm:"primaryKey"`
	GUID                      string `gorm:"column:guid;size:30;not null;uniqueIndex"`
	ProjectID                 uint   `gorm:"not null;index"`
	Project                   Project
	FamilyID                  string    `gorm:"column:family_id;size:100;not null"`
	DisplayName               string    `gorm:"size:100"`
	Description               string    `gorm:"type:text"`
	PedigreeImage             string    `gorm:"size:200"`
	AnalysisNotes             string    `gorm:"type:text"`
	AnalysisSummary           string    `gorm:"type:text"`
	CausalInheritanceMode     string    `gorm:"size:20;not null;default:unknown"`
	AnalysisStatus            string    `gorm:"size:10;not null;default:Q"`
	InternalAnalysisStatus    string    `gorm:"size:10"`
	InternalCaseReviewNotes   string    `gorm:"type:text"`
	InternalCaseReviewSummary string    `gorm:"type:text"`
	CodedPhenotype            string    `gorm:"size:1000"`
	PostDiscoveryOmimNumber   string    `gorm:"type:text"`
	CreatedDate               time.Time `gorm:"autoCreateTime"`
	LastModifiedDate          time.Time `gorm:"autoUpdateTime"`

	AnalysedBy  []FamilyAnalysedBy
	Individuals []Individual
}

// FamilyAnalysedBy records that a user marked a family as analysed.
type FamilyAnalysedBy struct {
	ID               uint `gorm:"primaryKey"`
	FamilyID         uint `gorm:"not null;index"`
	CreatedByID      *uint
	CreatedBy        *User
	LastModifiedDate time.Time `gorm:"autoUpdateTime"`
}

func (FamilyAnalysedBy) TableName() string {
	return "family_analysed_by"
}

func (f *Family) BeforeCreate(tx *gorm.DB) error {
	if f.GUID == "" {
		f.GUID = NewGUID("F", f.FamilyID)
	}
	return nil
}
