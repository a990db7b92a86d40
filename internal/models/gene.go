package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GeneInfo is gencode reference data for one gene on both builds.
type GeneInfo struct {
	ID                     uint   `gorm:"primaryKey"`
	GeneID                 string `gorm:"column:gene_id;size:20;not null;uniqueIndex"`
	GeneSymbol             string `gorm:"size:20;index"`
	ChromGrch37            string `gorm:"size:2"`
	StartGrch37            int
	EndGrch37              int
	CodingRegionSizeGrch37 int
	ChromGrch38            string `gorm:"size:2"`
	StartGrch38            int
	EndGrch38              int
	CodingRegionSizeGrch38 int
	GencodeGeneType        string `gorm:"size:30"`

	DbNSFP     *DbNSFPGene
	Omim       []Omim
	Constraint *GeneConstraint
	Expression *GeneExpression
	Notes      []GeneNote `gorm:"foreignKey:GeneID;references:GeneID"`
}

type DbNSFPGene struct {
	ID           uint   `gorm:"primaryKey"`
	GeneInfoID   uint   `gorm:"not null;uniqueIndex"`
	FunctionDesc string `gorm:"type:text"`
	DiseaseDesc  string `gorm:"type:text"`
}

func (DbNSFPGene) TableName() string {
	return "dbnsfp_genes"
}

type Omim struct {
	ID                   uint `gorm:"primaryKey"`
	GeneInfoID           uint `gorm:"not null;index"`
	MimNumber            int
	PhenotypeMimNumber   *int
	PhenotypeDescription string `gorm:"type:text"`
	PhenotypeInheritance string `gorm:"size:200"`
}

type GeneConstraint struct {
	ID         uint `gorm:"primaryKey"`
	GeneInfoID uint `gorm:"not null;uniqueIndex"`
	MisZ       float64
	MisZRank   int
	PLI        float64 `gorm:"column:pli"`
	PLIRank    int     `gorm:"column:pli_rank"`
}

// GeneExpression stores per-tissue expression values as a JSON object.
type GeneExpression struct {
	ID               uint `gorm:"primaryKey"`
	GeneInfoID       uint `gorm:"not null;uniqueIndex"`
	ExpressionValues datatypes.JSON
}

// GeneNote is free text a user attached to a gene; keyed by gene id string.
type GeneNote struct {
	ID               uint   `gorm:"primaryKey"`
	GUID             string `gorm:"column:guid;size:30;not null;uniqueIndex"`
	GeneID           string `gorm:"column:gene_id;size:20;not null;index"`
	Note             string `gorm:"type:text;not null"`
	CreatedByID      *uint
	CreatedBy        *User
	CreatedDate      time.Time `gorm:"autoCreateTime"`
	LastModifiedDate time.Time `gorm:"autoUpdateTime"`
}

func (n *GeneNote) BeforeCreate(tx *gorm.DB) error {
	if n.GUID == "" {
		n.GUID = NewGUID("GN", n.GeneID)
	}
	return nil
}

// CanEdit reports whether user wrote the note or is staff.
func (n *GeneNote) CanEdit(user *User) bool {
	if user == nil {
		return false
	}
	return user.IsStaff || (n.CreatedByID != nil && *n.CreatedByID == user.ID)
}
