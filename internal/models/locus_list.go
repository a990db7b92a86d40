package models

import (
	"time"

	"gorm.io/gorm"
)

type LocusList struct {
	ID               uint   `gorm:"primaryKey"`
	GUID             string `gorm:"column:guid;size:30;not null;uniqueIndex"`
	Name             string `gorm:"size:140;not null"`
	Description      string `gorm:"type:text"`
	IsPublic         bool
	CreatedByID      *uint
	CreatedBy        *User
	CreatedDate      time.Time `gorm:"autoCreateTime"`
	LastModifiedDate time.Time `gorm:"autoUpdateTime"`

	Genes     []LocusListGene
	Intervals []LocusListInterval
}

type LocusListGene struct {
	ID          uint   `gorm:"primaryKey"`
	LocusListID uint   `gorm:"not null;uniqueIndex:idx_locus_list_gene"`
	GeneID      string `gorm:"column:gene_id;size:20;not null;uniqueIndex:idx_locus_list_gene"`
	Description string `gorm:"type:text"`
}

type LocusListInterval struct {
	ID            uint   `gorm:"primaryKey"`
	GUID          string `gorm:"column:guid;size:30;not null;uniqueIndex"`
	LocusListID   uint   `gorm:"not null;index"`
	GenomeVersion string `gorm:"size:5;not null;default:37"`
	Chrom         string `gorm:"size:2;not null"`
	Start         int    `gorm:"not null"`
	End           int    `gorm:"not null"`
}

func (l *LocusList) BeforeCreate(tx *gorm.DB) error {
	if l.GUID == "" {
		l.GUID = NewGUID("LL", l.Name)
	}
	return nil
}

func (i *LocusListInterval) BeforeCreate(tx *gorm.DB) error {
	if i.GUID == "" {
		i.GUID = NewGUID("LLI", "")
	}
	return nil
}

// CanEdit reports whether user created the list or is staff.
func (l *LocusList) CanEdit(user *User) bool {
	if user == nil {
		return false
	}
	return user.IsStaff || (l.CreatedByID != nil && *l.CreatedByID == user.ID)
}

// CanView reports whether the list is public or editable by user.
func (l *LocusList) CanView(user *User) bool {
	return l.IsPublic || l.CanEdit(user)
}

// Contains reports whether any of geneIDs is in the list, or chrom:pos falls
// inside one of its intervals of the given genome version.
func (l *LocusList) Contains(geneIDs []string, genomeVersion, chrom string, pos int) bool {
	for _, g := range l.Genes {
		for _, id := range geneIDs {
			if g.GeneID == id {
				return true
			}
		}
	}
	for _, iv := range l.Intervals {
		if iv.GenomeVersion == genomeVersion && iv.Chrom == chrom && iv.Start <= pos && pos <= iv.End {
			return true
		}
	}
	return false
}
