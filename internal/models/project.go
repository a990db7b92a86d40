package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	GenomeVersion37 = "37"
	GenomeVersion38 = "38"
)

type ProjectCategory struct {
	ID               uint      `gorm:"primaryKey"`
	GUID             string    `gorm:"column:guid;size:30;not null;uniqueIndex"`
	Name             string    `gorm:"size:30;not null"`
	CreatedDate      time.Time `gorm:"autoCreateTime"`
	LastModifiedDate time.Time `gorm:"autoUpdateTime"`
}

type Project struct {
	ID                         uint   `gorm:"primaryKey"`
	GUID                       string `gorm:"column:guid;size:30;not null;uniqueIndex"`
	Name                       string `gorm:"size:140;not null"`
	Description                string `gorm:"type:text"`
	GenomeVersion              string `gorm:"size:5;not null;default:37"`
	IsPhenotipsEnabled         bool
	PhenotipsUserID            string `gorm:"size:100"`
	DeprecatedProjectID        string `gorm:"size:140"`
	DeprecatedLastAccessedDate *time.Time
	IsMmeEnabled               bool
	MmePrimaryDataOwner        string    `gorm:"type:text"`
	CreatedDate                time.Time `gorm:"autoCreateTime"`
	LastModifiedDate           time.Time `gorm:"autoUpdateTime"`

	Categories    []ProjectCategory `gorm:"many2many:project_category_projects;"`
	Collaborators []ProjectCollaborator
}

type ProjectCollaborator struct {
	ID        uint `gorm:"primaryKey"`
	ProjectID uint `gorm:"not null;uniqueIndex:idx_project_collaborator"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_project_collaborator"`
	User      User
	CanEdit   bool
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.GUID == "" {
		p.GUID = NewGUID("P", p.Name)
	}
	return nil
}

func (c *ProjectCategory) BeforeCreate(tx *gorm.DB) error {
	if c.GUID == "" {
		c.GUID = NewGUID("PC", c.Name)
	}
	return nil
}

// CanView reports whether user is staff or any kind of collaborator.
// Collaborators must be preloaded.
func (p *Project) CanView(user *User) bool {
	if user == nil {
		return false
	}
	if user.IsStaff {
		return true
	}
	for _, c := range p.Collaborators {
		if c.UserID == user.ID {
			return true
		}
	}
	return false
}

// CanEdit reports whether user is staff or a collaborator with edit rights.
func (p *Project) CanEdit(user *User) bool {
	if user == nil {
		return false
	}
	if user.IsStaff {
		return true
	}
	for _, c := range p.Collaborators {
		if c.UserID == user.ID && c.CanEdit {
			return true
		}
	}
	return false
}
