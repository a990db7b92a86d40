package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SampleTypeWES   = "WES"
	SampleTypeWGS   = "WGS"
	SampleTypeRNA   = "RNA"
	SampleTypeArray = "ARRAY"

	DatasetTypeVariants = "VARIANTS"
	DatasetTypeSV       = "SV"
)

type Sample struct {
	ID                 uint   `gorm:"primaryKey"`
	GUID               string `gorm:"column:guid;size:30;not null;uniqueIndex"`
	IndividualID       uint   `gorm:"not null;index"`
	Individual         Individual
	SampleType         string `gorm:"size:10"`
	SampleID           string `gorm:"column:sample_id;size:100;not null;index"`
	SampleStatus       string `gorm:"size:20"`
	DatasetFilePath    string `gorm:"type:text"`
	DatasetName        string `gorm:"size:100"`
	DatasetType        string `gorm:"size:20"`
	ElasticsearchIndex string `gorm:"type:text"`
	LoadedDate         *time.Time
	CreatedDate        time.Time `gorm:"autoCreateTime"`
	LastModifiedDate   time.Time `gorm:"autoUpdateTime"`
}

func (s *Sample) BeforeCreate(tx *gorm.DB) error {
	if s.GUID == "" {
		s.GUID = NewGUID("S", s.SampleID)
	}
	return nil
}
