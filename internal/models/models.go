package models

// All returns every persisted model in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&ProjectCategory{},
		&Project{},
		&ProjectCollaborator{},
		&Family{},
		&FamilyAnalysedBy{},
		&Individual{},
		&Sample{},
		&SavedVariant{},
		&VariantTagType{},
		&VariantTag{},
		&VariantFunctionalData{},
		&VariantNote{},
		&LocusList{},
		&LocusListGene{},
		&LocusListInterval{},
		&GeneInfo{},
		&DbNSFPGene{},
		&Omim{},
		&GeneConstraint{},
		&GeneExpression{},
		&GeneNote{},
	}
}
