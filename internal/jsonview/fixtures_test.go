package jsonview

import (
	"time"

	"gorm.io/datatypes"

	"github.com/veioenza/seqr/internal/models"
)

var fixtureTime = time.Date(2018, 8, 1, 19, 33, 0, 0, time.UTC)

func staffUser() *models.User {
	return &models.User{ID: 1, Username: "test_staff", Email: "staff@test.org", FirstName: "Test", LastName: "Staff", IsStaff: true, IsActive: true}
}

func collaborator() *models.User {
	return &models.User{ID: 2, Username: "test_user", Email: "user@test.org", IsActive: true}
}

func fixtureProject() models.Project {
	return models.Project{
		ID:            1,
		GUID:          "R0001_1kg",
		Name:          "1kg project",
		GenomeVersion: models.GenomeVersion37,
		CreatedDate:   fixtureTime,
		Categories:    []models.ProjectCategory{{ID: 1, GUID: "PC000001_1kg", Name: "demo"}},
		Collaborators: []models.ProjectCollaborator{{ProjectID: 1, UserID: 2, CanEdit: false}},
	}
}

func fixtureFamily() models.Family {
	analyst := collaborator()
	return models.Family{
		ID:         1,
		GUID:       "F000001_1",
		ProjectID:  1,
		Project:    fixtureProject(),
		FamilyID:   "1",
		AnalysedBy: []models.FamilyAnalysedBy{{ID: 1, FamilyID: 1, CreatedBy: analyst, LastModifiedDate: fixtureTime}},
	}
}

func fixtureIndividuals() []models.Individual {
	family := fixtureFamily()
	father := models.Individual{ID: 2, GUID: "I000002_na19678", FamilyID: 1, Family: family, IndividualID: "NA19678", Sex: models.SexMale}
	mother := models.Individual{ID: 3, GUID: "I000003_na19679", FamilyID: 1, Family: family, IndividualID: "NA19679", Sex: models.SexFemale}
	proband := models.Individual{
		ID:                 1,
		GUID:               "I000001_na19675",
		FamilyID:           1,
		Family:             family,
		IndividualID:       "NA19675",
		Father:             &father,
		Mother:             &mother,
		Sex:                models.SexMale,
		Affected:           models.AffectedYes,
		CaseReviewStatus:   models.CaseReviewAccepted,
		PhenotipsPatientID: "P0000001",
		PhenotipsData:      datatypes.JSON(`{"features": [{"id": "HP:0001631"}]}`),
		CreatedDate:        fixtureTime,
	}
	return []models.Individual{proband, father, mother}
}

func fixtureSavedVariant() models.SavedVariant {
	family := fixtureFamily()
	family.Individuals = fixtureIndividuals()
	curator := staffUser()
	return models.SavedVariant{
		ID:        1,
		GUID:      "SV0000001_2103343353_r0390_1",
		FamilyID:  1,
		Family:    family,
		XposStart: 21003343353,
		Ref:       "GAGA",
		Alt:       "G",
		Tags: []models.VariantTag{{
			GUID:           "VT1708633_2103343353_r0390_100",
			VariantTagType: models.VariantTagType{Name: "Review", Category: "CMG Discovery Tags", Color: "#668FE3"},
			CreatedBy:      curator,
		}},
		FunctionalData: []models.VariantFunctionalData{{GUID: "VFD0000023_1248367227_r0390_10", FunctionalDataTag: "Biochemical Function", Metadata: "An updated note"}},
		Notes:          []models.VariantNote{{GUID: "VN0714935_2103343353_r0390_100", Note: "test note", CreatedBy: curator}},
		SavedVariantJSON: datatypes.JSON(`{
			"genome_version": "37",
			"orig_alt_alleles": ["G"],
			"extras": {"grch38_coords": "chr21-3343400-GAGA-G", "clinvar_clinsig": "pathogenic", "clinvar_gold_stars": 2, "hgmd_class": "DM"},
			"annotation": {
				"rsid": "rs1",
				"cadd_phred": 25.9,
				"vep_annotation": [
					{"transcript_id": "ENST00000258436", "gene_id": "ENSG00000135953", "canonical": true, "major_consequence": "frameshift_variant"},
					{"transcript_id": "ENST00000000002", "gene_id": "ENSG00000135953", "is_chosen_transcript": true},
					{"transcript_id": "ENST00000000003", "gene_id": "ENSG00000000457"}
				]
			},
			"genotypes": {"NA19675": {"num_alt": 1, "gq": 99}, "HG00731": {"num_alt": 2}}
		}`),
	}
}
