package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/veioenza/seqr/internal/models"
	"github.com/veioenza/seqr/internal/testdb"
)

type fixture struct {
	db           *gorm.DB
	staff        models.User
	collaborator models.User
	outsider     models.User
	project      models.Project
	other        models.Project
	family       models.Family
	proband      models.Individual
	father       models.Individual
	mother       models.Individual
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := testdb.Migrated(t)
	f := &fixture{db: db}

	users := NewUserRepository(db)
	f.staff = models.User{Username: "staff", IsStaff: true, IsActive: true}
	f.collaborator = models.User{Username: "collab", Email: "collab@test.org", IsActive: true}
	f.outsider = models.User{Username: "outsider", IsActive: true}
	for _, u := range []*models.User{&f.staff, &f.collaborator, &f.outsider} {
		require.NoError(t, users.Create(ctx, u))
	}

	projects := NewProjectRepository(db)
	f.project = models.Project{
		Name:       "1kg project",
		Categories: []models.ProjectCategory{{Name: "Demo"}},
	}
	f.other = models.Project{Name: "Other"}
	require.NoError(t, projects.Create(ctx, &f.project))
	require.NoError(t, projects.Create(ctx, &f.other))
	require.NoError(t, projects.AddCollaborator(ctx, f.project.ID, f.collaborator.ID, true))

	f.family = models.Family{ProjectID: f.project.ID, FamilyID: "1"}
	require.NoError(t, NewFamilyRepository(db).Create(ctx, &f.family))
	require.NoError(t, NewFamilyRepository(db).Create(ctx, &models.Family{ProjectID: f.other.ID, FamilyID: "2"}))

	individuals := NewIndividualRepository(db)
	f.father = models.Individual{FamilyID: f.family.ID, IndividualID: "NA19678", Sex: models.SexMale}
	f.mother = models.Individual{FamilyID: f.family.ID, IndividualID: "NA19679", Sex: models.SexFemale}
	require.NoError(t, individuals.Create(ctx, &f.father))
	require.NoError(t, individuals.Create(ctx, &f.mother))
	f.proband = models.Individual{
		FamilyID:     f.family.ID,
		IndividualID: "NA19675",
		FatherID:     &f.father.ID,
		MotherID:     &f.mother.ID,
		Affected:     models.AffectedYes,
	}
	require.NoError(t, individuals.Create(ctx, &f.proband))

	return f
}

func TestProjectRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewProjectRepository(f.db)

	project, err := repo.GetByGUID(ctx, f.project.GUID)
	require.NoError(t, err)
	assert.Equal(t, "1kg project", project.Name)
	require.Len(t, project.Categories, 1)
	assert.Equal(t, "Demo", project.Categories[0].Name)
	require.Len(t, project.Collaborators, 1)
	assert.Equal(t, "collab", project.Collaborators[0].User.Username)
	assert.True(t, project.CanEdit(&f.collaborator))

	_, err = repo.GetByGUID(ctx, "P_missing")
	assert.ErrorIs(t, err, ErrNotFound)

	tests := []struct {
		name string
		user *models.User
		want []string
	}{
		{name: "staff", user: &f.staff, want: []string{"1kg project", "Other"}},
		{name: "collaborator", user: &f.collaborator, want: []string{"1kg project"}},
		{name: "outsider", user: &f.outsider, want: nil},
		{name: "anonymous", user: nil, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projects, err := repo.ListForUser(ctx, tt.user)
			require.NoError(t, err)
			var names []string
			for _, p := range projects {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFamilyRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewFamilyRepository(f.db)

	family, err := repo.GetByGUID(ctx, f.family.GUID)
	require.NoError(t, err)
	assert.Equal(t, f.project.GUID, family.Project.GUID)
	require.Len(t, family.Project.Collaborators, 1)
	require.Len(t, family.Individuals, 3)
	assert.Equal(t, "NA19675", family.Individuals[0].IndividualID)

	families, err := repo.ListByProject(ctx, f.project.ID)
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "1", families[0].FamilyID)

	_, err = repo.GetByGUID(ctx, "F_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIndividualRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewIndividualRepository(f.db)

	proband, err := repo.GetByGUID(ctx, f.proband.GUID)
	require.NoError(t, err)
	require.NotNil(t, proband.Father)
	require.NotNil(t, proband.Mother)
	assert.Equal(t, "NA19678", proband.Father.IndividualID)
	assert.Equal(t, "NA19679", proband.Mother.IndividualID)
	assert.Equal(t, f.project.GUID, proband.Family.Project.GUID)
	assert.Equal(t, models.DefaultCaseReviewStatus, proband.CaseReviewStatus)

	individuals, err := repo.ListByProject(ctx, f.project.ID)
	require.NoError(t, err)
	var ids []string
	for _, i := range individuals {
		ids = append(ids, i.IndividualID)
	}
	assert.Equal(t, []string{"NA19675", "NA19678", "NA19679"}, ids)

	none, err := repo.ListByProject(ctx, f.other.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateCaseReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewIndividualRepository(f.db)

	discussion := "Reviewed with clinician"
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateCaseReview(ctx, f.proband.ID, CaseReviewUpdate{
		Status:     models.CaseReviewAccepted,
		Discussion: &discussion,
		ModifiedBy: &f.staff,
		ModifiedAt: at,
	}))

	individual, err := repo.GetByGUID(ctx, f.proband.GUID)
	require.NoError(t, err)
	assert.Equal(t, models.CaseReviewAccepted, individual.CaseReviewStatus)
	assert.Equal(t, discussion, individual.CaseReviewDiscussion)
	require.NotNil(t, individual.CaseReviewStatusLastModifiedBy)
	assert.Equal(t, "staff", individual.CaseReviewStatusLastModifiedBy.Username)
	require.NotNil(t, individual.CaseReviewStatusLastModifiedDate)
	assert.True(t, at.Equal(*individual.CaseReviewStatusLastModifiedDate))

	// Without a modifier only the status changes.
	require.NoError(t, repo.UpdateCaseReview(ctx, f.proband.ID, CaseReviewUpdate{Status: models.CaseReviewWaitlist}))
	individual, err = repo.GetByGUID(ctx, f.proband.GUID)
	require.NoError(t, err)
	assert.Equal(t, models.CaseReviewWaitlist, individual.CaseReviewStatus)
	assert.Equal(t, discussion, individual.CaseReviewDiscussion)
	assert.Equal(t, "staff", individual.CaseReviewStatusLastModifiedBy.Username)

	err = repo.UpdateCaseReview(ctx, 9999, CaseReviewUpdate{Status: models.CaseReviewAccepted})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSampleRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewSampleRepository(f.db)

	require.NoError(t, repo.Create(ctx, &models.Sample{
		IndividualID: f.proband.ID,
		SampleID:     "NA19675",
		SampleType:   models.SampleTypeWES,
		DatasetType:  models.DatasetTypeVariants,
	}))

	samples, err := repo.ListByProject(ctx, f.project.ID)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, f.proband.GUID, samples[0].Individual.GUID)
	assert.Equal(t, f.project.GUID, samples[0].Individual.Family.Project.GUID)

	samples, err = repo.ListByProject(ctx, f.other.ID)
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestVariantRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewVariantRepository(f.db)

	later := models.SavedVariant{FamilyID: f.family.ID, XposStart: 21003343400, Ref: "A", Alt: "T"}
	variant := models.SavedVariant{
		FamilyID:         f.family.ID,
		XposStart:        21003343353,
		Ref:              "GAGA",
		Alt:              "G",
		SavedVariantJSON: datatypes.JSON(`{"genomeVersion": "37"}`),
	}
	require.NoError(t, repo.Create(ctx, &later))
	require.NoError(t, repo.Create(ctx, &variant))
	assert.Equal(t, int64(21003343356), variant.XposEnd)

	tagType := models.VariantTagType{Name: "Tier 1 - Novel gene and phenotype", Category: "CMG Discovery Tags"}
	require.NoError(t, repo.CreateTagType(ctx, &tagType))
	require.NoError(t, repo.AddTag(ctx, &models.VariantTag{
		SavedVariantID:   variant.ID,
		VariantTagTypeID: tagType.ID,
		CreatedByID:      &f.staff.ID,
	}))
	require.NoError(t, repo.AddFunctionalData(ctx, &models.VariantFunctionalData{
		SavedVariantID:    variant.ID,
		FunctionalDataTag: "Biochemical Function",
		Metadata:          "An updated note",
	}))
	require.NoError(t, repo.AddNote(ctx, &models.VariantNote{
		SavedVariantID: variant.ID,
		Note:           "test note",
		CreatedByID:    &f.collaborator.ID,
	}))

	variants, err := repo.ListByFamily(ctx, f.family.ID)
	require.NoError(t, err)
	require.Len(t, variants, 2)
	first := variants[0]
	assert.Equal(t, variant.GUID, first.GUID)
	assert.Equal(t, f.project.GUID, first.Family.Project.GUID)
	assert.Len(t, first.Family.Individuals, 3)
	require.Len(t, first.Tags, 1)
	assert.Equal(t, tagType.Name, first.Tags[0].VariantTagType.Name)
	assert.Equal(t, "staff", first.Tags[0].CreatedBy.Username)
	require.Len(t, first.FunctionalData, 1)
	require.Len(t, first.Notes, 1)
	assert.Equal(t, "collab", first.Notes[0].CreatedBy.Username)

	found, err := repo.GetByGUID(ctx, later.GUID)
	require.NoError(t, err)
	assert.Empty(t, found.Tags)

	_, err = repo.GetByGUID(ctx, "SV_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocusListRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewLocusListRepository(f.db)

	public := models.LocusList{
		Name:        "Public list",
		IsPublic:    true,
		CreatedByID: &f.staff.ID,
		Genes:       []models.LocusListGene{{GeneID: "ENSG00000135953"}},
		Intervals:   []models.LocusListInterval{{GenomeVersion: models.GenomeVersion37, Chrom: "1", Start: 1000, End: 2000}},
	}
	private := models.LocusList{Name: "Private list", CreatedByID: &f.collaborator.ID}
	require.NoError(t, repo.Create(ctx, &public))
	require.NoError(t, repo.Create(ctx, &private))

	list, err := repo.GetByGUID(ctx, public.GUID)
	require.NoError(t, err)
	assert.Len(t, list.Genes, 1)
	assert.Len(t, list.Intervals, 1)
	require.NotNil(t, list.CreatedBy)
	assert.Equal(t, "staff", list.CreatedBy.Username)

	tests := []struct {
		name string
		user *models.User
		want []string
	}{
		{name: "staff", user: &f.staff, want: []string{"Private list", "Public list"}},
		{name: "owner", user: &f.collaborator, want: []string{"Private list", "Public list"}},
		{name: "outsider", user: &f.outsider, want: []string{"Public list"}},
		{name: "anonymous", user: nil, want: []string{"Public list"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lists, err := repo.ListVisible(ctx, tt.user)
			require.NoError(t, err)
			var names []string
			for _, l := range lists {
				names = append(names, l.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestGeneRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewGeneRepository(f.db)

	mim := 612367
	require.NoError(t, repo.Create(ctx, &models.GeneInfo{
		GeneID:      "ENSG00000135953",
		GeneSymbol:  "MFSD9",
		ChromGrch37: "2",
		DbNSFP:      &models.DbNSFPGene{FunctionDesc: "function"},
		Omim:        []models.Omim{{MimNumber: 600000, PhenotypeMimNumber: &mim}},
		Constraint:  &models.GeneConstraint{MisZ: 1.5, PLI: 0.9, PLIRank: 3},
	}))
	require.NoError(t, repo.Create(ctx, &models.GeneInfo{GeneID: "ENSG00000186092", GeneSymbol: "OR4F5"}))
	require.NoError(t, repo.AddNote(ctx, &models.GeneNote{
		GeneID:      "ENSG00000135953",
		Note:        "A gene note",
		CreatedByID: &f.collaborator.ID,
	}))

	gene, err := repo.GetByGeneID(ctx, "ENSG00000135953")
	require.NoError(t, err)
	require.NotNil(t, gene.DbNSFP)
	assert.Equal(t, "function", gene.DbNSFP.FunctionDesc)
	require.Len(t, gene.Omim, 1)
	assert.Equal(t, mim, *gene.Omim[0].PhenotypeMimNumber)
	require.NotNil(t, gene.Constraint)
	assert.Equal(t, 3, gene.Constraint.PLIRank)
	assert.Nil(t, gene.Expression)
	assert.Empty(t, gene.Notes)

	notes, err := repo.ListNotes(ctx, "ENSG00000135953")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "collab", notes[0].CreatedBy.Username)

	count, err := repo.CountConstraints(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = repo.GetByGeneID(ctx, "ENSG00000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := NewUserRepository(f.db)

	require.NoError(t, repo.Create(ctx, &models.User{Username: "inactive"}))

	user, err := repo.GetByUsername(ctx, "staff")
	require.NoError(t, err)
	assert.True(t, user.IsStaff)

	_, err = repo.GetByUsername(ctx, "inactive")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
