package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/veioenza/seqr/internal/export"
	"github.com/veioenza/seqr/internal/jsonview"
	"github.com/veioenza/seqr/internal/metrics"
	"github.com/veioenza/seqr/internal/models"
	"github.com/veioenza/seqr/internal/repository"
	"github.com/veioenza/seqr/internal/storage"
	"github.com/veioenza/seqr/internal/testdb"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	c.sets++
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type env struct {
	db           *gorm.DB
	metrics      *metrics.Metrics
	staff        *models.User
	collaborator *models.User
	outsider     *models.User
	project      models.Project
	family       models.Family
	proband      models.Individual
	father       models.Individual
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	db := testdb.Migrated(t)
	e := &env{db: db, metrics: metrics.NewNop()}

	users := repository.NewUserRepository(db)
	e.staff = &models.User{Username: "staff", FirstName: "Test", LastName: "Staff", IsStaff: true, IsActive: true}
	e.collaborator = &models.User{Username: "collab", Email: "collab@test.org", IsActive: true}
	e.outsider = &models.User{Username: "outsider", IsActive: true}
	for _, u := range []*models.User{e.staff, e.collaborator, e.outsider} {
		require.NoError(t, users.Create(ctx, u))
	}

	projects := repository.NewProjectRepository(db)
	e.project = models.Project{Name: "1kg project"}
	require.NoError(t, projects.Create(ctx, &e.project))
	require.NoError(t, projects.AddCollaborator(ctx, e.project.ID, e.collaborator.ID, false))

	e.family = models.Family{ProjectID: e.project.ID, FamilyID: "1", InternalCaseReviewNotes: "internal"}
	require.NoError(t, repository.NewFamilyRepository(db).Create(ctx, &e.family))

	individuals := repository.NewIndividualRepository(db)
	e.father = models.Individual{FamilyID: e.family.ID, IndividualID: "NA19678", Sex: models.SexMale}
	require.NoError(t, individuals.Create(ctx, &e.father))
	e.proband = models.Individual{FamilyID: e.family.ID, IndividualID: "NA19675", FatherID: &e.father.ID}
	require.NoError(t, individuals.Create(ctx, &e.proband))

	require.NoError(t, repository.NewSampleRepository(db).Create(ctx, &models.Sample{
		IndividualID: e.proband.ID,
		SampleID:     "NA19675",
		SampleType:   models.SampleTypeWES,
	}))

	return e
}

func (e *env) projectService() *ProjectService {
	return NewProjectService(
		repository.NewProjectRepository(e.db),
		repository.NewFamilyRepository(e.db),
		repository.NewIndividualRepository(e.db),
		repository.NewSampleRepository(e.db),
		zap.NewNop(),
	)
}

func (e *env) caseReviewService() *CaseReviewService {
	return NewCaseReviewService(
		repository.NewProjectRepository(e.db),
		repository.NewIndividualRepository(e.db),
		e.metrics,
		zap.NewNop(),
	)
}

func TestProjectPage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.projectService()

	page, err := svc.ProjectPage(ctx, e.project.GUID, e.collaborator)
	require.NoError(t, err)
	assert.Equal(t, e.project.GUID, page.Project["projectGuid"])
	assert.Equal(t, false, page.Project["canEdit"])
	require.Len(t, page.FamiliesByGUID, 1)
	require.Len(t, page.IndividualsByGUID, 2)
	require.Len(t, page.SamplesByGUID, 1)

	family := page.FamiliesByGUID[e.family.GUID]
	assert.NotContains(t, family, "internalCaseReviewNotes")
	assert.ElementsMatch(t, []string{e.proband.GUID, e.father.GUID}, family["individualGuids"])

	proband := page.IndividualsByGUID[e.proband.GUID]
	assert.Equal(t, "NA19678", proband["paternalId"])
	assert.NotContains(t, proband, "caseReviewStatus")

	page, err = svc.ProjectPage(ctx, e.project.GUID, e.staff)
	require.NoError(t, err)
	assert.Equal(t, true, page.Project["canEdit"])
	assert.Equal(t, "internal", page.FamiliesByGUID[e.family.GUID]["internalCaseReviewNotes"])
	assert.Equal(t, "I", page.IndividualsByGUID[e.proband.GUID]["caseReviewStatus"])

	_, err = svc.ProjectPage(ctx, e.project.GUID, e.outsider)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.ProjectPage(ctx, e.project.GUID, nil)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.ProjectPage(ctx, "P_missing", e.staff)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFamilyAndIndividual(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.projectService()

	family, err := svc.Family(ctx, e.family.GUID, e.collaborator)
	require.NoError(t, err)
	assert.Equal(t, "1", family["familyId"])
	_, err = svc.Family(ctx, e.family.GUID, e.outsider)
	assert.ErrorIs(t, err, ErrForbidden)

	individual, err := svc.Individual(ctx, e.proband.GUID, e.staff)
	require.NoError(t, err)
	assert.Equal(t, "NA19675", individual["individualId"])
	_, err = svc.Individual(ctx, "I_missing", e.staff)
	assert.ErrorIs(t, err, ErrNotFound)

	projects, err := svc.ListProjects(ctx, e.outsider)
	require.NoError(t, err)
	assert.Empty(t, projects)
	projects, err = svc.ListProjects(ctx, e.collaborator)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestUpdateCaseReview(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.caseReviewService()
	at := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	_, err := svc.Update(ctx, e.proband.GUID, e.collaborator, CaseReviewRequest{Status: models.CaseReviewAccepted})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Update(ctx, e.proband.GUID, nil, CaseReviewRequest{Status: models.CaseReviewAccepted})
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Update(ctx, e.proband.GUID, e.staff, CaseReviewRequest{Status: "X"})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = svc.Update(ctx, "I_missing", e.staff, CaseReviewRequest{Status: models.CaseReviewAccepted})
	assert.ErrorIs(t, err, ErrNotFound)

	discussion := "Confirmed by Sanger"
	view, err := svc.Update(ctx, e.proband.GUID, e.staff, CaseReviewRequest{
		Status:     models.CaseReviewAccepted,
		Discussion: &discussion,
	})
	require.NoError(t, err)
	assert.Equal(t, "A", view["caseReviewStatus"])
	assert.Equal(t, discussion, view["caseReviewDiscussion"])
	assert.Equal(t, "Test Staff", view["caseReviewStatusLastModifiedBy"])
	modified, ok := view["caseReviewStatusLastModifiedDate"].(time.Time)
	require.True(t, ok)
	assert.True(t, at.Equal(modified))
	assert.Equal(t, float64(1), testutil.ToFloat64(e.metrics.CaseReviewUpdates.WithLabelValues("A")))
}

func TestExportCaseReview(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := e.caseReviewService()

	var buf bytes.Buffer
	name, err := svc.Export(ctx, e.project.GUID, e.staff, export.FormatTSV, &buf)
	require.NoError(t, err)
	assert.Equal(t, "1kg project_case_review.tsv", name)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "1\tNA19675\tNA19678\t"))
	assert.Contains(t, lines[1], "In Review")

	_, err = svc.Export(ctx, e.project.GUID, e.collaborator, export.FormatTSV, &buf)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Export(ctx, e.project.GUID, e.staff, "pdf", &buf)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, float64(1), testutil.ToFloat64(e.metrics.ReportsWritten.WithLabelValues("tsv", "ok")))
}

func TestWriteSnapshots(t *testing.T) {
	e := newEnv(t)
	svc := e.caseReviewService()

	svc.now = func() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC) }
	root := t.TempDir()

	locations, err := svc.WriteSnapshots(context.Background(), storage.NewLocal(root))
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, filepath.Join(root, "20240501T080000", e.project.GUID+"_case_review.xlsx"), locations[0])

	stat, err := os.Stat(locations[0])
	require.NoError(t, err)
	assert.Positive(t, stat.Size())
	assert.Equal(t, float64(1), testutil.ToFloat64(e.metrics.ReportsWritten.WithLabelValues("xlsx", "ok")))
}

type failingStore struct{}

func (failingStore) Put(context.Context, string, io.Reader, string) (string, error) {
	return "", errors.New("bucket unavailable")
}

func TestWriteSnapshotsSkipsFailedUploads(t *testing.T) {
	e := newEnv(t)
	svc := e.caseReviewService()

	locations, err := svc.WriteSnapshots(context.Background(), failingStore{})
	require.NoError(t, err)
	assert.Empty(t, locations)
	assert.Equal(t, float64(1), testutil.ToFloat64(e.metrics.ReportsWritten.WithLabelValues("xlsx", "error")))
}

func TestSavedVariants(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	variants := repository.NewVariantRepository(e.db)
	require.NoError(t, variants.Create(ctx, &models.SavedVariant{
		FamilyID:         e.family.ID,
		XposStart:        21003343353,
		Ref:              "GAGA",
		Alt:              "G",
		SavedVariantJSON: datatypes.JSON(`{"annotation": {"vep_annotation": [{"gene_id": "ENSG00000135953", "is_canonical": true}]}}`),
	}))
	locusLists := repository.NewLocusListRepository(e.db)
	require.NoError(t, locusLists.Create(ctx, &models.LocusList{
		Name:     "MFSD9 list",
		IsPublic: true,
		Genes:    []models.LocusListGene{{GeneID: "ENSG00000135953"}},
	}))

	svc := NewVariantService(repository.NewFamilyRepository(e.db), variants, locusLists, zap.NewNop())

	views, err := svc.SavedVariants(ctx, e.family.GUID, e.collaborator, VariantOptions{AddTags: true, AddDetails: true})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "21-3343353-GAGA-G", views[0]["variantId"])
	assert.Equal(t, []string{"MFSD9 list"}, views[0]["locusLists"])
	assert.Contains(t, views[0], "tags")

	views, err = svc.SavedVariants(ctx, e.family.GUID, e.collaborator, VariantOptions{})
	require.NoError(t, err)
	assert.NotContains(t, views[0], "tags")
	assert.NotContains(t, views[0], "transcripts")

	_, err = svc.SavedVariants(ctx, e.family.GUID, e.outsider, VariantOptions{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestLocusListService(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	repo := repository.NewLocusListRepository(e.db)

	private := models.LocusList{Name: "Private", CreatedByID: &e.collaborator.ID}
	require.NoError(t, repo.Create(ctx, &private))

	svc := NewLocusListService(repo, zap.NewNop())

	view, err := svc.Get(ctx, private.GUID, e.collaborator)
	require.NoError(t, err)
	assert.Equal(t, true, view["canEdit"])

	view, err = svc.Get(ctx, private.GUID, e.staff)
	require.NoError(t, err)
	assert.Equal(t, true, view["canEdit"])

	_, err = svc.Get(ctx, private.GUID, e.outsider)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Get(ctx, "LL_missing", e.staff)
	assert.ErrorIs(t, err, ErrNotFound)

	lists, err := svc.List(ctx, e.outsider)
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestGeneServiceCaches(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	genes := repository.NewGeneRepository(e.db)

	require.NoError(t, genes.Create(ctx, &models.GeneInfo{
		GeneID:     "ENSG00000135953",
		GeneSymbol: "MFSD9",
		Constraint: &models.GeneConstraint{PLI: 0.5, PLIRank: 10},
	}))
	require.NoError(t, genes.AddNote(ctx, &models.GeneNote{
		GeneID:      "ENSG00000135953",
		Note:        "note",
		CreatedByID: &e.collaborator.ID,
	}))

	cache := newMemoryCache()
	svc := NewGeneService(genes, cache, time.Hour, e.metrics, zap.NewNop())

	first, err := svc.Gene(ctx, "ENSG00000135953", e.collaborator)
	require.NoError(t, err)
	assert.Equal(t, "MFSD9", first["geneSymbol"])
	notes := first["notes"].([]jsonview.Object)
	require.Len(t, notes, 1)
	assert.Equal(t, true, notes[0]["canEdit"])

	second, err := svc.Gene(ctx, "ENSG00000135953", e.outsider)
	require.NoError(t, err)
	assert.Equal(t, "MFSD9", second["geneSymbol"])
	assert.Equal(t, false, second["notes"].([]jsonview.Object)[0]["canEdit"])

	assert.Equal(t, 1, cache.sets)
	assert.Equal(t, float64(1), testutil.ToFloat64(e.metrics.CacheLookups.WithLabelValues("gene", "hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(e.metrics.CacheLookups.WithLabelValues("gene", "miss")))

	_, err = svc.Gene(ctx, "ENSG00000000000", e.staff)
	assert.ErrorIs(t, err, ErrNotFound)

	uncached := NewGeneService(genes, nil, time.Hour, e.metrics, zap.NewNop())
	view, err := uncached.Gene(ctx, "ENSG00000135953", nil)
	require.NoError(t, err)
	assert.Contains(t, view, "constraints")
}

func TestAuthenticate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	svc := NewUserService(repository.NewUserRepository(e.db), zap.NewNop())

	user, err := svc.Authenticate(ctx, "staff")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, user.IsStaff)

	user, err = svc.Authenticate(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = svc.Authenticate(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
}
