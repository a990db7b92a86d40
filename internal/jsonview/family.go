package jsonview

import "github.com/veioenza/seqr/internal/models"

type FamilyOptions struct {
	// AddIndividualGuids requires Individuals to be preloaded.
	AddIndividualGuids bool
}

// Family needs Project and AnalysedBy.CreatedBy preloaded. Staff users also
// receive the internal case review fields.
func Family(f *models.Family, user *models.User, opts FamilyOptions) Object {
	analysedBy := make([]Object, 0, len(f.AnalysedBy))
	for _, a := range f.AnalysedBy {
		analysedBy = append(analysedBy, Object{
			"createdBy":        models.DisplayNameOf(a.CreatedBy),
			"lastModifiedDate": a.LastModifiedDate,
		})
	}

	o := Object{
		"projectGuid":             f.Project.GUID,
		"familyGuid":              f.GUID,
		"familyId":                f.FamilyID,
		"displayName":             displayName(f.DisplayName, f.FamilyID),
		"description":             nullable(f.Description),
		"pedigreeImage":           nullable(f.PedigreeImage),
		"analysedBy":              analysedBy,
		"analysisNotes":           nullable(f.AnalysisNotes),
		"analysisSummary":         nullable(f.AnalysisSummary),
		"causalInheritanceMode":   f.CausalInheritanceMode,
		"analysisStatus":          f.AnalysisStatus,
		"codedPhenotype":          nullable(f.CodedPhenotype),
		"postDiscoveryOmimNumber": nullable(f.PostDiscoveryOmimNumber),
		"createdDate":             f.CreatedDate,
	}

	if isStaff(user) {
		o["internalAnalysisStatus"] = nullable(f.InternalAnalysisStatus)
		o["internalCaseReviewNotes"] = nullable(f.InternalCaseReviewNotes)
		o["internalCaseReviewSummary"] = nullable(f.InternalCaseReviewSummary)
	}

	if opts.AddIndividualGuids {
		guids := make([]string, 0, len(f.Individuals))
		for _, i := range f.Individuals {
			guids = append(guids, i.GUID)
		}
		o["individualGuids"] = guids
	}

	return o
}

func Families(families []models.Family, user *models.User, opts FamilyOptions) []Object {
	result := make([]Object, 0, len(families))
	for i := range families {
		result = append(result, Family(&families[i], user, opts))
	}
	return result
}

func displayName(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
