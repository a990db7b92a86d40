package jsonview

import "github.com/veioenza/seqr/internal/models"

// Individual needs Family.Project, Father, Mother and
// CaseReviewStatusLastModifiedBy preloaded. Case review state beyond the
// last modifier is only shown to staff.
func Individual(i *models.Individual, user *models.User) Object {
	o := Object{
		"projectGuid":                    i.Family.Project.GUID,
		"familyGuid":                     i.Family.GUID,
		"individualGuid":                 i.GUID,
		"individualId":                   i.IndividualID,
		"paternalId":                     parentID(i.Father),
		"maternalId":                     parentID(i.Mother),
		"sex":                            i.Sex,
		"affected":                       i.Affected,
		"displayName":                    displayName(i.DisplayName, i.IndividualID),
		"notes":                          nullable(i.Notes),
		"caseReviewStatusLastModifiedBy": models.DisplayNameOf(i.CaseReviewStatusLastModifiedBy),
		"phenotipsPatientId":             nullable(i.PhenotipsPatientID),
		"phenotipsData":                  decodeJSON(i.PhenotipsData),
		"createdDate":                    i.CreatedDate,
		"lastModifiedDate":               i.LastModifiedDate,
	}

	if isStaff(user) {
		o["caseReviewStatus"] = string(i.CaseReviewStatus)
		o["caseReviewDiscussion"] = nullable(i.CaseReviewDiscussion)
		o["caseReviewStatusLastModifiedDate"] = timeOrNil(i.CaseReviewStatusLastModifiedDate)
	}

	return o
}

func Individuals(individuals []models.Individual, user *models.User) []Object {
	result := make([]Object, 0, len(individuals))
	for i := range individuals {
		result = append(result, Individual(&individuals[i], user))
	}
	return result
}

func parentID(parent *models.Individual) interface{} {
	if parent == nil {
		return nil
	}
	return parent.IndividualID
}
