package jsonview

import "github.com/veioenza/seqr/internal/models"

// Project needs Categories and Collaborators preloaded.
func Project(p *models.Project, user *models.User) Object {
	categoryGUIDs := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		categoryGUIDs = append(categoryGUIDs, c.GUID)
	}

	return Object{
		"projectGuid":                p.GUID,
		"projectCategoryGuids":       categoryGUIDs,
		"canEdit":                    p.CanEdit(user),
		"name":                       p.Name,
		"description":                p.Description,
		"createdDate":                p.CreatedDate,
		"lastModifiedDate":           p.LastModifiedDate,
		"isPhenotipsEnabled":         p.IsPhenotipsEnabled,
		"phenotipsUserId":            nullable(p.PhenotipsUserID),
		"deprecatedProjectId":        nullable(p.DeprecatedProjectID),
		"deprecatedLastAccessedDate": timeOrNil(p.DeprecatedLastAccessedDate),
		"isMmeEnabled":               p.IsMmeEnabled,
		"mmePrimaryDataOwner":        nullable(p.MmePrimaryDataOwner),
		"genomeVersion":              p.GenomeVersion,
	}
}
