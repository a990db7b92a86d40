package jsonview

import "github.com/veioenza/seqr/internal/models"

// LocusList needs Genes, Intervals and CreatedBy preloaded.
func LocusList(l *models.LocusList, user *models.User) Object {
	items := make([]Object, 0, len(l.Genes)+len(l.Intervals))
	for _, g := range l.Genes {
		items = append(items, Object{"geneId": g.GeneID})
	}

	var intervalGenomeVersion interface{}
	for _, iv := range l.Intervals {
		if intervalGenomeVersion == nil {
			intervalGenomeVersion = iv.GenomeVersion
		}
		items = append(items, Object{
			"locusListIntervalGuid": iv.GUID,
			"genomeVersion":         iv.GenomeVersion,
			"chrom":                 iv.Chrom,
			"start":                 iv.Start,
			"end":                   iv.End,
		})
	}

	return Object{
		"locusListGuid":         l.GUID,
		"name":                  l.Name,
		"description":           nullable(l.Description),
		"isPublic":              l.IsPublic,
		"createdBy":             models.DisplayNameOf(l.CreatedBy),
		"createdDate":           l.CreatedDate,
		"lastModifiedDate":      l.LastModifiedDate,
		"canEdit":               l.CanEdit(user),
		"numEntries":            len(items),
		"items":                 items,
		"intervalGenomeVersion": intervalGenomeVersion,
	}
}
