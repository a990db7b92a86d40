package jsonview

import "github.com/veioenza/seqr/internal/models"

type GeneOptions struct {
	AddDbNSFP      bool
	AddOmim        bool
	AddConstraints bool
	AddNotes       bool
	AddExpression  bool
	// TotalConstraintGenes is reported with constraints so ranks can be
	// read as percentiles.
	TotalConstraintGenes int64
}

// Gene needs the associations matching the requested flags preloaded.
func Gene(g *models.GeneInfo, user *models.User, opts GeneOptions) Object {
	o := Object{
		"geneId":                 g.GeneID,
		"geneSymbol":             g.GeneSymbol,
		"gencodeGeneType":        nullable(g.GencodeGeneType),
		"chromGrch37":            nullable(g.ChromGrch37),
		"startGrch37":            g.StartGrch37,
		"endGrch37":              g.EndGrch37,
		"codingRegionSizeGrch37": g.CodingRegionSizeGrch37,
		"chromGrch38":            nullable(g.ChromGrch38),
		"startGrch38":            g.StartGrch38,
		"endGrch38":              g.EndGrch38,
		"codingRegionSizeGrch38": g.CodingRegionSizeGrch38,
	}

	if opts.AddDbNSFP {
		var functionDesc, diseaseDesc interface{}
		if g.DbNSFP != nil {
			functionDesc, diseaseDesc = nullable(g.DbNSFP.FunctionDesc), nullable(g.DbNSFP.DiseaseDesc)
		}
		o["functionDesc"] = functionDesc
		o["diseaseDesc"] = diseaseDesc
	}

	if opts.AddOmim {
		phenotypes := make([]Object, 0, len(g.Omim))
		for _, omim := range g.Omim {
			var phenotypeMimNumber interface{}
			if omim.PhenotypeMimNumber != nil {
				phenotypeMimNumber = *omim.PhenotypeMimNumber
			}
			phenotypes = append(phenotypes, Object{
				"mimNumber":            omim.MimNumber,
				"phenotypeMimNumber":   phenotypeMimNumber,
				"phenotypeDescription": nullable(omim.PhenotypeDescription),
				"phenotypeInheritance": nullable(omim.PhenotypeInheritance),
			})
		}
		o["omimPhenotypes"] = phenotypes
	}

	if opts.AddConstraints {
		constraints := Object{}
		if c := g.Constraint; c != nil {
			constraints = Object{
				"misZ":       c.MisZ,
				"misZRank":   c.MisZRank,
				"pli":        c.PLI,
				"pliRank":    c.PLIRank,
				"totalGenes": opts.TotalConstraintGenes,
			}
		}
		o["constraints"] = constraints
	}

	if opts.AddNotes {
		o["notes"] = GeneNotes(g.Notes, user)
	}

	if opts.AddExpression {
		var expression interface{}
		if g.Expression != nil {
			expression = decodeJSON(g.Expression.ExpressionValues)
		}
		o["expression"] = expression
	}

	return o
}

// GeneNote needs CreatedBy preloaded.
func GeneNote(n *models.GeneNote, user *models.User) Object {
	return Object{
		"noteGuid":         n.GUID,
		"geneId":           n.GeneID,
		"note":             n.Note,
		"createdBy":        models.DisplayNameOf(n.CreatedBy),
		"lastModifiedDate": n.LastModifiedDate,
		"canEdit":          n.CanEdit(user),
	}
}

func GeneNotes(notes []models.GeneNote, user *models.User) []Object {
	result := make([]Object, 0, len(notes))
	for i := range notes {
		result = append(result, GeneNote(&notes[i], user))
	}
	return result
}
