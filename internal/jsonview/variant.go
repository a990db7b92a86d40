package jsonview

import (
	"fmt"

	"github.com/veioenza/seqr/internal/models"
)

type SavedVariantOptions struct {
	// AddTags requires Tags.VariantTagType, Tags.CreatedBy,
	// FunctionalData.CreatedBy and Notes.CreatedBy preloaded.
	AddTags bool
	// AddDetails decodes the stored variant annotation. Genotypes are keyed
	// by individual guid when Family.Individuals is preloaded.
	AddDetails bool
	// LocusLists are checked for the variant's genes and position when
	// AddDetails is set.
	LocusLists []models.LocusList
}

// SavedVariant needs Family preloaded.
func SavedVariant(v *models.SavedVariant, opts SavedVariantOptions) Object {
	chrom, pos := models.ChromPos(v.XposStart)

	o := Object{
		"variantId":  fmt.Sprintf("%s-%d-%s-%s", chrom, pos, v.Ref, v.Alt),
		"familyGuid": v.Family.GUID,
		"xpos":       v.XposStart,
		"chrom":      chrom,
		"pos":        pos,
		"ref":        v.Ref,
		"alt":        v.Alt,
	}

	if opts.AddTags {
		tags := make([]Object, 0, len(v.Tags))
		for i := range v.Tags {
			tags = append(tags, VariantTag(&v.Tags[i]))
		}
		functionalData := make([]Object, 0, len(v.FunctionalData))
		for i := range v.FunctionalData {
			functionalData = append(functionalData, VariantFunctionalData(&v.FunctionalData[i]))
		}
		notes := make([]Object, 0, len(v.Notes))
		for i := range v.Notes {
			notes = append(notes, VariantNote(&v.Notes[i]))
		}
		o["tags"] = tags
		o["functionalData"] = functionalData
		o["notes"] = notes
	}

	if opts.AddDetails {
		o.merge(variantDetails(v, chrom, pos, opts.LocusLists))
	}

	return o
}

func SavedVariants(variants []models.SavedVariant, opts SavedVariantOptions) []Object {
	result := make([]Object, 0, len(variants))
	for i := range variants {
		result = append(result, SavedVariant(&variants[i], opts))
	}
	return result
}

// VariantTag needs VariantTagType and CreatedBy preloaded.
func VariantTag(t *models.VariantTag) Object {
	return Object{
		"tagGuid":          t.GUID,
		"name":             t.VariantTagType.Name,
		"category":         nullable(t.VariantTagType.Category),
		"color":            t.VariantTagType.Color,
		"searchParameters": nullable(t.SearchParameters),
		"lastModifiedDate": t.LastModifiedDate,
		"createdBy":        models.DisplayNameOf(t.CreatedBy),
	}
}

// VariantFunctionalData takes color and metadata title from the fixed
// functional tag table; unknown tags get nil for both.
func VariantFunctionalData(f *models.VariantFunctionalData) Object {
	var color, metadataTitle interface{}
	if tag, ok := models.LookupFunctionalDataTag(f.FunctionalDataTag); ok {
		color, metadataTitle = tag.Color, tag.MetadataTitle
	}

	return Object{
		"tagGuid":          f.GUID,
		"name":             f.FunctionalDataTag,
		"color":            color,
		"metadata":         nullable(f.Metadata),
		"metadataTitle":    metadataTitle,
		"lastModifiedDate": f.LastModifiedDate,
		"createdBy":        models.DisplayNameOf(f.CreatedBy),
	}
}

func VariantNote(n *models.VariantNote) Object {
	return Object{
		"noteGuid":         n.GUID,
		"note":             n.Note,
		"submitToClinvar":  n.SubmitToClinvar,
		"lastModifiedDate": n.LastModifiedDate,
		"createdBy":        models.DisplayNameOf(n.CreatedBy),
	}
}
