package jsonview

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/veioenza/seqr/internal/models"
)

// storedVariant is the annotation blob saved alongside a variant when it was
// tagged. Only the parts the client renders are decoded.
type storedVariant struct {
	GenomeVersion  interface{}                       `json:"genome_version"`
	OrigAltAlleles []string                          `json:"orig_alt_alleles"`
	Extras         map[string]interface{}            `json:"extras"`
	Annotation     map[string]interface{}            `json:"annotation"`
	Genotypes      map[string]map[string]interface{} `json:"genotypes"`
}

func decodeStoredVariant(raw []byte) storedVariant {
	var sv storedVariant
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &sv); err != nil {
			return storedVariant{}
		}
	}
	return sv
}

func variantDetails(v *models.SavedVariant, chrom string, pos int, lists []models.LocusList) Object {
	sv := decodeStoredVariant(v.SavedVariantJSON)

	genomeVersion := stringValue(sv.GenomeVersion)
	if genomeVersion == "" {
		genomeVersion = stringValue(sv.Extras["genome_version"])
	}
	if genomeVersion == "" {
		genomeVersion = v.Family.Project.GenomeVersion
	}
	if genomeVersion == "" {
		genomeVersion = models.GenomeVersion37
	}

	liftedGenomeVersion, liftedChrom, liftedPos := liftedOver(sv.Extras, genomeVersion)
	transcripts, mainTranscript := transcriptsOf(sv.Annotation)

	geneIDs := make([]string, 0, len(transcripts))
	for geneID := range transcripts {
		geneIDs = append(geneIDs, geneID)
	}
	sort.Strings(geneIDs)

	locusLists := make([]string, 0)
	for i := range lists {
		if lists[i].Contains(geneIDs, genomeVersion, chrom, pos) {
			locusLists = append(locusLists, lists[i].Name)
		}
	}

	origAltAlleles := sv.OrigAltAlleles
	if origAltAlleles == nil {
		origAltAlleles = []string{}
	}

	return Object{
		"genomeVersion":           genomeVersion,
		"liftedOverGenomeVersion": liftedGenomeVersion,
		"liftedOverChrom":         liftedChrom,
		"liftedOverPos":           liftedPos,
		"origAltAlleles":          origAltAlleles,
		"annotation":              annotationOf(sv.Annotation),
		"clinvar": Object{
			"clinsig":   sv.Extras["clinvar_clinsig"],
			"variantId": sv.Extras["clinvar_variant_id"],
			"alleleId":  sv.Extras["clinvar_allele_id"],
			"goldStars": sv.Extras["clinvar_gold_stars"],
		},
		"hgmd": Object{
			"class":     sv.Extras["hgmd_class"],
			"accession": sv.Extras["hgmd_accession"],
		},
		"genotypes":      genotypesOf(sv.Genotypes, v.Family.Individuals),
		"transcripts":    transcripts,
		"mainTranscript": mainTranscript,
		"locusLists":     locusLists,
	}
}

// liftedOver reads the coordinates on the other build, stored as
// "chrom-pos-ref-alt". Missing or malformed coordinates yield nils.
func liftedOver(extras map[string]interface{}, genomeVersion string) (interface{}, interface{}, interface{}) {
	key, target := "grch38_coords", models.GenomeVersion38
	if genomeVersion == models.GenomeVersion38 {
		key, target = "grch37_coords", models.GenomeVersion37
	}

	coords := stringValue(extras[key])
	parts := strings.Split(coords, "-")
	if len(parts) < 2 {
		return nil, nil, nil
	}
	pos, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, nil, nil
	}
	return target, models.NormalizeChrom(parts[0]), pos
}

func annotationOf(annotation map[string]interface{}) Object {
	o := Object{}
	for k, v := range annotation {
		if k == "vep_annotation" || k == "main_transcript" {
			continue
		}
		o[toCamel(k)] = v
	}
	return o
}

// transcriptsOf groups VEP transcripts by gene id and picks the main one:
// the stored main transcript, else the chosen one, else the canonical one,
// else the first.
func transcriptsOf(annotation map[string]interface{}) (map[string][]Object, Object) {
	transcripts := map[string][]Object{}
	var all []Object

	entries, _ := annotation["vep_annotation"].([]interface{})
	for _, entry := range entries {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		t := camelizeKeys(m)
		geneID := stringValue(t["geneId"])
		transcripts[geneID] = append(transcripts[geneID], t)
		all = append(all, t)
	}

	if m, ok := annotation["main_transcript"].(map[string]interface{}); ok && len(m) > 0 {
		return transcripts, camelizeKeys(m)
	}
	for _, t := range all {
		if isTrue(t["isChosenTranscript"]) {
			return transcripts, t
		}
	}
	for _, t := range all {
		if isTrue(t["canonical"]) {
			return transcripts, t
		}
	}
	if len(all) > 0 {
		return transcripts, all[0]
	}
	return transcripts, Object{}
}

func genotypesOf(genotypes map[string]map[string]interface{}, individuals []models.Individual) map[string]Object {
	guids := make(map[string]string, len(individuals))
	for _, i := range individuals {
		guids[i.IndividualID] = i.GUID
	}

	result := make(map[string]Object, len(genotypes))
	for individualID, gt := range genotypes {
		key := individualID
		if guid, ok := guids[individualID]; ok {
			key = guid
		}
		result[key] = camelizeKeys(gt)
	}
	return result
}

func stringValue(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}

func isTrue(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}
