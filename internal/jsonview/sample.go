package jsonview

import "github.com/veioenza/seqr/internal/models"

// Sample needs Individual.Family.Project preloaded.
func Sample(s *models.Sample) Object {
	return Object{
		"projectGuid":        s.Individual.Family.Project.GUID,
		"individualGuid":     s.Individual.GUID,
		"sampleGuid":         s.GUID,
		"sampleId":           s.SampleID,
		"sampleType":         nullable(s.SampleType),
		"sampleStatus":       nullable(s.SampleStatus),
		"datasetType":        nullable(s.DatasetType),
		"datasetName":        nullable(s.DatasetName),
		"datasetFilePath":    nullable(s.DatasetFilePath),
		"elasticsearchIndex": nullable(s.ElasticsearchIndex),
		"loadedDate":         timeOrNil(s.LoadedDate),
		"createdDate":        s.CreatedDate,
	}
}

func Samples(samples []models.Sample) []Object {
	result := make([]Object, 0, len(samples))
	for i := range samples {
		result = append(result, Sample(&samples[i]))
	}
	return result
}
