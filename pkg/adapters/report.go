package adapters

import (
	"maps"

	"github.com/de-tools/health-atlas/pkg/models/api"
	"github.com/de-tools/health-atlas/pkg/models/domain"
)

func MapTimePeriodDomainToApi(p domain.TimePeriod) api.TimePeriod {
	return api.TimePeriod{
		Start:    p.Start,
		End:      p.End,
		Duration: p.Duration,
	}
}

func MapReportDomainToApi(report *domain.Report) api.AnalysisReport {
	apiReport := api.AnalysisReport{
		Title:    report.Title,
		Period:   MapTimePeriodDomainToApi(report.Period),
		Sections: []api.ReportSection{},
	}

	for _, s := range report.Sections {
		apiReport.Sections = append(apiReport.Sections, MapReportSectionDomainToApi(s))
	}

	return apiReport
}

func MapReportSectionDomainToApi(s domain.ReportSection) api.ReportSection {
	section := api.ReportSection{
		Title:    s.Title,
		Summary:  maps.Clone(s.Summary),
		Details:  []api.ReportDetail{},
		Metadata: maps.Clone(s.Metadata),
	}

	for _, d := range s.Details {
		section.Details = append(section.Details, api.ReportDetail{
			Name:        d.Name,
			Value:       d.Value,
			Unit:        d.Unit,
			Description: d.Description,
		})
	}

	return section
}
