package entities

// ReportStatus is the lifecycle state of a project's report
type ReportStatus string

const (
	ReportStatusNoReport         ReportStatus = "NoReport"
	ReportStatusRunningTests     ReportStatus = "RunningTests"
	ReportStatusGeneratingReport ReportStatus = "GeneratingReport"
	ReportStatusReportGenerated  ReportStatus = "ReportGenerated"
	ReportStatusReportError      ReportStatus = "ReportError"
)

// IsTerminal reports whether no further transition is expected without a new trigger
func (s ReportStatus) IsTerminal() bool {
	return s == ReportStatusReportGenerated || s == ReportStatusReportError
}

// Report is the generated report of a project
type Report struct {
	ID                 string       `json:"id,omitempty"`
	ProjectID          string       `json:"projectID"`
	Status             ReportStatus `json:"status"`
	TimeStart          *Timestamp   `json:"timeStart,omitempty"`
	TimeTaken          *float64     `json:"timeTaken,omitempty"`
	TotalTestTimeTaken *float64     `json:"totalTestTimeTaken,omitempty"`
	InputBlockData     any          `json:"inputBlockData,omitempty"`
	ProjectSnapshot    *Project     `json:"projectSnapshot,omitempty"`
}
