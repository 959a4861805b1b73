package operations

// Variable names are part of the contract: the server echoes them in
// coercion errors, so they must stay stable.

const projectInfoFields = `
    projectInfo {
      name
      description
      reportTitle
      company
    }`

const pageFields = `
    pages {
      layouts
      reportWidgets {
        widgetGID
        key
        layoutItemProperties {
          justifyContent
          alignItems
          color
          bgcolor
        }
        properties
      }
    }`

const globalVarFields = `
    globalVars {
      key
      value
    }`

const templateFields = `
    id` + projectInfoFields + globalVarFields + pageFields + `
    createdAt
    updatedAt`

const reportFields = `
    projectID
    status
    timeStart
    timeTaken
    totalTestTimeTaken
    inputBlockData`

// Project documents
const (
	CreateProject = `mutation CreateProject($project: ProjectInput!) {
  createProject(project: $project) {
    id` + projectInfoFields + `
  }
}`

	UpdateProject = `mutation UpdateProject($updateProjectId: ObjectID!, $project: ProjectInput!) {
  updateProject(id: $updateProjectId, project: $project) {
    id` + projectInfoFields + `
  }
}`

	DeleteProject = `mutation DeleteProject($deleteProjectId: ObjectID!) {
  deleteProject(id: $deleteProjectId)
}`

	CloneProject = `mutation CloneProject($cloneProjectId: ObjectID!) {
  cloneProject(id: $cloneProjectId) {
    id` + projectInfoFields + `
  }
}`

	Projects = `query Projects {
  projects {
    id` + projectInfoFields + `
  }
}`

	ProjectsDetail = `query ProjectsDetail {
  projects {
    id` + projectInfoFields + globalVarFields + pageFields + `
    inputBlockData
    testInformationData
  }
}`

	ProjectByID = `query Project($projectId: ObjectID!) {
  project(id: $projectId) {
    id` + projectInfoFields + `
  }
}`

	ProjectDetail = `query ProjectDetail($projectId: ObjectID!) {
  project(id: $projectId) {
    id` + projectInfoFields + globalVarFields + pageFields + `
    inputBlockData
    testInformationData
    createdAt
    updatedAt
    report {
      projectID
      status
    }
  }
}`
)

// Report documents
const (
	GenerateReportSnapshot = `mutation GenerateReportSnapshot($projectId: ObjectID!, $algorithms: [String]!) {
  generateReport(projectID: $projectId, algorithms: $algorithms) {
    projectSnapshot {
      report {` + reportFields + `
      }
    }
  }
}`

	GenerateReportStatus = `mutation GenerateReport($projectId: ObjectID!, $algorithms: [String]!) {
  generateReport(projectID: $projectId, algorithms: $algorithms) {
    projectID
    status
  }
}`

	CancelTestRuns = `mutation CancelTestRuns($projectId: ObjectID!, $algorithms: [String]!) {
  cancelTestRuns(projectID: $projectId, algorithms: $algorithms) {` + reportFields + `
  }
}`

	ReportByProjectID = `query Report($projectId: ObjectID!) {
  report(projectID: $projectId) {` + reportFields + `
  }
}`
)

// Project template documents
const (
	ProjectTemplates = `query ProjectTemplates {
  projectTemplates {` + templateFields + `
  }
}`

	ProjectTemplateByID = `query ProjectTemplate($projectTemplateId: ObjectID!) {
  projectTemplate(id: $projectTemplateId) {` + templateFields + `
  }
}`

	CreateProjectTemplate = `mutation CreateProjectTemplate($projectTemplate: ProjectTemplateInput!) {
  createProjectTemplate(projectTemplate: $projectTemplate) {` + templateFields + `
  }
}`

	CreateProjectTemplateInfo = `mutation CreateProjectTemplateInfo($projectTemplate: ProjectTemplateInput!) {
  createProjectTemplate(projectTemplate: $projectTemplate) {
    id` + projectInfoFields + `
  }
}`

	CreateProjectTemplateGlobalVars = `mutation CreateProjectTemplateGlobalVars($projectTemplate: ProjectTemplateInput!) {
  createProjectTemplate(projectTemplate: $projectTemplate) {
    id` + globalVarFields + `
  }
}`

	CreateProjectTemplatePages = `mutation CreateProjectTemplatePages($projectTemplate: ProjectTemplateInput!) {
  createProjectTemplate(projectTemplate: $projectTemplate) {
    id` + pageFields + `
  }
}`

	CloneProjectTemplate = `mutation CloneProjectTemplate($cloneProjectTemplateId: ObjectID!) {
  cloneProjectTemplate(id: $cloneProjectTemplateId) {` + templateFields + `
  }
}`

	DeleteProjectTemplate = `mutation DeleteProjectTemplate($deleteProjectTemplateId: ObjectID!) {
  deleteProjectTemplate(id: $deleteProjectTemplateId)
}`

	UpdateProjectTemplate = `mutation UpdateProjectTemplate($updateProjectTemplateId: ObjectID!, $projectTemplate: ProjectTemplateInput!) {
  updateProjectTemplate(id: $updateProjectTemplateId, projectTemplate: $projectTemplate) {
    fromPlugin` + templateFields + `
  }
}`
)

// Typename is the cheapest valid document; readiness probes send it.
const Typename = `{ __typename }`

// Document is a named operation document
type Document struct {
	Name  string
	Query string
}

// All returns every document the suites send, in a stable order.
func All() []Document {
	return []Document{
		{"CreateProject", CreateProject},
		{"UpdateProject", UpdateProject},
		{"DeleteProject", DeleteProject},
		{"CloneProject", CloneProject},
		{"Projects", Projects},
		{"ProjectsDetail", ProjectsDetail},
		{"ProjectByID", ProjectByID},
		{"ProjectDetail", ProjectDetail},
		{"GenerateReportSnapshot", GenerateReportSnapshot},
		{"GenerateReportStatus", GenerateReportStatus},
		{"CancelTestRuns", CancelTestRuns},
		{"ReportByProjectID", ReportByProjectID},
		{"ProjectTemplates", ProjectTemplates},
		{"ProjectTemplateByID", ProjectTemplateByID},
		{"CreateProjectTemplate", CreateProjectTemplate},
		{"CreateProjectTemplateInfo", CreateProjectTemplateInfo},
		{"CreateProjectTemplateGlobalVars", CreateProjectTemplateGlobalVars},
		{"CreateProjectTemplatePages", CreateProjectTemplatePages},
		{"CloneProjectTemplate", CloneProjectTemplate},
		{"DeleteProjectTemplate", DeleteProjectTemplate},
		{"UpdateProjectTemplate", UpdateProjectTemplate},
		{"Typename", Typename},
	}
}
