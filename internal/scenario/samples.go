package scenario

// ObjectIDSample is an id value the server must reject before any resolver runs
type ObjectIDSample struct {
	Label string
	Value any
}

// InvalidObjectIDSamples lists every malformed id shape the suites send
func InvalidObjectIDSamples() []ObjectIDSample {
	return []ObjectIDSample{
		{Label: "empty string", Value: ""},
		{Label: "four zeros", Value: "0000"},
		{Label: "three digits", Value: "100"},
		{Label: "short decimal", Value: "123"},
		{Label: "23 hex characters", Value: "63be7e9bd43d9b23db71ff1"},
		{Label: "24 non-hex characters", Value: "zzzzzzzzzzzzzzzzzzzzzzzz"},
		{Label: "integer zero", Value: 0},
		{Label: "null", Value: nil},
	}
}

// RejectionMessage is the error a malformed id produces for variable
func (s ObjectIDSample) RejectionMessage(variable string) string {
	if s.Value == nil {
		return NonNullVariable(variable, ObjectIDType)
	}
	return InvalidObjectID(variable, s.Value)
}
