package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string { return &s }
func ptrInt(i int) *int       { return &i }
func ptrBool(b bool) *bool    { return &b }

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		Schedules: []ScheduleImport{
			{Ref: "s1", Title: "Excavate", StartDate: "2024-03-01"},
		},
	}
}

func TestValidateImportSchema_ValidMinimal(t *testing.T) {
	errs := ValidateImportSchema(validMinimalSchema())
	assert.Empty(t, errs)
}

func TestValidateImportSchema_ValidFull(t *testing.T) {
	schema := &ImportSchema{
		Defaults: &DefaultsImport{JobID: "job-7", Crew: []string{"alice"}, UseDuration: ptrBool(true)},
		Schedules: []ScheduleImport{
			{Ref: "exc", Title: "Excavate", StartDate: "2024-03-01", EndDate: ptrStr("2024-03-02")},
			{Ref: "ftg", Title: "Footings", StartDate: "2024-03-03", After: ptrStr("exc"), Lag: ptrInt(1), Duration: ptrInt(2)},
			{Ref: "wal", Title: "Walls", StartDate: "2024-03-06", After: ptrStr("ftg"), Status: "in-progress", Crew: []string{"bob", "carol"}},
		},
	}
	errs := ValidateImportSchema(schema)
	assert.Empty(t, errs)
}

func TestValidateImportSchema_Empty(t *testing.T) {
	errs := ValidateImportSchema(&ImportSchema{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "at least one schedule")
}

func TestValidateImportSchema_FieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *ScheduleImport)
		wantMsg string
	}{
		{"missing ref", func(s *ScheduleImport) { s.Ref = "" }, "schedules[0].ref is required"},
		{"missing title", func(s *ScheduleImport) { s.Title = "" }, "schedules[0].title is required"},
		{"missing start", func(s *ScheduleImport) { s.StartDate = "" }, "start_date is required"},
		{"bad start", func(s *ScheduleImport) { s.StartDate = "03/01/2024" }, "start_date: invalid date format"},
		{"bad end", func(s *ScheduleImport) { s.EndDate = ptrStr("soon") }, "end_date: invalid date format"},
		{"end before start", func(s *ScheduleImport) { s.EndDate = ptrStr("2024-02-28") }, "must not be before start_date"},
		{"bad status", func(s *ScheduleImport) { s.Status = "done" }, `status: invalid value "done"`},
		{"negative lag", func(s *ScheduleImport) { s.Lag = ptrInt(-1) }, "lag must not be negative"},
		{"zero duration", func(s *ScheduleImport) { s.Duration = ptrInt(0) }, "duration must be at least 1"},
		{"empty crew id", func(s *ScheduleImport) { s.Crew = []string{"alice", ""} }, "crew[1]: employee id must not be empty"},
		{"self after", func(s *ScheduleImport) { s.After = ptrStr("s1") }, "cannot follow itself"},
		{"unknown after", func(s *ScheduleImport) { s.After = ptrStr("nope") }, `ref "nope" not found`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := validMinimalSchema()
			tt.mutate(&schema.Schedules[0])
			errs := ValidateImportSchema(schema)
			require.NotEmpty(t, errs)
			assert.Contains(t, errs[0].Error(), tt.wantMsg)
		})
	}
}

func TestValidateImportSchema_DuplicateRef(t *testing.T) {
	schema := validMinimalSchema()
	schema.Schedules = append(schema.Schedules, ScheduleImport{Ref: "s1", Title: "Again", StartDate: "2024-03-02"})

	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `schedules[1].ref: duplicate ref "s1"`)
}

func TestValidateImportSchema_ForwardAfterRejected(t *testing.T) {
	schema := &ImportSchema{
		Schedules: []ScheduleImport{
			{Ref: "a", Title: "A", StartDate: "2024-03-01", After: ptrStr("b")},
			{Ref: "b", Title: "B", StartDate: "2024-03-02", After: ptrStr("a")},
		},
	}
	errs := ValidateImportSchema(schema)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "must appear earlier")
}

func TestValidateImportSchema_CollectsAllErrors(t *testing.T) {
	schema := &ImportSchema{
		Defaults: &DefaultsImport{Crew: []string{""}},
		Schedules: []ScheduleImport{
			{Ref: "", Title: "", StartDate: ""},
		},
	}
	errs := ValidateImportSchema(schema)
	assert.Len(t, errs, 4)
}

func TestParseImportSchema_YAMLAndJSON(t *testing.T) {
	yamlDoc := []byte(`
defaults:
  job_id: job-1
  crew: [alice]
schedules:
  - ref: exc
    title: Excavate
    start_date: "2024-03-01"
    end_date: "2024-03-02"
  - ref: ftg
    title: Footings
    start_date: "2024-03-03"
    after: exc
    lag: 1
`)
	schema, err := ParseImportSchema(yamlDoc, ".yml")
	require.NoError(t, err)
	require.Len(t, schema.Schedules, 2)
	assert.Equal(t, "job-1", schema.Defaults.JobID)
	require.NotNil(t, schema.Schedules[1].After)
	assert.Equal(t, "exc", *schema.Schedules[1].After)
	assert.Equal(t, 1, *schema.Schedules[1].Lag)

	jsonDoc := []byte(`{"schedules":[{"ref":"exc","title":"Excavate","start_date":"2024-03-01","crew":["bob"]}]}`)
	schema, err = ParseImportSchema(jsonDoc, ".json")
	require.NoError(t, err)
	require.Len(t, schema.Schedules, 1)
	assert.Equal(t, []string{"bob"}, schema.Schedules[0].Crew)

	_, err = ParseImportSchema([]byte("{not json"), ".json")
	assert.Error(t, err)
}
