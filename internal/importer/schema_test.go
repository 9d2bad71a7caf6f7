package importer

import (
	"testing"
	"time"

	"student-portal/internal/excel"
	"student-portal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeacherSchemaNormalize(t *testing.T) {
	row := excel.Row{
		"id":   " T001 ",
		"name": "Alice",
		"dept": "Electronics",
		"dob":  "44927",
	}

	teacher, warnings, ok := TeacherSchema{}.Normalize(row, 0)
	require.True(t, ok)
	assert.Empty(t, warnings)
	assert.Equal(t, "T001", teacher.ID)
	assert.Equal(t, "Electronics", teacher.Dept)
	assert.Equal(t, "N/A", teacher.Position)
	assert.Equal(t, "default123", teacher.Password)
	require.NotNil(t, teacher.DOB)
	assert.Equal(t, "2023-01-01", *teacher.DOB)
}

func TestTeacherSchemaUnknownDepartment(t *testing.T) {
	row := excel.Row{
		"id":   "T002",
		"name": "Bob",
		"dept": "Astrophysics",
	}

	teacher, warnings, ok := TeacherSchema{}.Normalize(row, 0)
	require.True(t, ok)
	assert.Equal(t, model.Departments[0], teacher.Dept)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Astrophysics")
}

func TestTeacherSchemaDropsRowsMissingIdentity(t *testing.T) {
	_, _, ok := TeacherSchema{}.Normalize(excel.Row{"name": "NoID"}, 0)
	assert.False(t, ok)

	_, _, ok = TeacherSchema{}.Normalize(excel.Row{"id": "T003"}, 0)
	assert.False(t, ok)
}

func TestStudentSchemaDefaults(t *testing.T) {
	student, warnings, ok := StudentSchema{}.Normalize(excel.Row{"id": "S001"}, 0)
	require.True(t, ok)
	require.Len(t, warnings, 1) // blank class substituted

	assert.Equal(t, "Unknown", student.Name)
	assert.Equal(t, model.Classes[0], student.Class)
	assert.Equal(t, 0, student.TotalActivityPoint)
	assert.Equal(t, "default123", student.Password)
	assert.Equal(t, "0.00", student.Income)
	assert.Nil(t, student.DOB)
	assert.Nil(t, student.Gender)
}

func TestStudentSchemaKeepsRowWithoutID(t *testing.T) {
	student, _, ok := StudentSchema{}.Normalize(excel.Row{"name": "Carol"}, 0)
	require.True(t, ok)
	assert.Equal(t, "", student.ID)
	assert.Equal(t, "Carol", student.Name)
}

func TestStudentSchemaParsesNumbers(t *testing.T) {
	row := excel.Row{
		"id":                   "S002",
		"class":                "CSB",
		"total_activity_point": "42",
		"income":               "12345.5",
	}

	student, warnings, ok := StudentSchema{}.Normalize(row, 0)
	require.True(t, ok)
	assert.Empty(t, warnings)
	assert.Equal(t, 42, student.TotalActivityPoint)
	assert.Equal(t, "12345.50", student.Income)
}

func TestStudentSchemaAcceptsEveryCanonicalClass(t *testing.T) {
	for _, class := range model.Classes {
		student, warnings, ok := StudentSchema{}.Normalize(excel.Row{"id": "S010", "class": class}, 0)
		require.True(t, ok)
		assert.Empty(t, warnings, "class %q should not be substituted", class)
		assert.Equal(t, class, student.Class)
	}
}

func TestScholarshipSchemaGeneratedIDs(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	schema := ScholarshipSchema{Now: func() time.Time { return now }}

	first, _, ok := schema.Normalize(excel.Row{"name": "Merit Grant"}, 0)
	require.True(t, ok)
	second, _, ok := schema.Normalize(excel.Row{"name": "Need Grant"}, 1)
	require.True(t, ok)

	assert.Equal(t, now.UnixMilli(), first.ID)
	assert.Equal(t, now.UnixMilli()+1, second.ID)
	assert.Equal(t, "No description provided", first.Description)
	assert.False(t, first.Applied)
}

func TestScholarshipSchemaExplicitID(t *testing.T) {
	s, _, ok := ScholarshipSchema{}.Normalize(excel.Row{"id": "77", "name": "Named"}, 3)
	require.True(t, ok)
	assert.Equal(t, int64(77), s.ID)
}
