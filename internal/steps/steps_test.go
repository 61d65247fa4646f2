package steps

import (
	"strings"
	"testing"

	"apply-wizard/internal/models"
	"apply-wizard/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func personalInfoRecord() models.Record {
	return models.Record{
		"firstName":   "Ana",
		"lastName":    "Popescu",
		"age":         "29",
		"gender":      "female",
		"email":       "ana@example.com",
		"phone":       "+40712345678",
		"country":     "romania",
		"city":        "timisoara",
		"dateOfBirth": "1995-04-12",
		"street":      "Strada Mare 1",
	}
}

func historyRecord() models.Record {
	return models.Record{
		"education":                  "college",
		"reasonLeavingPreviousJob":   "smallSalary",
		"employmentStatus":           "employed",
		"hasPreviousEmployers":       false,
		"previousEmployers":          []interface{}{},
		"hasEducationalInstitutions": false,
		"educationalInstitutions":    []interface{}{},
	}
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, 5)

	routes := make([]string, len(catalog))
	for i, s := range catalog {
		routes[i] = s.Route
	}
	assert.Equal(t, []string{
		"/apply/personal-info",
		"/apply/additional-info",
		"/apply/history",
		"/apply/skills",
		"/apply/review",
	}, routes)

	assert.Equal(t, KeyPersonalInfo, catalog[0].Form.Key)
	assert.Nil(t, catalog[1].Form)
	assert.Equal(t, KeyHistory, catalog[2].Form.Key)
	assert.Equal(t, KeySkills, catalog[3].Form.Key)
	assert.Nil(t, catalog[4].Form)
}

func TestLookup(t *testing.T) {
	def, ok := Lookup("HISTORYINFO")
	require.True(t, ok)
	assert.Equal(t, KeyHistory, def.Key)

	_, ok = Lookup("review")
	assert.False(t, ok)
}

func TestDefaults_AreFreshCopies(t *testing.T) {
	def := History()
	a := def.Defaults()
	a["education"] = "college"
	a["previousEmployers"] = append(a.List("previousEmployers"), map[string]interface{}{})

	b := def.Defaults()
	assert.Equal(t, "", b["education"])
	assert.Empty(t, b.List("previousEmployers"))
	assert.Equal(t, false, b["hasPreviousEmployers"])
}

func TestPersonalInfo_Scenarios(t *testing.T) {
	s := PersonalInfo().Schema

	assert.Empty(t, s.Validate(personalInfoRecord()))

	rec := personalInfoRecord()
	rec["email"] = "not-an-email"
	assert.Equal(t, schema.Errors{"email": "Invalid email"}, s.Validate(rec))

	rec = personalInfoRecord()
	rec["phone"] = "0712"
	rec["age"] = "abc"
	errs := s.Validate(rec)
	assert.Equal(t, []string{"age", "phone"}, errs.Fields())

	assert.Len(t, s.Validate(PersonalInfo().Defaults()), 10)
}

func TestHistory_ReasonForLeaving(t *testing.T) {
	s := History().Schema

	for _, companion := range []interface{}{nil, "", "x"} {
		rec := historyRecord()
		rec["reasonLeavingPreviousJob"] = "other"
		if companion != nil {
			rec["otherReasonForLeavingPreviousJob"] = companion
		}
		errs := s.Validate(rec)
		assert.True(t, errs.Has("otherReasonForLeavingPreviousJob"), "companion %v", companion)
	}

	for _, reason := range []string{"smallSalary", "noAmbition", "poorWorkConditions", "lackOfSupport"} {
		rec := historyRecord()
		rec["reasonLeavingPreviousJob"] = reason
		assert.False(t, s.Validate(rec).Has("otherReasonForLeavingPreviousJob"), reason)
	}
}

func TestHistory_EducationOther(t *testing.T) {
	s := History().Schema
	rec := historyRecord()
	rec["education"] = "other"
	assert.Equal(t, schema.Errors{"otherEducation": "Required"}, s.Validate(rec))

	rec["otherEducation"] = "Bootcamp"
	assert.Empty(t, s.Validate(rec))
}

func TestHistory_EducationalInstitutionScenario(t *testing.T) {
	s := History().Schema
	rec := historyRecord()
	rec["hasEducationalInstitutions"] = true
	rec["educationalInstitutions"] = []interface{}{
		map[string]interface{}{"educationTitle": "", "graduatedDate": "2020-05-01"},
	}

	errs := s.Validate(rec)
	assert.Equal(t, []string{"educationalInstitutions.0.educationTitle"}, errs.Fields())

	ok, docErrs, err := s.CheckDocument(rec)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, strings.Join(docErrs, "\n"), "educationTitle")
}

func TestHistory_PreviousEmployersResponsibilityOptional(t *testing.T) {
	s := History().Schema
	rec := historyRecord()
	rec["hasPreviousEmployers"] = true
	rec["previousEmployers"] = []interface{}{
		map[string]interface{}{"employerName": "Acme", "jobTitle": "Developer"},
	}
	assert.Empty(t, s.Validate(rec))

	ok, docErrs, err := s.CheckDocument(rec)
	require.NoError(t, err)
	assert.True(t, ok, strings.Join(docErrs, "; "))
}

func TestSkills(t *testing.T) {
	def := Skills()
	s := def.Schema

	rec := def.Defaults()
	for _, r := range ratingFields {
		rec[r.name] = "3"
	}
	assert.Empty(t, s.Validate(rec), "skill sets may be empty")

	rec["leadership"] = "7"
	rec["languagesSpoken"] = []interface{}{"English", "Klingon"}
	rec["skillSets"] = []interface{}{map[string]interface{}{"skillSet": "Go", "level": "a"}}
	assert.Equal(t, []string{"languagesSpoken", "leadership", "skillSets.0.level"}, s.Validate(rec).Fields())
}

func TestPersonalInfo_CheckDocumentAgrees(t *testing.T) {
	s := PersonalInfo().Schema
	ok, docErrs, err := s.CheckDocument(personalInfoRecord())
	require.NoError(t, err)
	assert.True(t, ok, strings.Join(docErrs, "; "))

	rec := personalInfoRecord()
	rec["email"] = "not-an-email"
	ok, _, err = s.CheckDocument(rec)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExpandDateFields(t *testing.T) {
	def := History()
	rec := historyRecord()
	rec["educationalInstitutions"] = []interface{}{map[string]interface{}{}, map[string]interface{}{}}

	assert.Equal(t, []string{
		"educationalInstitutions.0.graduatedDate",
		"educationalInstitutions.1.graduatedDate",
	}, def.ExpandDateFields(rec))

	assert.Equal(t, []string{"dateOfBirth"}, PersonalInfo().ExpandDateFields(models.Record{}))

	layout, ok := def.ListLayout("previousEmployers")
	require.True(t, ok)
	assert.Len(t, layout.Inputs, 3)
}
