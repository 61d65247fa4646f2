package steps

import (
	"apply-wizard/internal/models"
	"apply-wizard/internal/schema"
)

// OtherValue is the discriminator value that asks for a free-text companion.
const OtherValue = "other"

var (
	EducationOptions        = []string{"highSchool", "college", OtherValue}
	LeavingReasonOptions    = []string{"smallSalary", "noAmbition", "poorWorkConditions", "lackOfSupport", OtherValue}
	EmploymentStatusOptions = []string{"employed", "unemployed"}
)

func History() *Definition {
	return &Definition{
		Key:   KeyHistory,
		Title: "History",
		Schema: &schema.Schema{
			Step: KeyHistory,
			Fields: []schema.Field{
				{Name: "education", MinLength: 2},
				{Name: "reasonLeavingPreviousJob", MinLength: 2},
				{Name: "employmentStatus", MinLength: 2},
			},
			Conditionals: []schema.Conditional{
				{
					Discriminator: "reasonLeavingPreviousJob",
					Values:        []string{OtherValue, "smallSalary", "noAmbition", "poorWorkConditions", "lackOfSupport"},
					Requires: map[string][]schema.Field{
						OtherValue: {{Name: "otherReasonForLeavingPreviousJob", MinLength: 2}},
					},
				},
				{
					Discriminator: "education",
					Values:        []string{OtherValue, "highSchool", "college"},
					Requires: map[string][]schema.Field{
						OtherValue: {{Name: "otherEducation", MinLength: 2}},
					},
				},
			},
			Lists: []schema.List{
				{
					Name: "previousEmployers",
					Gate: "hasPreviousEmployers",
					Element: []schema.Field{
						{Name: "employerName", MinLength: 2},
						{Name: "jobTitle", MinLength: 2},
						{Name: "responsibility", Optional: true},
					},
				},
				{
					Name: "educationalInstitutions",
					Gate: "hasEducationalInstitutions",
					Element: []schema.Field{
						{Name: "educationTitle", MinLength: 2},
						{Name: "graduatedDate", MinLength: 2},
					},
				},
			},
		},
		Inputs: []Input{
			{Path: "employmentStatus", Label: "Employment status", Kind: InputSelect, Options: EmploymentStatusOptions},
			{Path: "hasPreviousEmployers", Label: "Do you have previous employers?", Kind: InputToggle},
			{Path: "reasonLeavingPreviousJob", Label: "Reason for leaving previous job", Kind: InputSelect, Options: LeavingReasonOptions},
			{
				Path:     "otherReasonForLeavingPreviousJob",
				Label:    "Other reason",
				Kind:     InputText,
				ShowWhen: &Condition{Path: "reasonLeavingPreviousJob", Value: OtherValue},
			},
			{Path: "education", Label: "Education", Kind: InputSelect, Options: EducationOptions},
			{
				Path:     "otherEducation",
				Label:    "Other education",
				Kind:     InputText,
				ShowWhen: &Condition{Path: "education", Value: OtherValue},
			},
			{Path: "hasEducationalInstitutions", Label: "Do you want to add educational institutions?", Kind: InputToggle},
		},
		Lists: []ListLayout{
			{
				Name:  "previousEmployers",
				Label: "Previous employer",
				Inputs: []Input{
					{Path: "employerName", Label: "Employer name", Kind: InputText},
					{Path: "jobTitle", Label: "Job title", Kind: InputText},
					{Path: "responsibility", Label: "Responsibility", Kind: InputText},
				},
			},
			{
				Name:  "educationalInstitutions",
				Label: "Educational institution",
				Inputs: []Input{
					{Path: "educationTitle", Label: "Education title", Kind: InputText},
					{Path: "graduatedDate", Label: "Graduated date", Kind: InputDate},
				},
			},
		},
		DateFields: []string{"educationalInstitutions.*.graduatedDate"},
		defaults: func() models.Record {
			return models.Record{
				"education":                  "",
				"reasonLeavingPreviousJob":   "",
				"employmentStatus":           "",
				"hasPreviousEmployers":       false,
				"previousEmployers":          []interface{}{},
				"hasEducationalInstitutions": false,
				"educationalInstitutions":    []interface{}{},
			}
		},
	}
}
