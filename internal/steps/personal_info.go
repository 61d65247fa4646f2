package steps

import (
	"apply-wizard/internal/models"
	"apply-wizard/internal/schema"
)

var (
	GenderOptions  = []string{"male", "female"}
	CountryOptions = []string{"romania", "severin"}
	CityOptions    = []string{"timisoara", "oradea"}
)

func PersonalInfo() *Definition {
	min2 := func(name string) schema.Field { return schema.Field{Name: name, MinLength: 2} }

	return &Definition{
		Key:   KeyPersonalInfo,
		Title: "Personal info",
		Schema: &schema.Schema{
			Step: KeyPersonalInfo,
			Fields: []schema.Field{
				min2("firstName"),
				min2("lastName"),
				{Name: "age", MinLength: 1, Format: schema.FormatNumeric},
				min2("gender"),
				{Name: "email", Format: schema.FormatEmail},
				{Name: "phone", MinLength: 10},
				min2("country"),
				min2("city"),
				min2("dateOfBirth"),
				min2("street"),
			},
		},
		Inputs: []Input{
			{Path: "firstName", Label: "First name", Kind: InputText},
			{Path: "lastName", Label: "Last name", Kind: InputText},
			{Path: "dateOfBirth", Label: "Date of birth", Kind: InputDate},
			{Path: "age", Label: "Age", Kind: InputText},
			{Path: "gender", Label: "Gender", Kind: InputSelect, Options: GenderOptions},
			{Path: "email", Label: "Email", Kind: InputText},
			{Path: "phone", Label: "Phone", Kind: InputPhone},
			{Path: "country", Label: "Country", Kind: InputSelect, Options: CountryOptions},
			{Path: "city", Label: "City", Kind: InputSelect, Options: CityOptions},
			{Path: "street", Label: "Street", Kind: InputText},
		},
		DateFields: []string{"dateOfBirth"},
		defaults: func() models.Record {
			return models.Record{
				"firstName":   "",
				"lastName":    "",
				"age":         "",
				"gender":      "",
				"email":       "",
				"phone":       "",
				"country":     "",
				"city":        "",
				"dateOfBirth": "",
				"street":      "",
			}
		},
	}
}
