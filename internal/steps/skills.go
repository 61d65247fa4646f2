package steps

import (
	"apply-wizard/internal/models"
	"apply-wizard/internal/schema"
)

var (
	RatingOptions     = []string{"1", "2", "3", "4", "5"}
	LanguageOptions   = []string{"Romanian", "English", "German", "Spanish", "French"}
	CompetencyOptions = []string{"Team player", "Communication", "Leadership", "Problem solving", "Technical skills"}

	ratingFields = []struct{ name, label string }{
		{"projectManager", "Project manager"},
		{"communications", "Communications"},
		{"technicalSkills", "Technical skills"},
		{"leadership", "Leadership"},
		{"problemSolving", "Problem solving"},
	}
)

func Skills() *Definition {
	fields := []schema.Field{
		{Name: "languagesSpoken", Kind: schema.KindStringList, Enum: LanguageOptions, Optional: true},
		{Name: "coreCompetencies", Kind: schema.KindStringList, Enum: CompetencyOptions, Optional: true},
	}
	inputs := []Input{
		{Path: "languagesSpoken", Label: "Languages spoken", Kind: InputMultiSelect, Options: LanguageOptions},
		{Path: "coreCompetencies", Label: "Core competencies", Kind: InputMultiSelect, Options: CompetencyOptions},
	}
	for _, r := range ratingFields {
		fields = append(fields, schema.Field{Name: r.name, MinLength: 1, Enum: RatingOptions})
		inputs = append(inputs, Input{Path: r.name, Label: r.label, Kind: InputSelect, Options: RatingOptions})
	}

	return &Definition{
		Key:   KeySkills,
		Title: "Skills",
		Schema: &schema.Schema{
			Step:   KeySkills,
			Fields: fields,
			Lists: []schema.List{
				{
					Name: "skillSets",
					Element: []schema.Field{
						{Name: "skillSet", MinLength: 2},
						{Name: "level", MinLength: 2},
					},
				},
			},
		},
		Inputs: inputs,
		Lists: []ListLayout{
			{
				Name:  "skillSets",
				Label: "Skill set",
				Inputs: []Input{
					{Path: "skillSet", Label: "Skill set", Kind: InputText},
					{Path: "level", Label: "Level", Kind: InputText},
				},
			},
		},
		defaults: func() models.Record {
			rec := models.Record{
				"languagesSpoken":  []interface{}{},
				"coreCompetencies": []interface{}{},
				"skillSets":        []interface{}{},
			}
			for _, r := range ratingFields {
				rec[r.name] = ""
			}
			return rec
		},
	}
}
