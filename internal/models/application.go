// internal/models/application.go
package models

import (
	"encoding/json"
	"fmt"
)

// Application is the typed view of every step record, assembled for review.
type Application struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	History      History      `json:"historyInfo"`
	Skills       Skills       `json:"skills"`
}

type PersonalInfo struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Country     string `json:"country"`
	City        string `json:"city"`
	DateOfBirth string `json:"dateOfBirth"`
	Street      string `json:"street"`
}

type History struct {
	Education                        string                   `json:"education"`
	OtherEducation                   string                   `json:"otherEducation,omitempty"`
	ReasonLeavingPreviousJob         string                   `json:"reasonLeavingPreviousJob"`
	OtherReasonForLeavingPreviousJob string                   `json:"otherReasonForLeavingPreviousJob,omitempty"`
	EmploymentStatus                 string                   `json:"employmentStatus"`
	HasPreviousEmployers             bool                     `json:"hasPreviousEmployers"`
	PreviousEmployers                []PreviousEmployer       `json:"previousEmployers,omitempty"`
	HasEducationalInstitutions       bool                     `json:"hasEducationalInstitutions"`
	EducationalInstitutions          []EducationalInstitution `json:"educationalInstitutions,omitempty"`
}

type PreviousEmployer struct {
	EmployerName   string `json:"employerName"`
	JobTitle       string `json:"jobTitle"`
	Responsibility string `json:"responsibility,omitempty"`
}

type EducationalInstitution struct {
	EducationTitle string `json:"educationTitle"`
	GraduatedDate  string `json:"graduatedDate"`
}

type Skills struct {
	ProjectManager   string     `json:"projectManager"`
	Communications   string     `json:"communications"`
	TechnicalSkills  string     `json:"technicalSkills"`
	Leadership       string     `json:"leadership"`
	ProblemSolving   string     `json:"problemSolving"`
	SkillSets        []SkillSet `json:"skillSets,omitempty"`
	LanguagesSpoken  []string   `json:"languagesSpoken,omitempty"`
	CoreCompetencies []string   `json:"coreCompetencies,omitempty"`
}

type SkillSet struct {
	SkillSet string `json:"skillSet"`
	Level    string `json:"level"`
}

// DecodeInto converts a loosely typed record into one of the typed step
// views above.
func DecodeInto(rec Record, out interface{}) error {
	data, err := rec.Encode()
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// AssembleApplication builds the typed application from the stored step
// records keyed by storage key.
func AssembleApplication(records map[string]Record) (*Application, error) {
	var app Application
	targets := map[string]interface{}{
		"personalInfo": &app.PersonalInfo,
		"historyInfo":  &app.History,
		"skills":       &app.Skills,
	}
	for key, target := range targets {
		rec, ok := records[key]
		if !ok {
			continue
		}
		if err := DecodeInto(rec, target); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
	}
	return &app, nil
}
