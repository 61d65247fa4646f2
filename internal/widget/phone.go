package widget

import (
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"
)

// DefaultCountryCode is the calling code assumed for national numbers.
const DefaultCountryCode = "+40"

// PhoneInput strips formatting and commits numbers as +<country><national>.
type PhoneInput struct {
	CountryCode string
	OnCommit    Commit

	value string
}

func NewPhoneInput(onCommit Commit) *PhoneInput {
	return &PhoneInput{CountryCode: DefaultCountryCode, OnCommit: onCommit}
}

func (p *PhoneInput) Value() string { return p.value }

func (p *PhoneInput) Enter(s string) error {
	if strings.TrimSpace(s) == "" {
		p.value = ""
		return commit(p.OnCommit, "")
	}
	normalized, err := NormalizePhone(s, p.CountryCode)
	if err != nil {
		return err
	}
	p.value = normalized
	return commit(p.OnCommit, normalized)
}

// NormalizePhone removes spaces, dashes, dots and parentheses and adds the
// calling code to national numbers. A leading 00 is read as +.
func NormalizePhone(s, countryCode string) (string, error) {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(s))

	switch {
	case strings.HasPrefix(cleaned, "+"):
		cleaned = cleaned[1:]
	case strings.HasPrefix(cleaned, "00"):
		cleaned = cleaned[2:]
	default:
		cleaned = strings.TrimPrefix(countryCode, "+") + strings.TrimPrefix(cleaned, "0")
	}

	if cleaned == "" || !govalidator.IsNumeric(cleaned) || len(cleaned) > 15 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, s)
	}
	return "+" + cleaned, nil
}
