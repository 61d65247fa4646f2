package widget

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sink struct {
	values map[string]interface{}
	err    error
}

func (s *sink) update(path string, value interface{}) error {
	if s.err != nil {
		return s.err
	}
	if s.values == nil {
		s.values = map[string]interface{}{}
	}
	s.values[path] = value
	return nil
}

func TestSelect(t *testing.T) {
	out := &sink{}
	sel := NewSelect([]string{"male", "female"}, "selectGender", Bind(out.update, "gender"))

	require.NoError(t, sel.Choose("female"))
	assert.Equal(t, "female", out.values["gender"])
	assert.Equal(t, "female", sel.Value())

	err := sel.Choose("robot")
	assert.True(t, errors.Is(err, ErrUnknownOption))
	assert.Equal(t, "female", out.values["gender"], "rejected choice commits nothing")

	require.NoError(t, sel.Choose("selectGender"))
	assert.Equal(t, "", out.values["gender"])
}

func TestSelect_CommitErrorSurfaces(t *testing.T) {
	out := &sink{err: errors.New("not ready")}
	sel := NewSelect([]string{"a"}, "", Bind(out.update, "x"))
	assert.Error(t, sel.Choose("a"))
}

func TestMultiSelect(t *testing.T) {
	out := &sink{}
	ms := NewMultiSelect([]string{"Romanian", "English", "German"}, Bind(out.update, "languagesSpoken"))

	ms.Open()
	assert.True(t, ms.IsOpen())
	require.NoError(t, ms.Toggle("German"))
	require.NoError(t, ms.Toggle("Romanian"))
	assert.Nil(t, out.values["languagesSpoken"], "nothing committed while open")

	require.NoError(t, ms.Close())
	assert.False(t, ms.IsOpen())
	assert.Equal(t, []interface{}{"Romanian", "German"}, out.values["languagesSpoken"])

	require.NoError(t, ms.Toggle("German"))
	assert.Equal(t, []string{"Romanian"}, ms.Selected())
	assert.True(t, errors.Is(ms.Toggle("Klingon"), ErrUnknownOption))

	ms.Clear()
	require.NoError(t, ms.Commit())
	assert.Equal(t, []interface{}{}, out.values["languagesSpoken"])

	ms.Load([]interface{}{"English", "Klingon", 3})
	assert.Equal(t, []string{"English"}, ms.Selected())
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "2020-05-01", want: "2020-05-01", ok: true},
		{in: "01/05/2020", want: "2020-05-01", ok: true},
		{in: "2020-05-01T00:00:00.000Z", want: "2020-05-01", ok: true},
		{in: "1995-04-13T01:00:00+02:00", want: "1995-04-12", ok: true},
		{in: "yesterday", ok: false},
		{in: "2020-13-01", ok: false},
	}
	for _, tt := range tests {
		got, ok := NormalizeDate(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestDateInput(t *testing.T) {
	out := &sink{}
	d := NewDateInput(Bind(out.update, "dateOfBirth"))

	require.NoError(t, d.Enter("12/04/1995"))
	assert.Equal(t, "1995-04-12", out.values["dateOfBirth"])

	assert.True(t, errors.Is(d.Enter("soon"), ErrInvalidDate))
	assert.Equal(t, "1995-04-12", d.Value())

	require.NoError(t, d.Enter(""))
	assert.Equal(t, "", out.values["dateOfBirth"])
}

func TestPhoneInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "0712 345 678", want: "+40712345678"},
		{in: "712-345-678", want: "+40712345678"},
		{in: "+40 (712) 345.678", want: "+40712345678"},
		{in: "0049 30 1234567", want: "+49301234567"},
	}
	for _, tt := range tests {
		out := &sink{}
		p := NewPhoneInput(Bind(out.update, "phone"))
		require.NoError(t, p.Enter(tt.in), tt.in)
		assert.Equal(t, tt.want, out.values["phone"], tt.in)
	}

	p := NewPhoneInput(nil)
	assert.True(t, errors.Is(p.Enter("call me"), ErrInvalidPhone))

	p.CountryCode = "+49"
	require.NoError(t, p.Enter("030 1234567"))
	assert.Equal(t, "+49301234567", p.Value())
}
