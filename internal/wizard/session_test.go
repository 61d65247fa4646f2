package wizard

import (
	"context"
	"errors"
	"testing"

	"apply-wizard/internal/common/logger"
	"apply-wizard/internal/form"
	"apply-wizard/internal/steps"
	"apply-wizard/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) (*Session, *storage.LocalStore) {
	t.Helper()
	store := storage.NewLocalStore(storage.NewMemoryBackend(), storage.WithNamespace("test"))
	require.NoError(t, store.Open(context.Background()))
	return NewSession(store, WithLogger(logger.NewTestLogger(t))), store
}

func fillAndSubmit(t *testing.T, c *form.Controller, values map[string]interface{}) bool {
	t.Helper()
	for path, v := range values {
		require.NoError(t, c.UpdateField(path, v))
	}
	ok, err := c.Submit(context.Background())
	require.NoError(t, err)
	return ok
}

var (
	personal = map[string]interface{}{
		"firstName": "Ana", "lastName": "Popescu", "age": "29", "gender": "female",
		"email": "ana@example.com", "phone": "+40712345678", "country": "romania",
		"city": "timisoara", "dateOfBirth": "1995-04-12", "street": "Strada Mare 1",
	}
	history = map[string]interface{}{
		"education": "college", "reasonLeavingPreviousJob": "smallSalary", "employmentStatus": "employed",
	}
	skills = map[string]interface{}{
		"projectManager": "3", "communications": "4", "technicalSkills": "5",
		"leadership": "2", "problemSolving": "4",
	}
)

func TestSession_WalkThrough(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()

	c, err := s.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, steps.KeyPersonalInfo, c.Step().Key)
	require.True(t, fillAndSubmit(t, c, personal))

	assert.Equal(t, "/apply/additional-info", s.Step().Route)
	c, err = s.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, c, "additional info has no form")
	require.NoError(t, s.Select(2))

	c, err = s.Current(ctx)
	require.NoError(t, err)
	require.True(t, fillAndSubmit(t, c, history))
	assert.Equal(t, "/apply/skills", s.Step().Route)

	c, err = s.Current(ctx)
	require.NoError(t, err)
	require.True(t, fillAndSubmit(t, c, skills))
	assert.Equal(t, "/apply/review", s.Step().Route)

	ok, failing, err := s.Complete(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, failing)

	app, err := s.Application(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", app.PersonalInfo.FirstName)
	assert.Equal(t, "college", app.History.Education)
	assert.Equal(t, "5", app.Skills.TechnicalSkills)
}

func TestSession_ReturningToAStepReloadsIt(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()

	c, err := s.Current(ctx)
	require.NoError(t, err)
	require.True(t, fillAndSubmit(t, c, personal))

	require.NoError(t, s.SelectRoute("/apply/personal-info"))
	again, err := s.Current(ctx)
	require.NoError(t, err)
	assert.NotSame(t, c, again)
	assert.Equal(t, form.StateReady, again.State())
	assert.Equal(t, "Ana", again.Record().String("firstName"))
}

func TestSession_CompleteReportsFailingSteps(t *testing.T) {
	s, _ := newSession(t)
	ctx := context.Background()

	c, err := s.Current(ctx)
	require.NoError(t, err)
	require.True(t, fillAndSubmit(t, c, personal))

	ok, failing, err := s.Complete(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NotContains(t, failing, steps.KeyPersonalInfo)
	assert.Contains(t, failing, steps.KeyHistory)
	assert.Contains(t, failing, steps.KeySkills)

	records, err := s.Review(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Empty(t, records[steps.KeySkills])
}

func TestSession_StoreNotReady(t *testing.T) {
	store := storage.NewLocalStore(storage.NewMemoryBackend())
	s := NewSession(store)
	ctx := context.Background()

	c, err := s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, form.StateLoading, c.State())

	_, err = s.Review(ctx)
	assert.True(t, errors.Is(err, storage.ErrNotReady))

	require.NoError(t, store.Open(ctx))
	c, err = s.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, form.StateReady, c.State())
}

func TestSession_SelectOutOfRange(t *testing.T) {
	s, _ := newSession(t)
	assert.Error(t, s.Select(9))
	assert.Error(t, s.SelectRoute("/nope"))
	assert.Equal(t, 0, s.Navigator().Current())
}
