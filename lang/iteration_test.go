package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleUser() *UserRecord {
	visits := NewOrderedMap[string, Visit]()
	visits.Set("v1", Visit{ID: "v1", Browser: "chrome", Timestamp: "2024-01-01T00:00:00Z"})
	visits.Set("v2", Visit{ID: "v2", Browser: "firefox", Timestamp: "2024-02-01T00:00:00Z"})
	visits.Set("v3", Visit{ID: "v3", Browser: "chrome", Timestamp: "2024-03-01T00:00:00Z"})

	return &UserRecord{
		Profile: Profile{Demographics: map[string]any{"country": "US"}},
		Visits:  visits,
		Events: OrderedSequence[Event]{
			{EventName: "purchase", Timestamp: "2024-01-10T00:00:00Z", Parameters: map[string]any{"amount": 10.0}},
			{EventName: "view", Timestamp: "2024-02-10T00:00:00Z", Parameters: map[string]any{"amount": 5.0}},
			{EventName: "purchase", Timestamp: "2024-03-10T00:00:00Z", Parameters: map[string]any{"amount": 20.0}},
		},
	}
}

func TestIterationIfFiltersEvents(t *testing.T) {
	cat := DefaultCatalog()
	ctx := NewEvalContext(sampleUser(), NewCompiler(cat))

	v := execText(t, cat, ctx, `IF("EQ(EVENT(\"event_name\"), \"purchase\")")`)

	seq, ok := v.(OrderedSequence[Event])
	require.True(t, ok)
	assert.Len(t, seq, 2)
}

func TestIterationWhereFiltersVisits(t *testing.T) {
	cat := DefaultCatalog()
	ctx := NewEvalContext(sampleUser(), NewCompiler(cat))

	v := execText(t, cat, ctx, `WHERE(VISITS(), "EQ(VISIT(\"browser\"), \"chrome\")")`)

	seq, ok := v.(OrderedSequence[Visit])
	require.True(t, ok)
	assert.Len(t, seq, 2)
}

func TestIterationByMapsOverEvents(t *testing.T) {
	cat := DefaultCatalog()
	ctx := NewEvalContext(sampleUser(), NewCompiler(cat))

	v := execText(t, cat, ctx, `BY("TO_NUMBER(PARAM(\"amount\"))")`)

	out, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, out, 3)
	assert.Equal(t, 10.0, out[0])
	assert.Equal(t, 5.0, out[1])
	assert.Equal(t, 20.0, out[2])
}

func TestIterationFromToNarrowsWindow(t *testing.T) {
	cat := DefaultCatalog()
	ctx := NewEvalContext(sampleUser(), NewCompiler(cat))

	v := execText(t, cat, ctx, `AND(FROM("2024-02-01T00:00:00Z"), TO("2024-03-01T00:00:00Z"))`)
	assert.Equal(t, true, v)
	require.NotNil(t, ctx.TimeRange)
	assert.True(t, ctx.TimeRange.HasFrom)
	assert.True(t, ctx.TimeRange.HasTo)

	events := execText(t, cat, ctx, `IF("EQ(1, 1)")`)
	seq, ok := events.(OrderedSequence[Event])
	require.True(t, ok)
	assert.Len(t, seq, 1) // only the "view" event on 2024-02-10 is in [Feb 1, Mar 1)
}

func TestIterationDoesNotMutateParentContext(t *testing.T) {
	cat := DefaultCatalog()
	parent := NewEvalContext(sampleUser(), NewCompiler(cat))

	compiled, err := Compile(cat, `WHERE(VISITS(), "EQ(VISIT(\"browser\"), \"firefox\")")`)
	require.Nil(t, err)

	_, eerr := compiled.Execute(parent)
	require.Nil(t, eerr)

	assert.Nil(t, parent.CurrentVisit, "evaluating WHERE must never install a visit into the parent context")
}

func TestTopReturnsMostFrequent(t *testing.T) {
	cat := DefaultCatalog()
	ctx := NewEvalContext(sampleUser(), NewCompiler(cat))

	v := execText(t, cat, ctx, `TOP(VISITS(), "browser")`)
	assert.Equal(t, "chrome", v)
}

func TestTopReturnsNValues(t *testing.T) {
	cat := DefaultCatalog()
	ctx := NewEvalContext(sampleUser(), NewCompiler(cat))

	v := execText(t, cat, ctx, `TOP(VISITS(), "browser", 2)`)
	out, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, out, 2)
	assert.Equal(t, "chrome", out[0])
	assert.Equal(t, "firefox", out[1])
}

func TestTopOnNullCollectionReturnsNull(t *testing.T) {
	cat := DefaultCatalog()
	ctx := NewEvalContext(sampleUser(), NewCompiler(cat))

	v := execText(t, cat, ctx, `TOP(null, "browser")`)
	assert.Nil(t, v)
}

func TestTopOnNullCollectionWithCountReturnsNull(t *testing.T) {
	cat := DefaultCatalog()
	ctx := NewEvalContext(sampleUser(), NewCompiler(cat))

	v := execText(t, cat, ctx, `TOP(null, "browser", 2)`)
	assert.Nil(t, v)
}

func TestInTimeRangeUnparseableNeverExcludes(t *testing.T) {
	tr := TimeRange{HasFrom: true, HasTo: true}
	assert.True(t, inTimeRange(tr, "not-a-timestamp"))
	assert.True(t, inTimeRange(tr, ""))
}
