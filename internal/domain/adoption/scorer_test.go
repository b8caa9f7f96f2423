package adoption

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cat-adoption/internal/ml/forest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClassifier devuelve siempre p y registra el último vector.
type fixedClassifier struct {
	n    int
	p    float64
	last []float64
}

func (c *fixedClassifier) NumFeatures() int { return c.n }

func (c *fixedClassifier) PredictProba(vec []float64) float64 {
	c.last = vec
	return c.p
}

func TestScorer_EncodeAndScore(t *testing.T) {
	s := mustSchema(t, "age_days", "gender_Male")
	clf := &fixedClassifier{n: 2, p: 0.123456}

	sc, err := NewScorer(s, clf)
	require.NoError(t, err)

	got, err := sc.EncodeAndScore(RawCatInput{AgeDays: "3", Gender: "Male"})
	require.NoError(t, err)
	assert.Equal(t, 12.35, got)
	assert.Equal(t, []float64{3, 1}, clf.last)
}

func TestScorer_ValidationErrorPropagates(t *testing.T) {
	sc, err := NewScorer(mustSchema(t, "age_days"), &fixedClassifier{n: 1, p: 0.5})
	require.NoError(t, err)

	_, err = sc.EncodeAndScore(RawCatInput{AgeDays: "old"})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestScorer_RangeAlwaysPercentage(t *testing.T) {
	s := mustSchema(t, "age_days")
	for _, p := range []float64{-0.2, 0, 0.5, 0.99999, 1, 1.7} {
		sc, err := NewScorer(s, &fixedClassifier{n: 1, p: p})
		require.NoError(t, err)

		got, err := sc.EncodeAndScore(RawCatInput{AgeDays: "1"})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}

func TestToPercentage(t *testing.T) {
	assert.Equal(t, 0.0, ToPercentage(0))
	assert.Equal(t, 100.0, ToPercentage(1))
	assert.Equal(t, 66.67, ToPercentage(2.0/3.0))
}

func TestNewScorer_RejectsFeatureCountMismatch(t *testing.T) {
	_, err := NewScorer(mustSchema(t, "age_days", "gender_Male"), &fixedClassifier{n: 3})

	var lerr *SchemaLoadError
	assert.True(t, errors.As(err, &lerr))
}

func TestLoadClassifier_ForestArtifact(t *testing.T) {
	f, err := forest.New(2, []forest.Tree{{Nodes: []forest.Node{
		{Feature: 1, Threshold: 0.5, Left: 1, Right: 2},
		{Feature: -1, Value: 0.25},
		{Feature: -1, Value: 0.75},
	}}})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, f.SaveFile(path))

	clf, err := LoadClassifier(path)
	require.NoError(t, err)

	sc, err := NewScorer(mustSchema(t, "age_days", "gender_Male"), clf)
	require.NoError(t, err)

	male, err := sc.EncodeAndScore(RawCatInput{AgeDays: "10", Gender: "Male"})
	require.NoError(t, err)
	female, err := sc.EncodeAndScore(RawCatInput{AgeDays: "10", Gender: "Female"})
	require.NoError(t, err)

	assert.Equal(t, 75.0, male)
	assert.Equal(t, 25.0, female)
}

func TestNewScorer_ChecksColumnOrder(t *testing.T) {
	f, err := forest.New(2, []forest.Tree{{Nodes: []forest.Node{{Feature: -1, Value: 0.5}}}})
	require.NoError(t, err)
	require.NoError(t, f.SetColumns([]string{"gender_Male", "age_days"}))

	_, err = NewScorer(mustSchema(t, "age_days", "gender_Male"), f)
	var lerr *SchemaLoadError
	require.True(t, errors.As(err, &lerr))
	assert.Contains(t, err.Error(), `"gender_Male"`)

	_, err = NewScorer(mustSchema(t, "gender_Male", "age_days"), f)
	assert.NoError(t, err)
}

func TestLoadClassifier_MissingOrCorrupt(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadClassifier(filepath.Join(dir, "nope.json"))
	var lerr *SchemaLoadError
	assert.True(t, errors.As(err, &lerr))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0o644))
	_, err = LoadClassifier(bad)
	assert.True(t, errors.As(err, &lerr))
}
