package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cat-adoption/internal/domain/adoption"
	"cat-adoption/internal/ml/forest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir string, n int) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("animal_type,outcome_type,age_upon_outcome_(days),breed,color,sex_upon_outcome,intake_type,intake_condition\n")
	for i := 0; i < n; i++ {
		outcome, sex := "Transfer", "Intact Male"
		if i%2 == 0 {
			outcome, sex = "Adoption", "Neutered Male"
		}
		fmt.Fprintf(&b, "Cat,%s,%d,Domestic Shorthair Mix,Black/White,%s,Stray,Normal\n", outcome, 30+i, sex)
	}
	// no gato: se filtra
	b.WriteString("Dog,Adoption,100,Labrador,Black,Neutered Male,Stray,Normal\n")

	path := filepath.Join(dir, "intakes.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestTrainCommand_WritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	data := writeCSV(t, dir, 40)
	modelOut := filepath.Join(dir, "out", "model.json")
	schemaOut := filepath.Join(dir, "out", "schema.json")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--data", data,
		"--model-out", modelOut,
		"--schema-out", schemaOut,
		"--trees", "5",
		"--workers", "2",
		"--log-level", "error",
	})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "1 (adopted)")

	schema, err := adoption.LoadSchema(schemaOut)
	require.NoError(t, err)
	assert.Equal(t, adoption.FieldAgeDays, schema.Columns()[0])
	assert.GreaterOrEqual(t, schema.Index("sterilized_Yes"), 0)

	f, err := forest.LoadFile(modelOut)
	require.NoError(t, err)
	assert.Equal(t, 5, f.NumTrees())
	assert.Equal(t, schema.Len(), f.NumFeatures())
}

func TestTrainCommand_RequiresData(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}

func TestTrainCommand_RejectsBadTestSize(t *testing.T) {
	dir := t.TempDir()
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--data", writeCSV(t, dir, 10), "--test-size", "1.5", "--log-level", "error"})
	assert.Error(t, cmd.Execute())
}
