package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureCSV = "SITE_ID,GROUP_ID,VARIABLE_GROUP,VARIABLE,DATAVALUE\n" +
	"US-Ne1,3,GRP_HEIGHT,HEIGHT_DATE,2019-04-02\n" +
	"US-Ne1,3,GRP_HEIGHT,HEIGHT,1.2\n" +
	"US-Ne1,1,GRP_HEIGHT,HEIGHT,0.8\n" +
	"US-Ne1,1,GRP_LAI,LAI,3.4\n" +
	"US-Ne1,2,GRP_HEIGHT,HEIGHT,1.0\n"

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bif.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixtureCSV), 0o644))
	return path
}

func TestPipeline_RunEndToEnd(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	p := NewPipeline(writeFixture(t), "AMF-BIF", outDir)

	result, err := p.Run()
	require.NoError(t, err)

	assert.Equal(t, 5, result.RowCount)
	assert.Equal(t, []string{"GRP_HEIGHT", "GRP_LAI"}, result.Categories)
	assert.Equal(t, []string{"US-Ne1"}, result.SiteIDs)
	require.Len(t, result.Files, 2)

	// Numeric group order, date column blank where unobserved.
	content, err := os.ReadFile(filepath.Join(outDir, "GRP_HEIGHT.csv"))
	require.NoError(t, err)
	assert.Equal(t,
		"GROUP_ID,HEIGHT_DATE,HEIGHT\n1,,0.8\n2,,1.0\n3,2019-04-02,1.2\n",
		string(content))

	content, err = os.ReadFile(filepath.Join(outDir, "GRP_LAI.csv"))
	require.NoError(t, err)
	assert.Equal(t, "GROUP_ID,LAI\n1,3.4\n", string(content))
}

func TestPipeline_RunTwiceIsByteIdentical(t *testing.T) {
	input := writeFixture(t)
	outA := filepath.Join(t.TempDir(), "a")
	outB := filepath.Join(t.TempDir(), "b")

	_, err := NewPipeline(input, "AMF-BIF", outA).Run()
	require.NoError(t, err)
	_, err = NewPipeline(input, "AMF-BIF", outB).Run()
	require.NoError(t, err)

	for _, name := range []string{"GRP_HEIGHT.csv", "GRP_LAI.csv"} {
		a, err := os.ReadFile(filepath.Join(outA, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(outB, name))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), name)
	}
}

func TestPipeline_Tables(t *testing.T) {
	p := NewPipeline(writeFixture(t), "AMF-BIF", t.TempDir())

	tables, err := p.Tables()
	require.NoError(t, err)

	require.Len(t, tables, 2)
	assert.Equal(t, "GRP_HEIGHT", tables[0].Category)
	assert.Len(t, tables[0].Records, 3)
}

func TestPipeline_MissingInput(t *testing.T) {
	p := NewPipeline(filepath.Join(t.TempDir(), "missing.csv"), "AMF-BIF", t.TempDir())

	_, err := p.Run()
	require.Error(t, err)
}
