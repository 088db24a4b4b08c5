package csvout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QiangyuLi/AmeriFlux-BASE-Data-Processing/domain/bif"
)

func TestWriter_WritesHeaderAndRecords(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	table := bif.OutputTable{
		Category: "GRP_HEIGHT",
		Columns:  []string{"GROUP_ID", "HEIGHT_DATE", "HEIGHT"},
		Records: []bif.WideRecord{
			{"GROUP_ID": "1", "HEIGHT_DATE": "2019-04-02", "HEIGHT": "1.2"},
			{"GROUP_ID": "2", "HEIGHT": "0.8"}, // no date observed
		},
	}

	path, err := w.WriteTable(table)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "GRP_HEIGHT.csv"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"GROUP_ID,HEIGHT_DATE,HEIGHT\n1,2019-04-02,1.2\n2,,0.8\n",
		string(content))
}

func TestWriter_EmptyTableStillWritesHeader(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	path, err := w.WriteTable(bif.OutputTable{
		Category: "GRP_EMPTY",
		Columns:  []string{"GROUP_ID"},
	})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "GROUP_ID\n", string(content))
}

func TestWriter_CreatesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")

	_, err := NewWriter(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileName_SanitizesCategory(t *testing.T) {
	assert.Equal(t, "GRP_HEIGHT.csv", FileName("GRP_HEIGHT"))
	assert.Equal(t, "GRP_A_B.csv", FileName("GRP_A/B"))
	assert.Equal(t, "GRP_A_B.csv", FileName("GRP_A\\B"))
	assert.Equal(t, "_.csv", FileName(""))
}
