package dataset_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/job-radar/internal/dataset"
	domainerrors "github.com/DeafMist/job-radar/internal/errors"
	"github.com/DeafMist/job-radar/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadJobsEnvelopeAndArray(t *testing.T) {
	envelope := writeFile(t, "jobs.json", `{"jobs": [{"name": "QA Engineer", "link_job": "https://x/1"}]}`)
	jobs, err := dataset.ReadJobs(envelope)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	require.Equal(t, models.Text("QA Engineer"), jobs[0].Name)

	array := writeFile(t, "array.json", "\xEF\xBB\xBF"+`[{"name": "A"}, {"name": "B"}]`)
	jobs, err = dataset.ReadJobs(array)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
}

func TestReadInputErrorsAreFatal(t *testing.T) {
	_, err := dataset.ReadJobs(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	require.True(t, domainerrors.IsType(err, domainerrors.ErrTypeNotFound))
	require.True(t, domainerrors.IsFatal(err))

	broken := writeFile(t, "broken.json", `{"jobs": [`)
	_, err = dataset.ReadRecords(broken)
	require.Error(t, err)
	require.True(t, domainerrors.IsType(err, domainerrors.ErrTypeInvalidInput))
}

func TestReadRecordsAndDecode(t *testing.T) {
	path := writeFile(t, "summaries.json", `[{"name": "Data Analyst", "location": ["Hà Nội"], "extra": 1}]`)
	records, err := dataset.ReadRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec, err := dataset.Decode[models.SummaryRecord](records[0])
	require.NoError(t, err)
	require.Equal(t, "Data Analyst", rec.Name)
	require.Equal(t, models.Lines{"Hà Nội"}, rec.Location)
}

func TestWriteAllProducesThreeArtifacts(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out", "jobs_with_llm.csv")
	industry := "IT"
	rows := []models.MergedRecord{
		{Name: "Backend <Go>", Industry: &industry, CoreSkills: []string{"Go"}},
		{Name: "Kế toán"},
	}

	paths, err := dataset.WriteAll(root, models.MergedColumns, rows)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	require.Equal(t, filepath.Ext(paths[0]), ".json")
	require.Equal(t, filepath.Ext(paths[2]), ".parquet")

	raw, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	require.Contains(t, string(raw), "Backend <Go>")
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 2)

	csvData, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(csvData, []byte{0xEF, 0xBB, 0xBF}))
	lines, err := csv.NewReader(bytes.NewReader(csvData[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, lines, 3)
	require.Equal(t, models.MergedColumns, lines[0])
	require.Equal(t, "Kế toán", lines[2][0])

	info, err := os.Stat(paths[2])
	require.NoError(t, err)
	require.Positive(t, info.Size())
}

func TestWithSuffix(t *testing.T) {
	require.Equal(t, "out/jobs.csv", dataset.WithSuffix("out/jobs", ".csv"))
	require.Equal(t, "out/jobs.parquet", dataset.WithSuffix("out/jobs.csv", ".parquet"))
}

func TestReadAsDecodesSummaries(t *testing.T) {
	path := writeFile(t, "summaries.json", `[{"name": "Kế toán", "company": "ABC", "location": ["Hà Nội"], "summary": "- ghi sổ"}]`)
	got, err := dataset.ReadAs[models.SummaryRecord](path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Kế toán", got[0].Name)
	require.Equal(t, models.Lines{"Hà Nội"}, got[0].Location)

	bad := writeFile(t, "bad.json", `[{"name": {"vi": "Kế toán"}}]`)
	_, err = dataset.ReadAs[models.SummaryRecord](bad)
	require.True(t, domainerrors.IsType(err, domainerrors.ErrTypeInvalidInput))
}

func TestReadAsToleratesStringOrListShapes(t *testing.T) {
	path := writeFile(t, "summaries.json", `[
		{"name": "Kế toán", "location": "Hà Nội", "skills": ["Excel", "SAP"]},
		{"name": "Tester", "location": ["Quận 1", "Thủ Đức"], "skills": "Selenium, Postman"},
		{"name": "Driver", "location": null, "skills": null}
	]`)

	got, err := dataset.ReadAs[models.SummaryRecord](path)
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.Equal(t, models.Lines{"Hà Nội"}, got[0].Location)
	require.Equal(t, models.Text("Excel, SAP"), got[0].Skills)
	require.Equal(t, models.Lines{"Quận 1", "Thủ Đức"}, got[1].Location)
	require.Equal(t, models.Text("Selenium, Postman"), got[1].Skills)
	require.Empty(t, got[2].Location)
	require.Empty(t, got[2].Skills)
}
