package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/campusgen/internal/activity"
	"github.com/roach88/campusgen/internal/testutil"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func render(s Summary) []byte {
	buf := &bytes.Buffer{}
	WriteSummary(buf, s)
	WriteTypeCounts(buf, s)
	WriteHeat(buf, s)
	return buf.Bytes()
}

func TestSummarize_KnownInput(t *testing.T) {
	s := Summarize(testutil.Records(10, 50, 90))

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 3, s.DistinctTypes)
	assert.Equal(t, "2026-10-01", s.FirstDate)
	assert.Equal(t, "2026-10-03", s.LastDate)
	assert.Equal(t, "50.0", s.MeanHeat.StringFixed(1))
	assert.Equal(t, 600, s.TotalParticipants)
	assert.Equal(t, 10, s.MinHeat)
	assert.Equal(t, 90, s.MaxHeat)
	assert.True(t, s.MedianHeat.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, []TypeCount{
		{activity.TypeLecture, 1},
		{activity.TypePerformance, 1},
		{activity.TypeSports, 1},
	}, s.TypeCounts)
}

func TestSummarize_TypeCountsDescending(t *testing.T) {
	records := testutil.Records(1, 2, 3, 4, 5, 6, 7, 8, 9)
	// Types cycle every 7 records, so the first two types appear twice.
	records[2].Type = activity.TypeJobFair
	records[3].Type = activity.TypeJobFair

	s := Summarize(records)
	require.NotEmpty(t, s.TypeCounts)
	assert.Equal(t, TypeCount{activity.TypeJobFair, 3}, s.TypeCounts[0])
	assert.Equal(t, TypeCount{activity.TypeLecture, 2}, s.TypeCounts[1])
	assert.Equal(t, TypeCount{activity.TypePerformance, 2}, s.TypeCounts[2])

	total := 0
	for i, tc := range s.TypeCounts {
		total += tc.Count
		if i > 0 {
			assert.LessOrEqual(t, tc.Count, s.TypeCounts[i-1].Count)
		}
	}
	assert.Equal(t, len(records), total)
	assert.Equal(t, len(s.TypeCounts), s.DistinctTypes)
}

func TestSummarize_EvenMedian(t *testing.T) {
	s := Summarize(testutil.Records(10, 20, 31, 90))
	assert.Equal(t, "25.5", s.MedianHeat.String())
	assert.Equal(t, "37.8", s.MeanHeat.StringFixed(1))
}

func TestSummarize_MeanRounding(t *testing.T) {
	// 1+2+2 = 5, 5/3 = 1.666...
	s := Summarize(testutil.Records(1, 2, 2))
	assert.Equal(t, "1.7", s.MeanHeat.StringFixed(1))
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.True(t, s.Empty())
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.DistinctTypes)
	assert.NotNil(t, s.TypeCounts)
	assert.Empty(t, s.TypeCounts)
}

func TestRender_KnownInputGolden(t *testing.T) {
	newGoldie(t).Assert(t, "known_input", render(Summarize(testutil.Records(10, 50, 90))))
}

func TestRender_EmptyGolden(t *testing.T) {
	newGoldie(t).Assert(t, "empty", render(Summarize(nil)))
}

func TestWritePreview_Golden(t *testing.T) {
	buf := &bytes.Buffer{}
	WritePreview(buf, testutil.Records(10, 50, 90, 35), 3)
	newGoldie(t).Assert(t, "preview", buf.Bytes())
}

func TestWritePreview_HeaderOnlyWhenEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	WritePreview(buf, nil, 5)
	assert.Equal(t, "id  name  type  date  location  organizer  heat  participants\n", buf.String())
}

func TestPreview(t *testing.T) {
	records := testutil.Records(1, 2, 3)
	assert.Len(t, Preview(records, 5), 3)
	assert.Len(t, Preview(records, 2), 2)
	assert.Empty(t, Preview(records, 0))
	assert.Empty(t, Preview(records, -1))
}

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 4, displayWidth("heat"))
	assert.Equal(t, 8, displayWidth(string(activity.TypeLecture)))
	assert.Equal(t, 9, displayWidth("学术讲座1"))
}

func TestSummary_JSON(t *testing.T) {
	data, err := json.Marshal(Summarize(testutil.Records(10, 50, 90)))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, float64(3), got["total"])
	assert.Equal(t, float64(50), got["mean_heat"])
	assert.Equal(t, float64(600), got["total_participants"])
	assert.Equal(t, "2026-10-01", got["first_date"])

	heat, ok := got["heat"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(10), heat["min"])
	assert.Equal(t, float64(50), heat["median"])
	assert.Equal(t, float64(90), heat["max"])
	assert.Contains(t, string(data), `"mean_heat":50.0`)
}

func TestSummary_JSONEmpty(t *testing.T) {
	data, err := json.Marshal(Summarize(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":0,"distinct_types":0,"total_participants":0,"type_counts":[]}`, string(data))
}
