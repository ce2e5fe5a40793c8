package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var searchSpec = MetricSpec{
	Fields: []Field{
		{Name: "clicks"},
		{Name: "impressions"},
		{Name: "position", Op: OpAverage},
	},
	Derived: []Derived{
		RatioOf("ctr", "clicks", "impressions", 100),
	},
}

func positions(values ...float64) []Record {
	records := make([]Record, 0, len(values))
	for _, v := range values {
		records = append(records, record(map[string]string{"query": "q"}, Values{"position": v, "clicks": 1, "impressions": 10}))
	}
	return records
}

func TestAggregateGroups_Sum(t *testing.T) {
	grouped := map[GroupKey][]Record{
		"a": {
			record(nil, Values{"clicks": 5, "impressions": 100}),
			record(nil, Values{"clicks": 15, "impressions": 100}),
		},
	}

	agg := AggregateGroups(grouped, searchSpec)
	require.Contains(t, agg, "a")
	assert.Equal(t, 20.0, agg["a"]["clicks"])
	assert.Equal(t, 200.0, agg["a"]["impressions"])
	// CTR vem das somas, não da soma de CTRs
	assert.Equal(t, 10.0, agg["a"]["ctr"])
}

func TestAggregateGroups_Averaging(t *testing.T) {
	tests := []struct {
		name      string
		averaging Averaging
		values    []float64
		want      float64
	}{
		{name: "pairwise com dois registros é a média", averaging: AveragePairwise, values: []float64{2, 4}, want: 3},
		{name: "pairwise com três registros pesa o último", averaging: AveragePairwise, values: []float64{10, 20, 30}, want: 22.5},
		{name: "mean com três registros", averaging: AverageMean, values: []float64{10, 20, 30}, want: 20},
		{name: "registro único", averaging: AveragePairwise, values: []float64{7}, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := searchSpec
			spec.Averaging = tt.averaging

			agg := AggregateGroups(map[GroupKey][]Record{"q": positions(tt.values...)}, spec)
			assert.InDelta(t, tt.want, agg["q"]["position"], 1e-9)
		})
	}
}

func TestAggregateGroups_ZeroFill(t *testing.T) {
	grouped := map[GroupKey][]Record{
		"a": {record(nil, Values{})},
	}

	agg := AggregateGroups(grouped, searchSpec)
	for _, name := range []string{"clicks", "impressions", "position", "ctr"} {
		v, ok := agg["a"][name]
		assert.True(t, ok, name)
		assert.Equal(t, 0.0, v, name)
	}

	empty := searchSpec.Fold(nil)
	assert.Len(t, empty, 4)
	assert.Equal(t, 0.0, empty["ctr"])
}

func TestAggregate_Total(t *testing.T) {
	agg := Aggregate{
		"a": {"clicks": 10, "impressions": 100, "position": 2},
		"b": {"clicks": 30, "impressions": 100, "position": 4},
	}

	total := agg.Total(searchSpec)
	assert.Equal(t, 40.0, total["clicks"])
	assert.Equal(t, 200.0, total["impressions"])
	assert.Equal(t, 3.0, total["position"])
	assert.Equal(t, 20.0, total["ctr"])

	assert.Equal(t, 0.0, Aggregate{}.Total(searchSpec)["position"])
}

func TestAggregate_Total_AveragingMode(t *testing.T) {
	agg := Aggregate{
		"a": {"position": 2},
		"b": {"position": 4},
		"c": {"position": 8},
	}

	pairwise := searchSpec
	pairwise.Averaging = AveragePairwise
	// ((2 + 4) / 2 + 8) / 2, seguindo a ordem das chaves
	assert.Equal(t, 5.5, agg.Total(pairwise)["position"])

	mean := searchSpec
	mean.Averaging = AverageMean
	assert.InDelta(t, 14.0/3, agg.Total(mean)["position"], 1e-9)
}

func TestParseAveraging(t *testing.T) {
	mode, err := ParseAveraging("MEAN")
	require.NoError(t, err)
	assert.Equal(t, AverageMean, mode)

	mode, err = ParseAveraging("")
	require.NoError(t, err)
	assert.Equal(t, AveragePairwise, mode)

	_, err = ParseAveraging("median")
	assert.Error(t, err)
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 0.0, Ratio(5, 0, 100))
	assert.Equal(t, 5.0, Ratio(50, 1000, 100))
}
