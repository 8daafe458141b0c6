package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartTypeUnmarshalText(t *testing.T) {
	tests := []struct {
		in   string
		want ChartType
	}{
		{"column", Column},
		{"Bar", Bar},
		{" line ", Line},
		{"area", Area},
		{"area_stacked", AreaStacked},
		{"area-stacked", AreaStacked},
		{"AreaStacked", AreaStacked},
		{"pie", Pie},
	}
	for _, tt := range tests {
		var got ChartType
		require.NoError(t, got.UnmarshalText([]byte(tt.in)), tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	var ct ChartType
	assert.Error(t, ct.UnmarshalText([]byte("radar")))
}

func TestChartTypeString(t *testing.T) {
	assert.Equal(t, "area_stacked", AreaStacked.String())
	assert.Equal(t, "ChartType(42)", ChartType(42).String())

	_, err := ChartType(42).MarshalText()
	assert.Error(t, err)
}

func TestEnumIsValid(t *testing.T) {
	assert.True(t, Column.IsValid())
	assert.True(t, Pie.IsValid())
	assert.False(t, ChartType(42).IsValid())
	assert.False(t, ChartType(-1).IsValid())

	assert.True(t, MarkerAuto.IsValid())
	assert.True(t, MarkerTriangle.IsValid())
	assert.False(t, MarkerStyle(42).IsValid())
}

func TestMarkerStyleText(t *testing.T) {
	var m MarkerStyle
	require.NoError(t, m.UnmarshalText([]byte("Diamond")))
	assert.Equal(t, MarkerDiamond, m)
	assert.Error(t, m.UnmarshalText([]byte("star")))
	assert.Equal(t, "triangle", MarkerTriangle.String())
}

func TestSeriesSpecJSON(t *testing.T) {
	data, err := json.Marshal(SeriesSpec{Name: "Sales", ChartType: Line, Marker: MarkerCircle})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"chart_type":"line"`)
	assert.Contains(t, string(data), `"marker":"circle"`)
}

func TestChartSpecModes(t *testing.T) {
	combo := ChartSpec{Series: []SeriesSpec{
		{ChartType: Column},
		{ChartType: Line, Axis: Secondary},
	}}
	assert.False(t, combo.IsScatter())
	assert.True(t, combo.HasSecondary())
	assert.False(t, combo.PieOnly())

	pie := ChartSpec{Series: []SeriesSpec{{ChartType: Pie}}}
	assert.True(t, pie.PieOnly())
	assert.False(t, pie.HasSecondary())

	scatter := ChartSpec{ScatterSeries: []ScatterSeriesSpec{{Name: "p"}}}
	assert.True(t, scatter.IsScatter())
}
