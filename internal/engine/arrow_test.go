package engine

import (
	"bytes"
	"testing"

	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteArrowRoundTrip(t *testing.T) {
	res := Compute(fixture(), string(SchoolsByDependency), nil)

	var buf bytes.Buffer
	require.NoError(t, WriteArrow(&buf, res))

	r, err := ipc.NewReader(&buf)
	require.NoError(t, err)
	defer r.Release()

	view, ok := r.Schema().Metadata().GetValue("view")
	require.True(t, ok)
	assert.Equal(t, string(SchoolsByDependency), view)

	require.True(t, r.Next())
	rec := r.Record()
	require.EqualValues(t, len(res.Rows), rec.NumRows())

	cats := rec.Column(0).(*array.String)
	series := rec.Column(1).(*array.String)
	values := rec.Column(2).(*array.Int64)
	pcts := rec.Column(3).(*array.Float64)
	for i, row := range res.Rows {
		assert.Equal(t, row.Category, cats.Value(i))
		assert.True(t, series.IsNull(i))
		assert.Equal(t, row.Value, values.Value(i))
		assert.InDelta(t, *row.Percent, pcts.Value(i), 1e-12)
	}
}

func TestWriteArrowSeriesAndEmpty(t *testing.T) {
	res := Compute(fixture(), string(TopCoursesByRegion), nil)

	var buf bytes.Buffer
	require.NoError(t, WriteArrow(&buf, res))

	r, err := ipc.NewReader(&buf)
	require.NoError(t, err)
	defer r.Release()
	require.True(t, r.Next())
	rec := r.Record()
	assert.Equal(t, res.Rows[0].Series, rec.Column(1).(*array.String).Value(0))
	assert.True(t, rec.Column(3).IsNull(0))

	buf.Reset()
	require.NoError(t, WriteArrow(&buf, Compute(fixture(), "bogus", nil)))
	r2, err := ipc.NewReader(&buf)
	require.NoError(t, err)
	defer r2.Release()
	require.True(t, r2.Next())
	assert.EqualValues(t, 0, r2.Record().NumRows())
}
