package engine

import (
	"fmt"
	"io"

	"techcensus/internal/models"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

const ArrowStreamMIME = "application/vnd.apache.arrow.stream"

func resultSchema(res models.ViewResult) *arrow.Schema {
	kind := ""
	if res.Chart != nil {
		kind = string(res.Chart.Kind)
	}
	md := arrow.NewMetadata([]string{"view", "chart_kind"}, []string{res.View, kind})

	return arrow.NewSchema([]arrow.Field{
		{Name: "category", Type: arrow.BinaryTypes.String},
		{Name: "series", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "value", Type: arrow.PrimitiveTypes.Int64},
		{Name: "percent", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	}, &md)
}

// WriteArrow writes res as a single record batch in the Arrow IPC stream format.
func WriteArrow(w io.Writer, res models.ViewResult) error {
	mem := memory.NewGoAllocator()
	schema := resultSchema(res)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	cats := b.Field(0).(*array.StringBuilder)
	series := b.Field(1).(*array.StringBuilder)
	values := b.Field(2).(*array.Int64Builder)
	pcts := b.Field(3).(*array.Float64Builder)

	for _, r := range res.Rows {
		cats.Append(r.Category)
		if r.Series == "" {
			series.AppendNull()
		} else {
			series.Append(r.Series)
		}
		values.Append(r.Value)
		if r.Percent == nil {
			pcts.AppendNull()
		} else {
			pcts.Append(*r.Percent)
		}
	}

	rec := b.NewRecord()
	defer rec.Release()

	iw := ipc.NewWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err := iw.Write(rec); err != nil {
		iw.Close()
		return fmt.Errorf("write arrow batch: %w", err)
	}
	if err := iw.Close(); err != nil {
		return fmt.Errorf("close arrow stream: %w", err)
	}
	return nil
}
