package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeRejected_AdoptsFirstBatch(t *testing.T) {
	batch := NewDataset(Column{Name: "id", Type: FieldInt}, Column{Name: "title"})
	batch.Rows = []Row{{Index: 3, Values: []Value{Int(4), Text("")}}}

	got := MergeRejected(NewRejectedSet(), batch)

	want := &Dataset{
		Columns: []Column{{Name: "id", Type: FieldInt}, {Name: "title"}},
		Rows:    []Row{{Index: 3, Values: []Value{Int(4), Text("")}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MergeRejected() mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeRejected_UnionOfColumns(t *testing.T) {
	rejected := NewDataset(Column{Name: "id", Type: FieldInt}, Column{Name: "title"})
	rejected.Rows = []Row{
		{Index: 1, Values: []Value{Int(2), Text("  ")}},
		{Index: 4, Values: []Value{Int(5), Text("")}},
	}

	batch := NewDataset(Column{Name: "title"}, Column{Name: "journal"}, Column{Name: "id", Type: FieldInt})
	batch.Rows = []Row{{Index: 0, Values: []Value{Text("t"), Text("j"), Null()}}}

	got := MergeRejected(rejected, batch)

	want := &Dataset{
		Columns: []Column{
			{Name: "id", Type: FieldInt, Nullable: true},
			{Name: "title"},
			{Name: "journal", Nullable: true},
		},
		Rows: []Row{
			{Index: 1, Values: []Value{Int(2), Text("  "), Null()}},
			{Index: 4, Values: []Value{Int(5), Text(""), Null()}},
			{Index: 0, Values: []Value{Null(), Text("t"), Text("j")}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MergeRejected() mismatch (-want +got):\n%s", diff)
	}

	// Arguments untouched
	if len(rejected.Columns) != 2 || rejected.Len() != 2 {
		t.Errorf("rejected modified: %+v", rejected)
	}
}

func TestMergeRejected_EmptyBatch(t *testing.T) {
	rejected := NewDataset(Column{Name: "id"})
	rejected.AppendRow(Text("1"))

	if got := MergeRejected(rejected, NewDataset(Column{Name: "other"})); got != rejected {
		t.Error("empty batch should return the RejectedSet unchanged")
	}
	if got := MergeRejected(rejected, nil); got != rejected {
		t.Error("nil batch should return the RejectedSet unchanged")
	}
	if got := MergeRejected(nil, nil); got == nil || !got.Empty() {
		t.Error("nil RejectedSet should become an empty one")
	}
}
