package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) Value {
	return Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

const pubmedSample = "id,title,date,journal\n" +
	"1,A 04-dimensional study,01/07/2021,Journal of emergency nursing\n" +
	",\"Comparison, of dosing\",1 July 2021,\n"

func pubmedOptions(policy NullableIntPolicy) LoadOptions {
	return LoadOptions{
		Fields:      []FieldSpec{{Name: "id", Type: FieldInt}, {Name: "title"}},
		DateColumns: []string{"date"},
		NullableInt: policy,
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"data/pubmed.csv", FormatDelimited, false},
		{"PUBMED.CSV", FormatDelimited, false},
		{"pubmed.json", FormatRecords, false},
		{"pubmed.xml", "", true},
		{"pubmed", "", true},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("FormatFromPath(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, %v; want %v", tt.path, got, err, tt.want)
		}
	}
}

func TestLoadDelimited_PromotesNullableInt(t *testing.T) {
	ds, err := LoadDelimited(strings.NewReader(pubmedSample), pubmedOptions(PromoteNullableInt))
	require.NoError(t, err)

	want := &Dataset{
		Columns: []Column{
			{Name: "id", Type: FieldFloat, Nullable: true},
			{Name: "title", Type: FieldText},
			{Name: "date", Type: FieldDate},
			{Name: "journal", Type: FieldText, Nullable: true},
		},
		Rows: []Row{
			{Index: 0, Values: []Value{Float(1), Text("A 04-dimensional study"), day(2021, 7, 1), Text("Journal of emergency nursing")}},
			{Index: 1, Values: []Value{Null(), Text("Comparison, of dosing"), day(2021, 7, 1), Null()}},
		},
	}
	if diff := cmp.Diff(want, ds); diff != "" {
		t.Errorf("LoadDelimited() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDelimited_KeepNullableInt(t *testing.T) {
	ds, err := LoadDelimited(strings.NewReader(pubmedSample), pubmedOptions(KeepNullableInt))
	require.NoError(t, err)

	assert.Equal(t, FieldInt, ds.Columns[0].Type)
	assert.True(t, ds.Columns[0].Nullable)
	assert.Equal(t, Int(1), ds.Rows[0].Values[0])
}

func TestLoadDelimited_WhitespaceIsNotNull(t *testing.T) {
	ds, err := LoadDelimited(strings.NewReader("id,title\n1,   \n"), LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, Text("   "), ds.Rows[0].Values[1])
	assert.False(t, ds.Columns[1].Nullable)
}

func TestLoadDelimited_BOM(t *testing.T) {
	ds, err := LoadDelimited(strings.NewReader("\ufeffid,title\n1,a\n"), LoadOptions{
		Fields: []FieldSpec{{Name: "id", Type: FieldInt}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "title"}, ds.ColumnNames())
}

func TestLoadDelimited_MixedDateForms(t *testing.T) {
	input := "id,date\n" +
		"1,01/07/2021\n" +
		"2,12/25/2021\n" +
		"3,2021-7-1\n" +
		"4,2021-07-01 10:30\n"

	ds, err := LoadDelimited(strings.NewReader(input), LoadOptions{
		Fields:      []FieldSpec{{Name: "id", Type: FieldInt}},
		DateColumns: []string{"date"},
	})
	require.NoError(t, err)

	want := []Value{
		day(2021, time.July, 1),
		day(2021, time.December, 25),
		day(2021, time.July, 1),
		Date(time.Date(2021, time.July, 1, 10, 30, 0, 0, time.UTC)),
	}
	if diff := cmp.Diff(want, ds.Column("date")); diff != "" {
		t.Errorf("date column mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDelimited_ExponentNumbers(t *testing.T) {
	ds, err := LoadDelimited(strings.NewReader("id,score\n1E2,1.5e3\n2,2.5E-2\n"), LoadOptions{
		Fields: []FieldSpec{{Name: "id", Type: FieldInt}, {Name: "score", Type: FieldFloat}},
	})
	require.NoError(t, err)

	assert.Equal(t, []Value{Int(100), Int(2)}, ds.Column("id"))
	assert.Equal(t, []Value{Float(1500), Float(0.025)}, ds.Column("score"))
}

func TestLoadDelimited_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		opts    LoadOptions
		wantErr error
		wantMsg string
	}{
		{
			name:    "empty file",
			input:   "",
			wantErr: ErrFormat,
		},
		{
			name:    "missing declared columns",
			input:   "id,title\n1,a\n",
			opts:    LoadOptions{Fields: []FieldSpec{{Name: "pmid"}}, DateColumns: []string{"date"}},
			wantErr: ErrMissingColumn,
			wantMsg: "pmid, date",
		},
		{
			name:    "duplicate header",
			input:   "id,id\n1,2\n",
			wantErr: ErrFormat,
		},
		{
			name:    "ragged row",
			input:   "id,title\n1,a,extra\n",
			wantErr: ErrFormat,
		},
		{
			name:    "bad date",
			input:   "id,date\n1,01/07/2021\n2,someday\n",
			opts:    LoadOptions{DateColumns: []string{"date"}},
			wantErr: ErrFormat,
			wantMsg: `line 3: date: invalid date "someday"`,
		},
		{
			name:    "bad integer",
			input:   "id\nabc\n",
			opts:    LoadOptions{Fields: []FieldSpec{{Name: "id", Type: FieldInt}}},
			wantErr: ErrFormat,
			wantMsg: "invalid integer",
		},
		{
			name:    "bad float",
			input:   "score\n1.5x\n",
			opts:    LoadOptions{Fields: []FieldSpec{{Name: "score", Type: FieldFloat}}},
			wantErr: ErrFormat,
			wantMsg: "invalid number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDelimited(strings.NewReader(tt.input), tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoadRecords_KeepsOrderAndStrings(t *testing.T) {
	input := `[
  {"title": "Gold nanoparticles", "id": 9, "date": "01/07/2021"},
  {"id": 10, "title": null, "date": "1 July 2021", "extra": true}
]`
	ds, err := LoadRecords(strings.NewReader(input), LoadOptions{
		Fields: []FieldSpec{{Name: "id"}, {Name: "date"}},
	})
	require.NoError(t, err)

	want := &Dataset{
		Columns: []Column{
			{Name: "title", Type: FieldText, Nullable: true},
			{Name: "id", Type: FieldInt},
			{Name: "date", Type: FieldText},
			{Name: "extra", Type: FieldText, Nullable: true},
		},
		Rows: []Row{
			{Index: 0, Values: []Value{Text("Gold nanoparticles"), Int(9), Text("01/07/2021"), Null()}},
			{Index: 1, Values: []Value{Null(), Int(10), Text("1 July 2021"), Text("True")}},
		},
	}
	if diff := cmp.Diff(want, ds); diff != "" {
		t.Errorf("LoadRecords() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRecords_ColumnTypes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		policy   NullableIntPolicy
		wantType FieldType
		want     []Value
	}{
		{
			name:     "ints mixed with floats widen",
			input:    `[{"v": 1}, {"v": 2.5}]`,
			wantType: FieldFloat,
			want:     []Value{Float(1), Float(2.5)},
		},
		{
			name:     "ints mixed with text stay as they are",
			input:    `[{"v": 1}, {"v": ""}]`,
			wantType: FieldText,
			want:     []Value{Int(1), Text("")},
		},
		{
			name:     "nullable int promoted",
			input:    `[{"v": 1}, {"v": null}]`,
			policy:   PromoteNullableInt,
			wantType: FieldFloat,
			want:     []Value{Float(1), Null()},
		},
		{
			name:     "nullable int kept",
			input:    `[{"v": 1}, {"v": null}]`,
			policy:   KeepNullableInt,
			wantType: FieldInt,
			want:     []Value{Int(1), Null()},
		},
		{
			name:     "all null",
			input:    `[{"v": null}]`,
			wantType: FieldText,
			want:     []Value{Null()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := LoadRecords(strings.NewReader(tt.input), LoadOptions{NullableInt: tt.policy})
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, ds.Columns[0].Type)
			assert.Equal(t, tt.want, ds.Column("v"))
		})
	}
}

func TestLoadRecords_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		opts    LoadOptions
		wantErr error
	}{
		{"not an array", `{"id": 1}`, LoadOptions{}, ErrFormat},
		{"array of scalars", `[1, 2]`, LoadOptions{}, ErrFormat},
		{"nested object", `[{"id": {"value": 1}}]`, LoadOptions{}, ErrFormat},
		{"truncated", `[{"id": 1}`, LoadOptions{}, ErrFormat},
		{"missing field", `[{"id": 1}]`, LoadOptions{Fields: []FieldSpec{{Name: "title"}}}, ErrMissingColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRecords(strings.NewReader(tt.input), tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestLoadRecords_EmptyArray(t *testing.T) {
	ds, err := LoadRecords(strings.NewReader(`[]`), LoadOptions{})
	require.NoError(t, err)
	assert.True(t, ds.Empty())
	assert.Empty(t, ds.Columns)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pubmed.csv")
	require.NoError(t, os.WriteFile(path, []byte(pubmedSample), 0o644))

	ds, n, err := LoadFile(path, FormatDelimited, pubmedOptions(PromoteNullableInt))
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, int64(len(pubmedSample)), n)

	bad := filepath.Join(dir, "pubmed.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{}`), 0o644))
	_, _, err = LoadFile(bad, FormatRecords, LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load pubmed.json")
	assert.True(t, errors.Is(err, ErrFormat))
}

func BenchmarkLoadDelimited(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("id,title,date,journal\n")
	for i := 0; i < 1000; i++ {
		sb.WriteString("1,A study of diphenhydramine,01/07/2021,Journal of emergency nursing\n")
	}
	input := sb.String()
	opts := pubmedOptions(PromoteNullableInt)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := LoadDelimited(strings.NewReader(input), opts); err != nil {
			b.Fatal(err)
		}
	}
}
