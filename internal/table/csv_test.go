package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bankSample = `"age";"job";"marital";"education";"default";"balance";"housing";"loan";"contact";"day";"month";"duration";"campaign";"pdays";"previous";"poutcome";"y"
58;"management";"married";"tertiary";"no";2143;"yes";"no";"unknown";5;"may";261;1;-1;0;"unknown";"no"
44;"technician";"single";"secondary";"no";29;"yes";"no";"unknown";5;"may";151;1;-1;0;"unknown";"no"
33;"entrepreneur";"married";"secondary";"no";2;"yes";"yes";"unknown";5;"may";76;1;-1;0;"unknown";"no"
`

func convertString(t *testing.T, in string, from, to rune) string {
	t.Helper()
	tbl, err := Read(strings.NewReader(in), ReadOptions{Comma: from})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl, WriteOptions{Comma: to}))
	return buf.String()
}

func TestReadWriteScenario(t *testing.T) {
	out := convertString(t, "age;job;balance\n35;technician;1500\n", ';', ',')
	assert.Equal(t, "age,job,balance\n35,technician,1500\n", out)
}

func TestDelimiterTransform(t *testing.T) {
	out := convertString(t, "h1;h2;h3\na;b;c\n", ';', ',')
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "a,b,c", lines[1])
}

func TestReadBankSample(t *testing.T) {
	tbl, err := Read(strings.NewReader(bankSample), ReadOptions{Comma: ';'})
	require.NoError(t, err)

	assert.Equal(t, 17, tbl.NumColumns())
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, "age", tbl.Columns[0])
	for _, row := range tbl.Rows {
		assert.Len(t, row, tbl.NumColumns())
	}

	job, ok := tbl.Record(1).Get("job")
	require.True(t, ok)
	assert.Equal(t, "technician", job)
}

func TestRoundTripPreservesShape(t *testing.T) {
	in, err := Read(strings.NewReader(bankSample), ReadOptions{Comma: ';'})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, in, WriteOptions{Comma: ','}))

	out, err := Read(&buf, ReadOptions{Comma: ','})
	require.NoError(t, err)

	assert.Equal(t, in.Columns, out.Columns)
	assert.Equal(t, in.Len(), out.Len())
	assert.Equal(t, in.Rows, out.Rows)
}

func TestWriteOmitsIndexColumn(t *testing.T) {
	out := convertString(t, bankSample, ';', ',')
	header := strings.SplitN(out, "\n", 2)[0]
	assert.True(t, strings.HasPrefix(header, "age,"), "header %q", header)
}

func TestWriteQuotesWhenNeeded(t *testing.T) {
	in := "name;note\nalice;\"x, y\"\nbob;\"say \"\"hi\"\"\"\n"
	out := convertString(t, in, ';', ',')
	expected := "name,note\nalice,\"x, y\"\nbob,\"say \"\"hi\"\"\"\n"
	assert.Equal(t, expected, out)
}

func TestReadFieldCountMismatch(t *testing.T) {
	_, err := Read(strings.NewReader("a;b;c\n1;2;3\n4;5\n"), ReadOptions{Comma: ';'})
	require.Error(t, err)

	var pe *csv.ParseError
	require.True(t, errors.As(err, &pe), "got %T", err)
	assert.ErrorIs(t, err, csv.ErrFieldCount)
	assert.Equal(t, 3, pe.Line)
}

func TestReadEmptyInput(t *testing.T) {
	_, err := Read(strings.NewReader(""), ReadOptions{Comma: ';'})
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestReadHeaderOnly(t *testing.T) {
	tbl, err := Read(strings.NewReader("a;b\n"), ReadOptions{Comma: ';'})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Columns)
	assert.Equal(t, 0, tbl.Len())

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl, WriteOptions{Comma: ','}))
	assert.Equal(t, "a,b\n", buf.String())
}

func TestReadSkipsBlankLines(t *testing.T) {
	tbl, err := Read(strings.NewReader("a;b\n\n1;2\n\n3;4\n"), ReadOptions{Comma: ';'})
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
}

func TestReadStripsBOM(t *testing.T) {
	tbl, err := Read(strings.NewReader("\ufeffage;job\n1;x\n"), ReadOptions{Comma: ';'})
	require.NoError(t, err)
	assert.Equal(t, "age", tbl.Columns[0])
}

func TestReadLazyQuotes(t *testing.T) {
	in := "a;b\nx\"y;z\n"
	_, err := Read(strings.NewReader(in), ReadOptions{Comma: ';'})
	require.Error(t, err)

	tbl, err := Read(strings.NewReader(in), ReadOptions{Comma: ';', LazyQuotes: true})
	require.NoError(t, err)
	assert.Equal(t, "x\"y", tbl.Rows[0][0])
}

func TestWriteCRLF(t *testing.T) {
	tbl, err := New([]string{"a", "b"}, [][]string{{"1", "2"}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl, WriteOptions{Comma: ',', UseCRLF: true}))
	assert.Equal(t, "a,b\r\n1,2\r\n", buf.String())
}

func TestWriteRejectsRaggedTable(t *testing.T) {
	tbl := &Table{Columns: []string{"a", "b"}, Rows: [][]string{{"1"}}}
	var buf bytes.Buffer
	err := Write(&buf, tbl, WriteOptions{Comma: ','})
	assert.ErrorIs(t, err, ErrRowWidth)
	assert.Zero(t, buf.Len())
}

func TestNewValidatesWidth(t *testing.T) {
	_, err := New([]string{"a"}, [][]string{{"1", "2"}})
	assert.ErrorIs(t, err, ErrRowWidth)
}
