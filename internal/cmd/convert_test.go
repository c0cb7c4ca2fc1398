package cmd

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/salmonumbrella/redelim/internal/codec"
	"github.com/salmonumbrella/redelim/internal/testutil"
)

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

func decodeJSON(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		t.Fatalf("invalid JSON %q: %v", s, err)
	}
	return out
}

func TestRoot_ConvertsDefaultDatasetInPlace(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "Datasets"), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "Datasets", "bank-full.csv")
	if err := os.WriteFile(path, []byte(testutil.BankSample), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	res := runApp(t, "")
	if res.err != nil {
		t.Fatalf("unexpected error: %v (stderr %q)", res.err, res.stderr)
	}

	got := testutil.ReadFile(t, path)
	firstLine := strings.SplitN(got, "\n", 2)[0]
	if firstLine != "age,job,marital,education,default,balance,housing,loan,contact,day,month,duration,campaign,pdays,previous,poutcome,y" {
		t.Fatalf("unexpected header %q", firstLine)
	}
	if !strings.Contains(got, "\n58,management,married,tertiary,no,2143,") {
		t.Fatalf("expected comma-delimited records, got %q", got)
	}

	lines := nonEmptyLines(res.stdout)
	if len(lines) != 6 {
		t.Fatalf("expected header plus 5 preview rows, got %d:\n%s", len(lines), res.stdout)
	}
	if !strings.Contains(lines[1], "management") || !strings.HasPrefix(strings.TrimSpace(lines[1]), "0") {
		t.Fatalf("expected indexed first record, got %q", lines[1])
	}
	if !strings.Contains(res.stderr, "wrote 7 records (17 columns) to Datasets/bank-full.csv") {
		t.Fatalf("expected status line, got %q", res.stderr)
	}
}

func TestConvert_JSONEnvelope(t *testing.T) {
	path := testutil.WriteFile(t, "bank.csv", testutil.BankSample)

	res := runApp(t, "", "convert", path, "-o", "json")
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}

	out := decodeJSON(t, res.stdout)
	if out["records"] != float64(testutil.BankSampleRecords) {
		t.Errorf("records = %v", out["records"])
	}
	if out["in_place"] != true {
		t.Errorf("in_place = %v", out["in_place"])
	}
	if out["delimiter"] != ";" || out["out_delimiter"] != "," {
		t.Errorf("delimiters = %v/%v", out["delimiter"], out["out_delimiter"])
	}
	preview, ok := out["preview"].([]interface{})
	if !ok || len(preview) != 5 {
		t.Fatalf("expected 5 preview records, got %v", out["preview"])
	}
	first := preview[0].(map[string]interface{})
	if first["age"] != float64(58) || first["job"] != "management" {
		t.Errorf("unexpected first record %v", first)
	}
	if !strings.HasPrefix(strings.TrimSpace(res.stdout), "{") || !strings.Contains(res.stdout, `"age": 58,
      "job": "management"`) {
		t.Errorf("expected ordered preview objects, got %s", res.stdout)
	}
	if strings.Contains(res.stderr, "wrote") {
		t.Errorf("expected no status line for piped JSON, got %q", res.stderr)
	}
}

func TestConvert_OutFileAndTabDelimiter(t *testing.T) {
	in := testutil.WriteFile(t, "in.csv", "age;job\n35;technician\n")
	out := filepath.Join(t.TempDir(), "out.tsv")

	res := runApp(t, "", "convert", in, "-D", "tab", "-O", out, "--no-preview")
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if got := testutil.ReadFile(t, out); got != "age\tjob\n35\ttechnician\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if got := testutil.ReadFile(t, in); got != "age;job\n35;technician\n" {
		t.Fatalf("input changed: %q", got)
	}
	if res.stdout != "" {
		t.Fatalf("expected no preview, got %q", res.stdout)
	}
}

func TestConvert_TableFormatRows(t *testing.T) {
	path := testutil.WriteFile(t, "bank.csv", "age;job\n35;technician\n58;management\n44;services\n")

	res := runApp(t, "", "convert", path, "-n", "2", "-o", "table")
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if res.stdout != "age  job\n35   technician\n58   management\n" {
		t.Fatalf("unexpected table output %q", res.stdout)
	}
}

func TestConvert_DryRunLeavesFile(t *testing.T) {
	path := testutil.WriteFile(t, "bank.csv", testutil.BankSample)

	res := runApp(t, "", "convert", path, "--dry-run", "--no-preview")
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if got := testutil.ReadFile(t, path); got != testutil.BankSample {
		t.Fatalf("dry run modified the file")
	}
	if !strings.Contains(res.stderr, "[DRY-RUN] Would overwrite "+path) {
		t.Fatalf("expected dry-run header, got %q", res.stderr)
	}
	if !strings.Contains(res.stderr, `delimiter: ";" -> ","`) {
		t.Fatalf("expected delimiter change, got %q", res.stderr)
	}
}

func TestConvert_NotFound(t *testing.T) {
	res := runApp(t, "", "convert", filepath.Join(t.TempDir(), "missing.csv"))
	if ExitCode(res.err) != ExitNotFound {
		t.Fatalf("ExitCode = %d, want %d (err %v)", ExitCode(res.err), ExitNotFound, res.err)
	}
	if !strings.Contains(res.stderr, "Hint: ") {
		t.Fatalf("expected hint, got %q", res.stderr)
	}
}

func TestConvert_ParseErrorLeavesFile(t *testing.T) {
	content := "a;b;c\n1;2;3\n4;5\n"
	path := testutil.WriteFile(t, "bad.csv", content)

	res := runApp(t, "", "convert", path, "--error-format", "json")
	if ExitCode(res.err) != ExitParse {
		t.Fatalf("ExitCode = %d, want %d (err %v)", ExitCode(res.err), ExitParse, res.err)
	}
	if got := testutil.ReadFile(t, path); got != content {
		t.Fatalf("file changed after parse error: %q", got)
	}

	env := decodeJSON(t, res.stderr)
	payload := env["error"].(map[string]interface{})
	if payload["type"] != "parse" || payload["line"] != float64(3) {
		t.Fatalf("unexpected error payload %v", payload)
	}
}

func TestConvert_InvalidDelimiter(t *testing.T) {
	path := testutil.WriteFile(t, "bank.csv", testutil.BankSample)

	res := runApp(t, "", "convert", path, "-d", "ab")
	if ExitCode(res.err) != ExitUser {
		t.Fatalf("ExitCode = %d, want %d (err %v)", ExitCode(res.err), ExitUser, res.err)
	}
	if got := testutil.ReadFile(t, path); got != testutil.BankSample {
		t.Fatalf("file changed after invalid delimiter")
	}
}

func TestConvert_NegativeRows(t *testing.T) {
	path := testutil.WriteFile(t, "bank.csv", testutil.BankSample)

	res := runApp(t, "", "convert", path, "--rows=-1")
	if ExitCode(res.err) != ExitUser {
		t.Fatalf("ExitCode = %d, want %d (err %v)", ExitCode(res.err), ExitUser, res.err)
	}
}

func TestConvert_GzipRoundTrip(t *testing.T) {
	in := testutil.WriteGzip(t, "bank.csv.gz", "age;job\n35;technician\n")
	out := filepath.Join(t.TempDir(), "bank.csv.zst")

	res := runApp(t, "", "convert", in, "-O", out, "--quiet")
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}

	r, err := codec.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer func() { _ = r.Close() }()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "age,job\n35,technician\n" {
		t.Fatalf("unexpected output %q", data)
	}
	if strings.Contains(res.stderr, "wrote") {
		t.Fatalf("--quiet should suppress the status line, got %q", res.stderr)
	}
}

func TestConvert_QueryOverEnvelope(t *testing.T) {
	path := testutil.WriteFile(t, "bank.csv", testutil.BankSample)

	res := runApp(t, "", "convert", path, "-o", "json", "-q", "[.preview[].job]", "--compact-json")
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if strings.TrimSpace(res.stdout) != `["management","technician","entrepreneur","blue-collar","unknown"]` {
		t.Fatalf("unexpected query output %q", res.stdout)
	}
}

func TestConvert_ConfigDefaults(t *testing.T) {
	home := isolateHome(t)
	cfgDir := filepath.Join(home, ".config", "redelim")
	if err := os.MkdirAll(cfgDir, 0o700); err != nil {
		t.Fatal(err)
	}
	cfg := "delimiter: comma\nout_delimiter: pipe\npreview_rows: 1\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	path := testutil.WriteFile(t, "data.csv", "age,job\n35,technician\n58,management\n")

	res := runApp(t, "", "convert", path, "-o", "table")
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if got := testutil.ReadFile(t, path); got != "age|job\n35|technician\n58|management\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if len(nonEmptyLines(res.stdout)) != 2 {
		t.Fatalf("expected 1 preview row from config, got %q", res.stdout)
	}

	// Flags win over config.
	res = runApp(t, "", "convert", path, "-d", "pipe", "-D", "semicolon", "-n", "0", "-o", "json")
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if got := testutil.ReadFile(t, path); got != "age;job\n35;technician\n58;management\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestConvert_EnvOutputFormat(t *testing.T) {
	t.Setenv(EnvOutput, "yaml")
	path := testutil.WriteFile(t, "bank.csv", "age;job\n35;technician\n")

	res := runApp(t, "", "convert", path)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if !strings.Contains(res.stdout, "preview:\n  - age: 35\n    job: technician\n") {
		t.Fatalf("expected YAML envelope, got %q", res.stdout)
	}
}
