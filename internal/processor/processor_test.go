package processor

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"codeberg.org/snonux/abbrevkit/internal/chunker"
	"codeberg.org/snonux/abbrevkit/internal/cli"
	"codeberg.org/snonux/abbrevkit/internal/features"
	"codeberg.org/snonux/abbrevkit/internal/logging"
	"codeberg.org/snonux/abbrevkit/internal/sheet"
	"codeberg.org/snonux/abbrevkit/internal/testutil"
)

// newTestProcessor returns a quiet processor working inside a temp directory
func newTestProcessor(t *testing.T) (*Processor, *cli.Flags) {
	t.Helper()

	flags := cli.NewFlags()
	flags.WorkDir = t.TempDir()
	flags.LogFormat = "json"

	p, err := NewProcessor(flags)
	if err != nil {
		t.Fatalf("NewProcessor failed: %v", err)
	}
	p.SetLogger(logging.Discard())
	p.SetOutput(io.Discard)
	return p, flags
}

func writeRawInput(t *testing.T, flags *cli.Flags, values ...string) {
	t.Helper()
	testutil.CreateWorkbook(t, filepath.Join(flags.WorkDir, flags.FilterInput),
		testutil.TokenSheet("data", flags.FilterColumn, values...))
}

func TestNewProcessor_BadLogFormat(t *testing.T) {
	flags := cli.NewFlags()
	flags.LogFormat = "xml"

	if _, err := NewProcessor(flags); err == nil {
		t.Error("expected error for unsupported log format")
	}
}

func TestFilter(t *testing.T) {
	p, flags := newTestProcessor(t)
	writeRawInput(t, flags, "МГУ и ВУЗ, СССР!", "АБВГДЕЖ", "Мгу", "РФ мгу", "МГУ")

	res, err := p.Filter()
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}

	if res.Output != filepath.Join(flags.WorkDir, "output.xlsx") {
		t.Errorf("Output = %s", res.Output)
	}
	if res.Stats.TooLong != 1 {
		t.Errorf("TooLong = %d, want 1", res.Stats.TooLong)
	}

	if names := testutil.SheetNames(t, res.Output); !reflect.DeepEqual(names, []string{"Соответствуют", "Не соответствуют"}) {
		t.Errorf("sheets = %v", names)
	}

	matching, err := sheet.ReadValues(res.Output, "Соответствуют", "Аббревиатура")
	if err != nil {
		t.Fatalf("ReadValues failed: %v", err)
	}
	if want := []string{"ВУЗ", "МГУ", "РФ", "СССР"}; !reflect.DeepEqual(matching, want) {
		t.Errorf("matching = %v, want %v", matching, want)
	}

	nonMatching, err := sheet.ReadValues(res.Output, "Не соответствуют", "Аббревиатура")
	if err != nil {
		t.Fatalf("ReadValues failed: %v", err)
	}
	if want := []string{"Мгу", "и", "мгу"}; !reflect.DeepEqual(nonMatching, want) {
		t.Errorf("non-matching = %v, want %v", nonMatching, want)
	}
}

func TestFilter_MissingInput(t *testing.T) {
	p, flags := newTestProcessor(t)

	_, err := p.Filter()
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	testutil.AssertFileNotExists(t, filepath.Join(flags.WorkDir, flags.FilterOutput))
}

func TestFilter_MissingColumn(t *testing.T) {
	p, flags := newTestProcessor(t)
	testutil.CreateWorkbook(t, filepath.Join(flags.WorkDir, flags.FilterInput),
		testutil.TokenSheet("data", "token", "МГУ"))

	if _, err := p.Filter(); !errors.Is(err, sheet.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestFeatures(t *testing.T) {
	p, flags := newTestProcessor(t)
	testutil.CreateWorkbook(t, filepath.Join(flags.WorkDir, flags.FeaturesInput),
		testutil.TokenSheet(flags.MatchingSheet, flags.TokenColumn, "МГУ", "ОАО"),
		testutil.TokenSheet(flags.NonMatchingSheet, flags.TokenColumn, "и"))

	res, err := p.Features()
	if err != nil {
		t.Fatalf("Features failed: %v", err)
	}
	if res.Rows != 2 {
		t.Errorf("Rows = %d, want 2", res.Rows)
	}

	rows := testutil.ReadSheet(t, res.Output, "Sheet1")
	wantHeader := append([]string{"Аббревиатура"}, features.Columns()...)
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("header = %v, want %v", rows[0], wantHeader)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2", len(rows))
	}
	if rows[1][0] != "МГУ" || rows[2][0] != "ОАО" {
		t.Errorf("row order = %s, %s", rows[1][0], rows[2][0])
	}
	// МГУ: one vowel, two consonants
	if rows[1][1] != "1" || rows[1][2] != "2" {
		t.Errorf("МГУ counts = %v", rows[1][1:3])
	}
}

func TestFeatures_MissingSheet(t *testing.T) {
	p, flags := newTestProcessor(t)
	testutil.CreateWorkbook(t, filepath.Join(flags.WorkDir, flags.FeaturesInput),
		testutil.TokenSheet("other", flags.TokenColumn, "МГУ"))

	if _, err := p.Features(); !errors.Is(err, sheet.ErrMissingSheet) {
		t.Fatalf("expected ErrMissingSheet, got %v", err)
	}
}

func TestChunk(t *testing.T) {
	p, flags := newTestProcessor(t)
	flags.ChunkSize = 2
	testutil.CreateWorkbook(t, filepath.Join(flags.WorkDir, flags.ChunkInput),
		testutil.TokenSheet(flags.MatchingSheet, flags.TokenColumn, "ВУЗ", "МГУ", "РФ", "СССР", "ЦК"))

	res, err := p.Chunk()
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	if res.Tokens != 5 {
		t.Errorf("Tokens = %d, want 5", res.Tokens)
	}

	outDir := filepath.Join(flags.WorkDir, "json_output")
	testutil.AssertDirEntries(t, outDir, "output_chunk_1.json", "output_chunk_2.json", "output_chunk_3.json")

	var origins []string
	for _, f := range res.Files {
		records, err := chunker.ReadChunk(f)
		if err != nil {
			t.Fatalf("ReadChunk failed: %v", err)
		}
		for _, r := range records {
			origins = append(origins, r.Origin)
		}
	}
	want := chunker.Shuffle([]string{"ВУЗ", "МГУ", "РФ", "СССР", "ЦК"}, chunker.DefaultSeed)
	if !reflect.DeepEqual(origins, want) {
		t.Errorf("origins = %v, want %v", origins, want)
	}

	// A second run archives the first output
	res, err = p.Chunk()
	if err != nil {
		t.Fatalf("second Chunk failed: %v", err)
	}
	if res.ArchivedTo == "" {
		t.Error("expected previous chunks to be archived")
	}
	testutil.AssertFileExists(t, filepath.Join(res.ArchivedTo, "output_chunk_1.json"))
}

func TestChunk_InvalidSize(t *testing.T) {
	p, flags := newTestProcessor(t)
	flags.ChunkSize = 0

	if _, err := p.Chunk(); !errors.Is(err, chunker.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
	testutil.AssertFileNotExists(t, filepath.Join(flags.WorkDir, "json_output"))
}

func TestRun(t *testing.T) {
	p, flags := newTestProcessor(t)
	flags.MetricsFile = "metrics.prom"
	var out bytes.Buffer
	p.SetOutput(&out)
	writeRawInput(t, flags, "МГУ, ВУЗ и СССР", "ЦК КПСС")

	if err := p.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if err := p.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	testutil.AssertFileExists(t, filepath.Join(flags.WorkDir, "output.xlsx"))
	testutil.AssertFileExists(t, filepath.Join(flags.WorkDir, "output_with_features.xlsx"))
	testutil.AssertDirEntries(t, filepath.Join(flags.WorkDir, "json_output"), "output_chunk_1.json")
	testutil.AssertFileNotExists(t, filepath.Join(flags.WorkDir, "archive"))

	records, err := chunker.ReadChunk(filepath.Join(flags.WorkDir, "json_output", "output_chunk_1.json"))
	if err != nil {
		t.Fatalf("ReadChunk failed: %v", err)
	}
	if len(records) != 5 {
		t.Errorf("got %d records, want 5", len(records))
	}

	metricsPath := filepath.Join(flags.WorkDir, "metrics.prom")
	testutil.AssertFileContains(t, metricsPath, "abbrevkit_chunks_written_total 1")
	testutil.AssertFileContains(t, metricsPath, `abbrevkit_rows_total{stage="features"} 5`)

	for _, title := range []string{"FILTER", "FEATURES", "CHUNK"} {
		if !strings.Contains(out.String(), title) {
			t.Errorf("summary output missing %s table", title)
		}
	}
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	p, flags := newTestProcessor(t)

	if err := p.Run(); err == nil {
		t.Fatal("expected error without raw input")
	}
	testutil.AssertFileNotExists(t, filepath.Join(flags.WorkDir, "output_with_features.xlsx"))
	testutil.AssertFileNotExists(t, filepath.Join(flags.WorkDir, "json_output"))
}

func TestLocked(t *testing.T) {
	p, flags := newTestProcessor(t)
	writeRawInput(t, flags, "МГУ")

	lock := flock.New(filepath.Join(flags.WorkDir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil || !ok {
		t.Fatalf("failed to take lock: ok=%v err=%v", ok, err)
	}

	if _, err := p.Filter(); !errors.Is(err, ErrLocked) {
		t.Errorf("expected ErrLocked, got %v", err)
	}

	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	if _, err := p.Filter(); err != nil {
		t.Errorf("Filter after unlock failed: %v", err)
	}
}

func TestFinish_NoMetricsFile(t *testing.T) {
	p, flags := newTestProcessor(t)
	if err := p.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	testutil.AssertDirEntries(t, flags.WorkDir)
}

func TestInspect(t *testing.T) {
	p, _ := newTestProcessor(t)

	out := p.Inspect([]string{"МГУ", "ОАО"})
	for _, want := range []string{"МГУ", "ОАО", "VOWEL_COUNT"} {
		if !strings.Contains(out, want) {
			t.Errorf("Inspect output missing %q:\n%s", want, out)
		}
	}
}
