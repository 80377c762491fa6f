package metrics

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cegmaReport = `
Statistics of the completeness of the genome based on 248 CEGs

              #Prots  %Completeness  -  #Total  Average  %Ortho

  Complete      85       34.27      -   101     1.19     14.12

   Group 1      20       30.30      -    25     1.25     20.00

  Partial      10       39.11      -   117     1.19     14.43
`

func TestCEGMA(t *testing.T) {
	tests := []struct {
		name    string
		report  string
		want    Metrics
		wantErr bool
	}{
		{
			"completeness report",
			cegmaReport,
			Metrics{"cegma_%_complete": "85", "cegma_%_partial": "10"},
			false,
		},
		{
			"short form",
			"Complete   85   x\nPartial   10   y\n",
			Metrics{"cegma_%_complete": "85", "cegma_%_partial": "10"},
			false,
		},
		{"no partial line", "Complete   85   x\n", nil, true},
		{"not a cegma report", "hello\n", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeReport(t, dir, "output.completeness_report", tt.report)

			got, err := CEGMA(dir, "*.completeness_report")
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrFormatMismatch))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBUSCO(t *testing.T) {
	tests := []struct {
		name    string
		report  string
		want    Metrics
		wantErr bool
	}{
		{
			"busco v2 summary",
			"# BUSCO version is: 2.0\n\tC:94.1%[D:40.0%],F:1.8%,M:3.5%,n:843\n",
			Metrics{
				"busco_metazoa_%_complete":      "94.1",
				"busco_metazoa_%_duplicated":    "40.0",
				"busco_metazoa_%_fragmented":    "1.8",
				"busco_metazoa_%_missing":       "3.5",
				"busco_metazoa_number_searched": "843",
			},
			false,
		},
		{
			"integer percentages",
			"C:94%[D:40%],F:1.8%,M:3.5%,n:843",
			Metrics{
				"busco_metazoa_%_complete":      "94",
				"busco_metazoa_%_duplicated":    "40",
				"busco_metazoa_%_fragmented":    "1.8",
				"busco_metazoa_%_missing":       "3.5",
				"busco_metazoa_number_searched": "843",
			},
			false,
		},
		{
			"single copy field",
			"\tC:94.1%[S:54.1%,D:40.0%],F:1.8%,M:3.5%,n:843\t\n",
			Metrics{
				"busco_metazoa_%_complete":      "94.1",
				"busco_metazoa_%_single":        "54.1",
				"busco_metazoa_%_duplicated":    "40.0",
				"busco_metazoa_%_fragmented":    "1.8",
				"busco_metazoa_%_missing":       "3.5",
				"busco_metazoa_number_searched": "843",
			},
			false,
		},
		{"truncated summary", "C:94.1%[D:40.0%],F:1.8%", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "run_busco_metazoa")
			writeReport(t, dir, "short_summary_busco_metazoa", tt.report)

			got, err := BUSCO(dir, "short_summary_*")
			if tt.wantErr {
				var formatErr *FormatError
				require.True(t, errors.As(err, &formatErr))
				assert.Equal(t, "busco", formatErr.Tool)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BUSCO() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_buscoDB(t *testing.T) {
	tests := []struct {
		dir  string
		want string
	}{
		{"run_busco_metazoa", "busco_metazoa"},
		{"/data/assembly/run_busco_eukaryota/", "busco_eukaryota"},
		{"buscoresults", "busco_buscoresults"},
		{"run_busco_metazoa/.", "busco_metazoa"},
		{".", "busco_metrics"}, // the package directory
	}
	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			assert.Equal(t, tt.want, buscoDB(tt.dir))
		})
	}
}

func TestDETONATE(t *testing.T) {
	tests := []struct {
		name    string
		report  string
		want    string
		wantErr bool
	}{
		{"negative score", "Score\t-36812332.27\nBIC_penalty\t1234.5\n", "-36812332.27", false},
		{"integer score", "Score\t42\n", "42", false},
		{"exponent", "Score\t-3.68e+07\n", "-3.68e+07", false},
		{"no score", "BIC_penalty\t1234.5\n", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeReport(t, dir, "Trinity.score", tt.report)

			got, err := DETONATE(dir, "*.score")
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrFormatMismatch))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Metrics{"detonate": tt.want}, got)
		})
	}
}

func TestTransrate(t *testing.T) {
	tests := []struct {
		name    string
		report  string
		want    Metrics
		wantErr bool
	}{
		{"two line csv", "n_seqs,gc\n1000,0.45", Metrics{"n_seqs": "1000", "gc": "0.45"}, false},
		{"crlf line endings", "n_seqs,gc\r\n1000,0.45\r\n", Metrics{"n_seqs": "1000", "gc": "0.45"}, false},
		{"fewer values than headers", "n_seqs,gc,score\n1000,0.45\n", Metrics{"n_seqs": "1000", "gc": "0.45"}, false},
		{"header only", "n_seqs,gc\n", nil, true},
		{"empty file", "", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeReport(t, dir, "assemblies.csv", tt.report)

			got, err := Transrate(dir, "assemblies.csv")
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrFormatMismatch))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransrateReadCount(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, "read_count.txt", "1234567  \nignored\n")

	got, err := TransrateReadCount(dir, "read_count*")
	require.NoError(t, err)
	assert.Equal(t, Metrics{"Transrate_readCount": "1234567"}, got)
}
