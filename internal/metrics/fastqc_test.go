package metrics

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastqcData(filename string, total int) string {
	return fmt.Sprintf(`##FastQC	0.11.9
>>Basic Statistics	pass
#Measure	Value
Filename	%s
File type	Conventional base calls
Encoding	Sanger / Illumina 1.9
Total Sequences	%d
Sequences flagged as poor quality	0
Sequence length	35-151
%%GC	48
>>END_MODULE
>>Per base sequence quality	pass
#Base	Mean	Median	Lower Quartile	Upper Quartile	10th Percentile	90th Percentile
1	32.1	33.0	32.0	34.0	31.0	34.0
>>END_MODULE
>>Sequence Length Distribution	warn
#Length	Count
35-39	12.0
150-151	%d.0
>>END_MODULE
`, filename, total, total-12)
}

func TestFastQC(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, filepath.Join("sampleA_1_fastqc", "fastqc_data.txt"), fastqcData("sampleA_1.fq.gz", 1000))
	writeReport(t, dir, filepath.Join("sampleA_2_fastqc", "fastqc_data.txt"), fastqcData("sampleA_2.fq.gz", 998))
	writeReport(t, dir, filepath.Join("single_fastqc", "fastqc_data.txt"), fastqcData("single.fastq.gz", 500))
	writeReport(t, dir, filepath.Join("orphan_1_fastqc", "fastqc_data.txt"), fastqcData("orphan_1.fq", 200))
	writeReport(t, dir, filepath.Join("not_a_report", "fastqc_data.txt"), "ignored")

	report, err := FastQC(dir, "fastqc_data.txt")
	require.NoError(t, err)

	assert.Equal(t, []string{"orphan_1", "sampleA", "single"}, report.Names())

	pair := report.Samples["sampleA"]
	require.True(t, pair.Paired())
	assert.Equal(t, Left, pair.Reads[0].Role)
	assert.Equal(t, Right, pair.Reads[1].Role)
	assert.Equal(t, "1000", pair.Reads[0].TotalSequences)
	assert.Equal(t, "998", pair.Reads[1].TotalSequences)
	assert.Equal(t, []LengthCount{{"35-39", "12.0"}, {"150-151", "988.0"}}, pair.Reads[0].LengthDistribution)

	single := report.Samples["single"]
	require.False(t, single.Paired())
	assert.Equal(t, Unpaired, single.Reads[0].Role)

	orphan := report.Samples["orphan_1"]
	require.Len(t, orphan.Reads, 1)
	assert.Equal(t, Unpaired, orphan.Reads[0].Role)

	assert.Equal(t, Metrics{
		"sampleA_1_num_seqs":   "1000",
		"sampleA_1_seq_length": "35-151",
		"sampleA_2_num_seqs":   "998",
		"sampleA_2_seq_length": "35-151",
		"single_num_seqs":      "500",
		"single_seq_length":    "35-151",
		"orphan_1_num_seqs":    "200",
		"orphan_1_seq_length":  "35-151",
	}, report.Metrics())
}

func TestFastQC_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		report string
	}{
		{"no basic statistics", ">>Sequence Length Distribution\tpass\n#Length\tCount\n35\t1\n>>END_MODULE\n"},
		{"unclosed module", ">>Basic Statistics\tpass\nFilename\tx.fq\n"},
		{"end without module", ">>END_MODULE\n"},
		{"no total sequences", ">>Basic Statistics\tpass\nFilename\tx.fq\n>>END_MODULE\n>>Sequence Length Distribution\tpass\n>>END_MODULE\n"},
		{"no length distribution", ">>Basic Statistics\tpass\nFilename\tx.fq\nTotal Sequences\t10\n>>END_MODULE\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeReport(t, dir, filepath.Join("x_fastqc", "fastqc_data.txt"), tt.report)

			_, err := FastQC(dir, "fastqc_data.txt")
			assert.True(t, errors.Is(err, ErrFormatMismatch), "got %v", err)
		})
	}
}

func TestFastQC_DuplicateSample(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, filepath.Join("s_fq_fastqc", "fastqc_data.txt"), fastqcData("s.fq", 100))
	writeReport(t, dir, filepath.Join("s_fa_fastqc", "fastqc_data.txt"), fastqcData("s.fa", 100))

	_, err := FastQC(dir, "fastqc_data.txt")
	assert.ErrorContains(t, err, `both sample "s"`)
}

func Test_roleOf(t *testing.T) {
	tests := []struct {
		run  string
		want Role
	}{
		{"reads_1_fastqc", Left},
		{"reads_2_fastqc", Right},
		{"reads_fastqc", Unpaired},
		{"reads_10_fastqc", Unpaired},
	}
	for _, tt := range tests {
		t.Run(tt.run, func(t *testing.T) {
			assert.Equal(t, tt.want, roleOf(tt.run))
		})
	}
}

func Test_sampleNames(t *testing.T) {
	assert.Equal(t, "sampleA", pairedName("sampleA_1.fq.gz"))
	assert.Equal(t, "lib", pairedName("lib_10_1.fastq"))
	assert.Equal(t, "SRR", pairedName("SRR_10_1.fq.gz"))
	assert.Equal(t, "reads", unpairedName("reads.fastq.gz"))
	assert.Equal(t, "reads", unpairedName("reads.fq"))
	assert.Equal(t, "reads.bam", unpairedName("reads.bam"))
}

func TestRole_MarshalText(t *testing.T) {
	text, err := Right.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "right", string(text))
}
