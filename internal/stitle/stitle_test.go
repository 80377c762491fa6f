package stitle

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	fasta := `>sp|Q6GZX4|001R_FRG3G Putative transcription factor 001R OS=Frog virus 3
MAFSAEDVLKEYDRRRRMEALLLSLYYPNDRKLLDYKEWSPPRVQVECPKAPVEWNNPPS
EKGLIVGHFSGIKYKGEKAQASEVDVNKMCCWVSKFKDAMRRYQGIQTCKIPGKVLSDLD
>sp|Q6GZX3|002L_FRG3G Uncharacterized protein 002L
MSIIGATRLQNDKSDTYSAGPCYAGGCSAFTPRGTCGKDWDLGEQTCASGFCTSQPLCAR
>no_description
MSEQ
`
	path := filepath.Join(t.TempDir(), "uniprot_sprot.fasta")
	require.NoError(t, os.WriteFile(path, []byte(fasta), 0644))

	var buf bytes.Buffer
	count, err := Write(&buf, path)
	require.NoError(t, err)

	assert.Equal(t, 3, count)
	assert.Equal(t,
		"sp|Q6GZX4|001R_FRG3G\tPutative transcription factor 001R OS=Frog virus 3\n"+
			"sp|Q6GZX3|002L_FRG3G\tUncharacterized protein 002L\n"+
			"no_description\t\n",
		buf.String())
}

func TestWrite_MissingFile(t *testing.T) {
	_, err := Write(&bytes.Buffer{}, filepath.Join(t.TempDir(), "missing.fa"))
	assert.Error(t, err)
}

func Test_description(t *testing.T) {
	tests := []struct {
		name string
		id   string
		head string
		want string
	}{
		{"id and title", "P1", "P1 some protein", "some protein"},
		{"id only", "P1", "P1", ""},
		{"tab separated", "P1", "P1\tsome protein ", "some protein"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(description([]byte(tt.id), []byte(tt.head))))
		})
	}
}
