// Package stitle turns the FASTA headers of a reference database into a
// tab-separated id to description (subject title) table.
package stitle

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

// Write a line of "id\tdescription" to w for every record in the FASTA file.
// Returns the number of records written.
func Write(w io.Writer, fastaPath string) (int, error) {
	seq.ValidateSeq = false // only the headers are needed

	reader, err := fastx.NewReader(nil, fastaPath, "")
	if err != nil {
		return 0, fmt.Errorf("failed to open FASTA file %s: %w", fastaPath, err)
	}
	defer reader.Close()

	bw := bufio.NewWriter(w)
	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read FASTA file %s: %w", fastaPath, err)
		}

		bw.Write(record.ID)
		bw.WriteByte('\t')
		bw.Write(description(record.ID, record.Name))
		bw.WriteByte('\n')
		count++
	}

	return count, bw.Flush()
}

// description is the header without its leading id.
func description(id, name []byte) []byte {
	return bytes.TrimSpace(bytes.TrimPrefix(name, id))
}
