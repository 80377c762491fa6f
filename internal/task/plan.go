package task

import (
	"fmt"
	"path/filepath"

	"github.com/jjtimmons/pipekit/config"
)

// Plan builds the graph that prepares every database for searching and
// annotation:
//   - prot: stitle table, DIAMOND db, BLAST+ db
//   - nucl: stitle table, BLAST+ db
//   - hmm:  hmmpress of the Pfam-A library
//
// Tasks for a database depend on upstream, if it's set, so the plan can be
// chained after (eg) download tasks.
func (b *Builder) Plan(dbs []config.Database, upstream []*Task, logs bool) (*Graph, error) {
	tasks := append([]*Task{}, upstream...)

	for _, db := range dbs {
		if db.Fasta == "" {
			return nil, fmt.Errorf("database %q has no fasta path", db.Name)
		}

		name := db.Name
		if name == "" {
			name = filepath.Base(db.Fasta)
		}
		out := filepath.Join(b.conf.Paths.Databases, name, name)

		switch db.Type {
		case "prot", "nucl":
			stitle, err := b.DB2Stitle(db.Fasta, upstream, logs)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, stitle)

			if db.Type == "prot" {
				diamond, err := b.Diamond(db.Fasta, out, upstream, logs)
				if err != nil {
					return nil, err
				}
				tasks = append(tasks, diamond)
			}

			blast, err := b.BlastDB(db.Fasta, out, db.Type, upstream, logs)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, blast)
		case "hmm":
			pfam, err := b.Pfam(db.Fasta, upstream, logs)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, pfam)
		default:
			return nil, fmt.Errorf("database %q has unknown type %q, expected prot, nucl or hmm", name, db.Type)
		}
	}

	return NewGraph(tasks...)
}
