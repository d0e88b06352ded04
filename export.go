package morceus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// String renders the row as "ending table1 table2 ...".
func (r EndIndexRow) String() string {
	names := slices.Sorted(slices.Values(r.TableNames))
	return strings.Join(append([]string{r.Ending}, names...), " ")
}

// ParseEndIndexRow parses a line written by EndIndexRow.String.
func ParseEndIndexRow(line string) (EndIndexRow, error) {
	words := strings.Fields(line)
	if len(words) < 2 {
		return EndIndexRow{}, fmt.Errorf("end index row %q: %w", line, ErrMalformedTableLine)
	}
	return EndIndexRow{Ending: words[0], TableNames: words[1:]}, nil
}

// WriteTable writes one line per ending:
// "ending tableName grammaticalTokens... tags... internalTags...".
func WriteTable(w io.Writer, table InflectionTable) error {
	bw := bufio.NewWriter(w)
	for _, end := range table.Endings {
		words := append([]string{end.Ending, table.Name}, end.Tokens()...)
		if _, err := fmt.Fprintln(bw, strings.Join(words, " ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadTable reads a table written by WriteTable. Every line must name the
// same table.
func ReadTable(r io.Reader) (*InflectionTable, error) {
	var table InflectionTable
	sc := bufio.NewScanner(r)
	num := 0
	for sc.Scan() {
		num++
		words := strings.Fields(sc.Text())
		if len(words) == 0 {
			continue
		}
		if len(words) < 3 {
			return nil, fmt.Errorf("line %d: %w", num, ErrMalformedTableLine)
		}
		if table.Name == "" {
			table.Name = words[1]
		} else if table.Name != words[1] {
			return nil, fmt.Errorf("line %d: table %s in %s: %w", num, words[1], table.Name, ErrMalformedTableLine)
		}
		table.Endings = append(table.Endings, InflectionEnding{
			Ending:            words[0],
			InflectionContext: ParseInflectionContext(words[2:]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(table.Endings) == 0 {
		return nil, ErrEmptyTable
	}
	return &table, nil
}

// SaveTables writes each table to dir/<name>.table, creating dir if needed.
func SaveTables(dir string, tables []InflectionTable) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create table dir: %w", err)
	}
	for _, table := range tables {
		if err := saveFile(filepath.Join(dir, table.Name+".table"), func(w io.Writer) error {
			return WriteTable(w, table)
		}); err != nil {
			return err
		}
	}
	return nil
}

// WriteEndIndex writes one row per line.
func WriteEndIndex(w io.Writer, rows []EndIndexRow) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		if _, err := fmt.Fprintln(bw, row.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveEndIndex writes rows to dir/<mode>.endindex.
func SaveEndIndex(dir string, mode IndexMode, rows []EndIndexRow) error {
	if mode == "" {
		mode = IndexAll
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	return saveFile(filepath.Join(dir, string(mode)+".endindex"), func(w io.Writer) error {
		return WriteEndIndex(w, rows)
	})
}

func saveFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
