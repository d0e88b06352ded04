package morceus

import (
	"fmt"
	"io"
	"os"
)

// ParseIrregularStemFile reads an irregular-stem file such as irreg.nom.
func ParseIrregularStemFile(path string, isVerb bool) ([]Lemma, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open irregular stem file: %w", err)
	}
	defer f.Close()
	return ParseIrregularStems(f, path, isVerb)
}

// ParseIrregularStems reads irregular-stem declarations from r.
//
// The block structure is the one of stem files, with comment lines allowed
// anywhere inside a block. Besides coded declarations and "stem@table"
// stems, a line may hold a bare complete form followed by its grammatical
// tokens, e.g. "mo_s irreg_nom3 masc nom voc sg".
func ParseIrregularStems(r io.Reader, name string, isVerb bool) ([]Lemma, error) {
	blocks, err := scanLemmaBlocks(r, name)
	if err != nil {
		return nil, err
	}
	lemmata := make([]Lemma, 0, len(blocks))
	for _, b := range blocks {
		l, err := processStem(name, b, isVerb, true)
		if err != nil {
			return nil, err
		}
		lemmata = append(lemmata, l)
	}
	return lemmata, nil
}
