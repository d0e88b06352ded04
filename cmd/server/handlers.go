package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rs/cors"

	"github.com/cours-de-latin/morceus"
)

// ---- JSON response types ------------------------------------------------

type resultJSON struct {
	Lemma       string   `json:"lemma"`
	Form        string   `json:"form"`
	Unicode     string   `json:"unicode"`
	IsVerb      bool     `json:"is_verb,omitempty"`
	Grammar     string   `json:"grammar"`
	Tags        []string `json:"tags,omitempty"`
	Stem        string   `json:"stem,omitempty"`
	Table       string   `json:"table,omitempty"`
	Ending      string   `json:"ending,omitempty"`
	Enclitic    string   `json:"enclitic,omitempty"`
	RelaxedCase bool     `json:"relaxed_case,omitempty"`
}

type crunchResponse struct {
	Word    string       `json:"word"`
	Results []resultJSON `json:"results"`
}

type formJSON struct {
	Form     string       `json:"form"`
	Enclitic string       `json:"enclitic,omitempty"`
	Readings []resultJSON `json:"readings"`
}

type analysisJSON struct {
	Lemma string     `json:"lemma"`
	Forms []formJSON `json:"forms"`
}

type analyzeResponse struct {
	Word     string         `json:"word"`
	Analyses []analysisJSON `json:"analyses"`
}

type paradigmResponse struct {
	Lemma string       `json:"lemma"`
	Forms []resultJSON `json:"forms"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func toResultJSON(r morceus.CrunchResult) resultJSON {
	out := resultJSON{
		Lemma:       r.Lemma,
		Form:        r.Form,
		Unicode:     morceus.ToUnicode(r.Form),
		IsVerb:      r.IsVerb,
		Grammar:     r.GrammaticalData.String(),
		Tags:        r.Tags,
		Enclitic:    r.Enclitic,
		RelaxedCase: r.RelaxedCase,
	}
	if r.Stem != nil {
		out.Stem = r.Stem.Stem
		out.Table = r.Stem.Inflection
	}
	if r.End != nil {
		out.Ending = r.End.Ending
	}
	return out
}

func toResultsJSON(results []morceus.CrunchResult) []resultJSON {
	out := make([]resultJSON, 0, len(results))
	for _, r := range results {
		out = append(out, toResultJSON(r))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// parseOptions starts from the permissive defaults and applies the query
// parameters vowel_length, relax_ij, relax_uv, relax_case and enclitics.
func parseOptions(r *http.Request) (morceus.Options, error) {
	q := r.URL.Query()
	opts := morceus.PermissiveOptions()
	if v := q.Get("vowel_length"); v != "" {
		opts.VowelLength = morceus.VowelLength(v)
	}
	flags := []struct {
		name string
		dst  *bool
	}{
		{"relax_ij", &opts.RelaxIandJ},
		{"relax_uv", &opts.RelaxUandV},
		{"relax_case", &opts.RelaxCase},
		{"enclitics", &opts.HandleEnclitics},
	}
	for _, f := range flags {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return morceus.Options{}, fmt.Errorf("%s: %w", f.name, morceus.ErrInvalidOptions)
		}
		*f.dst = b
	}
	return opts, opts.Validate()
}

// wordParam reads the word query parameter, converting Unicode length
// marks to the transliteration.
func wordParam(r *http.Request) string {
	return morceus.FromUnicode(r.URL.Query().Get("word"))
}

// ---- handlers -----------------------------------------------------------

func handleCrunch(c *morceus.Cruncher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		word := wordParam(r)
		if word == "" {
			writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
			return
		}
		opts, err := parseOptions(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		results, err := c.Crunch(word, opts)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, crunchResponse{Word: word, Results: toResultsJSON(results)})
	}
}

func handleAnalyze(c *morceus.Cruncher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		word := wordParam(r)
		if word == "" {
			writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
			return
		}
		opts, err := parseOptions(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		analyses, err := c.Analyze(word, opts)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		out := make([]analysisJSON, 0, len(analyses))
		for _, a := range analyses {
			aj := analysisJSON{Lemma: a.Lemma}
			for _, f := range a.InflectedForms {
				aj.Forms = append(aj.Forms, formJSON{
					Form:     f.Form,
					Enclitic: f.Enclitic,
					Readings: toResultsJSON(f.InflectionData),
				})
			}
			out = append(out, aj)
		}
		writeJSON(w, http.StatusOK, analyzeResponse{Word: word, Analyses: out})
	}
}

func handleParadigm(c *morceus.Cruncher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lemma := r.URL.Query().Get("lemma")
		if lemma == "" {
			writeError(w, http.StatusBadRequest, "missing 'lemma' query parameter")
			return
		}
		forms, ok := c.Tables().Paradigm(lemma)
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("lemma %q not found", lemma))
			return
		}
		writeJSON(w, http.StatusOK, paradigmResponse{Lemma: lemma, Forms: toResultsJSON(forms)})
	}
}

func handleTable(c *morceus.Cruncher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		table, ok := c.Tables().Table(name)
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Sprintf("table %q not found", name))
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := morceus.WriteTable(w, table); err != nil {
			slog.Error("write table", slog.String("table", name), slog.Any("error", err))
		}
	}
}

func handleTableNames(c *morceus.Cruncher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{"tables": c.Tables().TableNames()})
	}
}

// newHandler routes the API and wraps it with CORS.
func newHandler(c *morceus.Cruncher, cfg CORSConfig) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/crunch", handleCrunch(c))
	mux.HandleFunc("GET /api/analyze", handleAnalyze(c))
	mux.HandleFunc("GET /api/paradigm", handleParadigm(c))
	mux.HandleFunc("GET /api/tables", handleTableNames(c))
	mux.HandleFunc("GET /api/tables/{name}", handleTable(c))

	return cors.New(cors.Options{
		AllowedOrigins: splitList(cfg.AllowedOrigins),
		AllowedMethods: splitList(cfg.AllowedMethods),
		MaxAge:         cfg.MaxAge,
	}).Handler(mux)
}
