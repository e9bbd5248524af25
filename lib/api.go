package wordtrie

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alphagov/wordtrie/logger"
	"github.com/alphagov/wordtrie/trie"
)

// maxRequestBytes bounds request bodies; word lists are held in memory.
const maxRequestBytes = 8 << 20

type DistinctSubstringsRequest struct {
	Text string `json:"text"`
}

type DistinctSubstringsResponse struct {
	Count int `json:"count"`
}

// WordsRequest carries a word list. A missing (or null) list means the
// server's dictionary; an empty list is an empty list.
type WordsRequest struct {
	Words []string `json:"words"`
}

type LongestWordResponse struct {
	Word string `json:"word"`
}

type UniquePrefixesResponse struct {
	Prefixes []string `json:"prefixes"`
}

// SegmentRequest carries the key to segment. A missing (or null) dictionary
// means the server's dictionary.
type SegmentRequest struct {
	Key        string   `json:"key"`
	Dictionary []string `json:"dictionary"`
}

type SegmentResponse struct {
	Segmentable bool     `json:"segmentable"`
	Words       []string `json:"words"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewAPIHandler(srv *Server) (api http.Handler, err error) {
	mux := http.NewServeMux()

	mux.HandleFunc("/distinct-substrings", post(srv, func(w http.ResponseWriter, r *http.Request) {
		var req DistinctSubstringsRequest
		if !decodeRequest(srv, w, r, &req) {
			return
		}
		count, err := srv.CountDistinctSubstrings(req.Text)
		if err != nil {
			writeError(srv, w, err)
			return
		}
		writeJSON(srv, w, http.StatusOK, DistinctSubstringsResponse{Count: count})
	}))

	mux.HandleFunc("/longest-word", post(srv, func(w http.ResponseWriter, r *http.Request) {
		var req WordsRequest
		if !decodeRequest(srv, w, r, &req) {
			return
		}
		word, err := srv.LongestValidWord(wordsOrDictionary(srv, req.Words))
		if err != nil {
			writeError(srv, w, err)
			return
		}
		writeJSON(srv, w, http.StatusOK, LongestWordResponse{Word: word})
	}))

	mux.HandleFunc("/unique-prefixes", post(srv, func(w http.ResponseWriter, r *http.Request) {
		var req WordsRequest
		if !decodeRequest(srv, w, r, &req) {
			return
		}
		prefixes, err := srv.ShortestUniquePrefixes(wordsOrDictionary(srv, req.Words))
		if err != nil {
			writeError(srv, w, err)
			return
		}
		writeJSON(srv, w, http.StatusOK, UniquePrefixesResponse{Prefixes: prefixes})
	}))

	mux.HandleFunc("/segment", post(srv, func(w http.ResponseWriter, r *http.Request) {
		var req SegmentRequest
		if !decodeRequest(srv, w, r, &req) {
			return
		}
		words, ok, err := srv.Segment(req.Key, wordsOrDictionary(srv, req.Dictionary))
		if err != nil {
			writeError(srv, w, err)
			return
		}
		if words == nil {
			words = []string{}
		}
		writeJSON(srv, w, http.StatusOK, SegmentResponse{Segmentable: ok, Words: words})
	}))

	mux.HandleFunc("/reload", post(srv, func(w http.ResponseWriter, r *http.Request) {
		if srv.ReloadChan == nil {
			http.Error(w, "No dictionary source configured", http.StatusConflict)
			return
		}
		srv.QueueReload()
		srv.Logger.Info().Msg("reload queued")
		w.WriteHeader(http.StatusAccepted)
		_, err := w.Write([]byte("Reload queued"))
		if err != nil {
			srv.Logger.Warn().Err(err).Msg("failed to write response")
		}
	}))

	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		_, err := w.Write([]byte("OK"))
		if err != nil {
			srv.Logger.Warn().Err(err).Msg("failed to write response")
		}
	})

	mux.Handle("/metrics", promhttp.Handler())

	return mux, nil
}

// responseWriter records whether a response has been started.
type responseWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// post restricts h to POST requests and turns a panic in h into a 500, unless
// h had already started its response.
func post(srv *Server, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w}

		defer func() {
			if rec := recover(); rec != nil {
				err := logger.NewRecoveredError(rec)
				srv.Logger.Err(err).Str("path", r.URL.Path).Msg("recovered from panic in API handler")
				logger.NotifySentry(err)

				if !rw.wroteHeader {
					w.WriteHeader(http.StatusInternalServerError)
				}

				internalServerErrorCountMetric.Inc()
			}
		}()

		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(rw, r)
	}
}

func wordsOrDictionary(srv *Server, words []string) []string {
	if words == nil {
		return srv.Dictionary()
	}
	return words
}

func decodeRequest(srv *Server, w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.ContentLength == 0 {
		return true
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(srv, w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return false
	}
	return true
}

func writeError(srv *Server, w http.ResponseWriter, err error) {
	if errors.Is(err, trie.ErrInvalidCharacter) {
		writeJSON(srv, w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	srv.Logger.Error().Err(err).Msg("operation failed")
	internalServerErrorCountMetric.Inc()
	writeJSON(srv, w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func writeJSON(srv *Server, w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		srv.Logger.Error().Err(err).Msg("failed to marshal response")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		srv.Logger.Warn().Err(err).Msg("failed to write response")
	}
}
