package srv

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/box1bs/lemmagen/internal/lemmatizer"
	"github.com/box1bs/lemmagen/internal/logo"
	"github.com/box1bs/lemmagen/internal/model"
	"github.com/box1bs/lemmagen/internal/repository"
	"github.com/box1bs/lemmagen/internal/server/validation"
	"github.com/box1bs/lemmagen/internal/textHandling"
	"github.com/box1bs/lemmagen/pkg/logger"
	"github.com/pkg/errors"
)

const maxBodyBytes = 4 << 20

type server struct {
	lib 		*lemmatizer.Library
	catalog 	model.Catalog
	logger 		*logger.Logger
	validator 	*validation.LemmatizeValidator
	onPinned 	func(*lemmatizer.Snapshot)
}

// NewLemmagenServer wires the HTTP handlers. catalog may be nil, in which
// case loading by language is rejected.
func NewLemmagenServer(lib *lemmatizer.Library, catalog model.Catalog, logger *logger.Logger) *server {
	return &server{
		lib: 		lib,
		catalog: 	catalog,
		logger: 	logger,
		validator: 	validation.NewLemmatizeValidator(),
	}
}

type LoadRequest struct {
	Path     string `json:"path"`
	Language string `json:"language"`
}

type StatusResponse struct {
	Status string           `json:"status"`
	Loaded bool             `json:"loaded"`
	Info   *lemmatizer.Info `json:"info,omitempty"`
	Error  string           `json:"error,omitempty"`
}

type LemmatizeRequest struct {
	Words []string `json:"words"`
	Text  string   `json:"text"`
}

type LemmatizeResponse struct {
	Lemmas []string `json:"lemmas,omitempty"`
	Text   string   `json:"text,omitempty"`
}

type LanguagesResponse struct {
	Languages []model.RulesetEntry `json:"languages"`
}

func httpStatus(st lemmatizer.Status) int {
	switch st {
	case lemmatizer.StatusOK:
		return http.StatusOK
	case lemmatizer.StatusFileNotFound:
		return http.StatusNotFound
	case lemmatizer.StatusNotAFile, lemmatizer.StatusMalformedRuleFile:
		return http.StatusUnprocessableEntity
	case lemmatizer.StatusNotLoaded:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, code int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

func (s *server) statusResponse(st lemmatizer.Status, err error) StatusResponse {
	resp := StatusResponse{Status: st.String()}
	if info, ok := s.lib.Info(); ok {
		resp.Loaded = true
		resp.Info = &info
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *server) loadHandler(w http.ResponseWriter, r *http.Request) {
	var req LoadRequest
	if !decode(w, r, &req) {
		return
	}
	if err := validation.ValidateSource(req.Path, req.Language); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var err error
	if req.Language != "" {
		if s.catalog == nil {
			http.Error(w, "ruleset catalog is not configured", http.StatusBadRequest)
			return
		}
		var entry *model.RulesetEntry
		entry, err = s.catalog.Get(req.Language)
		if errors.Is(err, repository.ErrInvalidLanguage) {
			writeJSON(w, http.StatusBadRequest, s.statusResponse(lemmatizer.StatusLoadFailed, err))
			return
		}
		if errors.Is(err, repository.ErrRulesetNotFound) {
			writeJSON(w, http.StatusNotFound, s.statusResponse(lemmatizer.StatusFileNotFound, err))
			return
		}
		if err == nil {
			err = s.lib.LoadEntry(entry)
		}
	} else {
		err = s.lib.LoadContext(r.Context(), req.Path)
	}

	st := lemmatizer.StatusOf(err)
	if err != nil {
		s.logger.Write(logger.NewMessage(logger.SERVER_LAYER, logger.ERROR, "load request failed: %v", err))
	}
	writeJSON(w, httpStatus(st), s.statusResponse(st, err))
}

func (s *server) lemmatizeHandler(w http.ResponseWriter, r *http.Request) {
	var req LemmatizeRequest
	if !decode(w, r, &req) {
		return
	}
	if len(req.Words) == 0 && req.Text == "" {
		http.Error(w, validation.ErrEmptyRequest.Error(), http.StatusBadRequest)
		return
	}
	if err := s.validator.ValidateWords(req.Words); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.validator.ValidateText(req.Text); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := s.lib.Current()
	if err != nil {
		writeJSON(w, http.StatusConflict, s.statusResponse(lemmatizer.StatusNotLoaded, err))
		return
	}
	if s.onPinned != nil {
		s.onPinned(snap)
	}

	// words and text are both answered from snap, even if a reload lands meanwhile
	resp := LemmatizeResponse{}
	if len(req.Words) > 0 {
		if resp.Lemmas, err = s.lib.LemmatizeBatchOn(r.Context(), snap, req.Words); err != nil {
			st := lemmatizer.StatusOf(err)
			writeJSON(w, httpStatus(st), s.statusResponse(st, err))
			return
		}
	}
	if req.Text != "" {
		resp.Text = textHandling.LemmatizeText(snap, req.Text)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) unloadHandler(w http.ResponseWriter, r *http.Request) {
	s.lib.Unload()
	writeJSON(w, http.StatusOK, s.statusResponse(lemmatizer.StatusOK, nil))
}

func (s *server) statusHandler(w http.ResponseWriter, r *http.Request) {
	st := lemmatizer.StatusOK
	if !s.lib.Loaded() {
		st = lemmatizer.StatusNotLoaded
	}
	writeJSON(w, http.StatusOK, s.statusResponse(st, nil))
}

func (s *server) languagesHandler(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeJSON(w, http.StatusOK, LanguagesResponse{Languages: []model.RulesetEntry{}})
		return
	}
	list, err := s.catalog.List()
	if err != nil {
		s.logger.Write(logger.NewMessage(logger.SERVER_LAYER, logger.ERROR, "list languages: %v", err))
		http.Error(w, "failed to list languages", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, LanguagesResponse{Languages: list})
}

func (s *server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /load", s.loadHandler)
	mux.HandleFunc("POST /lemmatize", s.lemmatizeHandler)
	mux.HandleFunc("POST /unload", s.unloadHandler)
	mux.HandleFunc("GET /status", s.statusHandler)
	mux.HandleFunc("GET /languages", s.languagesHandler)
	return mux
}

func StartServer(port int, lib *lemmatizer.Library, catalog model.Catalog, log *logger.Logger) error {
	s := NewLemmagenServer(lib, catalog, log)
	srv := &http.Server{
		Addr: 				fmt.Sprintf(":%d", port),
		Handler: 			s.Handler(),
		ReadHeaderTimeout: 	10 * time.Second,
	}
	logo.PrintLogo()
	log.Write(logger.NewMessage(logger.SERVER_LAYER, logger.INFO, "REST API started at %d", port))
	return srv.ListenAndServe()
}
