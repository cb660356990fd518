package controllers

import (
	"cellar/internal/models"
	"cellar/internal/providers"
	"cellar/internal/services"
	"errors"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.CellarServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.CellarServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	gson, err := json.Marshal(body)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func (ac *ApiController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrWineNotFound), errors.Is(err, services.ErrLogNotFound), errors.Is(err, services.ErrNoteNotFound):
		http.Error(w, "Not Found", http.StatusNotFound)
	default:
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "%s %s failed: %s", r.Method, r.URL.Path, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

// revisionKey prefixes cache keys with the document revision so entries
// written before a mutation are never served after it.
func (ac *ApiController) revisionKey(prefix string) string {
	return prefix + ":" + strconv.FormatUint(ac.service.Revision(), 10)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// filterFromQuery reads style, country and location (repeatable), the
// inCellar and haveQty toggles, q and sort.
func filterFromQuery(r *http.Request) (models.FilterSet, models.SortKey) {
	q := r.URL.Query()
	f := models.FilterSet{
		Styles:       q["style"],
		Countries:    q["country"],
		Locations:    q["location"],
		OnlyInCellar: cast.ToBool(q.Get("inCellar")),
		OnlyHaveQty:  cast.ToBool(q.Get("haveQty")),
		Query:        q.Get("q"),
	}
	key := models.SortKey(q.Get("sort"))
	if key == "" {
		key = models.SortByLocation
	}
	return f, key
}

func (ac *ApiController) ListWines(w http.ResponseWriter, r *http.Request) {
	filter, key := filterFromQuery(r)
	ac.serveFromCacheOrCompute(w, ac.revisionKey("wines")+":"+r.URL.RawQuery, func() (any, error) {
		return ac.service.ListWines(filter, key), nil
	})
}

func (ac *ApiController) GetWine(w http.ResponseWriter, r *http.Request) {
	view, err := ac.service.Wine(r.PathValue("id"))
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (ac *ApiController) Consume(w http.ResponseWriter, r *http.Request) {
	var in models.ConsumptionInput
	if !decodeBody(w, r, &in) {
		return
	}
	id := r.PathValue("id")
	result, err := ac.service.RecordConsumption(id, in)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.logger.Infof(providers.TypePost, "Consumed %d x %s on %s", result.Log.Quantity, id, result.Log.Date)
	writeJSON(w, http.StatusCreated, result)
}

func (ac *ApiController) GetFacets(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "facets", func() (any, error) {
		return ac.service.Facets(), nil
	})
}

func (ac *ApiController) GetJournal(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, ac.revisionKey("journal"), func() (any, error) {
		return ac.service.Journal(), nil
	})
}

func (ac *ApiController) GetLog(w http.ResponseWriter, r *http.Request) {
	view, err := ac.service.Log(r.PathValue("key"))
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (ac *ApiController) EditLog(w http.ResponseWriter, r *http.Request) {
	var changes models.LogChanges
	if !decodeBody(w, r, &changes) {
		return
	}
	key := r.PathValue("key")
	result, err := ac.service.EditLog(key, changes)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.logger.Infof(providers.TypePost, "Edited log %s of %s", key, result.Log.ID)
	writeJSON(w, http.StatusOK, result)
}

func (ac *ApiController) DeleteLog(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if err := ac.service.DeleteLog(key); err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.logger.Infof(providers.TypePost, "Deleted log %s", key)
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) AddNote(w http.ResponseWriter, r *http.Request) {
	var in models.NoteInput
	if !decodeBody(w, r, &in) {
		return
	}
	note, err := ac.service.AddNote(in)
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (ac *ApiController) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := ac.service.DeleteNote(r.PathValue("id")); err != nil {
		ac.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) Export(w http.ResponseWriter, r *http.Request) {
	payload, err := ac.service.Export()
	if err != nil {
		ac.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `inline; filename="cellar-state.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (ac *ApiController) Reset(w http.ResponseWriter, r *http.Request) {
	if err := ac.service.Reset(); err != nil {
		ac.writeError(w, r, err)
		return
	}
	ac.logger.Warnf(providers.TypePost, "Local data reset via API")
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

type verifyResponse struct {
	Consistent    bool                 `json:"consistent"`
	Discrepancies []models.Discrepancy `json:"discrepancies"`
}

func (ac *ApiController) Verify(w http.ResponseWriter, r *http.Request) {
	discrepancies := ac.service.Verify()
	if discrepancies == nil {
		discrepancies = []models.Discrepancy{}
	}
	writeJSON(w, http.StatusOK, verifyResponse{
		Consistent:    len(discrepancies) == 0,
		Discrepancies: discrepancies,
	})
}
