package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"

	"cpd/internal/models"
	"cpd/internal/providers"
	"cpd/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.PlannerServiceInterface
	views   services.ViewServiceInterface
	prompts services.PromptServiceInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
}

func NewApiController(logger providers.Logger, service services.PlannerServiceInterface, views services.ViewServiceInterface, prompts services.PromptServiceInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		views:   views,
		prompts: prompts,
		cache:   cache,
		metrics: metrics,
	}
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		writeRaw(w, http.StatusOK, data)
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
	writeRaw(w, http.StatusOK, gson)
}

// dispatch applies a mutation and invalidates every cached view, since any
// action can change any derived projection.
func (ac *ApiController) dispatch(action models.Action) models.Snapshot {
	snap := ac.service.Dispatch(action)
	ac.metrics.IncDispatches(action.Name())
	ac.cache.Purge()
	return snap
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func validatePayload(w http.ResponseWriter, payload any) bool {
	v := validate.Struct(payload)
	if !v.Validate() {
		http.Error(w, v.Errors.OneError().Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeRaw(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, gson)
}

// --- personas ---

func (ac *ApiController) ListPersonas(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	ac.serveFromCacheOrCompute(w, "personas:"+q, func() (any, error) {
		return ac.views.FilterPersonas(ac.service.GetSnapshot(), q), nil
	})
}

func (ac *ApiController) CreatePersona(w http.ResponseWriter, r *http.Request) {
	var payload models.Persona
	if !decodeBody(w, r, &payload) {
		return
	}
	payload.ID = ""
	if !validatePayload(w, &payload) {
		return
	}

	snap := ac.dispatch(models.AddPersona{Persona: payload})
	writeJSON(w, http.StatusCreated, snap.Personas[len(snap.Personas)-1])
}

func (ac *ApiController) UpdatePersona(w http.ResponseWriter, r *http.Request) {
	var payload models.Persona
	if !decodeBody(w, r, &payload) {
		return
	}
	if id := r.URL.Query().Get("id"); id != "" {
		payload.ID = id
	}
	if !validatePayload(w, &payload) {
		return
	}

	snap := ac.service.GetSnapshot()
	if snap.FindPersona(payload.ID) == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	ac.dispatch(models.UpdatePersona{Persona: payload})
	writeJSON(w, http.StatusOK, payload)
}

func (ac *ApiController) DeletePersona(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	snap := ac.service.GetSnapshot()
	if snap.FindPersona(id) == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	// No cascade: blogs referencing this persona keep their reference.
	ac.dispatch(models.DeletePersona{ID: id})
	w.WriteHeader(http.StatusNoContent)
}

// --- blogs ---

func (ac *ApiController) ListBlogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := services.BlogQuery{
		Search:    query.Get("q"),
		Status:    models.BlogStatus(query.Get("status")),
		PersonaID: query.Get("persona"),
		SortBy:    query.Get("sort"),
		Order:     query.Get("order"),
	}
	if q.Status != "" && !q.Status.Valid() {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	switch q.SortBy {
	case "":
		q.SortBy = "publishDate"
	case "title", "status", "publishDate":
	default:
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	switch q.Order {
	case "":
		q.Order = "desc"
	case "asc", "desc":
	default:
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	// url-encoded so user-supplied values cannot collide with the separators
	cacheKey := "blogs?" + url.Values{
		"q":       {q.Search},
		"status":  {string(q.Status)},
		"persona": {q.PersonaID},
		"sort":    {q.SortBy},
		"order":   {q.Order},
	}.Encode()
	ac.serveFromCacheOrCompute(w, cacheKey, func() (any, error) {
		return ac.views.FilterBlogs(ac.service.GetSnapshot(), q), nil
	})
}

func (ac *ApiController) blogPayload(w http.ResponseWriter, r *http.Request) (models.BlogPost, bool) {
	var payload models.BlogPost
	if !decodeBody(w, r, &payload) {
		return payload, false
	}
	if !validatePayload(w, &payload) {
		return payload, false
	}
	if payload.Status != "" && !payload.Status.Valid() {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return payload, false
	}
	if payload.PublishDate != "" {
		if _, err := time.Parse(models.PublishDateLayout, payload.PublishDate); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return payload, false
		}
	}
	return payload, true
}

func (ac *ApiController) CreateBlog(w http.ResponseWriter, r *http.Request) {
	payload, ok := ac.blogPayload(w, r)
	if !ok {
		return
	}
	payload.ID = ""

	snap := ac.dispatch(models.AddBlog{Blog: payload})
	writeJSON(w, http.StatusCreated, snap.Blogs[len(snap.Blogs)-1])
}

func (ac *ApiController) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	payload, ok := ac.blogPayload(w, r)
	if !ok {
		return
	}
	if id := r.URL.Query().Get("id"); id != "" {
		payload.ID = id
	}

	snap := ac.service.GetSnapshot()
	existing := snap.FindBlog(payload.ID)
	if existing == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	// UPDATE_BLOG replaces the whole record, so an omitted status would be
	// stored as "". Keep the current one instead.
	if payload.Status == "" {
		payload.Status = existing.Status
	}

	ac.dispatch(models.UpdateBlog{Blog: payload})
	writeJSON(w, http.StatusOK, payload)
}

func (ac *ApiController) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	snap := ac.service.GetSnapshot()
	if snap.FindBlog(id) == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	ac.dispatch(models.DeleteBlog{ID: id})
	w.WriteHeader(http.StatusNoContent)
}

// --- derived views ---

func (ac *ApiController) GetCalendar(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	anchor := time.Now()
	if month != "" {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		anchor = parsed
	}

	ac.serveFromCacheOrCompute(w, "calendar:"+anchor.Format("2006-01"), func() (any, error) {
		return ac.views.CalendarMonth(ac.service.GetSnapshot(), anchor.Year(), anchor.Month()), nil
	})
}

func (ac *ApiController) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "analytics:"+time.Now().Format("2006-01-02"), func() (any, error) {
		return ac.views.Analytics(ac.service.GetSnapshot(), time.Now()), nil
	})
}

func (ac *ApiController) GetExports(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "exports", func() (any, error) {
		return ac.service.GetSnapshot().GptExports, nil
	})
}

// --- prompt export ---

type promptResponse struct {
	Prompt string `json:"prompt"`
	URL    string `json:"url"`
}

// GetPrompt renders the AI-tool prompt for a persona or blog and records the
// export event, so it is a mutation despite the GET verb.
func (ac *ApiController) GetPrompt(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	var prompt string
	var export models.GptExportRecord
	var err error
	switch r.URL.Query().Get("type") {
	case "persona":
		prompt, export, err = ac.prompts.ForPersona(id)
	case "blog":
		prompt, export, err = ac.prompts.ForBlog(id)
	default:
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.dispatch(models.AddGptExport{Export: export})
	writeJSON(w, http.StatusOK, promptResponse{Prompt: prompt, URL: ac.prompts.ExternalURL()})
}
