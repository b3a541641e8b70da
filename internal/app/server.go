package app

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/domain"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/logger"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/metrics"
	"github.com/omolayotimothy590-lgtm/Nuuz-Curated-News-sub000/internal/rank"
)

func (a *App) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/feed", a.handleFeed)
	mux.HandleFunc("POST /api/refresh", a.handleRefresh)
	mux.HandleFunc("POST /api/interactions", a.handleInteraction)
	mux.HandleFunc("PATCH /api/articles/{id}/category", a.handleUpdateCategory)
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc("GET /metrics", a.handleMetrics)
	return mux
}

type articleResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Summary         string    `json:"summary"`
	SourceName      string    `json:"source_name"`
	Category        string    `json:"category"`
	ImageURL        string    `json:"image_url,omitempty"`
	URL             string    `json:"url"`
	PublishedAt     time.Time `json:"published_at"`
	ReadTimeMinutes int       `json:"read_time_minutes"`
	Trending        bool      `json:"trending"`
}

type feedResponse struct {
	Articles []articleResponse `json:"articles"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	HasMore  bool              `json:"has_more"`
}

func (a *App) handleFeed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := q.Get("category")
	userID := q.Get("user")

	page := 0
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "page must be a non-negative integer")
			return
		}
		page = n
	}

	if category != "" && category != "all" && !domain.ValidCategory(domain.Category(category)) {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}

	result, err := a.snapshot.Feed(r.Context(), userID, category, page)
	if err != nil {
		logger.Error("feed request failed", "category", category, "error", err)
		writeError(w, http.StatusInternalServerError, "feed unavailable")
		return
	}

	resp := feedResponse{
		Articles: make([]articleResponse, 0, len(result.Articles)),
		Page:     result.Page,
		PageSize: result.PageSize,
		HasMore:  result.HasMore,
	}
	for _, art := range result.Articles {
		resp.Articles = append(resp.Articles, articleResponse{
			ID:              art.ID,
			Title:           art.Title,
			Summary:         art.Summary,
			SourceName:      art.SourceName,
			Category:        string(art.Category),
			ImageURL:        art.ImageURL,
			URL:             art.URL,
			PublishedAt:     art.PublishedAt,
			ReadTimeMinutes: art.ReadTimeMinutes,
			Trending:        art.Trending,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *App) handleRefresh(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := q.Get("category")
	userID := q.Get("user")

	result, err := a.pipeline.Run(r.Context(), userID, category)
	if err != nil {
		logger.Error("on-demand refresh failed", "error", err)
		writeError(w, http.StatusInternalServerError, "refresh failed")
		return
	}
	a.snapshot.Invalidate()

	writeJSON(w, http.StatusOK, map[string]any{
		"inserted":       result.Inserted,
		"skipped":        result.Skipped,
		"seen":           result.Seen,
		"failed_sources": result.SourcesFailed,
		"duration":       result.Duration.String(),
	})
}

type interactionRequest struct {
	UserID    string `json:"user_id"`
	ArticleID string `json:"article_id"`
	Action    string `json:"action"`
}

func (a *App) handleInteraction(w http.ResponseWriter, r *http.Request) {
	var req interactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.UserID == "" || req.ArticleID == "" {
		writeError(w, http.StatusBadRequest, "user_id and article_id are required")
		return
	}
	action := domain.Action(req.Action)
	if !domain.ValidAction(action) {
		writeError(w, http.StatusBadRequest, "unknown action")
		return
	}

	err := a.store.InsertInteraction(r.Context(), domain.Interaction{
		UserID:    req.UserID,
		ArticleID: req.ArticleID,
		Action:    action,
		CreatedAt: time.Now(),
	})
	if err != nil {
		logger.Error("interaction insert failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not record interaction")
		return
	}

	// Positive actions also feed the article's global popularity
	// aggregate. Dislikes shape the user's profile, not the aggregate.
	if weight := rank.ActionWeights[action]; weight > 0 {
		if err := a.store.AddEngagement(r.Context(), req.ArticleID, weight); err != nil {
			logger.Warn("engagement update failed", "article", req.ArticleID, "error", err)
		}
	}
	a.snapshot.Invalidate()

	w.WriteHeader(http.StatusNoContent)
}

type categoryUpdateRequest struct {
	Category string `json:"category"`
}

// handleUpdateCategory is the manual correction path for a misfiled
// article.
func (a *App) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	articleID := r.PathValue("id")

	var req categoryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	category := domain.Category(req.Category)
	if !domain.ValidCategory(category) {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}

	if err := a.store.UpdateArticleCategory(r.Context(), articleID, category); err != nil {
		logger.Error("category correction failed", "article", articleID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not update category")
		return
	}
	metrics.Global.IncrementReclassified()
	a.snapshot.Invalidate()

	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	healthy, lastRun, lastErr := metrics.Global.Healthy()

	status := http.StatusOK
	state := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "error"
	}

	writeJSON(w, status, map[string]any{
		"status":     state,
		"last_run":   lastRun.Format(time.RFC3339),
		"last_error": lastErr,
	})
}

func (a *App) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metrics.Global.GetStats())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
