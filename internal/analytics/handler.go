package analytics

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=analytics_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mkovacev/traintrack/internal/telemetry/tracing"
	"github.com/mkovacev/traintrack/internal/workouts"
	"github.com/mkovacev/traintrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	defaultProgressionWeeks = 8
	maxProgressionWeeks     = 52
)

type analyticsService interface {
	GetSummary(ctx context.Context, userID string) (*UserAnalyticsSummary, error)
	RebuildForUser(ctx context.Context, userID string) error
}

type statsAnalyzer interface {
	MuscleDistribution(ctx context.Context, sessions []workouts.Session) ([]ZoneVolume, error)
	VolumeProgression(ctx context.Context, sessions []workouts.Session, weeks int) []WeeklyVolume
	UserRank(ctx context.Context, sessions []workouts.Session) UserRank
	Heatmap(ctx context.Context, sessions []workouts.Session) (map[string]float64, error)
}

type userSessions interface {
	List(ctx context.Context, userID string) ([]workouts.Session, error)
}

type SummaryResponse struct {
	*UserAnalyticsSummary
	TopRecords []PersonalRecord `json:"topRecords"`
}

type DistributionResponse struct {
	Distribution []ZoneVolume `json:"distribution"`
}

type ProgressionResponse struct {
	Progression []WeeklyVolume `json:"progression"`
	Weeks       int            `json:"weeks"`
}

type HeatmapResponse struct {
	Heatmap map[string]float64 `json:"heatmap"`
}

type RebuildResponse struct {
	UserID  string `json:"userId"`
	Rebuilt bool   `json:"rebuilt"`
}

type Handler struct {
	service  analyticsService
	analyzer statsAnalyzer
	sessions userSessions
}

func NewHandler(service analyticsService, analyzer statsAnalyzer, sessions userSessions) *Handler {
	return &Handler{
		service:  service,
		analyzer: analyzer,
		sessions: sessions,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/analytics/user/{userId}/summary", handler.HandleGetSummary).
		Methods("GET", "OPTIONS").Name("analytics-summary")
	router.HandleFunc("/analytics/user/{userId}/distribution", handler.HandleDistribution).
		Methods("GET", "OPTIONS").Name("analytics-distribution")
	router.HandleFunc("/analytics/user/{userId}/progression", handler.HandleProgression).
		Methods("GET", "OPTIONS").Name("analytics-progression")
	router.HandleFunc("/analytics/user/{userId}/rank", handler.HandleRank).
		Methods("GET", "OPTIONS").Name("analytics-rank")
	router.HandleFunc("/analytics/user/{userId}/heatmap", handler.HandleHeatmap).
		Methods("GET", "OPTIONS").Name("analytics-heatmap")
	router.HandleFunc("/analytics/user/{userId}/rebuild", handler.HandleRebuild).
		Methods("POST", "OPTIONS").Name("analytics-rebuild")
}

func (handler *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.summary")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	summary, err := handler.service.GetSummary(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrSummaryNotFound) {
			http.Error(w, "summary not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get summary for user [%s]: %s", userID, err)
		http.Error(w, "failed to get summary", http.StatusInternalServerError)
		return
	}

	summaryJson, err := json.Marshal(SummaryResponse{
		UserAnalyticsSummary: summary,
		TopRecords:           summary.SortedPersonalRecords(),
	})
	if err != nil {
		log.Errorf("failed to marshal summary for user [%s]: %s", userID, err)
		http.Error(w, "failed to marshal summary", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, summaryJson, http.StatusOK)
}

func (handler *Handler) HandleDistribution(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.distribution")
	defer span.End()

	sessions, ok := handler.listSessions(ctx, w, r)
	if !ok {
		return
	}

	distribution, err := handler.analyzer.MuscleDistribution(ctx, sessions)
	if err != nil {
		log.Errorf("muscle distribution error: %s", err)
		http.Error(w, "failed to compute muscle distribution", http.StatusInternalServerError)
		return
	}

	handler.writeJson(w, DistributionResponse{Distribution: distribution})
}

func (handler *Handler) HandleProgression(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.progression")
	defer span.End()

	weeks := defaultProgressionWeeks
	if weeksParam := r.URL.Query().Get("weeks"); weeksParam != "" {
		parsed, err := strconv.Atoi(weeksParam)
		if err != nil || parsed < 1 || parsed > maxProgressionWeeks {
			http.Error(w, "error, invalid weeks parameter", http.StatusBadRequest)
			return
		}
		weeks = parsed
	}

	sessions, ok := handler.listSessions(ctx, w, r)
	if !ok {
		return
	}

	progression := handler.analyzer.VolumeProgression(ctx, sessions, weeks)
	handler.writeJson(w, ProgressionResponse{Progression: progression, Weeks: weeks})
}

func (handler *Handler) HandleRank(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.rank")
	defer span.End()

	sessions, ok := handler.listSessions(ctx, w, r)
	if !ok {
		return
	}

	handler.writeJson(w, handler.analyzer.UserRank(ctx, sessions))
}

func (handler *Handler) HandleHeatmap(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.heatmap")
	defer span.End()

	sessions, ok := handler.listSessions(ctx, w, r)
	if !ok {
		return
	}

	heatmap, err := handler.analyzer.Heatmap(ctx, sessions)
	if err != nil {
		log.Errorf("heatmap error: %s", err)
		http.Error(w, "failed to compute heatmap", http.StatusInternalServerError)
		return
	}

	handler.writeJson(w, HeatmapResponse{Heatmap: heatmap})
}

func (handler *Handler) HandleRebuild(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.rebuild")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	if err := handler.service.RebuildForUser(ctx, userID); err != nil {
		log.Errorf("failed to rebuild summary for user [%s]: %s", userID, err)
		http.Error(w, "failed to rebuild summary", http.StatusInternalServerError)
		return
	}

	log.Debugf("summary rebuild done for user [%s]", userID)
	handler.writeJson(w, RebuildResponse{UserID: userID, Rebuilt: true})
}

func (handler *Handler) listSessions(ctx context.Context, w http.ResponseWriter, r *http.Request) ([]workouts.Session, bool) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return nil, false
	}

	sessions, err := handler.sessions.List(ctx, userID)
	if err != nil {
		log.Errorf("list sessions for user [%s] error: %s", userID, err)
		http.Error(w, "failed to get workout sessions", http.StatusInternalServerError)
		return nil, false
	}

	return sessions, true
}

func (handler *Handler) writeJson(w http.ResponseWriter, response interface{}) {
	responseJson, err := json.Marshal(response)
	if err != nil {
		log.Errorf("marshal analytics response error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, responseJson, http.StatusOK)
}
