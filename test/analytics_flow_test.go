package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/mkovacev/traintrack/internal/analytics"
	"github.com/mkovacev/traintrack/internal/catalog"
	"github.com/mkovacev/traintrack/internal/middleware"
	"github.com/mkovacev/traintrack/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) doRequest(
	ctx context.Context,
	method, path string,
	body []byte,
	authToken string,
) (int, []byte) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, bodyReader)
	require.NoError(s.T(), err)

	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(middleware.AuthTokenHeader, authToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer func() {
		require.NoError(s.T(), resp.Body.Close())
	}()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) addCatalogExercise(ctx context.Context, exercise catalog.Exercise) {
	exerciseJson, err := json.Marshal(exercise)
	require.NoError(s.T(), err)

	status, _ := s.doRequest(ctx, http.MethodPost, "/catalog", exerciseJson, testMobileAppSecret)
	require.Equal(s.T(), http.StatusCreated, status)
}

func (s *IntegrationTestSuite) recordSession(ctx context.Context, session workouts.Session) workouts.Session {
	sessionJson, err := json.Marshal(session)
	require.NoError(s.T(), err)

	status, respBytes := s.doRequest(ctx, http.MethodPost, "/workouts", sessionJson, testMobileAppSecret)
	require.Equal(s.T(), http.StatusCreated, status)

	var recorded workouts.Session
	require.NoError(s.T(), json.Unmarshal(respBytes, &recorded))
	require.NotEmpty(s.T(), recorded.ID)

	return recorded
}

func (s *IntegrationTestSuite) getSummary(ctx context.Context, userID string) analytics.SummaryResponse {
	status, respBytes := s.doRequest(
		ctx, http.MethodGet,
		fmt.Sprintf("/analytics/user/%s/summary", userID),
		nil, testMobileAppSecret,
	)
	require.Equal(s.T(), http.StatusOK, status)

	var summary analytics.SummaryResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &summary))
	return summary
}

func (s *IntegrationTestSuite) TestVersionAndUnauthorized() {
	ctx := context.Background()

	// version endpoint needs no auth token
	status, respBytes := s.doRequest(ctx, http.MethodGet, "/version", nil, "")
	require.Equal(s.T(), http.StatusOK, status)
	assert.Equal(s.T(), "test-version-info", string(respBytes))

	// everything else does
	status, _ = s.doRequest(ctx, http.MethodGet, "/catalog", nil, "")
	assert.Equal(s.T(), http.StatusUnauthorized, status)

	status, _ = s.doRequest(ctx, http.MethodGet, "/catalog", nil, "made-up-token")
	assert.Equal(s.T(), http.StatusUnauthorized, status)
}

func (s *IntegrationTestSuite) TestLoginLogout() {
	ctx := context.Background()

	loginReqJson, err := json.Marshal(map[string]string{
		"username": testUsername,
		"password": "testpass",
	})
	require.NoError(s.T(), err)

	status, respBytes := s.doRequest(ctx, http.MethodPost, "/a/login", loginReqJson, "")
	require.Equal(s.T(), http.StatusOK, status)

	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(s.T(), json.Unmarshal(respBytes, &loginResp))
	require.NotEmpty(s.T(), loginResp.Token)

	// the session token works same as the app secret
	status, _ = s.doRequest(ctx, http.MethodGet, "/catalog", nil, loginResp.Token)
	assert.Equal(s.T(), http.StatusOK, status)

	status, _ = s.doRequest(ctx, http.MethodGet, "/a/logout", nil, loginResp.Token)
	require.Equal(s.T(), http.StatusOK, status)

	// and is dead after logout
	status, _ = s.doRequest(ctx, http.MethodGet, "/catalog", nil, loginResp.Token)
	assert.Equal(s.T(), http.StatusUnauthorized, status)
}

func (s *IntegrationTestSuite) TestWrongCredentials() {
	ctx := context.Background()

	loginReqJson, err := json.Marshal(map[string]string{
		"username": testUsername,
		"password": "wrong-password",
	})
	require.NoError(s.T(), err)

	status, _ := s.doRequest(ctx, http.MethodPost, "/a/login", loginReqJson, "")
	assert.Equal(s.T(), http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestWorkoutsAnalyticsFlow() {
	ctx := context.Background()
	userID := "integration-user-1"

	s.addCatalogExercise(ctx, catalog.Exercise{
		ID:             "bench_press",
		Name:           "Bench Press",
		TargetZone:     "Chest",
		PrimaryMuscles: []string{"chest", "triceps"},
		Difficulty:     "intermediate",
	})
	s.addCatalogExercise(ctx, catalog.Exercise{
		ID:             "barbell_row",
		Name:           "Barbell Row",
		TargetZone:     "Back",
		PrimaryMuscles: []string{"lats"},
		Difficulty:     "intermediate",
	})

	dayBeforeYesterday := time.Now().Add(-48 * time.Hour).UTC()
	yesterday := time.Now().Add(-24 * time.Hour).UTC()

	session1 := s.recordSession(ctx, workouts.Session{
		UserID:      userID,
		PerformedAt: dayBeforeYesterday,
		Exercises: []workouts.ExerciseLog{
			{
				ExerciseID: "bench_press",
				Name:       "Bench Press",
				Sets: []workouts.SetLog{
					{SetIndex: 0, Weight: 100, Reps: 10},
					{SetIndex: 1, Weight: 100, Reps: 10},
					{SetIndex: 2, Weight: 100, Reps: 10},
				},
			},
			{
				ExerciseID: "barbell_row",
				Name:       "Barbell Row",
				Sets: []workouts.SetLog{
					{SetIndex: 0, Weight: 60, Reps: 8},
					{SetIndex: 1, Weight: 60, Reps: 8},
				},
			},
		},
	})

	session2 := s.recordSession(ctx, workouts.Session{
		UserID:      userID,
		PerformedAt: yesterday,
		Exercises: []workouts.ExerciseLog{
			{
				ExerciseID: "bench_press",
				Name:       "Bench Press",
				Sets: []workouts.SetLog{
					{SetIndex: 0, Weight: 105, Reps: 8},
					{SetIndex: 1, Weight: 105, Reps: 8},
				},
			},
		},
	})

	// session1: 3x100x10 + 2x60x8 = 3960, session2: 2x105x8 = 1680
	summary := s.getSummary(ctx, userID)
	assert.Equal(s.T(), userID, summary.UserID)
	assert.Equal(s.T(), 2, summary.TotalWorkouts)
	assert.InDelta(s.T(), 5640, summary.TotalVolume, 0.001)
	assert.Len(s.T(), summary.TrainingDates, 2)
	assert.Greater(s.T(), summary.ConsistencyScore, 0)

	// best bench set stays 100x10=1000, the 105x8=840 from session2 does not beat it
	benchPR, ok := summary.PersonalRecords["bench press"]
	require.True(s.T(), ok)
	assert.InDelta(s.T(), 1000, benchPR.Volume, 0.001)
	require.NotEmpty(s.T(), summary.TopRecords)
	assert.Equal(s.T(), "Bench Press", summary.TopRecords[0].Exercise)

	status, respBytes := s.doRequest(
		ctx, http.MethodGet,
		fmt.Sprintf("/analytics/user/%s/distribution", userID),
		nil, testMobileAppSecret,
	)
	require.Equal(s.T(), http.StatusOK, status)

	var distResp analytics.DistributionResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &distResp))
	require.Len(s.T(), distResp.Distribution, 2)
	assert.Equal(s.T(), "Chest", distResp.Distribution[0].TargetZone)
	assert.InDelta(s.T(), 4680, distResp.Distribution[0].Volume, 0.001)
	assert.Equal(s.T(), "Back", distResp.Distribution[1].TargetZone)
	assert.InDelta(
		s.T(), 100,
		distResp.Distribution[0].Percentage+distResp.Distribution[1].Percentage,
		0.001,
	)

	status, respBytes = s.doRequest(
		ctx, http.MethodGet,
		fmt.Sprintf("/analytics/user/%s/rank", userID),
		nil, testMobileAppSecret,
	)
	require.Equal(s.T(), http.StatusOK, status)

	// two sessions one day apart still counts as an elite weekly pace
	var rank analytics.UserRank
	require.NoError(s.T(), json.Unmarshal(respBytes, &rank))
	assert.Equal(s.T(), "Elite", rank.Label)

	status, respBytes = s.doRequest(
		ctx, http.MethodGet,
		fmt.Sprintf("/analytics/user/%s/heatmap", userID),
		nil, testMobileAppSecret,
	)
	require.Equal(s.T(), http.StatusOK, status)

	var heatmapResp analytics.HeatmapResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &heatmapResp))
	assert.InDelta(s.T(), 1.0, heatmapResp.Heatmap["chest"], 0.001)
	assert.InDelta(s.T(), 1.0, heatmapResp.Heatmap["triceps"], 0.001)
	assert.InDelta(s.T(), 960.0/4680.0, heatmapResp.Heatmap["lats"], 0.001)

	status, respBytes = s.doRequest(
		ctx, http.MethodPost,
		fmt.Sprintf("/analytics/user/%s/rebuild", userID),
		nil, testMobileAppSecret,
	)
	require.Equal(s.T(), http.StatusOK, status)

	var rebuildResp analytics.RebuildResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &rebuildResp))
	assert.True(s.T(), rebuildResp.Rebuilt)

	// rebuild from raw sessions lands on the same numbers
	rebuilt := s.getSummary(ctx, userID)
	assert.Equal(s.T(), summary.TotalWorkouts, rebuilt.TotalWorkouts)
	assert.InDelta(s.T(), summary.TotalVolume, rebuilt.TotalVolume, 0.001)
	assert.Equal(s.T(), summary.TrainingDates, rebuilt.TrainingDates)
	assert.Equal(s.T(), summary.ConsistencyScore, rebuilt.ConsistencyScore)

	// deleting a session triggers a rebuild without it
	status, _ = s.doRequest(
		ctx, http.MethodDelete,
		"/workouts/"+session2.ID,
		nil, testMobileAppSecret,
	)
	require.Equal(s.T(), http.StatusOK, status)

	afterDelete := s.getSummary(ctx, userID)
	assert.Equal(s.T(), 1, afterDelete.TotalWorkouts)
	assert.InDelta(s.T(), 3960, afterDelete.TotalVolume, 0.001)
	assert.Equal(s.T(), []string{session1.PerformedAt.UTC().Format("2006-01-02")}, afterDelete.TrainingDates)
}

// two first-ever sessions of the same user applied at the same time
// must both land in the summary, none may overwrite the other
func (s *IntegrationTestSuite) TestConcurrentFirstSessions() {
	ctx := context.Background()
	userID := "concurrent-user-1"

	weights := []float64{50, 100}
	statuses := make(chan int, len(weights))

	var wg sync.WaitGroup
	for _, weight := range weights {
		wg.Add(1)
		go func(weight float64) {
			defer wg.Done()

			sessionJson, err := json.Marshal(workouts.Session{
				UserID:      userID,
				PerformedAt: time.Now().Add(-time.Hour).UTC(),
				Exercises: []workouts.ExerciseLog{
					{
						Name: "Deadlift",
						Sets: []workouts.SetLog{
							{SetIndex: 0, Weight: workouts.FlexFloat(weight), Reps: 10},
						},
					},
				},
			})
			if err != nil {
				statuses <- 0
				return
			}

			req, err := http.NewRequestWithContext(
				ctx, http.MethodPost, serverEndpoint+"/workouts", bytes.NewReader(sessionJson),
			)
			if err != nil {
				statuses <- 0
				return
			}
			req.Header.Set("User-Agent", "test-agent")
			req.Header.Set(middleware.AuthTokenHeader, testMobileAppSecret)
			req.Header.Set("Content-Type", "application/json")

			resp, err := s.httpClient.Do(req)
			if err != nil {
				statuses <- 0
				return
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			statuses <- resp.StatusCode
		}(weight)
	}

	wg.Wait()
	close(statuses)
	for status := range statuses {
		require.Equal(s.T(), http.StatusCreated, status)
	}

	// 50x10 + 100x10, both sessions survived
	summary := s.getSummary(ctx, userID)
	assert.Equal(s.T(), 2, summary.TotalWorkouts)
	assert.InDelta(s.T(), 1500, summary.TotalVolume, 0.001)

	deadliftPR, ok := summary.PersonalRecords["deadlift"]
	require.True(s.T(), ok)
	assert.InDelta(s.T(), 1000, deadliftPR.Volume, 0.001)
}

func (s *IntegrationTestSuite) TestSummaryNotFound() {
	ctx := context.Background()

	status, _ := s.doRequest(
		ctx, http.MethodGet,
		"/analytics/user/no-such-user/summary",
		nil, testMobileAppSecret,
	)
	assert.Equal(s.T(), http.StatusNotFound, status)
}
