package advisor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eurouni/eurostudy/internal/utils"
)

func TestPredictPassesBodyAndReturnsRawResponse(t *testing.T) {
	var gotPath string
	var gotBody StudentProfileRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","prediction":{"admission_chance":0.72}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	raw, err := c.Predict(context.Background(), StudentProfileRequest{GPA: 3.6, IELTS: 7.0, Budget: 20000})
	require.NoError(t, err)

	assert.Equal(t, "/predict", gotPath)
	assert.Equal(t, 3.6, gotBody.GPA)
	// the response passes through verbatim, fields and all
	assert.Contains(t, string(raw), "admission_chance")
}

func TestEnvelopeFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"error","message":"model not loaded"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.Recommend(context.Background(), StudentProfileRequest{})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestNon2xxIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.CostAnalysis(context.Background(), CostAnalysisRequest{TuitionFee: 9000, Country: "Germany"})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
}

func TestUnreachableBackend(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", nil)
	_, err := c.Scholarships(context.Background(), ScholarshipRequest{Country: "France"})
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
}

func TestUniversitiesCached(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/universities", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","universities":[{"id":"tum"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	ctx := context.Background()

	first, err := c.Universities(ctx)
	require.NoError(t, err)
	second, err := c.Universities(ctx)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, 1, calls)
}

func TestUniversitiesErrorNotCached(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"status":"success","universities":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	ctx := context.Background()

	_, err := c.Universities(ctx)
	require.Error(t, err)

	_, err = c.Universities(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestQueryPassesQuestion(t *testing.T) {
	var gotBody QueryRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/query", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"status":"success","answer":"Most universities require IELTS between 6.0 and 7.5."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	raw, err := c.Query(context.Background(), QueryRequest{Query: "ielts requirements"})
	require.NoError(t, err)
	assert.Equal(t, "ielts requirements", gotBody.Query)
	assert.Contains(t, string(raw), "IELTS")
}

func TestGenerateSOPWireFields(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ai/sop/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"status":"success","sop_text":"I am writing to express..."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	raw, err := c.GenerateSOP(context.Background(), SOPRequest{
		UniversityName:    "TU Delft",
		CourseName:        "Data Science",
		StudentBackground: "statistics",
		CareerGoals:       "applied ML research",
		Tone:              "Academic",
	})
	require.NoError(t, err)

	// the backend owns the camelCase field names
	assert.Equal(t, "TU Delft", gotBody["universityName"])
	assert.Equal(t, "Data Science", gotBody["courseName"])
	assert.Equal(t, "Academic", gotBody["tone"])
	assert.Contains(t, string(raw), "sop_text")
}

func TestScholarshipsByCountryEscapesPath(t *testing.T) {
	var gotPath string
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"status":"success","scholarships":[],"total":0}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.ScholarshipsByCountry(context.Background(), "Bosnia and Herzegovina")
	require.NoError(t, err)
	assert.Equal(t, "/scholarships-by-country/Bosnia%20and%20Herzegovina", gotPath)

	// per-country responses are cached like the other catalog calls
	_, err = c.ScholarshipsByCountry(context.Background(), "Bosnia and Herzegovina")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestFilterScholarshipsQueryString(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scholarships-filter", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"status":"success","scholarships":[],"total":0}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.FilterScholarships(context.Background(), ScholarshipFilter{
		Country:   "France",
		MinAmount: 5000,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"France"}, gotQuery["country"])
	assert.Equal(t, []string{"5000"}, gotQuery["min_amount"])
	// zero-valued criteria never reach the wire
	assert.NotContains(t, gotQuery, "coverage")
	assert.NotContains(t, gotQuery, "max_amount")
}

func TestGenerateSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/resume/ai/generate-summary", r.URL.Path)
		w.Write([]byte(`{"status":"success","summary":"Driven graduate."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	resp, err := c.GenerateSummary(context.Background(), SummaryRequest{Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Driven graduate.", resp.Summary)
}
