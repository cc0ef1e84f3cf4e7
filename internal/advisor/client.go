// Package advisor wraps the external analytics backend that owns all
// matching, prediction and cost logic. The wire schema belongs to that
// service; responses are passed through verbatim after a defensive
// envelope check. No retries, no backoff: a failed call surfaces as a
// recoverable error and the caller's local state is untouched.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/eurouni/eurostudy/internal/models"
	"github.com/eurouni/eurostudy/internal/utils"
)

type Client struct {
	baseURL string
	http    *http.Client

	// catalog responses change rarely; a short in-process TTL cache keeps
	// dashboard filter churn off the backend
	catalog *gocache.Cache
}

const catalogTTL = 5 * time.Minute

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		catalog: gocache.New(catalogTTL, 10*time.Minute),
	}
}

// StudentProfileRequest mirrors the backend's profile body for /predict
// and /recommend.
type StudentProfileRequest struct {
	GPA     float64 `json:"gpa"`
	IELTS   float64 `json:"ielts"`
	Budget  float64 `json:"budget"`
	Country string  `json:"country,omitempty"`
	Field   string  `json:"field,omitempty"`
}

func ProfileRequest(p *models.StudentProfile) StudentProfileRequest {
	return StudentProfileRequest{
		GPA:     p.GPA,
		IELTS:   p.IELTS,
		Budget:  p.Budget,
		Country: p.Country,
		Field:   p.Field,
	}
}

type CostAnalysisRequest struct {
	TuitionFee    float64 `json:"tuition_fee"`
	Country       string  `json:"country"`
	DurationYears int     `json:"duration_years"`
}

type ScholarshipRequest struct {
	Country string `json:"country"`
}

// envelope is the common wrapper of every backend response.
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, op, method, path string, body any) (json.RawMessage, error) {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to encode request", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "advisor backend unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, utils.E(utils.CodeUnavailable, op,
			fmt.Sprintf("advisor backend returned %d", resp.StatusCode), nil)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "invalid advisor response", err)
	}

	// the backend reports its own failures inside a 200 envelope
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Status != "success" {
		msg := env.Message
		if msg == "" {
			msg = "advisor backend reported failure"
		}
		return nil, utils.E(utils.CodeUnavailable, op, msg, nil)
	}
	return raw, nil
}

func (c *Client) Predict(ctx context.Context, req StudentProfileRequest) (json.RawMessage, error) {
	return c.do(ctx, "advisor.Predict", http.MethodPost, "/predict", req)
}

func (c *Client) Recommend(ctx context.Context, req StudentProfileRequest) (json.RawMessage, error) {
	return c.do(ctx, "advisor.Recommend", http.MethodPost, "/recommend", req)
}

func (c *Client) CostAnalysis(ctx context.Context, req CostAnalysisRequest) (json.RawMessage, error) {
	return c.do(ctx, "advisor.CostAnalysis", http.MethodPost, "/cost-analysis", req)
}

func (c *Client) Scholarships(ctx context.Context, req ScholarshipRequest) (json.RawMessage, error) {
	return c.do(ctx, "advisor.Scholarships", http.MethodPost, "/scholarships", req)
}

// FindAffordable asks the backend which universities fit the student's
// budget. Same profile body as /predict.
func (c *Client) FindAffordable(ctx context.Context, req StudentProfileRequest) (json.RawMessage, error) {
	return c.do(ctx, "advisor.FindAffordable", http.MethodPost, "/find-affordable", req)
}

// QueryRequest carries a free-form question for the backend's NLP answerer.
type QueryRequest struct {
	Query string `json:"query"`
}

func (c *Client) Query(ctx context.Context, req QueryRequest) (json.RawMessage, error) {
	return c.do(ctx, "advisor.Query", http.MethodPost, "/query", req)
}

// SOPRequest mirrors the backend's statement-of-purpose generator body.
// The backend owns the wire field names.
type SOPRequest struct {
	UniversityName    string `json:"universityName"`
	CourseName        string `json:"courseName"`
	StudentBackground string `json:"studentBackground"`
	CareerGoals       string `json:"careerGoals"`
	Tone              string `json:"tone,omitempty"`
}

func (c *Client) GenerateSOP(ctx context.Context, req SOPRequest) (json.RawMessage, error) {
	return c.do(ctx, "advisor.GenerateSOP", http.MethodPost, "/ai/sop/generate", req)
}

func (c *Client) ScholarshipsByCountry(ctx context.Context, country string) (json.RawMessage, error) {
	key := "scholarships-by-country:" + strings.ToLower(country)
	if v, ok := c.catalog.Get(key); ok {
		return v.(json.RawMessage), nil
	}
	raw, err := c.do(ctx, "advisor.ScholarshipsByCountry", http.MethodGet,
		"/scholarships-by-country/"+url.PathEscape(country), nil)
	if err != nil {
		return nil, err
	}
	c.catalog.SetDefault(key, raw)
	return raw, nil
}

func (c *Client) ScholarshipStatistics(ctx context.Context) (json.RawMessage, error) {
	const key = "scholarships-statistics"
	if v, ok := c.catalog.Get(key); ok {
		return v.(json.RawMessage), nil
	}
	raw, err := c.do(ctx, "advisor.ScholarshipStatistics", http.MethodGet, "/scholarships-statistics", nil)
	if err != nil {
		return nil, err
	}
	c.catalog.SetDefault(key, raw)
	return raw, nil
}

// ScholarshipFilter holds the optional criteria of /scholarships-filter.
// Zero values are omitted from the query string.
type ScholarshipFilter struct {
	Country   string
	Coverage  string
	MinAmount float64
	MaxAmount float64
}

func (f ScholarshipFilter) query() string {
	q := url.Values{}
	if f.Country != "" {
		q.Set("country", f.Country)
	}
	if f.Coverage != "" {
		q.Set("coverage", f.Coverage)
	}
	if f.MinAmount > 0 {
		q.Set("min_amount", strconv.FormatFloat(f.MinAmount, 'f', -1, 64))
	}
	if f.MaxAmount > 0 {
		q.Set("max_amount", strconv.FormatFloat(f.MaxAmount, 'f', -1, 64))
	}
	return q.Encode()
}

func (c *Client) FilterScholarships(ctx context.Context, f ScholarshipFilter) (json.RawMessage, error) {
	path := "/scholarships-filter"
	if q := f.query(); q != "" {
		path += "?" + q
	}
	return c.do(ctx, "advisor.FilterScholarships", http.MethodGet, path, nil)
}

func (c *Client) Universities(ctx context.Context) (json.RawMessage, error) {
	const key = "universities"
	if v, ok := c.catalog.Get(key); ok {
		return v.(json.RawMessage), nil
	}
	raw, err := c.do(ctx, "advisor.Universities", http.MethodGet, "/universities", nil)
	if err != nil {
		return nil, err
	}
	c.catalog.SetDefault(key, raw)
	return raw, nil
}

func (c *Client) ScholarshipList(ctx context.Context) (json.RawMessage, error) {
	const key = "scholarships-list"
	if v, ok := c.catalog.Get(key); ok {
		return v.(json.RawMessage), nil
	}
	raw, err := c.do(ctx, "advisor.ScholarshipList", http.MethodGet, "/scholarships-list", nil)
	if err != nil {
		return nil, err
	}
	c.catalog.SetDefault(key, raw)
	return raw, nil
}

// SummaryRequest carries the subset of a resume the backend needs to draft
// a professional summary.
type SummaryRequest struct {
	Name       string                   `json:"name"`
	Headline   string                   `json:"headline,omitempty"`
	Education  []models.EducationEntry  `json:"education"`
	Experience []models.ExperienceEntry `json:"experience"`
	Skills     []string                 `json:"skills"`
}

// SummaryResponse is the one AI response the service reads a field out of;
// everything else is passed through verbatim.
type SummaryResponse struct {
	Status  string `json:"status"`
	Summary string `json:"summary"`
}

func (c *Client) GenerateSummary(ctx context.Context, req SummaryRequest) (*SummaryResponse, error) {
	const op = "advisor.GenerateSummary"

	raw, err := c.do(ctx, op, http.MethodPost, "/resume/ai/generate-summary", req)
	if err != nil {
		return nil, err
	}
	var out SummaryResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "invalid summary response", err)
	}
	return &out, nil
}

type SuggestionsRequest struct {
	Resume  *models.Resume `json:"resume"`
	Section string         `json:"section,omitempty"`
}

func (c *Client) AISuggestions(ctx context.Context, req SuggestionsRequest) (json.RawMessage, error) {
	return c.do(ctx, "advisor.AISuggestions", http.MethodPost, "/resume/ai-suggestions", req)
}

type SkillGapRequest struct {
	Resume       *models.Resume `json:"resume"`
	UniversityID string         `json:"university_id,omitempty"`
}

func (c *Client) SkillGapAnalysis(ctx context.Context, req SkillGapRequest) (json.RawMessage, error) {
	return c.do(ctx, "advisor.SkillGapAnalysis", http.MethodPost, "/resume/skill-gap-analysis", req)
}
