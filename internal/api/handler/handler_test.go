package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mdYeasin2001/hire-vibe-server/internal/api/auth"
	"github.com/mdYeasin2001/hire-vibe-server/internal/api/domain"
	"github.com/mdYeasin2001/hire-vibe-server/internal/api/model"
	"github.com/mdYeasin2001/hire-vibe-server/internal/api/storage"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeJobStore is an in-memory JobStore
type fakeJobStore struct {
	jobs map[string]model.Job
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: map[string]model.Job{}}
}

func (f *fakeJobStore) ListJobs(_ context.Context, filter storage.JobFilter) ([]model.Job, error) {
	out := []model.Job{}
	for _, j := range f.jobs {
		if filter.JobType != "" && j.JobType != filter.JobType {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(j.JobTitle), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].JobID < out[k].JobID })
	return out, nil
}

func (f *fakeJobStore) ListJobsByCreator(_ context.Context, email string) ([]model.Job, error) {
	out := []model.Job{}
	for _, j := range f.jobs {
		if j.CreatorEmail == email {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeJobStore) GetJobByID(_ context.Context, jobID string) (*model.Job, error) {
	j, ok := f.jobs[jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return &j, nil
}

func (f *fakeJobStore) CreateJob(_ context.Context, job *model.Job) error {
	f.jobs[job.JobID] = *job
	return nil
}

func (f *fakeJobStore) UpsertJob(_ context.Context, job *model.Job) error {
	f.jobs[job.JobID] = *job
	return nil
}

func (f *fakeJobStore) DeleteJobCascade(_ context.Context, jobID string) (int64, error) {
	if _, ok := f.jobs[jobID]; !ok {
		return 0, nil
	}
	delete(f.jobs, jobID)
	return 1, nil
}

// fakeApplicationStore is an in-memory ApplicationStore that mirrors the
// transactional insert + counter increment and the unique (job_id, email)
// constraint. It shares the job map so cascades and increments are visible.
type fakeApplicationStore struct {
	jobs *fakeJobStore
	apps map[string]model.Application
}

func newFakeApplicationStore(jobs *fakeJobStore) *fakeApplicationStore {
	return &fakeApplicationStore{jobs: jobs, apps: map[string]model.Application{}}
}

func (f *fakeApplicationStore) CreateApplication(_ context.Context, app *model.Application) error {
	for _, a := range f.apps {
		if a.JobID == app.JobID && a.Email == app.Email {
			return domain.ErrAlreadyApplied
		}
	}
	f.apps[app.ApplicationID] = *app
	if j, ok := f.jobs.jobs[app.JobID]; ok {
		j.ApplicantsNumber++
		f.jobs.jobs[app.JobID] = j
	}
	return nil
}

func (f *fakeApplicationStore) FindApplication(_ context.Context, jobID, email string) (*model.Application, error) {
	for _, a := range f.apps {
		if a.JobID == jobID && a.Email == email {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeApplicationStore) GetApplicationByID(_ context.Context, applicationID string) (*model.Application, error) {
	a, ok := f.apps[applicationID]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return &a, nil
}

func (f *fakeApplicationStore) ListApplicationsWithJobs(_ context.Context, email, jobType string) ([]model.AppliedJob, error) {
	out := []model.AppliedJob{}
	for _, a := range f.apps {
		if a.Email != email {
			continue
		}
		j, ok := f.jobs.jobs[a.JobID]
		if !ok {
			continue // inner join drops orphaned applications
		}
		if jobType != "" && j.JobType != jobType {
			continue
		}
		out = append(out, model.AppliedJob{Application: a, Job: j})
	}
	return out, nil
}

// fakePublisher records published event bodies
type fakePublisher struct {
	published [][]byte
}

func (f *fakePublisher) Publish(_ context.Context, body []byte, _ string) error {
	f.published = append(f.published, body)
	return nil
}

type testServer struct {
	router    *gin.Engine
	jobs      *fakeJobStore
	apps      *fakeApplicationStore
	publisher *fakePublisher
	auth      *auth.Manager
}

// newTestServer wires the handlers onto the real route table with fakes
// behind the store interfaces
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	jobs := newFakeJobStore()
	apps := newFakeApplicationStore(jobs)
	publisher := &fakePublisher{}
	authManager := auth.NewManager("test-secret", time.Hour, false)

	deps := &Dependencies{
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Jobs:         jobs,
		Applications: apps,
		Publisher:    publisher,
		Auth:         authManager,
	}

	authHandler := NewAuthHandler(deps)
	jobHandler := NewJobHandler(deps)
	appHandler := NewApplicationHandler(deps)
	protect := authManager.Protect()

	r := gin.New()
	r.POST("/jwt", authHandler.IssueToken)
	r.GET("/logout", authHandler.Logout)
	r.GET("/jobs", jobHandler.ListJobs)
	r.GET("/jobs/:id", jobHandler.GetJob)
	r.GET("/jobs/get-mine/:email", protect, jobHandler.ListMine)
	r.POST("/jobs", protect, jobHandler.CreateJob)
	r.PUT("/jobs/:id", protect, jobHandler.UpdateJob)
	r.DELETE("/jobs/:id", protect, jobHandler.DeleteJob)
	r.POST("/applications", protect, appHandler.Apply)
	r.GET("/applications/:email", protect, appHandler.ListApplications)
	r.GET("/appliedJob/:id", protect, appHandler.GetApplication)

	return &testServer{
		router:    r,
		jobs:      jobs,
		apps:      apps,
		publisher: publisher,
		auth:      authManager,
	}
}

// do performs a request, optionally authenticated as the given email
func (s *testServer) do(t *testing.T, method, path, body, asEmail string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if asEmail != "" {
		token, err := s.auth.Issue(asEmail)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// seedJob inserts a job directly into the fake store
func (s *testServer) seedJob(job model.Job) model.Job {
	if job.Extra == nil {
		job.Extra = model.Extra{}
	}
	s.jobs.jobs[job.JobID] = job
	return job
}
