package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"golfphysics/internal/core"
	"golfphysics/internal/types"
)

// newTestValidator builds the shared request validator used across handler
// tests.
func newTestValidator() *core.Validator {
	return core.NewValidator(nil)
}

// newV1Router mounts the given registrars the way main.go does, without the
// middleware chain.
func newV1Router(registrars ...func(chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		for _, reg := range registrars {
			reg(r)
		}
	})
	return r
}

// doJSON performs a request with a JSON body and optional request mutations.
func doJSON(t *testing.T, h http.Handler, method, path string, body any, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(types.WithRequestID(req.Context(), "req-test"))
	for _, m := range mutate {
		m(req)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// withActor injects an authenticated actor, standing in for AuthMiddleware.
func withActor(actor types.Actor) func(*http.Request) {
	return func(req *http.Request) {
		*req = *req.WithContext(types.WithActor(req.Context(), actor))
	}
}

// decodeData unmarshals the {"data": ...} envelope into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

// decodeErrorCode extracts the error code from an error envelope.
func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

// --- shared stubs ---

type stubLeadStore struct {
	leads []*types.Lead
	err   error
}

func (s *stubLeadStore) Create(_ context.Context, lead *types.Lead) error {
	if s.err != nil {
		return s.err
	}
	s.leads = append(s.leads, lead)
	return nil
}

type stubEnqueuer struct {
	jobs []types.EmailJob
	err  error
}

func (s *stubEnqueuer) Enqueue(_ context.Context, job types.EmailJob) error {
	if s.err != nil {
		return s.err
	}
	s.jobs = append(s.jobs, job)
	return nil
}

func (s *stubEnqueuer) jobsOfKind(kind types.EmailKind) []types.EmailJob {
	var out []types.EmailJob
	for _, j := range s.jobs {
		if j.Kind == kind {
			out = append(out, j)
		}
	}
	return out
}

type stubCaptcha struct {
	err    error
	tokens []string
	scores []float64
}

func (s *stubCaptcha) Verify(_ context.Context, token string, minScore float64) error {
	s.tokens = append(s.tokens, token)
	s.scores = append(s.scores, minScore)
	return s.err
}
