package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/edura-app/edura-go/core"
)

// QuizMeta is the optional metadata attached when generating a quiz from a
// document file.
type QuizMeta struct {
	Title      string
	SchoolID   string
	CategoryID string
}

// QuizService covers the /api/quizzes endpoints.
//
// CreateFromDoc and Start perform their own fetch-and-parse instead of going
// through the dispatcher: both predate the shared error normalization and
// surface their own fallback text ("Create quiz failed" / "Start quiz
// failed") when the server gives no message. That behavior is part of the
// client's observable contract and is kept endpoint-for-endpoint.
type QuizService struct {
	d *Dispatcher
}

func NewQuizService(d *Dispatcher) *QuizService {
	return &QuizService{d: d}
}

// CreateFromDoc uploads a document file and has the backend generate a quiz
// from it.
func (s *QuizService) CreateFromDoc(ctx context.Context, file io.Reader, filename string, meta QuizMeta) (*core.Quiz, error) {
	form := NewForm().
		AddFile("file", filename, file).
		AddField("title", meta.Title).
		AddField("schoolId", meta.SchoolID).
		AddField("categoryId", meta.CategoryID)
	if err := form.Close(); err != nil {
		return nil, err
	}

	payload, err := s.bespokeFetch(ctx, "POST", "/api/quizzes/from-doc", form.Reader(), form.ContentType(), "Create quiz failed")
	if err != nil {
		return nil, err
	}
	var quiz core.Quiz
	if err := json.Unmarshal(payload, &quiz); err != nil {
		return nil, fmt.Errorf("failed to decode quiz: %w", err)
	}
	return &quiz, nil
}

// Start begins an attempt on a quiz.
func (s *QuizService) Start(ctx context.Context, quizID string) (*core.QuizAttempt, error) {
	payload, err := s.bespokeFetch(ctx, "POST", "/api/quizzes/"+quizID+"/start", nil, "", "Start quiz failed")
	if err != nil {
		return nil, err
	}
	var attempt core.QuizAttempt
	if err := json.Unmarshal(payload, &attempt); err != nil {
		return nil, fmt.Errorf("failed to decode quiz attempt: %w", err)
	}
	return &attempt, nil
}

// bespokeFetch duplicates the dispatcher's fetch-and-parse with an
// endpoint-specific fallback message and without the 401 session clearing.
func (s *QuizService) bespokeFetch(ctx context.Context, method, path string, body io.Reader, contentType, fallback string) (json.RawMessage, error) {
	url := s.d.BaseURL() + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := s.d.Session().Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := s.d.httpc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &core.NetworkError{URL: url, Unreachable: isUnreachable(err), Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &core.NetworkError{URL: url, Err: err}
	}

	payload := json.RawMessage("{}")
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && json.Valid(trimmed) {
		payload = trimmed
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var body struct {
			Error string `json:"error"`
		}
		message := fallback
		if err := json.Unmarshal(payload, &body); err == nil && body.Error != "" {
			message = body.Error
		}
		return nil, &core.APIError{Status: res.StatusCode, Message: message}
	}
	return payload, nil
}

// ListAll fetches every visible quiz (mine=0).
func (s *QuizService) ListAll(ctx context.Context) ([]core.Quiz, error) {
	return s.list(ctx, "/api/quizzes?mine=0")
}

// ListMine fetches only the caller's quizzes (mine=1).
func (s *QuizService) ListMine(ctx context.Context) ([]core.Quiz, error) {
	return s.list(ctx, "/api/quizzes?mine=1")
}

func (s *QuizService) list(ctx context.Context, path string) ([]core.Quiz, error) {
	raw, err := s.d.Do(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}
	list := core.ExtractList(raw, "quizzes", "data")
	var quizzes []core.Quiz
	if list != nil {
		if err := json.Unmarshal(list, &quizzes); err != nil {
			return nil, fmt.Errorf("failed to decode quizzes: %w", err)
		}
	}
	return quizzes, nil
}

func (s *QuizService) Get(ctx context.Context, quizID string) (*core.Quiz, error) {
	var quiz core.Quiz
	if err := s.d.DoJSON(ctx, "GET", "/api/quizzes/"+quizID, nil, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// Submit sends the answers of an attempt and returns the grading result.
func (s *QuizService) Submit(ctx context.Context, quizID string, answers any) (*core.QuizResult, error) {
	var result core.QuizResult
	err := s.d.DoJSON(ctx, "POST", "/api/quizzes/"+quizID+"/submit", map[string]any{
		"answers": answers,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
