package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandler exposes the trivia REST endpoints.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs the trivia HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "question_http").Logger(),
	}
}

// Register mounts the trivia routes on mux. Each handler checks the method
// itself and answers unsupported ones with a JSON 405.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/categories", h.HandleCategories)
	mux.HandleFunc("/categories/{id}/questions", h.HandleCategoryQuestions)
	mux.HandleFunc("/questions", h.HandleQuestions)
	mux.HandleFunc("/questions/{id}", h.HandleQuestion)
	mux.HandleFunc("/quizzes", h.HandleQuizzes)
}

type categoriesResponse struct {
	Success       bool           `json:"success"`
	Categories    map[int]string `json:"categories"`
	AllCategories int            `json:"all_categories"`
}

type questionListResponse struct {
	Success         bool           `json:"success"`
	TotalQuestions  int            `json:"total_questions"`
	Questions       []Question     `json:"questions"`
	Categories      map[int]string `json:"categories"`
	CurrentCategory *string        `json:"current_category"`
}

type categoryQuestionsResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory *string    `json:"current_category"`
}

type searchResponse struct {
	Success        bool       `json:"success"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

type createResponse struct {
	Success        bool       `json:"success"`
	Created        int        `json:"created"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

type deleteResponse struct {
	Success        bool       `json:"success"`
	Deleted        int        `json:"deleted"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
}

type quizResponse struct {
	Success  bool      `json:"success"`
	Question *Question `json:"question"`
}

// HandleCategories handles GET /categories
func (h *HTTPHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}

	cats, err := h.svc.ListCategories(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	labels := make(map[int]string, len(cats))
	for _, c := range cats {
		labels[c.ID] = c.Type
	}
	writeJSON(w, categoriesResponse{
		Success:       true,
		Categories:    labels,
		AllCategories: len(cats),
	})
}

// HandleQuestions handles GET and POST /questions
func (h *HTTPHandler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listQuestions(w, r)
	case http.MethodPost:
		h.searchOrCreate(w, r)
	default:
		httperrors.RespondMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (h *HTTPHandler) listQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	qs, err := h.svc.ListQuestions(ctx)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	labels, err := h.svc.CategoryLabels(ctx)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	writeJSON(w, questionListResponse{
		Success:        true,
		TotalQuestions: len(qs),
		Questions:      Paginate(qs, pageOf(r), QuestionsPerPage),
		Categories:     labels,
	})
}

func (h *HTTPHandler) searchOrCreate(w http.ResponseWriter, r *http.Request) {
	body, err := decodeQuestionsBody(r)
	if err != nil {
		h.requestLogger(r).Debug().Err(err).Msg("invalid questions payload")
		httperrors.RespondUnprocessable(w)
		return
	}

	ctx := r.Context()
	if body.search != nil {
		qs, err := h.svc.SearchQuestions(ctx, body.search.Term)
		if err != nil {
			h.respondServiceError(w, r, err)
			return
		}
		writeJSON(w, searchResponse{
			Success:        true,
			Questions:      Paginate(qs, pageOf(r), QuestionsPerPage),
			TotalQuestions: len(qs),
		})
		return
	}

	created, err := h.svc.CreateQuestion(ctx, *body.create)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	qs, err := h.svc.Questions(ctx)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	writeJSON(w, createResponse{
		Success:        true,
		Created:        created.ID,
		Questions:      Paginate(qs, pageOf(r), QuestionsPerPage),
		TotalQuestions: len(qs),
	})
}

// HandleQuestion handles DELETE /questions/{id}
func (h *HTTPHandler) HandleQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		httperrors.RespondMethodNotAllowed(w, http.MethodDelete)
		return
	}

	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	ctx := r.Context()
	if err := h.svc.DeleteQuestion(ctx, id); err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	qs, err := h.svc.Questions(ctx)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	writeJSON(w, deleteResponse{
		Success:        true,
		Deleted:        id,
		Questions:      Paginate(qs, pageOf(r), QuestionsPerPage),
		TotalQuestions: len(qs),
	})
}

// HandleCategoryQuestions handles GET /categories/{id}/questions
func (h *HTTPHandler) HandleCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}

	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	ctx := r.Context()
	qs, err := h.svc.QuestionsByCategory(ctx, id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	resp := categoryQuestionsResponse{
		Success:        true,
		Questions:      Paginate(qs, pageOf(r), QuestionsPerPage),
		TotalQuestions: len(qs),
	}
	label, found, err := h.svc.CategoryLabel(ctx, id)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	if found {
		resp.CurrentCategory = &label
	}
	writeJSON(w, resp)
}

// HandleQuizzes handles POST /quizzes
func (h *HTTPHandler) HandleQuizzes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w, http.MethodPost)
		return
	}

	req, err := decodeQuizBody(r)
	if err != nil {
		h.requestLogger(r).Debug().Err(err).Msg("invalid quiz payload")
		httperrors.RespondUnprocessable(w)
		return
	}

	next, err := h.svc.NextQuizQuestion(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	writeJSON(w, quizResponse{Success: true, Question: next})
}

func (h *HTTPHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httperrors.RespondNotFound(w)
	case errors.Is(err, ErrUnprocessable):
		h.requestLogger(r).Info().Err(err).Msg("request could not be processed")
		httperrors.RespondUnprocessable(w)
	default:
		h.requestLogger(r).Error().Err(err).Str("path", r.URL.Path).Msg("trivia request failed")
		httperrors.RespondInternalError(w)
	}
}

func (h *HTTPHandler) requestLogger(r *http.Request) *zerolog.Logger {
	logger := logging.FromContextOr(r.Context(), h.logger)
	return &logger
}

// questionsBody is the union of the search and create payloads accepted by
// POST /questions.
type questionsBody struct {
	SearchTerm *string `json:"searchTerm"`
	Question   *string `json:"question"`
	Answer     *string `json:"answer"`
	Category   flexInt `json:"category"`
	Difficulty flexInt `json:"difficulty"`
}

// questionsRequest holds exactly one of search or create.
type questionsRequest struct {
	search *SearchRequest
	create *CreateRequest
}

func decodeQuestionsBody(r *http.Request) (questionsRequest, error) {
	var body questionsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return questionsRequest{}, fmt.Errorf("decode questions body: %w", err)
	}

	if body.SearchTerm != nil {
		return questionsRequest{search: &SearchRequest{Term: *body.SearchTerm}}, nil
	}

	create := &CreateRequest{
		Category:   body.Category.value,
		Difficulty: body.Difficulty.value,
	}
	if body.Question != nil {
		create.Question = *body.Question
	}
	if body.Answer != nil {
		create.Answer = *body.Answer
	}
	return questionsRequest{create: create}, nil
}

type quizBody struct {
	PreviousQuestions []flexInt `json:"previous_questions"`
	QuizCategory      *struct {
		ID flexInt `json:"id"`
	} `json:"quiz_category"`
}

func decodeQuizBody(r *http.Request) (QuizRequest, error) {
	var body quizBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return QuizRequest{}, fmt.Errorf("decode quiz body: %w", err)
	}
	if body.QuizCategory == nil || !body.QuizCategory.ID.set {
		return QuizRequest{}, errors.New("quiz_category.id is required")
	}

	req := QuizRequest{
		Category: AllCategories(),
		Previous: make([]int, 0, len(body.PreviousQuestions)),
	}
	if id := body.QuizCategory.ID.value; id != 0 {
		req.Category = ByCategory(id)
	}
	for _, prev := range body.PreviousQuestions {
		if prev.set {
			req.Previous = append(req.Previous, prev.value)
		}
	}
	return req, nil
}

// flexInt accepts a JSON number with no fractional part or a numeric
// string; null leaves it unset.
type flexInt struct {
	value int
	set   bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*f = flexInt{}
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	if n, err := strconv.Atoi(raw); err == nil {
		*f = flexInt{value: n, set: true}
		return nil
	}
	fl, err := strconv.ParseFloat(raw, 64)
	if err != nil || fl != math.Trunc(fl) || fl < math.MinInt32 || fl > math.MaxInt32 {
		return fmt.Errorf("expected integer, got %s", data)
	}
	*f = flexInt{value: int(fl), set: true}
	return nil
}

func pageOf(r *http.Request) int {
	return ParsePage(r.URL.Query().Get("page"))
}

func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		httperrors.RespondInternalError(w)
	}
}
