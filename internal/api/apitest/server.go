// Package apitest runs an in-memory Pennywise backend for tests. It mirrors
// the REST surface the client consumes: token auth, entity CRUD and the
// dashboard aggregates, with just enough state to exercise round-trips.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/AdnanMGHaider/pennywise-cli/internal/model"
)

const (
	DefaultUsername = "demo"
	DefaultPassword = "secret123"
	DefaultEmail    = "demo@example.com"
	DefaultToken    = "test-token-1"
)

type Server struct {
	*httptest.Server

	mu sync.Mutex

	Transactions []model.Transaction
	Budgets      []model.Budget
	Goals        []model.Goal
	Categories   []model.Category

	Summary         model.DashboardSummary
	Breakdown       []model.CategoryAmount
	Trends          []model.MonthlyTrend
	Overview        model.MonthlyOverview
	GenerationsLeft int
	Advice          string

	nextID   int64
	requests []string
}

func NewServer() *Server {
	s := &Server{
		Categories: []model.Category{
			{Name: "Food"}, {Name: "Rent"}, {Name: "Transport"}, {Name: "Income"},
		},
		GenerationsLeft: 3,
		Advice:          "Spend less than you earn.",
		nextID:          100,
	}

	r := chi.NewRouter()

	r.Post("/api/auth/login", s.handleLogin)
	r.Post("/api/auth/register", s.handleRegister)

	r.Group(func(r chi.Router) {
		r.Use(s.requireBearer)

		r.Get("/api/auth/profile", s.handleProfile)

		r.Get("/api/transactions", s.listJSON(&s.Transactions))
		r.Post("/api/transactions", s.handleCreateTransaction)
		r.Put("/api/transactions/{id}", s.handleUpdateTransaction)
		r.Delete("/api/transactions/{id}", s.handleDeleteTransaction)

		r.Get("/api/budgets", s.listJSON(&s.Budgets))
		r.Post("/api/budgets", s.handleCreateBudget)
		r.Put("/api/budgets/{id}", s.handleUpdateBudget)
		r.Delete("/api/budgets/{id}", s.handleDeleteBudget)

		r.Get("/api/goals", s.listJSON(&s.Goals))
		r.Post("/api/goals", s.handleCreateGoal)
		r.Put("/api/goals/{id}", s.handleUpdateGoal)
		r.Delete("/api/goals/{id}", s.handleDeleteGoal)

		r.Get("/api/categories", s.listJSON(&s.Categories))

		r.Get("/api/dashboard/summary", s.handleSummary)
		r.Get("/api/dashboard/expense-breakdown", s.listJSON(&s.Breakdown))
		r.Get("/api/dashboard/spending-trends", s.listJSON(&s.Trends))
		r.Get("/api/dashboard/current-month-overview", s.handleOverview)
		r.Post("/api/dashboard/ai-advice", s.handleAdvice)
	})

	s.Server = httptest.NewServer(r)
	return s
}

// BaseURL is what the client should be pointed at.
func (s *Server) BaseURL() string { return s.URL + "/api" }

// Requests lists "METHOD /path" entries for authenticated routes, in order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *Server) RequestCount(methodAndPath string) int {
	n := 0
	for _, r := range s.Requests() {
		if r == methodAndPath {
			n++
		}
	}
	return n
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer "+DefaultToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct{ Username, Password string }
	_ = json.NewDecoder(r.Body).Decode(&creds)
	if creds.Username != DefaultUsername || creds.Password != DefaultPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"accessToken": DefaultToken,
		"id":          1,
		"username":    DefaultUsername,
		"email":       DefaultEmail,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds struct{ Username, Email, Password string }
	_ = json.NewDecoder(r.Body).Decode(&creds)
	if creds.Username == DefaultUsername {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, "Username is already taken!")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"accessToken": DefaultToken,
		"id":          2,
		"username":    creds.Username,
		"email":       creds.Email,
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"id": 1, "username": DefaultUsername, "email": DefaultEmail,
	})
}

func (s *Server) listJSON(slice any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		writeJSON(w, http.StatusOK, slice)
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var draft model.TransactionDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "malformed transaction"})
		return
	}
	if draft.Description == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Description is required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := model.Transaction{
		ID: s.id(), Date: draft.Date, Description: draft.Description,
		Category: draft.Category, Amount: draft.Amount, Type: draft.Type,
	}
	s.Transactions = append(s.Transactions, tx)
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	var draft model.TransactionDraft
	_ = json.NewDecoder(r.Body).Decode(&draft)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tx := range s.Transactions {
		if tx.ID == id {
			s.Transactions[i] = model.Transaction{
				ID: id, Date: draft.Date, Description: draft.Description,
				Category: draft.Category, Amount: draft.Amount, Type: draft.Type,
			}
			writeJSON(w, http.StatusOK, s.Transactions[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Transaction not found"})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tx := range s.Transactions {
		if tx.ID == id {
			s.Transactions = append(s.Transactions[:i], s.Transactions[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Transaction not found"})
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var draft model.BudgetDraft
	_ = json.NewDecoder(r.Body).Decode(&draft)
	if draft.Category == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Category is required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := model.Budget{ID: s.id(), Category: draft.Category, BudgetAmount: draft.BudgetAmount, Month: draft.Month}
	s.Budgets = append(s.Budgets, b)
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	var draft model.BudgetDraft
	_ = json.NewDecoder(r.Body).Decode(&draft)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.Budgets {
		if b.ID == id {
			s.Budgets[i].Category = draft.Category
			s.Budgets[i].BudgetAmount = draft.BudgetAmount
			s.Budgets[i].Month = draft.Month
			writeJSON(w, http.StatusOK, s.Budgets[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Budget not found"})
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.Budgets {
		if b.ID == id {
			s.Budgets = append(s.Budgets[:i], s.Budgets[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Budget not found"})
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var draft model.GoalDraft
	_ = json.NewDecoder(r.Body).Decode(&draft)
	if draft.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Title is required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g := model.Goal{
		ID: s.id(), Title: draft.Title, Category: draft.Category,
		TargetAmount: draft.TargetAmount, CurrentAmount: draft.CurrentAmount, Deadline: draft.Deadline,
	}
	s.Goals = append(s.Goals, g)
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	var draft model.GoalDraft
	_ = json.NewDecoder(r.Body).Decode(&draft)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.Goals {
		if g.ID == id {
			s.Goals[i] = model.Goal{
				ID: id, Title: draft.Title, Category: draft.Category,
				TargetAmount: draft.TargetAmount, CurrentAmount: draft.CurrentAmount, Deadline: draft.Deadline,
			}
			writeJSON(w, http.StatusOK, s.Goals[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Goal not found"})
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.Goals {
		if g.ID == id {
			s.Goals = append(s.Goals[:i], s.Goals[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Goal not found"})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary := s.Summary
	left := s.GenerationsLeft
	summary.AIGenerationsLeft = &left
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.Overview)
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GenerationsLeft <= 0 {
		writeJSON(w, http.StatusOK, model.AIAdvice{Message: "AI advice generation limit reached.", GenerationsLeft: 0})
		return
	}
	s.GenerationsLeft--
	writeJSON(w, http.StatusOK, model.AIAdvice{Advice: s.Advice, GenerationsLeft: s.GenerationsLeft})
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
