package fakebackend

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/jotme/internal/client/models"
)

const remindPrefix = "remind me to "

func envelope(ok bool, msg string) models.Envelope {
	return models.Envelope{Success: ok, Message: msg}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func ownerKey(r *http.Request) string {
	return strings.ToLower(r.Form.Get("userEmail"))
}

func (s *Server) timestamp() string {
	return s.now().UTC().Format(TimeLayout)
}

func (s *Server) handleAddJot(w http.ResponseWriter, r *http.Request) {
	text := strings.TrimSpace(r.Form.Get("jotText"))
	if text == "" {
		writeJSON(w, http.StatusOK, envelope(false, "jotText is required"))
		return
	}

	owner := ownerKey(r)

	s.mu.Lock()
	jot := models.Jot{ID: s.id(), Text: text, CreatedAt: s.timestamp()}
	s.jots[owner] = append(s.jots[owner], jot)
	if todo, ok := reminderText(text); ok {
		s.todos[owner] = append(s.todos[owner], models.Todo{ID: s.id(), Text: todo})
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, models.JotResponse{Envelope: envelope(true, "Jot added"), Jot: jot})
}

// reminderText returns what follows a case-insensitive "remind me to "
// prefix of text.
func reminderText(text string) (string, bool) {
	n := len(remindPrefix)
	if len(text) <= n || !strings.EqualFold(text[:n], remindPrefix) {
		return "", false
	}
	rest := strings.TrimSpace(text[n:])
	return rest, rest != ""
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	owner := ownerKey(r)

	s.mu.Lock()
	resp := models.HistoryResponse{
		Envelope: envelope(true, "History retrieved"),
		Jots:     append([]models.Jot{}, s.jots[owner]...),
		Todos:    []models.Todo{},
	}
	for _, t := range s.todos[owner] {
		if !t.Completed() {
			resp.Todos = append(resp.Todos, t)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCompleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.Form.Get("todoId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, envelope(false, "todoId must be an integer"))
		return
	}

	owner := ownerKey(r)

	s.mu.Lock()
	found := false
	for i := range s.todos[owner] {
		if s.todos[owner][i].ID == id {
			s.todos[owner][i].IsCompleted = 1
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		writeJSON(w, http.StatusNotFound, envelope(false, "todo not found"))
		return
	}
	writeJSON(w, http.StatusOK, envelope(true, "Todo completed"))
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.Form.Get("question"))
	if q == "" {
		writeJSON(w, http.StatusOK, envelope(false, "question is required"))
		return
	}

	owner := ownerKey(r)

	s.mu.Lock()
	id := s.id()
	qa := models.QandA{
		APIID:     &id,
		Question:  q,
		Answer:    s.answer(owner, q),
		CreatedAt: s.timestamp(),
	}
	s.questions[owner] = append(s.questions[owner], qa)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, models.QandAResponse{Envelope: envelope(true, "Answered"), QandA: qa})
}

// answer must be called with mu held. It searches the owner's jots for
// words from the question.
func (s *Server) answer(owner, question string) string {
	words := strings.Fields(strings.ToLower(question))
	for i := len(s.jots[owner]) - 1; i >= 0; i-- {
		j := s.jots[owner][i]
		lower := strings.ToLower(j.Text)
		for _, w := range words {
			if len(w) > 3 && strings.Contains(lower, strings.Trim(w, "?.,!")) {
				return "You jotted on " + j.CreatedAt + ": " + j.Text
			}
		}
	}
	return "I could not find anything about that in your jots."
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	email := r.Form.Get("userEmail")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, envelope(false, "userEmail is required"))
		return
	}

	s.mu.Lock()
	u := s.register(r.Form.Get("userName"), email)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, models.RegisterResponse{Envelope: envelope(true, "User registered"), UserID: u.id})
}

func (s *Server) handleStartup(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	u, ok := s.users[ownerKey(r)]
	var name string
	if ok {
		name = u.name
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusOK, envelope(false, "unknown user"))
		return
	}
	if name == "" {
		name = "there"
	}
	writeJSON(w, http.StatusOK, envelope(true, "Welcome back, "+name+"!"))
}
