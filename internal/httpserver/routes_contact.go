// internal/httpserver/routes_contact.go
//
// HTTP routes for the contact form.
// Exposes two endpoints under /contact:
//   - POST /contact/validate → validate (and for phone, mask) one field value
//   - POST /contact/submit   → validate every field and build the results summary
//
// The form itself lives in the browser; these endpoints run the same rules
// server-side so the page and the backend never disagree.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/devfolio/internal/contact"
)

// mountContact registers all /contact routes.
func (s *Server) mountContact(r chi.Router) {
	r.Route("/contact", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/submit", s.handleSubmit)
	})
}

// -----------------------------------------------------------------------------
// /contact/validate

type validateReq struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type validateRes struct {
	Field   contact.Kind `json:"field"`
	Valid   bool         `json:"valid"`
	Message string       `json:"message"`
	Value   string       `json:"value"` // masked for phone, echoed otherwise
}

// handleValidate runs one input event through a fresh form.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var p validateReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	kind, ok := contact.ParseKind(p.Field)
	if !ok {
		http.Error(w, `{"error":"unknown_field"}`, http.StatusBadRequest)
		return
	}
	st := contact.NewForm().Input(kind, p.Value)
	_ = json.NewEncoder(w).Encode(validateRes{Field: kind, Valid: st.Valid, Message: st.Message, Value: st.Text})
}

// -----------------------------------------------------------------------------
// /contact/submit

// submitReq carries every field; a nil field was never touched.
type submitReq struct {
	Name    *string   `json:"name"`
	Surname *string   `json:"surname"`
	Email   *string   `json:"email"`
	Phone   *string   `json:"phone"`
	Address *string   `json:"address"`
	Message *string   `json:"message"`
	Ratings []float64 `json:"ratings"`
}

func (p submitReq) values() map[contact.Kind]*string {
	return map[contact.Kind]*string{
		contact.KindName:    p.Name,
		contact.KindSurname: p.Surname,
		contact.KindEmail:   p.Email,
		contact.KindPhone:   p.Phone,
		contact.KindAddress: p.Address,
		contact.KindMessage: p.Message,
	}
}

type invalidRes struct {
	Error  string               `json:"error"`
	Fields []contact.FieldState `json:"fields"`
}

// handleSubmit replays the submitted values into a form and summarises it.
// 422 lists the invalid fields.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var p submitReq
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if len(p.Ratings) != 3 {
		http.Error(w, `{"error":"need_three_ratings"}`, http.StatusBadRequest)
		return
	}

	form := contact.NewForm()
	vals := p.values()
	for _, k := range contact.Kinds {
		if v := vals[k]; v != nil {
			form.Input(k, *v)
		}
	}

	sum, err := form.Submit([3]float64{p.Ratings[0], p.Ratings[1], p.Ratings[2]})
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(invalidRes{Error: "invalid_fields", Fields: form.Invalid()})
		return
	}
	_ = json.NewEncoder(w).Encode(sum)
}
