package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goliatone/go-displaymeta/internal/people"
	"github.com/goliatone/go-displaymeta/pkg/model"
	"github.com/goliatone/go-displaymeta/pkg/render"
)

// createdAtField is set by the database and never edited.
const createdAtField = "CreatedAt"

type page struct {
	Title        string
	Content      []byte
	Flash        string
	DeleteAction string
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	form, err := s.meta.Build(ctx, people.Person{})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	rows := make([]map[string]any, 0, len(all))
	for _, p := range all {
		rows = append(rows, model.Values(form, p))
	}
	content, err := s.meta.RenderList(ctx, "", form, rows, render.RenderOptions{
		Title: "People",
		Links: map[string]string{
			"row": "/people/{ID}",
			"new": "/people/new",
		},
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.page(w, r, http.StatusOK, page{Title: "People", Content: content, Flash: r.URL.Query().Get("flash")})
}

func (s *Server) details(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := s.load(w, r)
	if !ok {
		return
	}
	form, err := s.meta.Build(ctx, people.Person{})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	content, err := s.meta.Render(ctx, "", form, render.RenderOptions{
		Mode:   render.ModeDisplay,
		Title:  p.FirstName + " " + p.LastName,
		Values: model.Values(form, p),
		Links: map[string]string{
			"edit": personPath(p.ID, "edit"),
			"back": "/people",
		},
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.page(w, r, http.StatusOK, page{
		Title:        "Details",
		Content:      content,
		Flash:        r.URL.Query().Get("flash"),
		DeleteAction: personPath(p.ID, "delete"),
	})
}

func (s *Server) newForm(w http.ResponseWriter, r *http.Request) {
	form, err := s.editorForm(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.editor(w, r, http.StatusOK, form, "Create person", "/people", model.Values(form, people.Person{}), nil)
}

func (s *Server) editForm(w http.ResponseWriter, r *http.Request) {
	p, ok := s.load(w, r)
	if !ok {
		return
	}
	form, err := s.editorForm(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.editor(w, r, http.StatusOK, form, "Edit person", personPath(p.ID, ""), model.Values(form, p), nil)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	form, err := s.editorForm(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p := people.Person{}
	values, errs, err := s.bind(r, form, &p)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if len(errs) > 0 {
		s.editor(w, r, http.StatusUnprocessableEntity, form, "Create person", "/people", values, errs)
		return
	}
	if err := s.repo.Create(r.Context(), &p); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, personPath(p.ID, "")+"?flash=Created", http.StatusSeeOther)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.load(w, r)
	if !ok {
		return
	}
	form, err := s.editorForm(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p := *existing
	values, errs, err := s.bind(r, form, &p)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	if len(errs) > 0 {
		s.editor(w, r, http.StatusUnprocessableEntity, form, "Edit person", personPath(p.ID, ""), values, errs)
		return
	}
	if err := s.repo.Update(r.Context(), &p); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, personPath(p.ID, "")+"?flash=Saved", http.StatusSeeOther)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.id(w, r)
	if !ok {
		return
	}
	if err := s.repo.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/people?flash=Deleted", http.StatusSeeOther)
}

// editorForm is the Person model without CreatedAt.
func (s *Server) editorForm(r *http.Request) (model.FormModel, error) {
	form, err := s.meta.Build(r.Context(), people.Person{})
	if err != nil {
		return model.FormModel{}, err
	}
	fields := form.Fields[:0:0]
	for _, field := range form.Fields {
		if field.Name != createdAtField {
			fields = append(fields, field)
		}
	}
	form.Fields = fields
	return form, nil
}

// bind parses the posted fields of form into dst and validates it. Values
// that fail to parse are echoed back as submitted.
func (s *Server) bind(r *http.Request, form model.FormModel, dst *people.Person) (map[string]any, map[string][]string, error) {
	if err := r.ParseForm(); err != nil {
		return nil, map[string][]string{"form": {"The submitted form could not be read."}}, nil
	}
	parsed := map[string]any{}
	echo := map[string]any{}
	errs := map[string][]string{}
	for _, field := range form.Fields {
		if field.Hidden || len(field.Nested) > 0 {
			continue
		}
		raw := r.PostForm.Get(field.Name)
		echo[field.Name] = raw
		value, err := render.ParseEdited(field, raw)
		if err != nil {
			errs[field.Name] = append(errs[field.Name], fmt.Sprintf("%s is not in a valid format", field.Label))
			continue
		}
		parsed[field.Name] = value
		echo[field.Name] = value
	}
	if err := model.Assign(form, dst, parsed); err != nil {
		return nil, nil, fmt.Errorf("web: bind person: %w", err)
	}

	fieldErrs, err := s.validator.Validate(*dst)
	if err != nil {
		return nil, nil, fmt.Errorf("web: validate person: %w", err)
	}
	for path, messages := range fieldErrs {
		if _, failed := errs[path]; failed {
			continue
		}
		errs[path] = append(errs[path], messages...)
	}
	if len(errs) == 0 {
		return echo, nil, nil
	}
	return echo, errs, nil
}

func (s *Server) editor(w http.ResponseWriter, r *http.Request, status int, form model.FormModel, title, action string, values map[string]any, errs map[string][]string) {
	content, err := s.meta.Render(r.Context(), "", form, render.RenderOptions{
		Mode:   render.ModeEdit,
		Title:  title,
		Action: action,
		Method: http.MethodPost,
		Values: values,
		Errors: errs,
		Links:  map[string]string{"back": "/people"},
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.page(w, r, status, page{Title: title, Content: content})
}

func (s *Server) load(w http.ResponseWriter, r *http.Request) (*people.Person, bool) {
	id, ok := s.id(w, r)
	if !ok {
		return nil, false
	}
	p, err := s.repo.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return nil, false
	}
	return p, true
}

func (s *Server) id(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		http.NotFound(w, r)
		return 0, false
	}
	return uint(id), true
}

func (s *Server) page(w http.ResponseWriter, r *http.Request, status int, p page) {
	html, err := s.layout.RenderTemplate("layout", map[string]any{
		"title":         p.Title,
		"content":       string(p.Content),
		"flash":         p.Flash,
		"delete_action": p.DeleteAction,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(html))
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, people.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func personPath(id uint, action string) string {
	path := "/people/" + strconv.FormatUint(uint64(id), 10)
	if action != "" {
		path += "/" + action
	}
	return path
}
