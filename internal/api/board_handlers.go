package api

import (
	"net/http"

	"github.com/arefin/messmate/internal/models"
)

func (a *API) handleListTasks(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	tasks, err := a.Board.ListTasks(r.Context(), r.PathValue("messID"), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (a *API) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		AssignedTo string `json:"assignedTo"`
		DueDate    string `json:"dueDate"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	_, email := actor(r)
	task, err := a.Board.AddTask(r.Context(), r.PathValue("messID"), email, req.Name, req.AssignedTo, req.DueDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (a *API) handleSetTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	_, email := actor(r)
	if err := a.Board.SetTaskStatus(r.Context(), r.PathValue("messID"), email, r.PathValue("id"), models.TaskStatus(req.Status)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (a *API) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	if err := a.Board.DeleteTask(r.Context(), r.PathValue("messID"), email, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (a *API) handleListNotices(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	notices, err := a.Board.ListNotices(r.Context(), r.PathValue("messID"), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notices)
}

func (a *API) handleAddNotice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	_, email := actor(r)
	notice, err := a.Board.AddNotice(r.Context(), r.PathValue("messID"), email, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, notice)
}

func (a *API) handleDeleteNotice(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	if err := a.Board.DeleteNotice(r.Context(), r.PathValue("messID"), email, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (a *API) handleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := a.Reviews.ListReviews(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (a *API) handleAddReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Author  string `json:"author"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	_, email := actor(r)
	review, err := a.Reviews.AddReview(r.Context(), email, req.Author, req.Rating, req.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

func (a *API) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	_, email := actor(r)
	if err := a.Reviews.UpdateReview(r.Context(), email, r.PathValue("id"), req.Rating, req.Comment); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (a *API) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	if err := a.Reviews.DeleteReview(r.Context(), email, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
