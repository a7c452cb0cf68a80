package api

import "net/http"

func (a *API) handleCreateMess(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	userID, _ := actor(r)
	mess, manager, err := a.Mess.CreateMess(r.Context(), userID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"mess": mess, "manager": manager})
}

func (a *API) handleGetMess(w http.ResponseWriter, r *http.Request) {
	mess, err := a.Mess.GetMess(r.Context(), r.PathValue("messID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mess)
}

func (a *API) handleJoinMess(w http.ResponseWriter, r *http.Request) {
	userID, _ := actor(r)
	member, err := a.Mess.JoinMess(r.Context(), userID, r.PathValue("messID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (a *API) handleListMembers(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	members, err := a.Mess.ListMembers(r.Context(), r.PathValue("messID"), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (a *API) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	_, email := actor(r)
	member, err := a.Mess.AddMember(r.Context(), r.PathValue("messID"), email, req.Name, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (a *API) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	_, email := actor(r)
	if err := a.Mess.RemoveMember(r.Context(), r.PathValue("messID"), email, r.PathValue("memberID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
