package v1handler

import (
	"net/http"
	"pen/internal/lab"
)

type StrengthRequest struct {
	Password string `json:"password" validate:"max=256"`
}

// PasswordStrength rates a password. Nothing is stored or logged.
func (h *Handler) PasswordStrength(w http.ResponseWriter, r *http.Request) {
	var req StrengthRequest
	if err := h.decode(w, r, &req); err != nil {
		h.WriteError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, lab.Rate(req.Password))
}

type GenerateRequest struct {
	// Length defaults to lab.DefaultLength.
	Length int `json:"length"`
}

type GenerateResponse struct {
	Password string       `json:"password"`
	Strength lab.Strength `json:"strength"`
}

// GeneratePassword draws a random password.
func (h *Handler) GeneratePassword(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if r.ContentLength != 0 {
		if err := h.decode(w, r, &req); err != nil {
			h.WriteError(w, r, err)

			return
		}
	}

	pwd, err := lab.Generate(req.Length)
	if err != nil {
		h.WriteError(w, r, err)

		return
	}

	writeJSON(r.Context(), w, http.StatusOK, GenerateResponse{Password: pwd, Strength: lab.Rate(pwd)})
}
