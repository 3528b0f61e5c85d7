package v1handler_test

import (
	"net/http"
	"pen/internal/api/handler/v1handler"
	"pen/internal/lab"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordStrength(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/lab/strength", "", `{"password":"Abcdefghij1!"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, lab.Strength{Score: 5, Label: "Très fort", Strong: true}, decodeBody[lab.Strength](t, rec))
}

func TestGeneratePassword(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/lab/generate", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[v1handler.GenerateResponse](t, rec)
	require.Len(t, body.Password, lab.DefaultLength)
	require.Equal(t, lab.Rate(body.Password), body.Strength)

	rec = f.do(t, http.MethodPost, "/lab/generate", "", `{"length":24}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody[v1handler.GenerateResponse](t, rec).Password, 24)

	rec = f.do(t, http.MethodPost, "/lab/generate", "", `{"length":4}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
