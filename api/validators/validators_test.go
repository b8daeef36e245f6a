package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/wms-backend/pkg/errors"
	"github.com/angelmondragon/wms-backend/pkg/pagination"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Priority string `json:"priority" validate:"omitempty,oneof=LOW HIGH"`
}

func TestDecodeJSONBodyValid(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@x.com","password":"secret1","extra":true}`))
	var body loginBody
	require.NoError(t, DecodeJSONBody(r, &body))
	assert.Equal(t, "a@x.com", body.Email)
}

func TestDecodeJSONBodyValidationDetailsUseJSONNames(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","password":"123","priority":"MID"}`))
	var body loginBody
	err := DecodeJSONBody(r, &body)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at least 6", details["password"])
	assert.Equal(t, "must be one of [LOW HIGH]", details["priority"])
}

func TestDecodeJSONBodyMalformedAndEmpty(t *testing.T) {
	var body loginBody
	err := DecodeJSONBody(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`)), &body)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	err = DecodeJSONBody(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``)), &body)
	require.Error(t, err)
	assert.Equal(t, "Request body is required", pkgerrors.As(err).Message())
}

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?period=7&bad=x&big=900", nil)

	v, err := ParseQueryInt(r, "period", 30, 1, 365)
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = ParseQueryInt(r, "missing", 30, 1, 365)
	require.NoError(t, err)
	assert.Equal(t, 30, v)

	_, err = ParseQueryInt(r, "bad", 30, 1, 365)
	assert.Error(t, err)

	_, err = ParseQueryInt(r, "big", 30, 1, 365)
	assert.Error(t, err)
}

func TestParsePagination(t *testing.T) {
	p, err := ParsePagination(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, pagination.Params{Page: 1, Limit: 10}, p)

	p, err = ParsePagination(httptest.NewRequest(http.MethodGet, "/?page=3&limit=500", nil))
	require.NoError(t, err)
	assert.Equal(t, pagination.Params{Page: 3, Limit: 100}, p)

	_, err = ParsePagination(httptest.NewRequest(http.MethodGet, "/?page=0", nil))
	assert.Error(t, err)
}

func TestParseUUIDParam(t *testing.T) {
	id := uuid.New()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id.String())
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	got, err := ParseUUIDParam(r, "id")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	rctx.URLParams = chi.RouteParams{}
	rctx.URLParams.Add("id", "not-a-uuid")
	_, err = ParseUUIDParam(r, "id")
	require.Error(t, err)
	assert.Equal(t, "Invalid id", pkgerrors.As(err).Message())
}

func TestParseBearerToken(t *testing.T) {
	tok, ok := ParseBearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", tok)

	_, ok = ParseBearerToken("")
	assert.False(t, ok)
	_, ok = ParseBearerToken("Basic abc")
	assert.False(t, ok)
	_, ok = ParseBearerToken("Bearer")
	assert.False(t, ok)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "abc", SanitizeString("  abcdef ", 3))
	blank := "   "
	assert.Nil(t, SanitizeOptional(&blank, 10))
	assert.Nil(t, SanitizeOptional(nil, 10))
	v := " x "
	assert.Equal(t, "x", *SanitizeOptional(&v, 10))
}
