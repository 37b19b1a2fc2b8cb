package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errThing = errors.New("thing is invalid")

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/things/:id", handler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/7", nil))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	return w, problem
}

func TestChainedResponder_MapsWrappedSentinel(t *testing.T) {
	responder := NewChainedResponder("", MapSentinel(errThing, ErrValidation))

	w, problem := serve(t, func(c *gin.Context) {
		responder.RespondError(c, fmt.Errorf("create: %w", errThing))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ContentTypeProblemJSON, w.Header().Get("Content-Type"))
	assert.Equal(t, TypeValidation, problem.Type)
	assert.Equal(t, "create: thing is invalid", problem.Detail)
	assert.Equal(t, "/things/7", problem.Instance)
}

func TestChainedResponder_UnknownErrorsHideDetail(t *testing.T) {
	responder := NewChainedResponder("https://minierp.local", MapSentinel(errThing, ErrValidation))

	w, problem := serve(t, func(c *gin.Context) {
		responder.RespondError(c, errors.New("pq: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "https://minierp.local"+TypeInternal, problem.Type)
	assert.NotContains(t, problem.Detail, "pq")
}

func TestAbort_StopsChain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	reached := false
	router.GET("/guarded", func(c *gin.Context) {
		Abort(c, ErrForbidden)
	}, func(c *gin.Context) {
		reached = true
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, reached)
}

func TestWithExtension_DoesNotShareMaps(t *testing.T) {
	base := ErrNotFound.WithExtension("a", 1)
	derived := base.WithExtension("b", 2)
	assert.Len(t, base.Extensions, 1)
	assert.Len(t, derived.Extensions, 2)
	assert.Equal(t, http.StatusNotFound, HTTPStatusFromError(derived))
}
