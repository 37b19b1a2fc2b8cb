package minierpserver

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	customerapp "github.com/HenrryVelezC/minierp/internal/domains/customers/application"
	customerports "github.com/HenrryVelezC/minierp/internal/domains/customers/ports"
	identityapp "github.com/HenrryVelezC/minierp/internal/domains/identity/application"
	identityports "github.com/HenrryVelezC/minierp/internal/domains/identity/ports"
	orderapp "github.com/HenrryVelezC/minierp/internal/domains/orders/application"
	orderports "github.com/HenrryVelezC/minierp/internal/domains/orders/ports"
	apierrors "github.com/HenrryVelezC/minierp/internal/shared/errors"
)

// responder turns service errors into Problem Details. Unmapped errors render as 500.
var responder = apierrors.NewChainedResponder("",
	apierrors.MapSentinel(customerapp.ErrInvalidInput, apierrors.ErrValidation),
	apierrors.MapSentinel(orderapp.ErrInvalidInput, apierrors.ErrValidation),
	apierrors.MapSentinel(identityapp.ErrInvalidInput, apierrors.ErrValidation),
	apierrors.MapSentinel(identityapp.ErrInvalidCredentials, apierrors.ErrUnauthorized),
	apierrors.MapSentinel(identityports.ErrEmailTaken, apierrors.ErrConflict),
	apierrors.MapSentinel(customerports.ErrNotFound, apierrors.ErrNotFound),
	apierrors.MapSentinel(orderports.ErrNotFound, apierrors.ErrNotFound),
	apierrors.MapSentinel(identityports.ErrNotFound, apierrors.ErrNotFound),
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

// pathID parses the :id segment, answering 400 when it is not a uuid.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("id must be a uuid"))
		return uuid.Nil, false
	}
	return id, true
}

func isNotFound(err error) bool {
	return errors.Is(err, identityports.ErrNotFound)
}
