// Package httperrors writes error responses.
package httperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/budgetbook/backend/pkg/commands"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var statuses = map[commands.Kind]int{
	commands.KindNotFound:   http.StatusNotFound,
	commands.KindConflict:   http.StatusConflict,
	commands.KindValidation: http.StatusBadRequest,
	commands.KindStorage:    http.StatusInternalServerError,
}

// Status returns the HTTP status code for an error kind.
func Status(kind commands.Kind) int {
	if status, ok := statuses[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// New writes an error response with a message that is not tied to a command.
func New(c *gin.Context, status int, msgAndArgs ...any) {
	msg := ""
	if len(msgAndArgs) == 1 {
		if msgAsStr, ok := msgAndArgs[0].(string); ok {
			msg = msgAsStr
		}
	}

	if len(msgAndArgs) > 1 {
		msg = fmt.Sprintf(msgAndArgs[0].(string), msgAndArgs[1:]...)
	}

	c.AbortWithStatusJSON(status, HTTPError{
		Error: msg,
	})
}

// Handler writes the response for the error of a command.
func Handler(c *gin.Context, err error) {
	var e *commands.Error
	if !errors.As(err, &e) {
		e = commands.Classify(err)
	}

	status := Status(e.Kind)
	if status == http.StatusInternalServerError {
		log.Error().Err(e.Unwrap()).Str("request-id", requestid.Get(c)).Str("kind", string(e.Kind)).Msg(e.Message)
	}

	c.AbortWithStatusJSON(status, HTTPError{
		Error: e.Message,
		Kind:  string(e.Kind),
	})
}
