package server

import (
	"github.com/labstack/echo/v5"
	"go.uber.org/zap"

	"tileserve/apierr"
)

// httpErrorHandler is echo's central error sink (registered as
// Echo.HTTPErrorHandler in New): every handler just returns its error and
// this is the one place that turns it into a response, so requestLogger,
// which sits between the handler and this sink, sees the real error.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := apierr.StatusOf(err)
	if werr := c.String(status, err.Error()); werr != nil {
		s.log.Error("writing error response", zap.Error(werr))
	}
}
