package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/vultisig/xrpl-executor/internal/executor"
	"github.com/vultisig/xrpl-executor/internal/xrp"
)

// handleError maps executor errors to HTTP responses. Only unexpected failures are logged.
func (s *Server) handleError(c echo.Context, err error) error {
	var (
		validationErr   *executor.RequestValidationError
		buildingErr     *executor.TransactionBuildingError
		broadcastingErr *executor.TransactionBroadcastingError
	)

	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, errorResponse{Message: validationErr.Message})
	case errors.As(err, &buildingErr):
		return c.JSON(http.StatusBadRequest, errorResponse{
			Message:   buildingErr.Message,
			ErrorCode: string(buildingErr.Code),
		})
	case errors.As(err, &broadcastingErr):
		return c.JSON(http.StatusBadRequest, errorResponse{
			Message:   broadcastingErr.Message,
			ErrorCode: string(broadcastingErr.Code),
		})
	}

	fields := logrus.Fields{
		"method": c.Request().Method,
		"path":   c.Path(),
	}
	if xrp.IsGatewayError(err) {
		s.logger.WithFields(fields).WithError(err).Error("node request failed")
		return c.JSON(http.StatusBadGateway, errorResponse{Message: err.Error()})
	}

	s.logger.WithFields(fields).WithError(err).Error("request failed")
	return c.JSON(http.StatusInternalServerError, errorResponse{Message: "internal error"})
}
