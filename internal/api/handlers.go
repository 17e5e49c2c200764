package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vultisig/xrpl-executor/internal/executor"
)

func (s *Server) isAlive(c echo.Context) error {
	disease := s.services.Health.GetDisease(c.Request().Context())

	status := http.StatusOK
	if disease != "" {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, isAliveResponse{
		Name:    s.name,
		Version: s.version,
		Disease: disease,
	})
}

func (s *Server) integrationInfo(c echo.Context) error {
	info, err := s.services.Info.GetInfo(c.Request().Context())
	if err != nil {
		return s.handleError(c, err)
	}
	return c.JSON(http.StatusOK, newIntegrationInfoResponse(info))
}

func (s *Server) addressValidity(c echo.Context) error {
	var tagType *executor.AddressTagType
	if raw := c.QueryParam("tagType"); raw != "" {
		t := executor.AddressTagType(raw)
		tagType = &t
	}

	result, err := s.services.Addresses.Validate(
		c.Request().Context(),
		c.Param("address"),
		tagType,
		c.QueryParam("tag"),
	)
	if err != nil {
		return s.handleError(c, err)
	}
	return c.JSON(http.StatusOK, addressValidityResponse{Result: result})
}

func (s *Server) estimateTransferAmount(c echo.Context) error {
	fee, err := s.services.Fees.Estimate(c.Request().Context())
	if err != nil {
		return s.handleError(c, err)
	}
	return c.JSON(http.StatusOK, estimateResponse{
		EstimatedFees: []estimatedFee{{Asset: fee.Asset, Amount: fee.Amount}},
	})
}

func (s *Server) buildTransferAmount(c echo.Context) error {
	var req executor.BuildTransferAmountRequest
	if err := c.Bind(&req); err != nil {
		return s.handleError(c, &executor.RequestValidationError{Message: "invalid request body"})
	}

	built, err := s.services.Builder.Build(c.Request().Context(), req)
	if err != nil {
		return s.handleError(c, err)
	}
	return c.JSON(http.StatusOK, buildResponse{
		TransactionContext: built.Blob,
		Payment:            built.Payment,
	})
}

func (s *Server) broadcast(c echo.Context) error {
	var req broadcastRequest
	if err := c.Bind(&req); err != nil {
		return s.handleError(c, &executor.RequestValidationError{Message: "invalid request body"})
	}

	ack, err := s.services.Broadcast.Broadcast(c.Request().Context(), req.Signed)
	if err != nil {
		return s.handleError(c, err)
	}
	return c.JSON(http.StatusOK, broadcastResponse{TransactionID: ack.TransactionID})
}

func (s *Server) transactionState(c echo.Context) error {
	state, err := s.services.States.GetState(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.handleError(c, err)
	}
	return c.JSON(http.StatusOK, stateResponse{State: state})
}
