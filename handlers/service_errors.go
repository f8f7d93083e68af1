package handlers

import (
	"net/http"

	"github.com/upb/notice-board/services"
	"github.com/upb/notice-board/utils"
	"go.uber.org/zap"
)

// genericServerError is what clients see for every 5xx
const genericServerError = "Server error"

// HandleServiceError maps domain errors to HTTP responses.
// Validation and conflict failures surface as 500 with the domain message in details.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	message := services.GetErrorMessage(err)
	details := services.GetErrorDetails(err)

	var writeErr error
	switch {
	case services.IsUnauthorizedError(err):
		writeErr = utils.WriteUnauthorized(w, message)

	case services.IsInvalidTokenError(err), services.IsForbiddenError(err):
		writeErr = utils.WriteForbidden(w, message)

	case services.IsInvalidCredentialsError(err):
		writeErr = utils.WriteBadRequest(w, message, nil)

	case services.IsNotFoundError(err):
		writeErr = utils.WriteNotFound(w, message)

	case services.IsValidationError(err), services.IsConflictError(err):
		logger.Warn("request rejected by store or validation",
			zap.String("error_type", string(services.GetErrorType(err))),
			zap.Error(err))
		writeErr = utils.WriteInternalServerError(w, genericServerError, withReason(details, message))

	case services.IsInternalError(err):
		logger.Error("internal server error", zap.Error(err))
		writeErr = utils.WriteInternalServerError(w, genericServerError, nil)

	default:
		logger.Error("unhandled error type",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		writeErr = utils.WriteInternalServerError(w, genericServerError, nil)
	}

	if writeErr != nil {
		logger.Error("failed to write error response", zap.Error(writeErr))
	}
}

// HandleDecodeError answers a request whose body could not be parsed
func HandleDecodeError(w http.ResponseWriter, err error, logger *zap.Logger) {
	logger.Debug("malformed request body", zap.Error(err))
	if writeErr := utils.WriteBadRequest(w, err.Error(), nil); writeErr != nil {
		logger.Error("failed to write bad request response", zap.Error(writeErr))
	}
}

func withReason(details map[string]interface{}, reason string) map[string]interface{} {
	out := make(map[string]interface{}, len(details)+1)
	for k, v := range details {
		out[k] = v
	}
	out["reason"] = reason
	return out
}
