package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/BaronguyenVinasu/riftcounter/internal/middleware"
	"github.com/BaronguyenVinasu/riftcounter/internal/utils"
)

// FieldError describes one failed binding rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondError maps err onto the error envelope. Internal failures are logged
// with the request id and returned without detail.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	appErr := toAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		middleware.RecordError(c, err, appErr.Code)
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"path":       c.FullPath(),
				"request_id": middleware.GetRequestID(c),
			}).Error("Request failed")
		}
	}

	body := gin.H{
		"success": false,
		"error":   appErr.Message,
		"code":    appErr.Code,
	}
	if appErr.Details != nil {
		body["details"] = appErr.Details
	}
	c.AbortWithStatusJSON(appErr.Status, body)
}

func toAppError(err error) *utils.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: jsonFieldPath(fe.Namespace()), Rule: fe.Tag(), Param: fe.Param()})
		}
		return utils.NewAppError(http.StatusBadRequest, utils.CodeValidation, "Request validation failed", fields)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return utils.NewAppError(http.StatusBadRequest, utils.CodeValidation, "Malformed JSON body", nil)
	case errors.As(err, &typeErr):
		return utils.NewAppError(http.StatusBadRequest, utils.CodeValidation,
			fmt.Sprintf("Field %s must be %s", typeErr.Field, typeErr.Type), nil)
	case errors.Is(err, io.EOF):
		return utils.NewAppError(http.StatusBadRequest, utils.CodeValidation, "Request body is required", nil)
	}
	return utils.AsAppError(err)
}

// jsonFieldPath turns "AnalysisRequest.Enemies[0]" into "enemies[0]".
func jsonFieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

// queryInt reads an optional positive integer query parameter.
func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, utils.NewAppError(http.StatusBadRequest, utils.CodeValidation,
			fmt.Sprintf("Query parameter %q must be a non-negative integer", key), nil)
	}
	return v, nil
}

// queryBool reads an optional boolean query parameter; anything unparsable is false.
func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}

// Pagination is the page metadata returned by list endpoints.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func respondPage(c *gin.Context, data interface{}, p Pagination) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       data,
		"pagination": p,
	})
}
