package response

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"strings"

	"signage-hub/pkg/discord"
	"signage-hub/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Unauthorized sends 401 response.
func Unauthorized(c *gin.Context) {
	c.JSON(parseError(errors.NewUnauthorizedHTTPError(), c, nil))
}

// Forbidden sends 403 response.
func Forbidden(c *gin.Context) {
	c.JSON(parseError(errors.NewForbiddenHTTPError(), c, nil))
}

func parseError(err error, c *gin.Context, d discord.IDiscord) (int, Resp) {
	switch parsedErr := err.(type) {
	case *errors.ValidationError:
		return http.StatusBadRequest, Resp{
			ErrorCode: parsedErr.Code,
			Message:   parsedErr.Error(),
		}
	case *errors.PermissionError:
		return http.StatusBadRequest, Resp{
			ErrorCode: parsedErr.Code,
			Message:   parsedErr.Error(),
		}
	case *errors.ValidationErrorCollector:
		return http.StatusBadRequest, Resp{
			ErrorCode: ValidationErrorCode,
			Message:   ValidationErrorMsg,
			Errors:    parsedErr.Errors(),
		}
	case *errors.PermissionErrorCollector:
		return http.StatusBadRequest, Resp{
			ErrorCode: PermissionErrorCode,
			Message:   PermissionErrorMsg,
			Errors:    parsedErr.Errors(),
		}
	case *errors.HTTPError:
		statusCode := parsedErr.StatusCode
		if statusCode == 0 {
			statusCode = http.StatusBadRequest
		}
		return statusCode, Resp{
			ErrorCode: parsedErr.Code,
			Message:   parsedErr.Message,
		}
	default:
		if d != nil {
			reportAsync(c, d, err)
		}
		return http.StatusInternalServerError, Resp{
			ErrorCode: InternalServerErrorCode,
			Message:   DefaultErrorMessage,
		}
	}
}

// Error sends an error response (status + JSON from parseError).
func Error(c *gin.Context, err error, d discord.IDiscord) {
	statusCode, resp := parseError(err, c, d)
	c.JSON(statusCode, resp)
}

// HttpError sends a response for *errors.HTTPError.
func HttpError(c *gin.Context, err *errors.HTTPError) {
	statusCode, resp := parseError(err, c, nil)
	c.JSON(statusCode, resp)
}

// ErrorWithMap looks up err in eMap and sends the corresponding HTTPError,
// falling back to Error for unmapped errors.
func ErrorWithMap(c *gin.Context, err error, eMap ErrorMapping) {
	if httpErr, ok := eMap[err]; ok {
		Error(c, httpErr, nil)
		return
	}
	Error(c, err, nil)
}

// PanicError handles panic recovery and sends an error response.
func PanicError(c *gin.Context, recovered any, d discord.IDiscord) {
	var err error
	switch v := recovered.(type) {
	case nil:
		err = fmt.Errorf("panic with nil value")
	case error:
		err = v
	default:
		err = fmt.Errorf("%v", v)
	}
	statusCode, resp := parseError(err, c, d)
	c.JSON(statusCode, resp)
}

func captureStackTrace() []string {
	var pcs [DefaultStackTraceDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return nil
	}
	var stackTrace []string
	for _, pc := range pcs[:n] {
		f := runtime.FuncForPC(pc)
		if f != nil {
			file, line := f.FileLine(pc)
			stackTrace = append(stackTrace, fmt.Sprintf("%s:%d %s", file, line, f.Name()))
		}
	}
	return stackTrace
}

func reportAsync(c *gin.Context, d discord.IDiscord, err error) {
	message := buildErrorReport(c, err, captureStackTrace())
	go func() {
		for _, msg := range splitForDiscord(message) {
			if sendErr := d.ReportBug(context.Background(), msg); sendErr != nil {
				log.Printf("pkg.response.reportAsync.ReportBug: %v\n", sendErr)
			}
		}
	}()
}

func splitForDiscord(message string) []string {
	var chunks []string
	var current string
	for _, line := range strings.Split(message, "\n") {
		line += "\n"
		if len(current)+len(line) > DiscordMaxMessageLen {
			if current != "" {
				chunks = append(chunks, strings.TrimSuffix(current, "\n"))
				current = ""
			}
			for len(line) > DiscordMaxMessageLen {
				chunks = append(chunks, line[:DiscordMaxMessageLen])
				line = line[DiscordMaxMessageLen:]
			}
		}
		current += line
	}
	if current != "" {
		chunks = append(chunks, strings.TrimSuffix(current, "\n"))
	}
	return chunks
}

func buildErrorReport(c *gin.Context, err error, backtrace []string) string {
	var sb strings.Builder
	sb.WriteString("================ SIGNAGE HUB ERROR ================\n")
	sb.WriteString(fmt.Sprintf("Route   : %s\n", c.Request.URL.String()))
	sb.WriteString(fmt.Sprintf("Method  : %s\n", c.Request.Method))
	if params := c.Request.URL.Query().Encode(); params != "" {
		sb.WriteString(fmt.Sprintf("Params  : %s\n", params))
	}
	sb.WriteString(fmt.Sprintf("Error   : %s\n", err.Error()))
	if len(backtrace) > 0 {
		sb.WriteString("\nBacktrace:\n")
		for i, line := range backtrace {
			sb.WriteString(fmt.Sprintf("[%d]: %s\n", i, line))
		}
	}
	sb.WriteString("===================================================\n")
	return sb.String()
}
