package error

import "net/http"

type Error struct {
	httpCode  int
	errorCode int
	errorMsg  string
	errorDesc string
}

func New(httpCode, errorCode int, errorMsg string, errorDesc string) *Error {
	return &Error{
		httpCode:  httpCode,
		errorCode: errorCode,
		errorMsg:  errorMsg,
		errorDesc: errorDesc,
	}

}
func From(err error) *Error {
	if appErr, ok := err.(*Error); ok {
		return appErr
	}
	return InternalServer(err.Error())
}

// ✅ 用戶端錯誤 (400 系列)
func ValidateErr(errorDesc string) *Error {
	errCode := BAD_REQUEST_BODY
	return New(http.StatusBadRequest, errCode, "bad-request/body", errorDesc)
}

func InvalidConfig(errorDesc string) *Error {
	return New(http.StatusBadRequest, INVALID_CONFIG, "invalid-config", errorDesc)
}

func InvalidFeedRow(errorDesc string) *Error {
	return New(http.StatusBadRequest, INVALID_FEED_ROW, "invalid-feed-row", errorDesc)
}

func BadRequest(errorDesc string, errorCode ...int) *Error {
	errCode := BAD_REQUEST_BODY
	if len(errorCode) > 0 {
		errCode = errorCode[0]
	}
	return New(http.StatusBadRequest, errCode, "bad-request", errorDesc)
}

func BadRequestParams(errorDesc string) *Error {
	return New(http.StatusBadRequest, BAD_REQUEST_PARAMS, "bad-request-params", errorDesc)
}

// ✅ 狀態衝突 (409)
func SyncAlreadyRunning(errorDesc string) *Error {
	return New(http.StatusConflict, SYNC_ALREADY_RUNNING, "sync-already-running", errorDesc)
}

// ✅ 伺服器內部錯誤 (500 系列)
func InternalServer(errorDesc string) *Error {
	return New(http.StatusInternalServerError, INTERNAL_ERROR, "internal-server-error", errorDesc)
}

func FeedError(errorDesc string) *Error {
	return New(http.StatusInternalServerError, FEED_ERROR, "feed-error", errorDesc)
}

func ServiceUnavailable(errorDesc string) *Error {
	return New(http.StatusServiceUnavailable, SERVICE_UNAVAILABLE, "service-unavailable", errorDesc)
}

// ✅ 外部 API 錯誤 (502, 504)
func ExternalRequestError(errorDesc string) *Error {
	return New(http.StatusBadGateway, EXTERNAL_REQUEST_ERROR, "external-request-failed", errorDesc)
}

func ExternalResponseFormatError(errorDesc string) *Error {
	return New(http.StatusBadGateway, EXTERNAL_RESPONSE_FORMAT_ERROR, "external-response-invalid", errorDesc)
}

func RemoteUserError(errorDesc string) *Error {
	return New(http.StatusBadGateway, REMOTE_USER_ERROR, "remote-user-error", errorDesc)
}

func GatewayTimeout(errorDesc string) *Error {
	return New(http.StatusGatewayTimeout, GATEWAY_TIMEOUT, "gateway-timeout", errorDesc)
}

// ✅ 權限錯誤 (401, 403)
func Unauthorized(errorDesc string, errorCode ...int) *Error {
	errCode := UNAUTHORIZED
	if len(errorCode) > 0 {
		errCode = errorCode[0]
	}
	return New(http.StatusUnauthorized, errCode, "unauthorized", errorDesc)
}

func UnauthorizedApiKey(errorDesc string) *Error {
	return New(http.StatusForbidden, UNAUTHORIZED_API_KEY, "unauthorized-api-key", errorDesc)
}

// ✅ 資源找不到 (404)
func NotFound(errorDesc string, errorCode ...int) *Error {
	errCode := NOT_FOUND
	if len(errorCode) > 0 {
		errCode = errorCode[0]
	}
	return New(http.StatusNotFound, errCode, "not-found", errorDesc)
}

func (e *Error) HttpCode() int {
	return e.httpCode
}

func (e *Error) ErrorCode() int {
	return e.errorCode
}
func (e *Error) ErrorDesc() string {
	return e.errorDesc
}
func (e *Error) Error() string {
	return e.errorMsg
}

func MapHttpStatusToError(status int, desc string) *Error {
	switch status {
	case http.StatusBadRequest:
		return BadRequest(desc)
	case http.StatusUnauthorized:
		return Unauthorized(desc)
	case http.StatusNotFound:
		return NotFound(desc)
	case http.StatusConflict:
		return SyncAlreadyRunning(desc)
	case http.StatusInternalServerError:
		return InternalServer(desc)
	case http.StatusServiceUnavailable:
		return ServiceUnavailable(desc)
	case http.StatusGatewayTimeout:
		return GatewayTimeout(desc)
	default:
		return InternalServer(desc)
	}
}
