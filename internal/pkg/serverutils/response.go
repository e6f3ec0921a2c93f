package serverutils

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorBody struct {
	Code    int           `json:"code"`
	Error   string        `json:"error"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type MessageBody struct {
	Message string `json:"message"`
}

func ErrorResponse(code int, message string) ErrorBody {
	return ErrorBody{Code: code, Error: message}
}

func ValidationErrorResponse(details []ErrorDetail) ErrorBody {
	return ErrorBody{
		Code:    400,
		Error:   ErrBadRequest.Error(),
		Details: details,
	}
}

func MessageResponse(message string) MessageBody {
	return MessageBody{Message: message}
}
