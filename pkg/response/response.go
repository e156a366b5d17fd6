package response

// Envelope is the shared JSON shape used by the middleware layer.
type Envelope struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(code, message string, data interface{}) Envelope {
	return Envelope{Code: code, Message: message, Data: data}
}

func Error(code, message string, data interface{}) Envelope {
	return Envelope{Code: code, Message: message, Data: data}
}
