package handler

import "github.com/labstack/echo/v4"

// envelope is the uniform response body of the API.  Every endpoint,
// success or failure, answers with status and message; data and token are
// attached where an endpoint has a payload.  Message is usually a string
// but carries a field->problem map for validation failures.
type envelope struct {
	Status  string      `json:"status"`
	Message interface{} `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Token   interface{} `json:"token,omitempty"`
}

func respondOK(c echo.Context, code int, message string) error {
	return c.JSON(code, envelope{Status: "success", Message: message})
}

func respondData(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, envelope{Status: "success", Message: message, Data: data})
}

func respondErr(c echo.Context, code int, message interface{}) error {
	return c.JSON(code, envelope{Status: "error", Message: message})
}
