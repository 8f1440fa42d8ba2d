// Package classification of Salona DM Bot API
//
// # Documentation for Salona DM Bot API
//
// Schemes: http
// BasePath: /
// Version: 1.0.0
//
// Consumes:
// - application/json
//
// Produces:
// - application/json
//
// swagger:meta
package http

import "github.com/kahvecikaan/salona-bot/internal/domain"

// NOTE: the wrapper types below exist for the swagger generator only

// Generic error message
// swagger:response errorResponse
type errorResponseWrapper struct {
	// Description of the error
	// in: body
	Body ErrorResponse
}

// Unexpected internal fault
// swagger:response internalErrorResponse
type internalErrorResponseWrapper struct {
	// in: body
	Body InternalErrorResponse
}

// Validation errors defined as an array of strings
// swagger:response validationErrorResponse
type validationErrorResponseWrapper struct {
	// Collection of the errors
	// in: body
	Body ValidationError
}

// Server status
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in: body
	Body HealthResponse
}

// A few catalog rows
// swagger:response sampleResponse
type sampleResponseWrapper struct {
	// in: body
	Body SampleResponse
}

// The reply to a direct message
// swagger:response replyResponse
type replyResponseWrapper struct {
	// in: body
	Body domain.Reply
}

// swagger:parameters simulateDM
type directMessageParamsWrapper struct {
	// The simulated direct message
	// in: body
	// required: true
	Body domain.DirectMessage
}

// ErrorResponse defines the structure for API error responses
//
// swagger:model
type ErrorResponse struct {
	// The error message
	//
	// required: true
	Error string `json:"error"`
}

// InternalErrorResponse is returned when handling a message fails outside
// the generation path
//
// swagger:model
type InternalErrorResponse struct {
	// Diagnostic text
	//
	// required: true
	Detail string `json:"detail"`
}

// ValidationError defines the structure for API validation error responses
//
// swagger:model
type ValidationError struct {
	// The validation errors
	//
	// required: true
	Messages []string `json:"messages"`
}

// swagger:model
type HealthResponse struct {
	// required: true
	// example: ok
	Status string `json:"status"`
}

// SampleResponse lists catalog rows as [name, price] pairs
//
// swagger:model
type SampleResponse struct {
	// required: true
	SampleProducts []*domain.ProductSummary `json:"sample_products"`
}
