// Package errors provides structured error handling with gRPC status mapping.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Building errors
	CodeBuildingNameEmpty    Code = "BUILDING_NAME_EMPTY"
	CodeBuildingExists       Code = "BUILDING_ALREADY_EXISTS"
	CodeFilterQueryEmpty     Code = "FILTER_QUERY_EMPTY"
	CodeRecordEncodingFailed Code = "RECORD_ENCODING_FAILED"

	// Storage errors
	CodeRepositoryUnavailable Code = "REPOSITORY_UNAVAILABLE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeBuildingNameEmpty,
		CodeFilterQueryEmpty:
		return codes.InvalidArgument

	case CodeBuildingExists:
		return codes.AlreadyExists

	case CodeRepositoryUnavailable:
		return codes.Unavailable

	default:
		return codes.Internal
	}
}
