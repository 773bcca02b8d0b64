package services

import (
	"errors"

	"github.com/aws/smithy-go"
)

var (
	ErrSecretNotFound   = errors.New("secret not found")
	ErrPipelineNotFound = errors.New("pipeline not found")
	ErrBucketNotFound   = errors.New("bucket not found")
)

// errorCode returns the AWS API error code of err, if any.
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
