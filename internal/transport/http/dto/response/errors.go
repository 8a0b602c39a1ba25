package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status:  "error",
		Error:   "authentication_failed",
		Details: "Invalid email or password",
	}

	ErrInvalidRegisterRequest = ErrorResponse{
		Status:  "error",
		Error:   "invalid_register_request",
		Details: "Invalid registration data",
	}

	ErrUserAlreadyExists = ErrorResponse{
		Status:  "error",
		Error:   "user_already_exists",
		Details: "User with this email already exists",
	}

	ErrInvalidID = ErrorResponse{
		Status:  "error",
		Error:   "invalid_id",
		Details: "Identifier is not a valid UUID",
	}

	ErrNotFound = ErrorResponse{
		Status: "error",
		Error:  "not_found",
	}

	ErrForbidden = ErrorResponse{
		Status: "error",
		Error:  "forbidden",
	}

	ErrFileTooLarge = ErrorResponse{
		Status:  "error",
		Error:   "file_too_large",
		Details: "File exceeds the maximum upload size",
	}

	ErrPaymentFailed = ErrorResponse{
		Status: "error",
		Error:  "payment_error",
	}

	ErrInternal = ErrorResponse{
		Status: "error",
		Error:  "internal_error",
	}
)

// WithDetails returns a copy of base carrying details.
func WithDetails(base ErrorResponse, details string) ErrorResponse {
	base.Details = details
	return base
}
