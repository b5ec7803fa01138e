package domain

import apperrors "github.com/dawctl/reaper-mcp/internal/platform/errors"

func validateRange(field string, value, min, max float64) error {
	if value < min || value > max {
		return apperrors.New(apperrors.CodeInvalidArgument,
			"%s must be between %v and %v, got %v", field, min, max, value)
	}
	return nil
}

func validateNonNegative(field string, value float64) error {
	if value < 0 {
		return apperrors.New(apperrors.CodeInvalidArgument,
			"%s must not be negative, got %v", field, value)
	}
	return nil
}

func validatePositive(field string, value float64) error {
	if value <= 0 {
		return apperrors.New(apperrors.CodeInvalidArgument,
			"%s must be positive, got %v", field, value)
	}
	return nil
}

func validateOrdered(startField, endField string, start, end float64) error {
	if end <= start {
		return apperrors.New(apperrors.CodeInvalidArgument,
			"%s must be greater than %s, got %v and %v", endField, startField, start, end)
	}
	return nil
}

func validateMIDIByte(field string, value int) error {
	if value < 0 || value > 127 {
		return apperrors.New(apperrors.CodeInvalidArgument,
			"%s must be between 0 and 127, got %d", field, value)
	}
	return nil
}

func validateTimeSignature(numerator, denominator int) error {
	if numerator < 1 {
		return apperrors.New(apperrors.CodeInvalidArgument,
			"numerator must be at least 1, got %d", numerator)
	}
	switch denominator {
	case 1, 2, 4, 8, 16, 32:
		return nil
	}
	return apperrors.New(apperrors.CodeInvalidArgument,
		"denominator must be one of 1, 2, 4, 8, 16, 32, got %d", denominator)
}
