package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"classbook/pkg/logger"
	"classbook/pkg/model"

	"github.com/go-playground/validator/v10"
)

var clockTimeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type ReservationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReservationValidator(log *logger.Logger) *ReservationValidator {
	v := validator.New()

	if err := v.RegisterValidation("clock_time", validateClockTime); err != nil {
		log.Fatal("Failed to register 'clock_time' validator", "error", err)
	}
	if err := v.RegisterValidation("weekday", validateWeekday); err != nil {
		log.Fatal("Failed to register 'weekday' validator", "error", err)
	}

	log.Debug("Reservation validator initialized successfully")

	return &ReservationValidator{
		validate: v,
		logger:   log,
	}
}

func validateClockTime(fl validator.FieldLevel) bool {
	return IsClockTime(fl.Field().String())
}

func validateWeekday(fl validator.FieldLevel) bool {
	return model.Weekday(fl.Field().String()).Valid()
}

// IsClockTime reports whether s is a zero-padded 24h HH:MM time.
func IsClockTime(s string) bool {
	return clockTimeRegex.MatchString(s)
}

func (v *ReservationValidator) Validate(req *model.ReservationRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if req.EndTime <= req.StartTime {
		return ValidationErrors{
			ValidationError{
				Field:   "EndTime",
				Message: "end_time must be after start_time",
			},
		}
	}

	return nil
}

func (v *ReservationValidator) ValidateClassroom(c *model.Classroom) error {
	if err := v.validate.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

// ParseTimeslot splits "HH:MM-HH:MM" into its start and end.
func ParseTimeslot(slot string) (string, string, error) {
	start, end, ok := strings.Cut(strings.TrimSpace(slot), "-")
	if !ok {
		return "", "", ValidationErrors{{Field: "timeslot", Message: "timeslot must look like HH:MM-HH:MM"}}
	}

	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	var errs ValidationErrors
	if !IsClockTime(start) {
		errs = append(errs, ValidationError{Field: "timeslot", Message: fmt.Sprintf("start %q is not a valid HH:MM time", start)})
	}
	if !IsClockTime(end) {
		errs = append(errs, ValidationError{Field: "timeslot", Message: fmt.Sprintf("end %q is not a valid HH:MM time", end)})
	}
	if len(errs) > 0 {
		return "", "", errs
	}
	if end <= start {
		return "", "", ValidationErrors{{Field: "timeslot", Message: "timeslot end must be after its start"}}
	}
	return start, end, nil
}

func (v *ReservationValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "clock_time":
			message = fmt.Sprintf("%s must be a 24h HH:MM time", err.Field())
		case "weekday":
			message = fmt.Sprintf("%s must be a day name from Sunday to Saturday", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
