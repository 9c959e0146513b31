package record

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/info-backend/internal/domain"
)

// Field names as they appear in request bodies.
const (
	fieldName = "name"
	fieldAge  = "age"
)

// patchableFields lists the body members PatchRecord applies.
// Anything else, including id and the timestamps, is ignored.
var patchableFields = map[string]bool{
	fieldName: true,
	fieldAge:  true,
}

// CreateRecordInput carries the raw "name" and "age" members of a body.
// A member that is not in the body is the zero gjson.Result.
type CreateRecordInput struct {
	Name gjson.Result
	Age  gjson.Result
}

// Validate checks all fields and collects all errors.
func (i CreateRecordInput) Validate() error {
	_, err := i.record()
	return err
}

func (i CreateRecordInput) record() (*domain.Record, error) {
	var (
		errs []domain.FieldError
		rec  domain.Record
	)

	if !i.Name.Exists() {
		errs = append(errs, domain.FieldError{Field: fieldName, Message: "required"})
	} else if name, fe := coerceName(i.Name); fe != nil {
		errs = append(errs, *fe)
	} else {
		rec.Name = name
	}

	if !i.Age.Exists() {
		errs = append(errs, domain.FieldError{Field: fieldAge, Message: "required"})
	} else if age, fe := coerceAge(i.Age); fe != nil {
		errs = append(errs, *fe)
	} else {
		rec.Age = age
	}

	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	return &rec, nil
}

// ListRecordsInput holds the optional search text.
type ListRecordsInput struct {
	Search string
}

func (i ListRecordsInput) validate(maxLen int) error {
	if msg := badText(i.Search); msg != "" {
		return domain.NewValidationError("search", msg)
	}
	if utf8.RuneCountInString(i.Search) > maxLen {
		return domain.NewValidationError("search", fmt.Sprintf("max %d characters", maxLen))
	}
	return nil
}

// ReplaceRecordInput overwrites each member present in the body.
// Absent members leave the stored value unchanged.
type ReplaceRecordInput struct {
	ID   string
	Name gjson.Result
	Age  gjson.Result
}

func (i ReplaceRecordInput) update() (domain.RecordUpdate, error) {
	fields := make(map[string]gjson.Result, 2)
	if i.Name.Exists() {
		fields[fieldName] = i.Name
	}
	if i.Age.Exists() {
		fields[fieldAge] = i.Age
	}
	return buildUpdate(fields)
}

// PatchRecordInput carries every top-level member of a body.
type PatchRecordInput struct {
	ID     string
	Fields map[string]gjson.Result
}

// buildUpdate coerces the patchable members of fields. It never stops at
// the first bad member, so the caller sees every problem at once.
func buildUpdate(fields map[string]gjson.Result) (domain.RecordUpdate, error) {
	var (
		errs []domain.FieldError
		upd  domain.RecordUpdate
	)

	if v, ok := fields[fieldName]; ok {
		if name, fe := coerceName(v); fe != nil {
			errs = append(errs, *fe)
		} else {
			upd.Name = &name
		}
	}
	if v, ok := fields[fieldAge]; ok {
		if age, fe := coerceAge(v); fe != nil {
			errs = append(errs, *fe)
		} else {
			upd.Age = &age
		}
	}

	if len(errs) > 0 {
		return domain.RecordUpdate{}, domain.NewValidationErrors(errs)
	}
	return upd, nil
}

// coerceName accepts a string, or a number rendered as its decimal text.
// The result is trimmed and must not be empty.
func coerceName(v gjson.Result) (string, *domain.FieldError) {
	var name string
	switch v.Type {
	case gjson.String:
		name = strings.TrimSpace(v.Str)
	case gjson.Number:
		name = strconv.FormatFloat(v.Num, 'f', -1, 64)
	case gjson.Null:
		return "", &domain.FieldError{Field: fieldName, Message: "required"}
	default:
		return "", &domain.FieldError{Field: fieldName, Message: "must be a string"}
	}

	if name == "" {
		return "", &domain.FieldError{Field: fieldName, Message: "required"}
	}
	if msg := badText(name); msg != "" {
		return "", &domain.FieldError{Field: fieldName, Message: msg}
	}
	return name, nil
}

// badText describes why s cannot be stored as text, or returns "".
// Stores reject invalid UTF-8 and NUL.
func badText(s string) string {
	switch {
	case !utf8.ValidString(s):
		return "must be valid UTF-8"
	case strings.ContainsRune(s, 0):
		return "must not contain NUL characters"
	}
	return ""
}

// coerceAge accepts a number or a numeric string. The value must be a whole
// number within [domain.MinAge, domain.MaxAge].
func coerceAge(v gjson.Result) (int, *domain.FieldError) {
	var n float64
	switch v.Type {
	case gjson.Number:
		n = v.Num
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return 0, &domain.FieldError{Field: fieldAge, Message: "required"}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, &domain.FieldError{Field: fieldAge, Message: "must be a number"}
		}
		n = f
	case gjson.Null:
		return 0, &domain.FieldError{Field: fieldAge, Message: "required"}
	default:
		return 0, &domain.FieldError{Field: fieldAge, Message: "must be a number"}
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, &domain.FieldError{Field: fieldAge, Message: "must be a number"}
	}
	if n != math.Trunc(n) {
		return 0, &domain.FieldError{Field: fieldAge, Message: "must be an integer"}
	}
	if n < domain.MinAge || n > domain.MaxAge {
		return 0, &domain.FieldError{
			Field:   fieldAge,
			Message: fmt.Sprintf("must be between %d and %d", domain.MinAge, domain.MaxAge),
		}
	}
	return int(n), nil
}
