package query

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
)

// Field is a filterable post attribute.
type Field int

// Recognized fields. FieldNone marks a free token.
const (
	FieldNone Field = iota
	FieldID
	FieldCreatedAt
	FieldUpdatedAt
	FieldUploader
	FieldLikes
	FieldViews
	FieldModerationStatus
	FieldSourceLink
)

var fieldNames = map[string]Field{
	"id":               FieldID,
	"createdAt":        FieldCreatedAt,
	"updatedAt":        FieldUpdatedAt,
	"uploader":         FieldUploader,
	"likes":            FieldLikes,
	"views":            FieldViews,
	"moderationStatus": FieldModerationStatus,
	"sourceLink":       FieldSourceLink,
}

// ParseField resolves a query prefix to a recognized field. Names are case-sensitive.
func ParseField(name string) (Field, bool) {
	f, ok := fieldNames[name]
	return f, ok
}

func (f Field) String() string {
	switch f {
	case FieldID:
		return "id"
	case FieldCreatedAt:
		return "createdAt"
	case FieldUpdatedAt:
		return "updatedAt"
	case FieldUploader:
		return "uploader"
	case FieldLikes:
		return "likes"
	case FieldViews:
		return "views"
	case FieldModerationStatus:
		return "moderationStatus"
	case FieldSourceLink:
		return "sourceLink"
	}
	return ""
}

// Kind returns the value type the field coerces to.
func (f Field) Kind() Kind {
	switch f {
	case FieldCreatedAt, FieldUpdatedAt:
		return KindTime
	case FieldLikes, FieldViews:
		return KindInt
	case FieldNone, FieldID, FieldUploader, FieldModerationStatus, FieldSourceLink:
		return KindText
	}
	return KindText
}

// Coerce converts raw value text into the field's typed value.
// uploader and moderationStatus are passed through; the storage layer owns
// the status enum so the parser does not reject unknown statuses.
func (f Field) Coerce(raw string) (Value, error) {
	switch f {
	case FieldCreatedAt, FieldUpdatedAt:
		t, err := parseTimestamp(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%s is not a date", f)
		}
		return TimeValue(t), nil
	case FieldSourceLink:
		if !urlPattern.MatchString(raw) {
			return Value{}, fmt.Errorf("%s is not a url", f)
		}
		return TextValue(raw), nil
	case FieldID:
		if !IsUUIDv4(raw) {
			return Value{}, fmt.Errorf("%s is not a uuid v4", f)
		}
		return TextValue(raw), nil
	case FieldLikes, FieldViews:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%s is not a number", f)
		}
		return IntValue(n), nil
	case FieldUploader, FieldModerationStatus, FieldNone:
		return TextValue(raw), nil
	}
	return Value{}, fmt.Errorf("unsupported field %d", int(f))
}

// IsUUIDv4 reports whether s is a canonical RFC 4122 version 4 UUID.
func IsUUIDv4(s string) bool {
	if len(s) != 36 {
		return false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return id.Version() == 4 && id.Variant() == uuid.RFC4122
}

// host.tld[/path], optional scheme and www.
var urlPattern = regexp.MustCompile(
	`^(https?://)?(www\.)?[a-zA-Z0-9-]{2,}(\.[a-zA-Z0-9-]{2,})+(/\S*)?$`,
)

// Missing date parts are filled from the epoch, never from the wall clock.
var (
	timeConfig    = &now.Config{TimeLocation: time.UTC, TimeFormats: now.TimeFormats}
	referenceTime = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)
)

func parseTimestamp(s string) (time.Time, error) {
	t, err := timeConfig.With(referenceTime).Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t.UTC(), nil
}
