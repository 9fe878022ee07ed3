package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

var errMissingParam = errors.New("missing parameter")

func parseIDParam(c echo.Context, name string) (int64, error) {
	return parseID(c.Param(name))
}

// parseIDQuery reads a required id from the query string.
func parseIDQuery(c echo.Context, name string) (int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, errMissingParam
	}
	return parseID(raw)
}

func parseBoolQuery(c echo.Context, name string) (bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("id must be positive")
	}
	return id, nil
}

func parseIDPtr(raw *string) (*int64, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := parseID(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func idToString(id int64) string {
	return strconv.FormatInt(id, 10)
}

func idPtrToString(id *int64) *string {
	if id == nil {
		return nil
	}
	s := idToString(*id)
	return &s
}

// optionalID tells an absent JSON field apart from an explicit null.
type optionalID struct {
	Set   bool
	Value *string
}

func (o *optionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
