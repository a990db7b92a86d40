// Package jsonview converts stored records into the JSON view-models served
// to the web client. Which keys appear depends on the requesting user and on
// the detail flags passed in; values are derived only from the loaded record,
// so callers must preload the associations each function documents.
package jsonview

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/veioenza/seqr/internal/models"
)

// Object is a single JSON view-model.
type Object map[string]interface{}

// Keys returns the sorted key set of o.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (o Object) merge(other Object) {
	for k, v := range other {
		o[k] = v
	}
}

func isStaff(user *models.User) bool {
	return user != nil && user.IsStaff
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func timeOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

func decodeJSON(raw datatypes.JSON) interface{} {
	if len(raw) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// toCamel converts snake_case to lowerCamelCase.
func toCamel(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	return b.String()
}

func camelizeKeys(m map[string]interface{}) Object {
	o := make(Object, len(m))
	for k, v := range m {
		o[toCamel(k)] = v
	}
	return o
}
