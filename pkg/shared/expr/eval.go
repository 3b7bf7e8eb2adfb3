/*
Copyright 2022 The Numaproj Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package expr

import (
	"fmt"

	"github.com/Masterminds/sprig/v3"
	"github.com/spf13/cast"
)

var sprigFuncMap = sprig.GenericFuncMap()

// Env returns the evaluation environment of a record: its fields, with dotted names expanded into nested maps,
// the sprig function map under "sprig" and the numeric helpers.
func Env(record map[string]interface{}) map[string]interface{} {
	env := Expand(record)
	env["sprig"] = sprigFuncMap
	env["num"] = _num
	env["int"] = _int
	env["string"] = _string
	env["abs"] = _abs
	return env
}

// ToFloat converts an expression result to a float64. Booleans convert to 1 and 0.
func ToFloat(v interface{}) (float64, error) {
	if b, ok := v.(bool); ok {
		if b {
			return 1, nil
		}
		return 0, nil
	}
	return cast.ToFloat64E(v)
}

func _num(v interface{}) float64 {
	f, err := ToFloat(v)
	if err != nil {
		panic(fmt.Errorf("cannot convert %q to a number", v))
	}
	return f
}

func _int(v interface{}) int {
	i, err := cast.ToIntE(v)
	if err != nil {
		panic(fmt.Errorf("cannot convert %q to int", v))
	}
	return i
}

func _string(v interface{}) string {
	switch w := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(w)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func _abs(v interface{}) float64 {
	f := _num(v)
	if f < 0 {
		return -f
	}
	return f
}
