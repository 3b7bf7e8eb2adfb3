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
	"sort"
	"strings"
)

// Expand turns the dotted keys of a flat record into nested maps, {"a.b": 1} becomes {"a": {"b": 1}}.
// A dotted key wins over a plain one it collides with, {"a": 2, "a.b": 1} becomes {"a": {"b": 1}}.
func Expand(record map[string]interface{}) map[string]interface{} {
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	// shallow paths first, deeper ones replace the leaves they collide with.
	sort.Slice(keys, func(i, j int) bool {
		di, dj := strings.Count(keys[i], "."), strings.Count(keys[j], ".")
		if di != dj {
			return di < dj
		}
		return keys[i] < keys[j]
	})
	result := make(map[string]interface{}, len(record))
	// nodes holds the maps built here by path, nested maps of the record are never written to.
	nodes := map[string]map[string]interface{}{"": result}
	for _, k := range keys {
		path := strings.Split(k, ".")
		m := result
		for i := range path[:len(path)-1] {
			prefix := strings.Join(path[:i+1], ".")
			child, ok := nodes[prefix]
			if !ok {
				child = make(map[string]interface{})
				nodes[prefix] = child
				m[path[i]] = child
			}
			m = child
		}
		m[path[len(path)-1]] = record[k]
	}
	return result
}
