/*
 * Copyright 2025 SOAPKit Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package soap

import (
	"sort"

	"github.com/icon-project/btp2/common/log"
)

// Registry maps storage keys to method specs. It is populated once before
// the server accepts requests and is read only afterwards, lookups need no
// locking.
type Registry struct {
	m map[string]MethodSpec
	l log.Logger
}

func NewRegistry(l log.Logger) *Registry {
	return &Registry{
		m: make(map[string]MethodSpec),
		l: Logger(l),
	}
}

// Register filters the candidates through MethodSpec.Eligible, validates the
// rest and inserts them under their storage key. A later registration with
// the same key replaces the earlier one.
func (r *Registry) Register(specs []MethodSpec) error {
	for _, s := range specs {
		if !s.Eligible() {
			r.l.Debugf("skip ineligible method interface:%s method:%s", s.Interface, s.Method)
			continue
		}
		if err := s.Validate(); err != nil {
			return err
		}
		k := StorageKey(s.Interface, s.Method)
		r.m[k] = s
		r.l.Debugf("register method key:%s", k)
	}
	return nil
}

// Lookup is an exact match lookup by retrieval key. Absence is not an error
// at this layer, the caller decides how to report an unresolved method.
func (r *Registry) Lookup(key string) (MethodSpec, bool) {
	s, ok := r.m[key]
	return s, ok
}

func (r *Registry) Len() int {
	return len(r.m)
}

// MethodSpecs returns the registered specs ordered by storage key.
func (r *Registry) MethodSpecs() []MethodSpec {
	keys := make([]string, 0, len(r.m))
	for k := range r.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	specs := make([]MethodSpec, 0, len(keys))
	for _, k := range keys {
		specs = append(specs, r.m[k])
	}
	return specs
}
