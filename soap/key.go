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

import "strings"

// ClassPath converts a dot separated fully qualified interface name into its
// URL path form with a leading slash, e.g. "app.service.Greeter" to
// "/app/service/Greeter".
func ClassPath(interfaceName string) string {
	return "/" + strings.ReplaceAll(interfaceName, ".", "/")
}

// StorageKey is the registration key of a method, the class path followed by
// the method name. StorageKey and RetrievalKey of the same canonical
// (interface, method) pair are byte identical, the registry is an exact match
// map.
func StorageKey(interfaceName, method string) string {
	return ClassPath(interfaceName) + "/" + method
}

// RetrievalKey is the lookup key derived from an actual request, the request
// path stripped of the query string and of a trailing extension.
func RetrievalKey(requestPath string) string {
	if qi := strings.IndexByte(requestPath, '?'); qi >= 0 {
		requestPath = requestPath[:qi]
	}
	if ei := strings.LastIndexByte(requestPath, '.'); ei >= 0 {
		requestPath = requestPath[:ei]
	}
	return requestPath
}
