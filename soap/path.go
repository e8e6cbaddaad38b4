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

import "regexp"

// requestPathPattern is the request grammar. The path carries only the fully
// qualified name of the target interface, case sensitive and separated
// by '/', see BNF below:
//
//	soap-request    = class-path '/'
//	class-path      = package-segment *( '/' package-segment ) 1*( '/' class-segment )
//	package-segment = 'a'..'z' *( 'a'..'z' / '0'..'9' )
//	class-segment   = 'A'..'Z' *( 'a'..'z' / 'A'..'Z' / '0'..'9' / '_' )
var requestPathPattern = regexp.MustCompile(`^(/[a-z][a-z0-9]*(?:/[a-z][a-z0-9]*)*(?:/[A-Z][a-zA-Z0-9_]*)+)/$`)

// MatchRequestPath returns the class path capture of the request path,
// including the leading slash and excluding the trailing one. A deviation
// from the grammar is a non match, never a partial match.
func MatchRequestPath(path string) (string, bool) {
	m := requestPathPattern.FindStringSubmatch(path)
	if m == nil {
		return "", false
	}
	return m[1], true
}
