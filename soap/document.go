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

import "io"

// Document is a parsed structured request body.
type Document interface {
	// Name returns the root element name.
	Name() string
	// Text returns the text of the first element matching the path, or the
	// empty string if there is none.
	Text(path string) string
	WriteTo(w io.Writer) error
}

// DocumentParser builds a Document from the raw request body.
type DocumentParser interface {
	Parse(r io.Reader) (Document, error)
}
