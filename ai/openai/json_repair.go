// Copyright 2025 Astrodine Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

// repairJSON fixes the one malformation models produce often enough to
// matter: a missing opening quote before an object key, as in `, planet":`.
// Anything it does not recognize passes through untouched.
func repairJSON(s string) string {
	src := []rune(s)
	out := make([]rune, 0, len(src)+16)

	i := 0
	for i < len(src) {
		ch := src[i]
		if ch != '{' && ch != ',' {
			out = append(out, ch)
			i++
			continue
		}

		out = append(out, ch)
		i++

		for i < len(src) && (src[i] == ' ' || src[i] == '\n' || src[i] == '\t') {
			out = append(out, src[i])
			i++
		}

		// A bare identifier here is a key missing its opening quote.
		if i >= len(src) || src[i] == '"' || !isIdentRune(src[i]) {
			continue
		}

		keyStart := i
		for i < len(src) && (isIdentRune(src[i]) || src[i] == ' ') {
			i++
		}

		// Only repair when the key is followed by `":`. Otherwise this is
		// not a quoting problem and we copy the skipped runes verbatim.
		if i+1 < len(src) && src[i] == '"' && src[i+1] == ':' {
			out = append(out, '"')
			out = append(out, src[keyStart:i]...)
		} else {
			out = append(out, src[keyStart:i]...)
		}
	}

	return string(out)
}

func isIdentRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}
