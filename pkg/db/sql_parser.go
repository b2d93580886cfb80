/*
 * Copyright 2025 Carver Automation Corporation.
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

package db

import (
	"strings"
	"unicode"
)

type splitMode int

const (
	modePlain splitMode = iota
	modeSingleQuote
	modeDoubleQuote
	modeLineComment
	modeBlockComment
	modeDollarQuote
)

// splitSQLStatements breaks a migration file into executable statements.
// Semicolons inside quotes, comments, and dollar-quoted bodies do not
// terminate a statement; comment text is dropped.
func splitSQLStatements(content string) []string {
	var (
		out  []string
		cur  strings.Builder
		mode = modePlain
		tag  string
	)

	flush := func() {
		if stmt := strings.TrimSpace(cur.String()); stmt != "" {
			out = append(out, stmt)
		}

		cur.Reset()
	}

	for i := 0; i < len(content); i++ {
		ch := content[i]

		switch mode {
		case modeLineComment:
			if ch == '\n' {
				mode = modePlain
				cur.WriteByte(ch)
			}
		case modeBlockComment:
			if ch == '*' && i+1 < len(content) && content[i+1] == '/' {
				mode = modePlain
				i++
			}
		case modeSingleQuote:
			cur.WriteByte(ch)
			if ch == '\'' {
				mode = modePlain
			}
		case modeDoubleQuote:
			cur.WriteByte(ch)
			if ch == '"' {
				mode = modePlain
			}
		case modeDollarQuote:
			if strings.HasPrefix(content[i:], tag) {
				cur.WriteString(tag)
				i += len(tag) - 1
				mode = modePlain
				tag = ""

				continue
			}

			cur.WriteByte(ch)
		case modePlain:
			switch {
			case ch == '-' && i+1 < len(content) && content[i+1] == '-':
				mode = modeLineComment
				i++
			case ch == '/' && i+1 < len(content) && content[i+1] == '*':
				mode = modeBlockComment
				i++
			case ch == '\'':
				mode = modeSingleQuote
				cur.WriteByte(ch)
			case ch == '"':
				mode = modeDoubleQuote
				cur.WriteByte(ch)
			case ch == '$':
				if t, advance := readDollarTag(content[i:]); t != "" {
					mode = modeDollarQuote
					tag = t
					cur.WriteString(t)
					i += advance - 1

					continue
				}

				cur.WriteByte(ch)
			case ch == ';':
				flush()
			default:
				cur.WriteByte(ch)
			}
		}
	}

	flush()

	return out
}

// readDollarTag reports the dollar-quote tag starting at the head of s,
// e.g. "$$" or "$body$", and how many bytes it spans. A lone "$" that is
// not a tag reports empty.
func readDollarTag(s string) (string, int) {
	if s == "" || s[0] != '$' {
		return "", 0
	}

	for i := 1; i < len(s); i++ {
		ch := s[i]

		if ch == '$' {
			return s[:i+1], i + 1
		}

		if ch != '_' && !unicode.IsLetter(rune(ch)) && !unicode.IsDigit(rune(ch)) {
			return "", 0
		}
	}

	return "", 0
}

func extractVersion(filename string) string {
	parts := strings.SplitN(filename, "_", 2)
	if len(parts) == 0 {
		return filename
	}

	return parts[0]
}
