/*
 * Copyright (c) 2025 by the gobookpress authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package manuscript

// Document represents a parsed plain-text manuscript with its sections.
// This is the local import path for raw manuscripts; the hosted extraction
// API in internal/backend produces the same shape from richer sources.

type Document struct {
	Title    string
	Sections []Section
}

// Section is one chapter-to-be: a heading plus its accumulated body text.
// Level is the heading depth (number of '#' marks, or 1 for "Chapter N:"
// headings). Body paragraphs are separated by a blank line.

type Section struct {
	Title  string
	Level  int
	Body   string
	LineNo int // 1-based line number of the heading in the source
}

// Error represents a parse error with position context.

type Error struct {
	Line    int
	Message string
}
