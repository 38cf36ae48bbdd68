// Copyright 2015 Google Inc. All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cbuild

import (
	"reflect"
	"testing"
)

func tokenizeAll(t *testing.T, in string) []string {
	t.Helper()
	tok := NewTokenizer([]byte(in))
	var got []string
	for {
		b, ok := tok.Next()
		if !ok {
			break
		}
		got = append(got, string(b))
	}
	return got
}

func TestTokenizerScenarios(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "hello world program",
			in:   `int main(int argc, char **argv) { printf("Hello World!\n"); return 0; }`,
			want: []string{"int", "main", "(", "int", "argc", ",", "char", "*", "*", "argv", ")", "{",
				"printf", "(", `"Hello World!\n"`, ")", ";", "return", "0", ";", "}"},
		},
		{
			name: "three string literals with escapes",
			in:   `"test1\n""test2\n\\""test3\n"`,
			want: []string{`"test1\n"`, `"test2\n\\"`, `"test3\n"`},
		},
		{
			name: "line comment",
			in:   "int//comment\nfloat",
			want: []string{"int", "//comment", "float"},
		},
		{
			name: "block comment spanning lines",
			in:   "int/*a\nb*/float",
			want: []string{"int", "/*a\nb*/", "float"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := tokenizeAll(t, tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("tokenize(%q) = %q; want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTokenizerDirectiveHeadAndRemainder(t *testing.T) {
	tok := NewTokenizer([]byte("# include <x.h>"))
	head, ok := tok.Next()
	if !ok || string(head) != "# include" {
		t.Fatalf("Next() = %q, %v; want %q, true", head, ok, "# include")
	}
	rest := trimIncludeForm(tok.SkipToEndOfLine())
	if rest != "x.h" {
		t.Errorf("SkipToEndOfLine() trimmed = %q; want %q", rest, "x.h")
	}
}

func TestTokenizerDefineDirective(t *testing.T) {
	tok := NewTokenizer([]byte("#define FOO 1"))
	head, ok := tok.Next()
	if !ok || string(head) != "#define" {
		t.Fatalf("Next() = %q, %v; want %q, true", head, ok, "#define")
	}
}

func TestTokenizerProperty_IdentifiersAndPunctuationRoundtripModuloWhitespace(t *testing.T) {
	in := "foo ( bar , baz ) [ qux ] { zap } ;"
	tok := NewTokenizer([]byte(in))
	var buf []byte
	for {
		b, ok := tok.Next()
		if !ok {
			break
		}
		buf = append(buf, b...)
	}
	want := "foo(bar,baz)[qux]{zap};"
	if string(buf) != want {
		t.Errorf("concatenated tokens = %q; want %q", buf, want)
	}
}

func TestTokenizerUnterminatedStringConsumesToEOF(t *testing.T) {
	tok := NewTokenizer([]byte(`"unterminated`))
	got, ok := tok.Next()
	if !ok {
		t.Fatal("Next() = false; want true")
	}
	if string(got) != `"unterminated` {
		t.Errorf("Next() = %q; want %q", got, `"unterminated`)
	}
	if _, ok := tok.Next(); ok {
		t.Error("Next() after EOF = true; want false")
	}
}

func TestTokenizerUnterminatedBlockCommentConsumesToEOF(t *testing.T) {
	tok := NewTokenizer([]byte("/* never closed"))
	got, ok := tok.Next()
	if !ok || string(got) != "/* never closed" {
		t.Errorf("Next() = %q, %v; want %q, true", got, ok, "/* never closed")
	}
}

func TestTokenizerSkipToEndOfPoundExpressionContinuation(t *testing.T) {
	tok := NewTokenizer([]byte("#if defined(A) && \\\ndefined(B)\nnext"))
	head, _ := tok.Next()
	if string(head) != "#if" {
		t.Fatalf("Next() = %q; want %q", head, "#if")
	}
	rest := tok.SkipToEndOfPoundExpression()
	want := " defined(A) && \\\ndefined(B)"
	if string(rest) != want {
		t.Errorf("SkipToEndOfPoundExpression() = %q; want %q", rest, want)
	}
	tail, ok := tok.Next()
	if !ok || string(tail) != "next" {
		t.Errorf("Next() after pound expression = %q, %v; want %q, true", tail, ok, "next")
	}
}
