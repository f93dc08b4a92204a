package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/eslconsole/internal/common"
)

// form prompts for entity fields one at a time. An empty answer keeps the
// current value. The first error sticks and turns every later prompt into a
// no-op, so a fill function can ask for all fields and check err once.
type form struct {
	r   *bufio.Reader
	w   io.Writer
	err error
}

func newForm(r *bufio.Reader, w io.Writer) *form {
	return &form{r: r, w: w}
}

func (f *form) ask(label, current string) (string, bool) {
	if f.err != nil {
		return "", false
	}
	prompt := label
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", label, current)
	}
	s, err := getSimpleText(f.r, prompt, f.w)
	if err != nil {
		f.err = err
		return "", false
	}
	if s == "" {
		return current, true
	}
	return s, true
}

func (f *form) text(label string, v *string) {
	if s, ok := f.ask(label, *v); ok {
		*v = s
	}
}

func (f *form) int(label string, v *int) {
	s, ok := f.ask(label, strconv.Itoa(*v))
	if !ok {
		return
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f.err = fmt.Errorf("%s: %q is not a whole number", label, s)
		return
	}
	*v = n
}

func (f *form) float(label string, v *float64) {
	s, ok := f.ask(label, strconv.FormatFloat(*v, 'f', -1, 64))
	if !ok {
		return
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		f.err = fmt.Errorf("%s: %q is not a number", label, s)
		return
	}
	*v = n
}

func (f *form) bool(label string, v *bool) {
	cur := "n"
	if *v {
		cur = "y"
	}
	s, ok := f.ask(label+" (y/n)", cur)
	if !ok {
		return
	}
	b, valid := parseYes(s)
	if !valid {
		f.err = fmt.Errorf("%s: answer y or n", label)
		return
	}
	*v = b
}

// choice accepts one of options, case-insensitively. With no options the
// field is set to placeholder without prompting; validation rejects it later.
func (f *form) choice(label string, options []string, placeholder string, v *string) {
	if f.err != nil {
		return
	}
	if len(options) == 0 {
		fmt.Fprintf(f.w, "%s: nothing to choose from\n", label)
		*v = placeholder
		return
	}
	s, ok := f.ask(fmt.Sprintf("%s (%s)", label, strings.Join(options, ", ")), *v)
	if !ok {
		return
	}
	for _, o := range options {
		if strings.EqualFold(o, s) {
			*v = o
			return
		}
	}
	f.err = fmt.Errorf("%s: %q is not one of %s", label, s, strings.Join(options, ", "))
}

// list reads a comma-separated value. "-" clears the list.
func (f *form) list(label string, v *[]string) {
	s, ok := f.ask(label+" (comma-separated, - to clear)", strings.Join(*v, ", "))
	if !ok {
		return
	}
	if s == "-" {
		*v = []string{}
		return
	}
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	*v = out
}

// secret reads a value without echo. An empty answer keeps the current value.
func (f *form) secret(v *string) {
	if f.err != nil {
		return
	}
	pw, err := getPassword(f.w)
	if err != nil {
		f.err = err
		return
	}
	defer common.WipeByteArray(pw)
	if len(pw) > 0 {
		*v = string(pw)
	}
}

// confirm asks a yes/no question that defaults to no.
func (f *form) confirm(question string) bool {
	if f.err != nil {
		return false
	}
	s, err := getSimpleText(f.r, question+" [y/N]", f.w)
	if err != nil {
		return false
	}
	yes, _ := parseYes(s)
	return yes
}

func parseYes(s string) (yes, valid bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true":
		return true, true
	case "n", "no", "false":
		return false, true
	}
	return false, false
}
