// Package quiz checks and decodes quiz payloads for bulk import. Every
// problem it reports names the source line it was found on ("line N: ..."),
// so the editor can flag it in the gutter.
package quiz

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xonecas/quizedit/internal/jsonedit"
)

// Quiz is an importable quiz.
type Quiz struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Section groups questions under an id and/or title.
type Section struct {
	ID        ID         `json:"id,omitempty"`
	Title     string     `json:"title,omitempty"`
	Questions []Question `json:"questions"`
}

// Name returns the title, or the id when there is no title.
func (s Section) Name() string {
	if s.Title != "" {
		return s.Title
	}
	return string(s.ID)
}

// ID is a section identifier written either as a string or a number.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("section id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Question is a single question with optional choices.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Answer   *int     `json:"answer,omitempty"`
}

// QuestionCount returns the number of questions over all sections.
func (q *Quiz) QuestionCount() int {
	n := 0
	for _, s := range q.Sections {
		n += len(s.Questions)
	}
	return n
}

// Check validates doc as a quiz payload. It returns the decoded quiz, or
// the list of problems when there are any.
func Check(doc string) (*Quiz, []string) {
	res := jsonedit.Validate(doc)
	switch res.Status {
	case jsonedit.StatusEmpty:
		return nil, []string{"line 1: root: document is empty"}
	case jsonedit.StatusInvalid:
		return nil, []string{jsonedit.Messages(res, nil)[0]}
	}

	root, err := parseTree([]byte(doc))
	if err != nil {
		return nil, []string{"line 1: root: " + err.Error()}
	}

	c := &checker{}
	c.root(root)
	if len(c.errs) > 0 {
		return nil, c.errs
	}

	var q Quiz
	d := json.NewDecoder(strings.NewReader(doc))
	d.UseNumber()
	if err := d.Decode(&q); err != nil {
		return nil, []string{"line 1: root: " + err.Error()}
	}
	return &q, nil
}

type checker struct {
	errs []string
}

func (c *checker) errorf(n *node, path, format string, args ...any) {
	c.errs = append(c.errs, fmt.Sprintf("line %d: %s: %s", n.line, path, fmt.Sprintf(format, args...)))
}

func (c *checker) root(n *node) {
	if n.kind != kindObject {
		c.errorf(n, "root", "expected an object, got %s", n.kind)
		return
	}
	if t, ok := n.field("title"); ok && t.kind != kindString {
		c.errorf(t, "title", "expected a string, got %s", t.kind)
	}
	sections, ok := n.field("sections")
	if !ok {
		c.errorf(n, "root", "missing required array %q", "sections")
		return
	}
	if sections.kind != kindArray {
		c.errorf(sections, "sections", "expected an array, got %s", sections.kind)
		return
	}
	if len(sections.items) == 0 {
		c.errorf(sections, "sections", "must contain at least one section")
	}
	for i, s := range sections.items {
		c.section(s, fmt.Sprintf("sections[%d]", i))
	}
}

func (c *checker) section(n *node, path string) {
	if n.kind != kindObject {
		c.errorf(n, path, "expected an object, got %s", n.kind)
		return
	}
	named := false
	if id, ok := n.field("id"); ok {
		switch {
		case id.kind == kindString && strings.TrimSpace(id.str) != "", id.kind == kindNumber:
			named = true
		case id.kind != kindString:
			c.errorf(id, path+".id", "expected a string or number, got %s", id.kind)
		}
	}
	if title, ok := n.field("title"); ok {
		switch {
		case title.kind != kindString:
			c.errorf(title, path+".title", "expected a string, got %s", title.kind)
		case strings.TrimSpace(title.str) != "":
			named = true
		}
	}
	if !named {
		c.errorf(n, path, "needs a non-empty %q or %q", "id", "title")
	}

	questions, ok := n.field("questions")
	if !ok {
		c.errorf(n, path, "missing required array %q", "questions")
		return
	}
	if questions.kind != kindArray {
		c.errorf(questions, path+".questions", "expected an array, got %s", questions.kind)
		return
	}
	for i, q := range questions.items {
		c.question(q, fmt.Sprintf("%s.questions[%d]", path, i))
	}
}

func (c *checker) question(n *node, path string) {
	if n.kind != kindObject {
		c.errorf(n, path, "expected an object, got %s", n.kind)
		return
	}
	text, ok := n.field("question")
	switch {
	case !ok:
		c.errorf(n, path, "missing required string %q", "question")
	case text.kind != kindString:
		c.errorf(text, path+".question", "expected a string, got %s", text.kind)
	case strings.TrimSpace(text.str) == "":
		c.errorf(text, path+".question", "must not be empty")
	}

	nOptions := -1
	if opts, ok := n.field("options"); ok {
		if opts.kind != kindArray {
			c.errorf(opts, path+".options", "expected an array, got %s", opts.kind)
		} else {
			nOptions = len(opts.items)
			for i, o := range opts.items {
				if o.kind != kindString {
					c.errorf(o, fmt.Sprintf("%s.options[%d]", path, i), "expected a string, got %s", o.kind)
				}
			}
		}
	}

	answer, ok := n.field("answer")
	if !ok {
		return
	}
	if answer.kind != kindNumber {
		c.errorf(answer, path+".answer", "expected an integer, got %s", answer.kind)
		return
	}
	idx, err := answer.num.Int64()
	switch {
	case err != nil:
		c.errorf(answer, path+".answer", "expected an integer, got %s", answer.num)
	case nOptions < 0:
		c.errorf(answer, path+".answer", "set without %q", "options")
	case idx < 0 || idx >= int64(nOptions):
		c.errorf(answer, path+".answer", "index %d out of range for %d options", idx, nOptions)
	}
}
