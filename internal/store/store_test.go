package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xonecas/quizedit/internal/auth"
	"github.com/xonecas/quizedit/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

type note struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
	N    int    `json:"n"`
}

func TestStore_CreateGet(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Create("notes", note{Text: "hello", Tag: "a"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" {
		t.Fatal("expected an id")
	}

	rec, err := s.Get("notes", id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	var got note
	if err := rec.Decode(&got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Text != "hello" || rec.Collection != "notes" || rec.ID != id {
		t.Errorf("got %+v in %+v", got, rec)
	}

	// Same id, other collection.
	if _, err := s.Get("other", id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get other collection: err = %v, want ErrNotFound", err)
	}
}

func TestStore_UpdateDelete(t *testing.T) {
	s := openTestStore(t)
	id, _ := s.Create("notes", note{Text: "v1"})

	if err := s.Update("notes", id, note{Text: "v2"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	rec, _ := s.Get("notes", id)
	var got note
	rec.Decode(&got)
	if got.Text != "v2" {
		t.Errorf("after update text = %q", got.Text)
	}

	if err := s.Delete("notes", id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get("notes", id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: err = %v", err)
	}
	if err := s.Delete("notes", id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: err = %v", err)
	}
	if err := s.Update("notes", id, note{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing: err = %v", err)
	}
}

func TestStore_ListFilter(t *testing.T) {
	s := openTestStore(t)
	s.Create("notes", note{Text: "one", Tag: "a", N: 1})
	s.Create("notes", note{Text: "two", Tag: "b", N: 2})
	s.Create("notes", note{Text: "three", Tag: "a", N: 3})
	s.Create("other", note{Text: "x", Tag: "a"})

	all, err := s.List("notes")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List len = %d, want 3", len(all))
	}
	var first note
	all[0].Decode(&first)
	if first.Text != "one" {
		t.Errorf("first = %q, want insertion order", first.Text)
	}

	tagged, err := s.Filter("notes", "tag", "a")
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(tagged) != 2 {
		t.Errorf("Filter tag=a len = %d, want 2", len(tagged))
	}

	numbered, err := s.Filter("notes", "n", 2)
	if err != nil {
		t.Fatalf("Filter numeric: %v", err)
	}
	if len(numbered) != 1 {
		t.Errorf("Filter n=2 len = %d, want 1", len(numbered))
	}

	if _, err := s.Filter("notes", "tag') OR 1=1 --", "a"); err == nil {
		t.Error("expected invalid field error")
	}
}

func TestStore_NilSafe(t *testing.T) {
	var s *Store
	if _, err := s.Create("notes", note{}); !errors.Is(err, ErrNoStore) {
		t.Errorf("Create: %v", err)
	}
	if _, err := s.Get("notes", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get: %v", err)
	}
	if recs, err := s.List("notes"); recs != nil || err != nil {
		t.Errorf("List: %v %v", recs, err)
	}
	s.RecordUsage("save", "me")
	if err := s.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func sampleQuiz(t *testing.T) *quiz.Quiz {
	t.Helper()
	q, errs := quiz.Check(`{
  "title": "Go",
  "sections": [
    {"id": "s1", "questions": [{"question": "a?"}, {"question": "b?", "options": ["x", "y"], "answer": 1}]},
    {"title": "Two", "questions": [{"question": "c?"}]}
  ]
}`)
	if len(errs) > 0 {
		t.Fatalf("sample quiz: %v", errs)
	}
	return q
}

func TestImportQuiz(t *testing.T) {
	s := openTestStore(t)
	u := auth.User{Name: "ana", Role: auth.RoleAuthor}

	quizID, err := s.ImportQuiz(u, sampleQuiz(t), "go.json")
	if err != nil {
		t.Fatalf("ImportQuiz: %v", err)
	}

	rec, err := s.Get(Quizzes, quizID)
	if err != nil {
		t.Fatalf("Get quiz: %v", err)
	}
	var qr QuizRecord
	rec.Decode(&qr)
	if qr.Title != "Go" || qr.Author != "ana" || qr.Sections != 2 || qr.Questions != 3 || qr.Source != "go.json" {
		t.Errorf("quiz record = %+v", qr)
	}

	secs, _ := s.Filter(Sections, "quiz_id", quizID)
	if len(secs) != 2 {
		t.Fatalf("sections = %d, want 2", len(secs))
	}
	qs, _ := s.Filter(Questions, "quiz_id", quizID)
	if len(qs) != 3 {
		t.Fatalf("questions = %d, want 3", len(qs))
	}
	var second QuestionRecord
	qs[1].Decode(&second)
	if second.Answer == nil || *second.Answer != 1 || len(second.Options) != 2 {
		t.Errorf("second question = %+v", second)
	}
}

func TestImportQuiz_Forbidden(t *testing.T) {
	s := openTestStore(t)
	_, err := s.ImportQuiz(auth.User{Name: "v", Role: auth.RoleViewer}, sampleQuiz(t), "x.json")
	if !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if recs, _ := s.List(Quizzes); len(recs) != 0 {
		t.Errorf("forbidden import wrote %d quizzes", len(recs))
	}
}

func TestRecordUsage(t *testing.T) {
	s := openTestStore(t)
	s.RecordUsage("save", "ana")
	s.RecordUsage("import", "ana")
	s.RecordUsage("save", "bo")

	saves, err := s.Filter(FeatureUsage, "feature", "save")
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if len(saves) != 2 {
		t.Errorf("save events = %d, want 2", len(saves))
	}
}
